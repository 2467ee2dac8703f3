// Package shaderlib prepends the projection shader modules to GLSL sources.
//
// Inject composes, in order: the source's #version line, GPU workaround
// defines, application defines, a precision prologue, the fp32 and project
// modules, and the rest of the source. It never compiles anything; see
// internal/gldriver for that.
package shaderlib

import "strings"

// ContextInfo describes the rendering context a shader targets. A GL
// context answers with glGetString(GL_VENDOR) and glGetString(GL_RENDERER).
type ContextInfo interface {
	Vendor() string
	Renderer() string
}

// StaticContext is a ContextInfo with fixed strings, for tools and tests
// that run without a GPU.
type StaticContext struct {
	VendorName   string
	RendererName string
}

func (c StaticContext) Vendor() string   { return c.VendorName }
func (c StaticContext) Renderer() string { return c.RendererName }

// GPUVendor groups drivers that share shader workarounds.
type GPUVendor string

const (
	VendorNVIDIA  GPUVendor = "NVIDIA"
	VendorIntel   GPUVendor = "INTEL"
	VendorAMD     GPUVendor = "AMD"
	VendorUnknown GPUVendor = "UNKNOWN GPU"
)

// IdentifyGPUVendor classifies a context by case-insensitive substring
// match on its vendor and renderer strings.
func IdentifyGPUVendor(info ContextInfo) GPUVendor {
	if info == nil {
		return VendorUnknown
	}
	vendor := strings.ToUpper(info.Vendor())
	renderer := strings.ToUpper(info.Renderer())
	has := func(s string) bool {
		return strings.Contains(vendor, s) || strings.Contains(renderer, s)
	}

	switch {
	case has("NVIDIA"):
		return VendorNVIDIA
	case has("INTEL"):
		return VendorIntel
	case has("AMD"), has("ATI"):
		return VendorAMD
	default:
		return VendorUnknown
	}
}
