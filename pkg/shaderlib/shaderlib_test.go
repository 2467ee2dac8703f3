package shaderlib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/geoview/pkg/project"
)

func TestIdentifyGPUVendor(t *testing.T) {
	tests := []struct {
		vendor   string
		renderer string
		want     GPUVendor
	}{
		{"NVIDIA Corporation", "GeForce RTX 3080/PCIe/SSE2", VendorNVIDIA},
		{"Google Inc.", "ANGLE (NVIDIA GeForce GTX 1060)", VendorNVIDIA},
		{"Intel Inc.", "Intel(R) Iris(TM) Plus Graphics", VendorIntel},
		{"intel open source technology center", "Mesa DRI", VendorIntel},
		{"AMD", "Radeon Pro 560X", VendorAMD},
		{"ATI Technologies Inc.", "Radeon", VendorAMD},
		{"Apple", "Apple M1", VendorUnknown},
		{"", "", VendorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.vendor+"/"+tt.renderer, func(t *testing.T) {
			got := IdentifyGPUVendor(StaticContext{VendorName: tt.vendor, RendererName: tt.renderer})
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, VendorUnknown, IdentifyGPUVendor(nil))
}

func TestPlatformDefines(t *testing.T) {
	nvidia := PlatformDefines(StaticContext{VendorName: "NVIDIA Corporation"})
	assert.True(t, strings.HasPrefix(nvidia, "#define NVIDIA_GPU\n"))
	assert.Contains(t, nvidia, "#define LUMA_FP64_CODE_ELIMINATION_WORKAROUND 1\n")
	assert.NotContains(t, nvidia, "LUMA_FP32_TAN_PRECISION_WORKAROUND")

	intel := PlatformDefines(StaticContext{VendorName: "Intel"})
	assert.True(t, strings.HasPrefix(intel, "#define INTEL_GPU\n"))
	assert.Contains(t, intel, "#define LUMA_FP32_TAN_PRECISION_WORKAROUND 1\n")
	assert.Contains(t, intel, "#define LUMA_FP64_HIGH_BITS_OVERFLOW_WORKAROUND 1\n")

	assert.Equal(t, "#define AMD_GPU\n", PlatformDefines(StaticContext{RendererName: "AMD Radeon"}))

	def := PlatformDefines(StaticContext{VendorName: "Apple"})
	assert.True(t, strings.HasPrefix(def, "#define DEFAULT_GPU\n"))
	assert.Contains(t, def, "#define LUMA_FP32_TAN_PRECISION_WORKAROUND 1\n")
}

func TestApplicationDefines(t *testing.T) {
	assert.Equal(t, "\n", ApplicationDefines(nil))
	assert.Equal(t, "\n", ApplicationDefines(map[string]string{}))

	got := ApplicationDefines(map[string]string{
		"zeta":                     "2",
		"PROJECT_OFFSET_THRESHOLD": "4096.0",
		"empty":                    "",
		"alpha":                    "0",
	})
	want := "\n// APPLICATION DEFINES\n" +
		"#define PROJECT_OFFSET_THRESHOLD 4096.0\n" +
		"#define ALPHA 0\n" +
		"#define ZETA 2\n"
	assert.Equal(t, want, got)
}

func TestVersionLine(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"#version 300 es\nvoid main() {}", "#version 300 es\n"},
		{"#version 410 core\nvoid main() {}", "#version 410 core\n"},
		{"#version 100\r\nvoid main() {}", "#version 100\r\n"},
		{"#version 330\n", "#version 330\n"},
		{"void main() {}", ""},
		{"#version 300 es", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VersionLine(tt.source), tt.source)
	}
}

func TestInjectOrder(t *testing.T) {
	source := "#version 300 es\nin vec3 positions;\nvoid main() {\n  gl_Position = project_position_to_clipspace(positions, vec3(0.0), vec3(0.0));\n}\n"
	out := Inject(StaticContext{VendorName: "NVIDIA"}, source, nil)

	require.True(t, strings.HasPrefix(out, "#version 300 es\n\n#define NVIDIA_GPU\n"))
	assert.Equal(t, 1, strings.Count(out, "#version"))

	sections := []string{
		"#version 300 es",
		"#define NVIDIA_GPU",
		"// APPLICATION DEFINES",
		"#define PROJECT_OFFSET_THRESHOLD 4096.0",
		FragmentShaderPrologue,
		"float tan_fp32(float a)",
		"uniform vec4 project_uCenter;",
		"in vec3 positions;",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		require.GreaterOrEqual(t, idx, 0, "missing %q", s)
		assert.Greater(t, idx, last, "%q out of order", s)
		last = idx
	}
	assert.True(t, strings.HasSuffix(out, "}\n\n"))
}

func TestInjectWithoutVersion(t *testing.T) {
	out := Inject(StaticContext{VendorName: "AMD"}, "void main() {}", map[string]string{})

	assert.True(t, strings.HasPrefix(out, "\n#define AMD_GPU\n\n\n\n"+FragmentShaderPrologue))
	assert.NotContains(t, out, "APPLICATION DEFINES")
	assert.True(t, strings.HasSuffix(out, "void main() {}\n"))
}

func TestProjectModuleDeclaresUniforms(t *testing.T) {
	for _, key := range project.UniformKeys() {
		assert.Regexp(t, `uniform \w+ `+key+`;`, Project.Source)
	}
}

func TestModules(t *testing.T) {
	mods := Modules()
	require.Len(t, mods, 2)
	assert.Equal(t, "fp32", mods[0].Name)
	assert.Equal(t, "project", mods[1].Name)
	assert.NotEmpty(t, FP32.Source)

	// Shared dependencies appear once.
	assert.Len(t, Resolve(Project, FP32, Project), 2)
}
