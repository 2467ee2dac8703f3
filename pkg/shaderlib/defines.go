package shaderlib

import (
	"sort"
	"strings"
)

const (
	nvidiaDefines = "#define NVIDIA_GPU\n" +
		"// Nvidia optimizes away the calculation necessary for emulated fp64\n" +
		"#define LUMA_FP64_CODE_ELIMINATION_WORKAROUND 1\n"

	intelDefines = "#define INTEL_GPU\n" +
		"// Intel optimizes away the calculation necessary for emulated fp64\n" +
		"#define LUMA_FP64_CODE_ELIMINATION_WORKAROUND 1\n" +
		"// Intel's built-in 'tan' function doesn't have acceptable precision\n" +
		"#define LUMA_FP32_TAN_PRECISION_WORKAROUND 1\n" +
		"// Intel GPU doesn't have full 32 bits precision in same cases, causes overflow\n" +
		"#define LUMA_FP64_HIGH_BITS_OVERFLOW_WORKAROUND 1\n"

	amdDefines = "#define AMD_GPU\n"

	defaultDefines = "#define DEFAULT_GPU\n" +
		"// Prevent driver from optimizing away the calculation necessary for emulated fp64\n" +
		"#define LUMA_FP64_CODE_ELIMINATION_WORKAROUND 1\n" +
		"// Intel's built-in 'tan' function doesn't have acceptable precision\n" +
		"#define LUMA_FP32_TAN_PRECISION_WORKAROUND 1\n" +
		"// Intel GPU doesn't have full 32 bits precision in same cases, causes overflow\n" +
		"#define LUMA_FP64_HIGH_BITS_OVERFLOW_WORKAROUND 1\n"
)

// PlatformDefines returns the workaround defines for the context's GPU.
// Unknown GPUs get every workaround.
func PlatformDefines(info ContextInfo) string {
	switch IdentifyGPUVendor(info) {
	case VendorNVIDIA:
		return nvidiaDefines
	case VendorIntel:
		return intelDefines
	case VendorAMD:
		return amdDefines
	default:
		return defaultDefines
	}
}

// DefaultDefines are the application defines Inject uses when given nil.
func DefaultDefines() map[string]string {
	return map[string]string{"PROJECT_OFFSET_THRESHOLD": "4096.0"}
}

// ApplicationDefines renders defines as #define lines with upper-cased
// names, sorted by name. Entries with an empty value are dropped. The
// block starts with a blank line and a marker comment when defines is not
// empty, and is a single newline otherwise.
func ApplicationDefines(defines map[string]string) string {
	if len(defines) == 0 {
		return "\n"
	}

	names := make([]string, 0, len(defines))
	for name := range defines {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("\n// APPLICATION DEFINES\n")
	for _, name := range names {
		value := defines[name]
		if value == "" {
			continue
		}
		b.WriteString("#define ")
		b.WriteString(strings.ToUpper(name))
		b.WriteByte(' ')
		b.WriteString(value)
		b.WriteByte('\n')
	}
	return b.String()
}
