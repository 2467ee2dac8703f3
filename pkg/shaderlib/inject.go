package shaderlib

import (
	"regexp"
	"strings"
)

// FragmentShaderPrologue is inserted before the modules.
const FragmentShaderPrologue = "precision highp float;\n"

// versionPattern matches a #version directive with its line break. Desktop
// profiles are accepted alongside GLSL ES.
var versionPattern = regexp.MustCompile(`#version \d+(\s+(es|core|compatibility))?\s*\n`)

// VersionLine returns the #version directive of source, including its line
// break, or "" when there is none.
func VersionLine(source string) string {
	return versionPattern.FindString(source)
}

// Inject returns source with the projection modules prepended. A nil
// defines map uses DefaultDefines; an empty one adds no application
// defines.
func Inject(info ContextInfo, source string, defines map[string]string) string {
	if defines == nil {
		defines = DefaultDefines()
	}

	version := VersionLine(source)
	body := source
	if version != "" {
		body = strings.Replace(source, version, "", 1)
	}

	var b strings.Builder
	for _, part := range []string{
		version,
		PlatformDefines(info),
		ApplicationDefines(defines),
		FragmentShaderPrologue,
		FP32.Source,
		Project.Source,
		body,
	} {
		b.WriteString(part)
		b.WriteByte('\n')
	}
	return b.String()
}
