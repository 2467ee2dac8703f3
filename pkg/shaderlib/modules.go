package shaderlib

import (
	_ "embed"
)

//go:embed shaders/fp32.glsl
var fp32Source string

//go:embed shaders/project.glsl
var projectSource string

// Module is a named piece of vertex shader code.
type Module struct {
	Name         string
	Source       string
	Dependencies []*Module
}

var (
	// FP32 provides float32 helpers with driver precision workarounds.
	FP32 = &Module{Name: "fp32", Source: fp32Source}

	// Project declares the project_* uniforms and the projection functions
	// that consume them.
	Project = &Module{Name: "project", Source: projectSource, Dependencies: []*Module{FP32}}
)

// Modules returns every module, dependencies first.
func Modules() []*Module {
	return Resolve(Project)
}

// Resolve returns m and its transitive dependencies in include order,
// each module once.
func Resolve(modules ...*Module) []*Module {
	var order []*Module
	seen := make(map[*Module]bool)

	var visit func(m *Module)
	visit = func(m *Module) {
		if seen[m] {
			return
		}
		seen[m] = true
		for _, dep := range m.Dependencies {
			visit(dep)
		}
		order = append(order, m)
	}
	for _, m := range modules {
		visit(m)
	}
	return order
}
