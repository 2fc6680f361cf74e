// Package testutil provides shared helpers for constructing registries and
// unit definitions in tests.
package testutil

import (
	"context"

	"github.com/vk/distforge/internal/model"
	"github.com/vk/distforge/internal/registry"
)

// Noop returns a unit definition whose build produces no artifacts. It is
// useful for resolver and preflight tests that never execute builds.
func Noop(id string, deps ...string) *registry.Definition {
	return &registry.Definition{
		ID:   id,
		Deps: deps,
		Build: func(ctx context.Context, run *model.Context, scratchDir string) ([]string, error) {
			// No operation
			return nil, nil
		},
	}
}

// NoopWithTools is Noop with a declared required-tool set.
func NoopWithTools(id string, deps []string, tools ...string) *registry.Definition {
	def := Noop(id, deps...)
	def.Tools = tools
	return def
}

// NewRegistry builds a registry populated with the given definitions.
func NewRegistry(t interface{ Helper() }, defs ...*registry.Definition) *registry.Registry {
	t.Helper()
	r := registry.New()
	for _, def := range defs {
		r.RegisterUnit(def)
	}
	return r
}
