package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/distforge/internal/model"
)

// Module is the interface that all unit modules must implement to be
// registered with an application instance.
type Module interface {
	Register(r *Registry)
}

// ModuleFunc adapts a plain function to the Module interface.
type ModuleFunc func(r *Registry)

// Register implements the Module interface.
func (f ModuleFunc) Register(r *Registry) { f(r) }

// BuildFunc produces a unit kind's artifacts inside the scratch workspace.
// Every returned path must reside under scratchDir; the executor publishes
// them into the stable per-kind output directory afterwards.
type BuildFunc func(ctx context.Context, run *model.Context, scratchDir string) ([]string, error)

// Definition describes one buildable unit kind: its identity, the kinds whose
// artifacts must exist before it runs, the external executables it invokes,
// and its build operation.
type Definition struct {
	ID    string
	Deps  []string
	Tools []string
	Build BuildFunc
}

// Registry holds the closed set of unit kind definitions for a single
// application instance.
type Registry struct {
	units map[string]*Definition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		units: make(map[string]*Definition),
	}
}

// RegisterUnit adds a unit kind definition. A duplicate ID is a programmer
// error, so it panics.
func (r *Registry) RegisterUnit(def *Definition) {
	if def.ID == "" {
		panic("unit definition must have a non-empty ID")
	}
	if _, exists := r.units[def.ID]; exists {
		panic(fmt.Sprintf("unit kind '%s' already registered", def.ID))
	}
	slog.Debug("Registering unit kind.", "id", def.ID)
	r.units[def.ID] = def
}

// Lookup returns the definition for the given unit kind ID.
func (r *Registry) Lookup(id string) (*Definition, bool) {
	def, ok := r.units[id]
	return def, ok
}

// IDs returns the identifiers of all registered unit kinds, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.units))
	for id := range r.units {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered unit kinds.
func (r *Registry) Len() int {
	return len(r.units)
}
