package registry

import (
	"fmt"
	"strings"
)

// Validate performs an integrity check over the registered definitions: every
// declared prerequisite must reference a known unit kind and a kind must not
// depend on itself. A violation is a mismatch between compiled-in modules,
// which is a configuration error surfaced before any work begins.
func (r *Registry) Validate() error {
	var errs []string

	for _, id := range r.IDs() {
		def := r.units[id]
		for _, dep := range def.Deps {
			if dep == id {
				errs = append(errs, fmt.Sprintf("unit '%s': depends on itself", id))
				continue
			}
			if _, ok := r.units[dep]; !ok {
				errs = append(errs, fmt.Sprintf("unit '%s': unknown prerequisite '%s'", id, dep))
			}
		}
		if def.Build == nil {
			errs = append(errs, fmt.Sprintf("unit '%s': missing build function", id))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
