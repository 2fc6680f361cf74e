package plan

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/distforge/internal/ctxlog"
	"github.com/vk/distforge/internal/registry"
)

// Resolve computes the execution order for the requested unit kinds. The
// result contains every requested kind plus its full transitive prerequisite
// closure, each exactly once, with every kind appearing strictly after all of
// its prerequisites. Ties between simultaneously-ready kinds are broken by
// identifier so the order is deterministic.
func Resolve(ctx context.Context, r *registry.Registry, requested []string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving execution order.", "requested", requested)

	if len(requested) == 0 {
		return nil, fmt.Errorf("no unit kinds requested")
	}

	// Working graph: each reachable kind mapped to its remaining
	// unprocessed-prerequisite set, closed transitively.
	remaining := make(map[string]map[string]struct{})

	var add func(id string) error
	add = func(id string) error {
		if _, ok := remaining[id]; ok {
			return nil
		}
		def, ok := r.Lookup(id)
		if !ok {
			return fmt.Errorf("unknown unit kind '%s' (known kinds: %s)", id, strings.Join(r.IDs(), ", "))
		}
		deps := make(map[string]struct{}, len(def.Deps))
		remaining[id] = deps
		for _, dep := range def.Deps {
			deps[dep] = struct{}{}
			if err := add(dep); err != nil {
				return err
			}
		}
		return nil
	}

	for _, id := range requested {
		if err := add(id); err != nil {
			return nil, err
		}
	}

	order := make([]string, 0, len(remaining))
	for len(remaining) > 0 {
		ready := make([]string, 0, len(remaining))
		for id, deps := range remaining {
			if len(deps) == 0 {
				ready = append(ready, id)
			}
		}
		if len(ready) == 0 {
			stuck := make([]string, 0, len(remaining))
			for id := range remaining {
				stuck = append(stuck, id)
			}
			sort.Strings(stuck)
			return nil, fmt.Errorf("dependency cycle among unit kinds: %s", strings.Join(stuck, ", "))
		}
		sort.Strings(ready)

		for _, id := range ready {
			order = append(order, id)
			delete(remaining, id)
			for _, deps := range remaining {
				delete(deps, id)
			}
		}
	}

	logger.Debug("Execution order resolved.", "order", order)
	return order, nil
}
