package executor

import (
	"context"
	"fmt"

	"github.com/vk/distforge/internal/ctxlog"
	"github.com/vk/distforge/internal/model"
	"github.com/vk/distforge/internal/registry"
)

// Executor runs units strictly sequentially in the resolver's chosen order.
// Later units read artifacts recorded by earlier units through the shared run
// context, and nothing synchronizes that table, so there is no concurrency
// here on purpose.
type Executor struct {
	registry *registry.Registry
}

// New creates an Executor over the given registry.
func New(r *registry.Registry) *Executor {
	return &Executor{registry: r}
}

// Run executes each unit kind in order, exactly once. The first failure
// aborts the remaining sequence; artifacts already published by earlier units
// are left intact.
func (e *Executor) Run(ctx context.Context, run *model.Context, order []string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Executor starting run.", "unit_count", len(order))

	for _, id := range order {
		def, ok := e.registry.Lookup(id)
		if !ok {
			return fmt.Errorf("unknown unit kind '%s' in execution order", id)
		}
		if err := e.runUnit(ctx, run, def); err != nil {
			return fmt.Errorf("unit '%s' failed: %w", id, err)
		}
	}

	logger.Debug("Executor run finished.")
	return nil
}
