// Package preflight validates external tool availability before any unit
// executes. It aggregates the required-tool sets across the whole resolved
// order and reports every missing tool at once, so the operator installs
// everything in a single pass instead of cycling through install-and-retry.
package preflight

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/vk/distforge/internal/ctxlog"
	"github.com/vk/distforge/internal/registry"
)

// Checker verifies tool presence on the execution search path. LookPath is
// injectable so tests can simulate missing tools.
type Checker struct {
	LookPath func(name string) (string, error)
}

// NewChecker returns a Checker backed by the real search path.
func NewChecker() *Checker {
	return &Checker{LookPath: exec.LookPath}
}

// Check computes the union of required tools over the resolved execution
// order and fails with the complete sorted list of missing tools.
func (c *Checker) Check(ctx context.Context, r *registry.Registry, order []string) error {
	logger := ctxlog.FromContext(ctx)

	required := make(map[string]struct{})
	for _, id := range order {
		def, ok := r.Lookup(id)
		if !ok {
			return fmt.Errorf("unknown unit kind '%s' in execution order", id)
		}
		for _, tool := range def.Tools {
			required[tool] = struct{}{}
		}
	}
	logger.Debug("Preflight tool set computed.", "count", len(required))

	var missing []string
	for tool := range required {
		if _, err := c.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("the following tools must be installed: %s", strings.Join(missing, ", "))
	}

	logger.Debug("Preflight check passed.")
	return nil
}
