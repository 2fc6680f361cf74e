package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/vk/distforge/internal/ctxlog"
)

// RunCommand invokes an external tool, streaming its output to stderr so the
// operator can follow long-running packaging commands. A non-zero exit status
// is propagated faithfully as the unit's failure.
func RunCommand(ctx context.Context, dir string, name string, args ...string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Running external command.", "command", name, "args", args, "dir", dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command '%s' failed: %w", name, err)
	}
	return nil
}
