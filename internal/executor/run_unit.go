package executor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/distforge/internal/ctxlog"
	"github.com/vk/distforge/internal/model"
	"github.com/vk/distforge/internal/registry"
)

// runUnit executes a single unit kind: it acquires a scratch workspace under
// the output root, invokes the build operation, publishes the produced
// artifacts into the stable per-kind directory, and records them in the run
// context for later units.
func (e *Executor) runUnit(ctx context.Context, run *model.Context, def *registry.Definition) error {
	logger := ctxlog.FromContext(ctx).With("unit", def.ID)

	if err := os.MkdirAll(run.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output root: %w", err)
	}

	// The scratch workspace lives under the output root so publication can
	// hard-link without crossing filesystems. It never survives this scope.
	scratchDir, err := os.MkdirTemp(run.OutputDir, ".scratch-"+def.ID+"-")
	if err != nil {
		return fmt.Errorf("failed to create scratch workspace: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	logger.Info("▶️ Starting unit")
	artifacts, err := def.Build(ctx, run, scratchDir)
	if err != nil {
		return err
	}

	unitDir := filepath.Join(run.OutputDir, def.ID)
	if err := os.MkdirAll(unitDir, 0o755); err != nil {
		return fmt.Errorf("failed to create unit output directory: %w", err)
	}

	published := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		if !withinDir(scratchDir, artifact) {
			return fmt.Errorf("build returned artifact outside its scratch workspace: %s", artifact)
		}
		dest, err := publish(artifact, unitDir)
		if err != nil {
			return err
		}
		logger.Debug("Published artifact.", "path", dest)
		published = append(published, dest)
	}

	run.Outputs[def.ID] = published
	logger.Info("✅ Finished unit", "artifacts", len(published))
	return nil
}

// publish places one artifact into the stable output directory under its base
// name. An existing file from a prior run is replaced, and the artifact is
// hard-linked rather than copied so publication is instantaneous even for
// large archives.
func publish(artifact, unitDir string) (string, error) {
	dest := filepath.Join(unitDir, filepath.Base(artifact))

	if err := os.Remove(dest); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to remove stale artifact %s: %w", dest, err)
	}
	if err := os.Link(artifact, dest); err != nil {
		return "", fmt.Errorf("failed to publish artifact %s: %w", artifact, err)
	}

	return dest, nil
}

// withinDir reports whether path is located inside dir.
func withinDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
