// Package tarball builds the vendored source tarball used by every other
// packaging unit. Dependencies are vendored into the archive because build
// services like launchpad.net and build.opensuse.org do not allow internet
// access during builds, and the archive itself is byte-for-byte reproducible.
package tarball

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/distforge/internal/executor"
	"github.com/vk/distforge/internal/model"
	"github.com/vk/distforge/internal/registry"
)

// ID is the unit kind identifier for the source tarball.
const ID = "tarball"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the tarball unit kind.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterUnit(&registry.Definition{
		ID:    ID,
		Tools: []string{"git", "tar", "go"},
		Build: Build,
	})
}

// Build stages a pristine checkout of HEAD, vendors the Go module
// dependencies into it, and packs the result into a reproducible .tar.xz.
func Build(ctx context.Context, run *model.Context, scratchDir string) ([]string, error) {
	prefix := fmt.Sprintf("%s-%s", run.PackageName, run.Version.Full())
	tarballPath := filepath.Join(scratchDir, prefix+".vendored.tar.xz")

	stagingDir := filepath.Join(scratchDir, prefix)
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	if err := stageCheckout(ctx, run.RootDir, stagingDir); err != nil {
		return nil, err
	}

	if err := executor.RunCommand(ctx, stagingDir, "go", "mod", "vendor"); err != nil {
		return nil, fmt.Errorf("failed to vendor dependencies: %w", err)
	}

	// Create a byte-for-byte reproducible tarball.
	// See: https://reproducible-builds.org/docs/archives/
	err := executor.RunCommand(ctx, "",
		"tar",
		"-C", scratchDir,
		"--sort", "name",
		"--mtime", "@0",
		"--owner", "0",
		"--group", "0",
		"--numeric-owner",
		"--pax-option",
		"exthdr.name=%d/PaxHeaders/%f,delete=atime,delete=ctime",
		"-Jcf", tarballPath,
		prefix,
	)
	if err != nil {
		return nil, err
	}

	return []string{tarballPath}, nil
}
