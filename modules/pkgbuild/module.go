// Package pkgbuild builds the PKGBUILD bundle for Arch Linux: a filled-in
// PKGBUILD next to the tarball it checksums.
package pkgbuild

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/distforge/internal/fsutil"
	"github.com/vk/distforge/internal/model"
	"github.com/vk/distforge/internal/registry"
	"github.com/vk/distforge/modules/tarball"
)

// ID is the unit kind identifier for the Arch PKGBUILD bundle.
const ID = "pkgbuild"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the pkgbuild unit kind.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterUnit(&registry.Definition{
		ID:    ID,
		Deps:  []string{tarball.ID},
		Build: Build,
	})
}

// Build templates the PKGBUILD with the tarball's name and SHA-256 digest.
// The tarball is hard-linked into the scratch workspace so it ships alongside
// the PKGBUILD in the published bundle.
func Build(ctx context.Context, run *model.Context, scratchDir string) ([]string, error) {
	tarballs := run.Outputs[tarball.ID]
	if len(tarballs) == 0 {
		return nil, fmt.Errorf("no tarball artifact recorded for unit '%s'", tarball.ID)
	}
	tarballPath := tarballs[0]
	tarballName := filepath.Base(tarballPath)

	tarballSha256, err := fsutil.Sha256File(tarballPath)
	if err != nil {
		return nil, err
	}

	pkgbuildPath := filepath.Join(scratchDir, "PKGBUILD")
	err = fsutil.ReplacePlaceholders(
		filepath.Join(run.DistDir(), "pkgbuild", "PKGBUILD.in"),
		pkgbuildPath,
		run.Placeholders(map[string]string{
			"@VERSION@":        run.Version.Full(),
			"@TARBALL_NAME@":   tarballName,
			"@TARBALL_SHA256@": tarballSha256,
		}),
	)
	if err != nil {
		return nil, err
	}

	linked := filepath.Join(scratchDir, tarballName)
	if err := os.Link(tarballPath, linked); err != nil {
		return nil, fmt.Errorf("failed to link tarball into bundle: %w", err)
	}

	return []string{pkgbuildPath, linked}, nil
}
