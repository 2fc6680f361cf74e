// Package srpm builds the source RPM for Fedora/CentOS-style distributions
// from the vendored tarball and a templated spec file.
package srpm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/distforge/internal/executor"
	"github.com/vk/distforge/internal/fsutil"
	"github.com/vk/distforge/internal/model"
	"github.com/vk/distforge/internal/registry"
	"github.com/vk/distforge/modules/tarball"
)

// ID is the unit kind identifier for the source RPM.
const ID = "srpm"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the srpm unit kind.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterUnit(&registry.Definition{
		ID:    ID,
		Deps:  []string{tarball.ID},
		Tools: []string{"rpmbuild"},
		Build: Build,
	})
}

// Build lays out an rpmbuild topdir inside the scratch workspace, fills in
// the spec template, and runs `rpmbuild -bs`.
func Build(ctx context.Context, run *model.Context, scratchDir string) ([]string, error) {
	for _, d := range []string{"SOURCES", "SPECS"} {
		if err := os.MkdirAll(filepath.Join(scratchDir, d), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", d, err)
		}
	}

	tarballs := run.Outputs[tarball.ID]
	if len(tarballs) == 0 {
		return nil, fmt.Errorf("no tarball artifact recorded for unit '%s'", tarball.ID)
	}
	tarballPath := tarballs[0]
	tarballName := filepath.Base(tarballPath)

	specPath := filepath.Join(scratchDir, "SPECS", run.PackageName+".spec")
	err := fsutil.ReplacePlaceholders(
		filepath.Join(run.DistDir(), "rpm", run.PackageName+".spec.in"),
		specPath,
		run.Placeholders(map[string]string{
			"@VERSION@":      run.Version.Tag,
			"@SUFFIX@":       run.Version.Suffix(),
			"@TARBALL_NAME@": tarballName,
		}),
	)
	if err != nil {
		return nil, err
	}

	if err := os.Link(tarballPath, filepath.Join(scratchDir, "SOURCES", tarballName)); err != nil {
		return nil, fmt.Errorf("failed to link tarball into SOURCES: %w", err)
	}

	err = executor.RunCommand(ctx, "",
		"rpmbuild",
		"--define", "_topdir "+scratchDir,
		"-bs",
		specPath,
	)
	if err != nil {
		return nil, err
	}

	rpms, err := fsutil.FindFilesByExtension(filepath.Join(scratchDir, "SRPMS"), ".src.rpm")
	if err != nil {
		return nil, fmt.Errorf("failed to locate source RPM: %w", err)
	}
	if len(rpms) == 0 {
		return nil, fmt.Errorf("rpmbuild completed but produced no .src.rpm")
	}

	return rpms, nil
}
