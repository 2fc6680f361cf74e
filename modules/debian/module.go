// Package debian builds the deb source package for Debian/Ubuntu. The target
// distro and version suffix options make the source package uploadable to
// services like launchpad.net where one repository serves multiple distro
// versions.
package debian

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/distforge/internal/executor"
	"github.com/vk/distforge/internal/fsutil"
	"github.com/vk/distforge/internal/model"
	"github.com/vk/distforge/internal/registry"
	"github.com/vk/distforge/internal/version"
	"github.com/vk/distforge/modules/tarball"
)

// ID is the unit kind identifier for the Debian source package.
const ID = "debian"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the debian unit kind.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterUnit(&registry.Definition{
		ID:    ID,
		Deps:  []string{tarball.ID},
		Tools: []string{"tar", "dch", "debuild"},
		Build: Build,
	})
}

// Version returns the Debian form of the version string. Debian/Ubuntu
// prefer plusses over dots for git version suffixes.
func Version(v version.Info) string {
	return v.Tag + strings.ReplaceAll(v.Suffix(), ".", "+")
}

// Build unpacks the tarball as the .orig archive, grafts the debian/
// directory onto it, writes a changelog entry, and runs `debuild -S`.
func Build(ctx context.Context, run *model.Context, scratchDir string) ([]string, error) {
	tarballs := run.Outputs[tarball.ID]
	if len(tarballs) == 0 {
		return nil, fmt.Errorf("no tarball artifact recorded for unit '%s'", tarball.ID)
	}
	tarballPath := tarballs[0]

	debVersion := Version(run.Version)
	origName := fmt.Sprintf("%s_%s.orig.tar.xz", run.PackageName, debVersion)
	if err := os.Link(tarballPath, filepath.Join(scratchDir, origName)); err != nil {
		return nil, fmt.Errorf("failed to link orig tarball: %w", err)
	}

	if err := executor.RunCommand(ctx, scratchDir, "tar", "-xf", origName); err != nil {
		return nil, fmt.Errorf("failed to unpack orig tarball: %w", err)
	}

	sourceDir := filepath.Join(scratchDir, fmt.Sprintf("%s-%s", run.PackageName, run.Version.Full()))
	if err := fsutil.CopyDir(filepath.Join(run.DistDir(), "debian"), filepath.Join(sourceDir, "debian")); err != nil {
		return nil, fmt.Errorf("failed to copy debian directory: %w", err)
	}

	var dchExtraArgs, debuildExtraArgs []string
	if run.Debian.Distro != "" {
		dchExtraArgs = append(dchExtraArgs, "-D", run.Debian.Distro)
	}
	if !run.Debian.Signed {
		dchExtraArgs = append(dchExtraArgs, "-M")
		debuildExtraArgs = append(debuildExtraArgs, "-us", "-uc")
	}

	dchArgs := []string{
		"--create",
		"--package", run.PackageName,
		"-v", fmt.Sprintf("%s-1%s", debVersion, run.Debian.Suffix),
	}
	dchArgs = append(dchArgs, dchExtraArgs...)
	dchArgs = append(dchArgs, "Automatically built from version "+run.Version.Full())
	if err := executor.RunCommand(ctx, sourceDir, "dch", dchArgs...); err != nil {
		return nil, fmt.Errorf("failed to create changelog: %w", err)
	}

	// Skip cleaning: it needs extra build dependencies, like dh-exec, that
	// would prevent running this on non-Debian-based distros, and the
	// staged tree is already pristine.
	debuildArgs := append([]string{"-S", "-nc"}, debuildExtraArgs...)
	if err := executor.RunCommand(ctx, sourceDir, "debuild", debuildArgs...); err != nil {
		return nil, err
	}

	// debuild drops its outputs (.dsc, .changes, diff tarball) next to the
	// source directory, so every regular file left in the scratch root is an
	// artifact.
	entries, err := os.ReadDir(scratchDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan scratch workspace: %w", err)
	}
	var artifacts []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			artifacts = append(artifacts, filepath.Join(scratchDir, entry.Name()))
		}
	}
	return artifacts, nil
}
