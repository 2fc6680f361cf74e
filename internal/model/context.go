// Package model defines the shared run-scoped types passed between the
// executor and the unit build implementations.
package model

import (
	"path/filepath"

	"github.com/vk/distforge/internal/version"
)

// DebianOptions carries the pass-through options consumed only by the debian
// unit and ignored by every other kind.
type DebianOptions struct {
	// Distro is the target distribution name for the changelog entry
	// (eg. "focal"). Empty means the dch default.
	Distro string
	// Suffix is appended to the Debian revision to make uploads to a shared
	// repository unique (eg. "~ubuntu20.04").
	Suffix string
	// Signed controls whether debuild signs the .dsc and .changes files.
	Signed bool
}

// Context is the mutable run-scoped state shared across all unit executions.
// It is created once per invocation and owned exclusively by the single
// execution goroutine, so no locking guards the Outputs table.
type Context struct {
	// Version is resolved once at startup and immutable thereafter.
	Version version.Info

	// RootDir is the root of the source tree being packaged.
	RootDir string
	// OutputDir is the stable output root under which per-kind directories
	// and scratch workspaces live.
	OutputDir string

	// PackageName names the packaged project in artifact file names and
	// packaging metadata.
	PackageName string

	Debian DebianOptions

	// Replacements holds user-supplied placeholder values merged into every
	// template substitution. Built-in keys always win.
	Replacements map[string]string

	// Outputs maps each completed unit kind to the stable paths of its
	// published artifacts. Entries grow monotonically as units finish and are
	// read-only to all later units.
	Outputs map[string][]string
}

// NewContext returns a Context with an initialized outputs table.
func NewContext() *Context {
	return &Context{
		Outputs:      make(map[string][]string),
		Replacements: make(map[string]string),
	}
}

// DistDir returns the directory holding the packaging templates
// (spec files, PKGBUILD template, debian directory).
func (c *Context) DistDir() string {
	return filepath.Join(c.RootDir, "dist")
}

// Placeholders merges the user replacement table under the built-in
// substitutions for one template. Built-in keys take precedence.
func (c *Context) Placeholders(builtin map[string]string) map[string]string {
	merged := make(map[string]string, len(builtin)+len(c.Replacements))
	for k, v := range c.Replacements {
		merged[k] = v
	}
	for k, v := range builtin {
		merged[k] = v
	}
	return merged
}
