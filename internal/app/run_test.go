package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/distforge/internal/hcl"
	"github.com/vk/distforge/internal/model"
	"github.com/vk/distforge/internal/registry"
	"github.com/vk/distforge/internal/version"
)

// noteModule registers a self-contained unit that writes one file, so app
// runs can be exercised end to end without any external tools.
type noteModule struct{}

func (m *noteModule) Register(r *registry.Registry) {
	r.RegisterUnit(&registry.Definition{
		ID: "note",
		Build: func(ctx context.Context, run *model.Context, scratchDir string) ([]string, error) {
			path := filepath.Join(scratchDir, "note.txt")
			return []string{path}, os.WriteFile(path, []byte(run.Version.Full()), 0o644)
		},
	})
}

func TestRun_EndToEnd(t *testing.T) {
	t.Setenv(version.OverrideEnv, "v1.2.3-4-gabc1234")

	// --- Arrange ---
	rootDir := t.TempDir()
	out := &bytes.Buffer{}
	cfg, err := NewConfig(Config{
		Targets:  []string{"note"},
		RootDir:  rootDir,
		LogLevel: "error",
	})
	require.NoError(t, err)

	a := NewApp(out, cfg, hcl.NewLoader(), &noteModule{})

	// --- Act ---
	runErr := a.Run(context.Background(), cfg)

	// --- Assert ---
	require.NoError(t, runErr)
	published := filepath.Join(rootDir, "dist", "output", "note", "note.txt")
	data, err := os.ReadFile(published)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.r4.gitabc1234", string(data))
	assert.Contains(t, out.String(), "Outputs:")
	assert.Contains(t, out.String(), published)
}

func TestRun_UnknownTarget(t *testing.T) {
	t.Setenv(version.OverrideEnv, "v1.0.0-0-gabc1234")

	out := &bytes.Buffer{}
	cfg, err := NewConfig(Config{
		Targets:  []string{"flatpak"},
		RootDir:  t.TempDir(),
		LogLevel: "error",
	})
	require.NoError(t, err)

	a := NewApp(out, cfg, hcl.NewLoader(), &noteModule{})

	runErr := a.Run(context.Background(), cfg)

	require.Error(t, runErr)
	assert.ErrorContains(t, runErr, "unknown unit kind 'flatpak'")
}

func TestRun_PreflightBlocksExecution(t *testing.T) {
	t.Setenv(version.OverrideEnv, "v1.0.0-0-gabc1234")

	executed := false
	mod := registry.ModuleFunc(func(r *registry.Registry) {
		r.RegisterUnit(&registry.Definition{
			ID:    "needy",
			Tools: []string{"distforge-test-tool-that-cannot-exist"},
			Build: func(ctx context.Context, run *model.Context, scratchDir string) ([]string, error) {
				executed = true
				return nil, nil
			},
		})
	})

	out := &bytes.Buffer{}
	cfg, err := NewConfig(Config{
		Targets:  []string{"needy"},
		RootDir:  t.TempDir(),
		LogLevel: "error",
	})
	require.NoError(t, err)

	a := NewApp(out, cfg, hcl.NewLoader(), mod)

	runErr := a.Run(context.Background(), cfg)

	require.Error(t, runErr)
	assert.ErrorContains(t, runErr, "must be installed")
	assert.ErrorContains(t, runErr, "distforge-test-tool-that-cannot-exist")
	assert.False(t, executed, "preflight failure must block execution")
}

func TestNewApp_BadOptionsFilePanics(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dist.hcl")
	require.NoError(t, os.WriteFile(path, []byte("package { name = "), 0o600))

	cfg, err := NewConfig(Config{Targets: []string{"note"}, ConfigPath: path, LogLevel: "error"})
	require.NoError(t, err)

	assert.Panics(t, func() {
		NewApp(&bytes.Buffer{}, cfg, hcl.NewLoader(), &noteModule{})
	})
}
