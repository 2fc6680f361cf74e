package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/distforge/internal/config"
	"github.com/vk/distforge/internal/ctxlog"
	"github.com/vk/distforge/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	options  *config.Model
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Startup failures (unreadable options file, inconsistent unit definitions)
// panic; the entrypoint recovers and reports them.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, os.Stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load the optional options file into the format-agnostic model first.
	options := &config.Model{Replacements: make(map[string]string)}
	if appConfig.ConfigPath != "" {
		loaded, err := loader.Load(ctx, appConfig.ConfigPath)
		if err != nil {
			// A failure to load the options file is a fatal startup error.
			panic(fmt.Errorf("failed to load options file: %w", err))
		}
		options = loaded
	}
	logger.Debug("Options loaded into unified model.")

	// Create and populate the registry with the compiled-in unit kinds.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All unit modules registered.", "count", reg.Len())

	// Validate the integrity of the registry.
	if err := reg.Validate(); err != nil {
		// This is a mismatch between compiled-in unit definitions, so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		options:  options,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
