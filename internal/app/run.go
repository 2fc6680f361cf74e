package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/vk/distforge/internal/ctxlog"
	"github.com/vk/distforge/internal/executor"
	"github.com/vk/distforge/internal/model"
	"github.com/vk/distforge/internal/plan"
	"github.com/vk/distforge/internal/preflight"
	"github.com/vk/distforge/internal/version"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	run, err := a.buildRunContext(ctx, appConfig)
	if err != nil {
		return err
	}
	a.logger.Info("Version resolved.",
		"version", run.Version.Tag,
		"commits_since_tag", run.Version.CommitsSince,
		"head_commit", run.Version.Commit,
	)

	requested := appConfig.Targets
	if appConfig.All {
		requested = a.registry.IDs()
	}

	order, err := plan.Resolve(ctx, a.registry, requested)
	if err != nil {
		return fmt.Errorf("failed to resolve execution order: %w", err)
	}
	a.logger.Info("Execution order resolved.", "order", order)

	// Check that tools exist in one go to avoid having the user need to
	// install packages more than once.
	if err := preflight.NewChecker().Check(ctx, a.registry, order); err != nil {
		return err
	}

	exec := executor.New(a.registry)
	a.logger.Info("🚀 Starting execution.", "output_dir", run.OutputDir)
	if err := exec.Run(ctx, run, order); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("🏁 Execution finished.")

	a.printOutputs(run)
	return nil
}

// buildRunContext assembles the run-scoped execution context: resolved
// version, directory layout, and the pass-through unit options with
// command-line flags overriding the options file.
func (a *App) buildRunContext(ctx context.Context, appConfig *Config) (*model.Context, error) {
	rootDir := appConfig.RootDir
	if rootDir == "" {
		toplevel, err := version.GitToplevel(ctx, ".")
		if err != nil {
			return nil, err
		}
		rootDir = toplevel
	}

	info, err := version.Resolve(ctx, rootDir)
	if err != nil {
		return nil, err
	}

	run := model.NewContext()
	run.Version = info
	run.RootDir = rootDir

	run.PackageName = a.options.PackageName
	if run.PackageName == "" {
		run.PackageName = filepath.Base(rootDir)
	}

	outputDir := appConfig.OutputDir
	if outputDir == "" {
		outputDir = a.options.OutputDir
	}
	if outputDir == "" {
		outputDir = filepath.Join("dist", "output")
	}
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(rootDir, outputDir)
	}
	run.OutputDir = outputDir

	run.Debian = model.DebianOptions{
		Distro: appConfig.DscDistro,
		Suffix: appConfig.DscSuffix,
		Signed: appConfig.DscSigned || a.options.Debian.Signed,
	}
	if run.Debian.Distro == "" {
		run.Debian.Distro = a.options.Debian.Distro
	}
	if run.Debian.Suffix == "" {
		run.Debian.Suffix = a.options.Debian.Suffix
	}

	for k, v := range a.options.Replacements {
		run.Replacements[k] = v
	}

	return run, nil
}

// printOutputs lists every published artifact path, sorted, on the output
// writer. This is the machine-consumable success summary.
func (a *App) printOutputs(run *model.Context) {
	var paths []string
	for _, outputs := range run.Outputs {
		paths = append(paths, outputs...)
	}
	sort.Strings(paths)

	fmt.Fprintln(a.outW, "Outputs:")
	for _, path := range paths {
		fmt.Fprintln(a.outW, "-", path)
	}
}
