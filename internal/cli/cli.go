package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/distforge/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList accumulates repeated flag values.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("distforge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
DistForge - OS-specific source package builder.

Usage:
  distforge [options] -t TARGET [-t TARGET ...]
  distforge [options] -a

The --dsc-distro and --dsc-suffix options only matter when building Debian
source packages meant for upload to eg. launchpad.net, where one repository
serves multiple distro versions. --dsc-signed additionally signs the .dsc and
.changes files and requires DEBFULLNAME and DEBEMAIL to match the signing GPG
key.

Options:
`)
		flagSet.PrintDefaults()
	}

	var targets stringList
	flagSet.Var(&targets, "target", "Unit kind to build. May be repeated.")
	flagSet.Var(&targets, "t", "Unit kind to build (shorthand).")
	allFlag := flagSet.Bool("all", false, "Build all known unit kinds.")
	aFlag := flagSet.Bool("a", false, "Build all known unit kinds (shorthand).")
	configFlag := flagSet.String("config", "", "Path to an optional dist.hcl options file.")
	rootFlag := flagSet.String("root", "", "Source tree root. Defaults to the git toplevel of the working directory.")
	outputFlag := flagSet.String("output", "", "Output root directory. Relative paths resolve against the source tree root.")
	dscDistroFlag := flagSet.String("dsc-distro", "", "Target distro for dsc package upload.")
	dscSuffixFlag := flagSet.String("dsc-suffix", "", "Version suffix for dsc package upload.")
	dscSignedFlag := flagSet.Bool("dsc-signed", false, "Create signed dsc/changes files.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if len(targets) == 0 && !*allFlag && !*aFlag {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		Targets:    targets,
		All:        *allFlag || *aFlag,
		ConfigPath: *configFlag,
		RootDir:    *rootFlag,
		OutputDir:  *outputFlag,
		DscDistro:  *dscDistroFlag,
		DscSuffix:  *dscSuffixFlag,
		DscSigned:  *dscSignedFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
