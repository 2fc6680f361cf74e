package config

// DebianModel holds the debian-unit defaults read from the options file.
// Command-line flags override every field.
type DebianModel struct {
	Distro string
	Suffix string
	Signed bool
}

// Model is the format-agnostic representation of the optional options file.
// The zero value is a valid model meaning "all defaults".
type Model struct {
	// PackageName names the project in artifact file names and packaging
	// metadata. Defaults to the base name of the source tree root.
	PackageName string
	// OutputDir is the output root; relative paths resolve against the
	// source tree root.
	OutputDir string

	Debian DebianModel

	// Replacements is a user-supplied placeholder table merged into every
	// template substitution.
	Replacements map[string]string
}
