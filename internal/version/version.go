// Package version resolves the release version of the source tree from
// version-control metadata. The VERSION_OVERRIDE environment variable
// bypasses git entirely for hermetic or offline builds.
package version

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// OverrideEnv names the environment variable that supplies a raw version
// string in place of `git describe` output.
const OverrideEnv = "VERSION_OVERRIDE"

// Info holds the three components of a resolved version. All fields are
// derived once at startup and never mutated afterwards.
type Info struct {
	// Tag is the base tag name with any leading "v" stripped.
	Tag string
	// CommitsSince is the number of commits since Tag (0 when building a tag).
	CommitsSince int
	// Commit is the short commit ID of HEAD.
	Commit string
}

// Suffix returns the version suffix encoding the commit count and commit ID.
// It is empty when the build is exactly on a tagged commit.
func (i Info) Suffix() string {
	if i.CommitsSince == 0 {
		return ""
	}
	suffix := fmt.Sprintf(".r%d", i.CommitsSince)
	if i.Commit != "" {
		suffix += ".git" + i.Commit
	}
	return suffix
}

// Full returns the complete version string: the base tag plus the suffix.
func (i Info) Full() string {
	return i.Tag + i.Suffix()
}

// Resolve determines the version of the source tree rooted at rootDir. It
// prefers VERSION_OVERRIDE and otherwise runs `git describe --long`.
func Resolve(ctx context.Context, rootDir string) (Info, error) {
	raw := os.Getenv(OverrideEnv)
	if raw == "" {
		out, err := exec.CommandContext(ctx, "git", "-C", rootDir, "describe", "--long").Output()
		if err != nil {
			return Info{}, fmt.Errorf("git describe failed in %s: %w", rootDir, err)
		}
		raw = strings.TrimSpace(string(out))
	}
	return Parse(raw)
}

// Parse splits a raw describe-style string ("v1.2.3-4-gabc1234") into its
// components. A plain tag with no dashes is valid and yields a zero commit
// count, which is the shape VERSION_OVERRIDE typically takes.
func Parse(raw string) (Info, error) {
	if raw == "" {
		return Info{}, fmt.Errorf("empty version string")
	}

	components := strings.Split(raw, "-")
	info := Info{Tag: strings.TrimPrefix(components[0], "v")}

	if len(components) > 1 {
		count, err := strconv.Atoi(components[1])
		if err != nil {
			return Info{}, fmt.Errorf("invalid commit count in version %q: %w", raw, err)
		}
		info.CommitsSince = count
	}
	if len(components) > 2 {
		info.Commit = strings.TrimPrefix(components[2], "g")
	}

	return info, nil
}

// GitToplevel returns the root of the git working tree containing dir.
func GitToplevel(ctx context.Context, dir string) (string, error) {
	out, err := exec.CommandContext(ctx, "git", "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("failed to locate git toplevel from %s: %w", dir, err)
	}
	return strings.TrimSpace(string(out)), nil
}
