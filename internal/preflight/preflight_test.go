package preflight

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/distforge/internal/testutil"
)

// fakeLookPath returns a LookPath implementation that only finds the given
// tool names.
func fakeLookPath(present ...string) func(string) (string, error) {
	known := make(map[string]struct{}, len(present))
	for _, tool := range present {
		known[tool] = struct{}{}
	}
	return func(name string) (string, error) {
		if _, ok := known[name]; ok {
			return "/usr/bin/" + name, nil
		}
		return "", fmt.Errorf("executable file not found in $PATH: %s", name)
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("passes when every required tool is present", func(t *testing.T) {
		r := testutil.NewRegistry(t,
			testutil.NoopWithTools("tarball", nil, "git", "tar"),
			testutil.NoopWithTools("srpm", []string{"tarball"}, "rpmbuild"),
		)
		c := &Checker{LookPath: fakeLookPath("git", "tar", "rpmbuild")}

		err := c.Check(ctx, r, []string{"tarball", "srpm"})

		assert.NoError(t, err)
	})

	t.Run("reports the complete sorted missing set", func(t *testing.T) {
		// One unit needs {a, b}, another needs {b, c}; only "a" is present.
		r := testutil.NewRegistry(t,
			testutil.NoopWithTools("first", nil, "a", "b"),
			testutil.NoopWithTools("second", nil, "b", "c"),
		)
		c := &Checker{LookPath: fakeLookPath("a")}

		err := c.Check(ctx, r, []string{"first", "second"})

		require.Error(t, err)
		assert.ErrorContains(t, err, "the following tools must be installed: b, c")
	})

	t.Run("union deduplicates shared tools", func(t *testing.T) {
		var probed []string
		r := testutil.NewRegistry(t,
			testutil.NoopWithTools("first", nil, "tar"),
			testutil.NoopWithTools("second", nil, "tar"),
		)
		c := &Checker{LookPath: func(name string) (string, error) {
			probed = append(probed, name)
			return "/usr/bin/" + name, nil
		}}

		err := c.Check(ctx, r, []string{"first", "second"})

		require.NoError(t, err)
		assert.Equal(t, []string{"tar"}, probed)
	})

	t.Run("units with no declared tools need no probing", func(t *testing.T) {
		r := testutil.NewRegistry(t, testutil.Noop("pkgbuild", "tarball"), testutil.Noop("tarball"))
		c := &Checker{LookPath: func(name string) (string, error) {
			t.Fatalf("unexpected LookPath call for %q", name)
			return "", nil
		}}

		assert.NoError(t, c.Check(ctx, r, []string{"tarball", "pkgbuild"}))
	})

	t.Run("unknown kind in order is rejected", func(t *testing.T) {
		r := testutil.NewRegistry(t, testutil.Noop("tarball"))
		c := &Checker{LookPath: fakeLookPath()}

		err := c.Check(ctx, r, []string{"tarball", "ghost"})

		assert.ErrorContains(t, err, "unknown unit kind 'ghost'")
	})
}
