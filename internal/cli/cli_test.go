package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("repeated targets accumulate", func(t *testing.T) {
		out := &bytes.Buffer{}

		cfg, shouldExit, err := Parse([]string{"-t", "tarball", "-t", "srpm"}, out)

		require.NoError(t, err)
		assert.False(t, shouldExit)
		assert.Equal(t, []string{"tarball", "srpm"}, cfg.Targets)
		assert.False(t, cfg.All)
	})

	t.Run("all flag selects every kind", func(t *testing.T) {
		out := &bytes.Buffer{}

		cfg, shouldExit, err := Parse([]string{"-a"}, out)

		require.NoError(t, err)
		assert.False(t, shouldExit)
		assert.True(t, cfg.All)
		assert.Empty(t, cfg.Targets)
	})

	t.Run("targets and all are mutually exclusive", func(t *testing.T) {
		out := &bytes.Buffer{}

		_, _, err := Parse([]string{"-t", "tarball", "-a"}, out)

		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "mutually exclusive")
	})

	t.Run("no selection prints usage and exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}

		cfg, shouldExit, err := Parse(nil, out)

		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("help flag exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}

		cfg, shouldExit, err := Parse([]string{"-h"}, out)

		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
	})

	t.Run("debian options pass through", func(t *testing.T) {
		out := &bytes.Buffer{}

		cfg, _, err := Parse([]string{
			"-t", "debian",
			"--dsc-distro", "focal",
			"--dsc-suffix", "~ubuntu20.04",
			"--dsc-signed",
		}, out)

		require.NoError(t, err)
		assert.Equal(t, "focal", cfg.DscDistro)
		assert.Equal(t, "~ubuntu20.04", cfg.DscSuffix)
		assert.True(t, cfg.DscSigned)
	})

	t.Run("invalid log level is rejected", func(t *testing.T) {
		out := &bytes.Buffer{}

		_, _, err := Parse([]string{"-t", "tarball", "--log-level", "loud"}, out)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log-level")
	})

	t.Run("invalid log format is rejected", func(t *testing.T) {
		out := &bytes.Buffer{}

		_, _, err := Parse([]string{"-t", "tarball", "--log-format", "xml"}, out)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log-format")
	})

	t.Run("unknown flag is an exit error", func(t *testing.T) {
		out := &bytes.Buffer{}

		_, _, err := Parse([]string{"--bogus"}, out)

		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
	})
}
