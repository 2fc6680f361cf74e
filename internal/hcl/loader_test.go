package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOptions(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dist.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("full options file", func(t *testing.T) {
		path := writeOptions(t, `
package {
  name   = "ipmi-fan-control"
  output = "dist/output"
}

debian {
  distro = "focal"
  suffix = "~ubuntu20.04"
  signed = true
}

replacements {
  maintainer = "Jane Doe <jane@example.com>"
  license    = "GPL-3.0"
}
`)

		model, err := NewLoader().Load(ctx, path)

		require.NoError(t, err)
		assert.Equal(t, "ipmi-fan-control", model.PackageName)
		assert.Equal(t, "dist/output", model.OutputDir)
		assert.Equal(t, "focal", model.Debian.Distro)
		assert.Equal(t, "~ubuntu20.04", model.Debian.Suffix)
		assert.True(t, model.Debian.Signed)
		assert.Equal(t, map[string]string{
			"@MAINTAINER@": "Jane Doe <jane@example.com>",
			"@LICENSE@":    "GPL-3.0",
		}, model.Replacements)
	})

	t.Run("empty file yields zero model", func(t *testing.T) {
		path := writeOptions(t, "")

		model, err := NewLoader().Load(ctx, path)

		require.NoError(t, err)
		assert.Empty(t, model.PackageName)
		assert.Empty(t, model.Debian.Distro)
		assert.False(t, model.Debian.Signed)
		assert.Empty(t, model.Replacements)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := NewLoader().Load(ctx, filepath.Join(t.TempDir(), "absent.hcl"))

		assert.ErrorContains(t, err, "failed to parse options file")
	})

	t.Run("syntax error is an error", func(t *testing.T) {
		path := writeOptions(t, `package { name = `)

		_, err := NewLoader().Load(ctx, path)

		assert.ErrorContains(t, err, "failed to parse options file")
	})

	t.Run("non-string replacement is rejected", func(t *testing.T) {
		path := writeOptions(t, `
replacements {
  count = 42
}
`)

		_, err := NewLoader().Load(ctx, path)

		require.Error(t, err)
		assert.ErrorContains(t, err, "invalid replacements block")
		assert.ErrorContains(t, err, "must be a string")
	})

	t.Run("unknown block is rejected", func(t *testing.T) {
		path := writeOptions(t, `
mystery {
  value = "x"
}
`)

		_, err := NewLoader().Load(ctx, path)

		assert.ErrorContains(t, err, "failed to decode options file")
	})
}
