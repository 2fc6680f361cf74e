package srpm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/distforge/internal/model"
	"github.com/vk/distforge/internal/registry"
	"github.com/vk/distforge/modules/tarball"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	r := registry.New()
	(&Module{}).Register(r)

	def, ok := r.Lookup(ID)
	require.True(t, ok)
	assert.Equal(t, []string{tarball.ID}, def.Deps)
	assert.Equal(t, []string{"rpmbuild"}, def.Tools)
	assert.NotNil(t, def.Build)
}

func TestBuild_MissingTarball(t *testing.T) {
	t.Parallel()

	run := model.NewContext()
	run.RootDir = t.TempDir()

	_, err := Build(context.Background(), run, t.TempDir())

	assert.ErrorContains(t, err, "no tarball artifact recorded")
}
