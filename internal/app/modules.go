package app

import (
	"github.com/vk/distforge/internal/registry"
	"github.com/vk/distforge/modules/debian"
	"github.com/vk/distforge/modules/pkgbuild"
	"github.com/vk/distforge/modules/srpm"
	"github.com/vk/distforge/modules/tarball"
)

// coreModules is the definitive list of all unit modules that are compiled
// into the distforge binary.
var coreModules = []registry.Module{
	&tarball.Module{},
	&srpm.Module{},
	&pkgbuild.Module{},
	&debian.Module{},
}
