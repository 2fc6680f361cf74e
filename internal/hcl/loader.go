package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/distforge/internal/config"
	"github.com/vk/distforge/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL options loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is the struct used to decode the top-level blocks of an options file.
type fileRoot struct {
	Package      *packageBlock      `hcl:"package,block"`
	Debian       *debianBlock       `hcl:"debian,block"`
	Replacements *replacementsBlock `hcl:"replacements,block"`
}

// packageBlock carries project-wide packaging options.
type packageBlock struct {
	Name   string `hcl:"name,optional"`
	Output string `hcl:"output,optional"`
}

// debianBlock carries defaults consumed only by the debian unit.
type debianBlock struct {
	Distro string `hcl:"distro,optional"`
	Suffix string `hcl:"suffix,optional"`
	Signed bool   `hcl:"signed,optional"`
}

// replacementsBlock is decoded attribute-by-attribute so users can define
// arbitrary placeholder markers.
type replacementsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Load parses and decodes the options file at path into the unified model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL options loader started.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse options file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode options file %s: %w", path, diags)
	}

	model := &config.Model{Replacements: make(map[string]string)}
	if root.Package != nil {
		model.PackageName = root.Package.Name
		model.OutputDir = root.Package.Output
	}
	if root.Debian != nil {
		model.Debian = config.DebianModel{
			Distro: root.Debian.Distro,
			Suffix: root.Debian.Suffix,
			Signed: root.Debian.Signed,
		}
	}
	if root.Replacements != nil {
		if err := decodeReplacements(root.Replacements.Body, model.Replacements); err != nil {
			return nil, fmt.Errorf("invalid replacements block in %s: %w", path, err)
		}
	}

	logger.Debug("Options file loaded.", "replacement_count", len(model.Replacements))
	return model, nil
}

// decodeReplacements evaluates every attribute of the replacements block into
// a string value. Only literal strings are accepted. The attribute name maps
// to the template marker: `maintainer = "..."` substitutes "@MAINTAINER@".
func decodeReplacements(body hcl.Body, out map[string]string) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return diags
		}
		if val.Type() != cty.String {
			return fmt.Errorf("replacement '%s' must be a string, got %s", name, val.Type().FriendlyName())
		}
		out["@"+strings.ToUpper(name)+"@"] = val.AsString()
	}
	return nil
}
