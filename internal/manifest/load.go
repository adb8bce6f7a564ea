package manifest

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/dunegen/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// DefaultFilename is the name the embedded manifest is parsed under.
const DefaultFilename = "rules.hcl"

//go:embed rules.hcl
var defaultSource []byte

// LoadDefault decodes the manifest compiled into the binary.
func LoadDefault(ctx context.Context) (*File, error) {
	return Parse(ctx, defaultSource, DefaultFilename)
}

// Parse parses and decodes a manifest from src. filename is only used in
// diagnostics.
func Parse(ctx context.Context, src []byte, filename string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding rule manifest.", "path", filename)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}

	var parsed fileSchema
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}

	file, diags := translate(&parsed, hclFile.Body.MissingItemRange())
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid manifest %s: %w", filename, diags)
	}
	file.Filename = filename

	logger.Debug("Successfully decoded rule manifest.",
		"path", filename,
		"artifacts_found", len(file.Artifacts),
		"plugins_found", len(file.Library.Plugins))
	return file, nil
}

// translate converts the decoded schema into the File model and checks the
// constraints gohcl cannot express.
func translate(s *fileSchema, missing hcl.Range) (*File, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	if s.Library == nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing library block",
			Detail:   "A manifest must declare exactly one \"library\" block.",
			Subject:  missing.Ptr(),
		})
		return nil, diags
	}

	file := &File{
		SourceDir: s.SourceDir,
		Preamble:  s.Preamble,
		Artifacts: make([]Artifact, 0, len(s.Artifacts)),
	}

	seen := make(map[string]struct{}, len(s.Artifacts))
	for _, a := range s.Artifacts {
		if _, dup := seen[a.Name]; dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate artifact",
				Detail:   fmt.Sprintf("Artifact %q is declared more than once.", a.Name),
				Subject:  missing.Ptr(),
			})
			continue
		}
		seen[a.Name] = struct{}{}

		if a.Implementation == nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing implementation block",
				Detail:   fmt.Sprintf("Artifact %q must declare an \"implementation\" block.", a.Name),
				Subject:  missing.Ptr(),
			})
			continue
		}

		artifact := Artifact{
			Name:           a.Name,
			Implementation: Unit{Deps: a.Implementation.Deps},
		}
		if a.Interface != nil {
			artifact.Interface = &Unit{Deps: a.Interface.Deps}
		}
		file.Artifacts = append(file.Artifacts, artifact)
	}

	lib := Library{
		Name:        s.Library.Name,
		PublicName:  s.Library.PublicName,
		Description: s.Library.Description,
		Libraries:   s.Library.Libraries,
		Wrapped:     s.Library.Wrapped,
	}
	for _, p := range s.Library.Plugins {
		plugin := Plugin{Name: p.Name, Enabled: p.Enabled}
		diags = append(diags, plugin.check()...)
		lib.Plugins = append(lib.Plugins, plugin)
	}
	file.Library = lib

	return file, diags
}

// check evaluates Enabled against an unknown flavor so that references to
// undefined variables or non-bool results are reported at load time rather
// than when a particular flavor is rendered.
func (p Plugin) check() hcl.Diagnostics {
	if p.Enabled == nil {
		return nil
	}
	probe := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			FlavorVariable: cty.UnknownVal(cty.String),
		},
	}
	val, diags := p.Enabled.Value(probe)
	if diags.HasErrors() {
		return diags
	}
	if _, err := convert.Convert(val, cty.Bool); err != nil {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid \"enabled\" value",
			Detail:   fmt.Sprintf("The enabled expression of ppx %q must be a bool: %s.", p.Name, err),
			Subject:  p.Enabled.Range().Ptr(),
		}}
	}
	return nil
}
