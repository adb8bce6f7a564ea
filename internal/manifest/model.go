package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// FlavorVariable is the name under which the flavor is exposed to manifest
// expressions.
const FlavorVariable = "flavor"

// File is a decoded manifest.
type File struct {
	// Filename is the name diagnostics refer to.
	Filename string
	// SourceDir is the directory the generated dune file lives in, relative
	// to the build root. cppo line directives are rewritten to point into it.
	SourceDir string
	Preamble  []string
	Artifacts []Artifact
	Library   Library
}

// Artifact is a module produced from cppo templates.
type Artifact struct {
	Name string
	// Interface is nil when the module has no cppo-generated .mli.
	Interface      *Unit
	Implementation Unit
}

// Unit holds the files a single cppo invocation includes besides its source.
type Unit struct {
	Deps []string
}

// Library describes the library stanza closing the file.
type Library struct {
	Name        string
	PublicName  string
	Description []string
	Plugins     []Plugin
	Libraries   []string
	Wrapped     *bool
}

// Plugin is a ppx rewriter, included when Enabled evaluates to true.
type Plugin struct {
	Name    string
	Enabled hcl.Expression
}

// EvalContext returns the context manifest expressions are evaluated in.
func EvalContext(flavor string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			FlavorVariable: cty.StringVal(flavor),
		},
	}
}

// Preprocess returns the names of the plugins enabled for flavor, in
// declaration order.
func (l Library) Preprocess(flavor string) ([]string, error) {
	evalCtx := EvalContext(flavor)
	var names []string
	for _, p := range l.Plugins {
		on, diags := p.enabled(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate ppx %q for flavor %q: %w", p.Name, flavor, diags)
		}
		if on {
			names = append(names, p.Name)
		}
	}
	return names, nil
}

// enabled evaluates the Enabled expression. A missing or null expression
// means the plugin is always on.
func (p Plugin) enabled(evalCtx *hcl.EvalContext) (bool, hcl.Diagnostics) {
	if p.Enabled == nil {
		return true, nil
	}
	val, diags := p.Enabled.Value(evalCtx)
	if diags.HasErrors() {
		return false, diags
	}
	if val.IsNull() {
		return true, nil
	}
	val, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid \"enabled\" value",
			Detail:   fmt.Sprintf("The enabled expression of ppx %q must be a bool: %s.", p.Name, err),
			Subject:  p.Enabled.Range().Ptr(),
		}}
	}
	if !val.IsKnown() {
		return false, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown \"enabled\" value",
			Detail:   fmt.Sprintf("The enabled expression of ppx %q cannot be determined.", p.Name),
			Subject:  p.Enabled.Range().Ptr(),
		}}
	}
	return val.True(), nil
}
