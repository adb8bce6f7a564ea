package dunegen

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/vk/dunegen/internal/ctxlog"
	"github.com/vk/dunegen/internal/dune"
	"github.com/vk/dunegen/internal/manifest"
)

// Generator turns a manifest into dune text.
type Generator struct {
	manifest *manifest.File
}

// New returns a Generator for the given manifest.
func New(m *manifest.File) *Generator {
	return &Generator{manifest: m}
}

// Stanzas resolves the manifest for flavor and returns the stanzas in output
// order.
func (g *Generator) Stanzas(flavor Flavor) ([]dune.Stanza, error) {
	m := g.manifest

	pps, err := m.Library.Preprocess(string(flavor))
	if err != nil {
		return nil, err
	}

	stanzas := []dune.Stanza{dune.Comment(m.Preamble)}
	for _, a := range m.Artifacts {
		stanzas = append(stanzas, dune.Blank{})
		if a.Interface != nil {
			stanzas = append(stanzas, interfaceRule(a), dune.Blank{})
		}
		stanzas = append(stanzas, intermediateRule(a), rewriteRule(a, m.SourceDir))
	}
	stanzas = append(stanzas,
		dune.Blank{},
		dune.Comment(m.Library.Description),
		dune.Library{
			Name:       m.Library.Name,
			PublicName: m.Library.PublicName,
			Preprocess: pps,
			Libraries:  m.Library.Libraries,
			Wrapped:    m.Library.Wrapped,
		},
	)
	return stanzas, nil
}

// Lines returns the lines of the dune file for flavor. The sequence is lazy
// and may be ranged over any number of times; each pass renders afresh.
func (g *Generator) Lines(flavor Flavor) (iter.Seq[string], error) {
	stanzas, err := g.Stanzas(flavor)
	if err != nil {
		return nil, err
	}
	return dune.Concat(stanzas...), nil
}

// Render returns the whole dune file for flavor, every line terminated by
// a newline.
func (g *Generator) Render(flavor Flavor) (string, error) {
	lines, err := g.Lines(flavor)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// WriteTo writes the dune file for flavor to w, one newline-terminated line
// at a time. Nothing is written if the manifest cannot be resolved for the
// flavor.
func (g *Generator) WriteTo(ctx context.Context, w io.Writer, flavor Flavor) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Generating dune rules.", "flavor", string(flavor), "coverage", flavor.IsCoverage())

	lines, err := g.Lines(flavor)
	if err != nil {
		return fmt.Errorf("failed to resolve manifest %s: %w", g.manifest.Filename, err)
	}

	bw := bufio.NewWriter(w)
	count := 0
	for line := range lines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write line %d: %w", count+1, err)
		}
		count++
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	logger.Debug("Dune rules written.", "lines", count)
	return nil
}

// interfaceRule runs cppo over <name>.cppo.mli.
func interfaceRule(a manifest.Artifact) dune.Rule {
	return dune.Rule{
		Targets: []string{a.Name + ".mli"},
		Deps:    cppoDeps(a.Name+".cppo.mli", a.Interface.Deps),
		Action:  dune.CppoAction(),
	}
}

// intermediateRule runs cppo over <name>.cppo.ml. Its output still carries
// directives relative to the source directory; see rewriteRule.
func intermediateRule(a manifest.Artifact) dune.Rule {
	return dune.Rule{
		Targets: []string{a.Name + ".intermediate.ml"},
		Deps:    cppoDeps(a.Name+".cppo.ml", a.Implementation.Deps),
		Action:  dune.CppoAction(),
	}
}

func rewriteRule(a manifest.Artifact, sourceDir string) dune.Rule {
	return dune.Rule{
		Targets: []string{a.Name + ".ml"},
		Deps:    []dune.Dep{{Name: "interm", Path: a.Name + ".intermediate.ml"}},
		Action:  dune.DirectiveRewriteAction(sourceDir),
	}
}

func cppoDeps(src string, includes []string) []dune.Dep {
	deps := make([]dune.Dep, 0, len(includes)+1)
	deps = append(deps, dune.Dep{Name: "src", Path: src})
	for _, inc := range includes {
		deps = append(deps, dune.Dep{Path: inc})
	}
	return deps
}
