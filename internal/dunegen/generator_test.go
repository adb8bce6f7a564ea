package dunegen

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/dunegen/internal/manifest"
)

const (
	defaultPreprocess  = "  (preprocess (pps js_of_ocaml-ppx))"
	coveragePreprocess = "  (preprocess (pps js_of_ocaml-ppx bisect_ppx))"
	firstLine          = "; Files produced by cppo have file-line directives like:"
)

// newTestGenerator returns a Generator over the embedded manifest.
func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	m, err := manifest.LoadDefault(context.Background())
	require.NoError(t, err, "embedded manifest must decode")
	return New(m)
}

func collect(t *testing.T, g *Generator, flavor Flavor) []string {
	t.Helper()
	lines, err := g.Lines(flavor)
	require.NoError(t, err)
	return slices.Collect(lines)
}

func TestRender_Golden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flavor Flavor
		golden string
	}{
		{flavor: "coverage", golden: "coverage.golden"},
		{flavor: "release", golden: "default.golden"},
	}

	g := newTestGenerator(t)
	for _, tc := range tests {
		t.Run(string(tc.flavor), func(t *testing.T) {
			t.Parallel()

			want, err := os.ReadFile(filepath.Join("testdata", tc.golden))
			require.NoError(t, err)

			got, err := g.Render(tc.flavor)
			require.NoError(t, err)

			if diff := cmp.Diff(strings.Split(string(want), "\n"), strings.Split(got, "\n")); diff != "" {
				t.Errorf("output mismatch for flavor %q (-want +got):\n%s", tc.flavor, diff)
			}
		})
	}
}

func TestLines_PreprocessDependsOnFlavor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flavor Flavor
		want   string
	}{
		{flavor: "coverage", want: coveragePreprocess},
		{flavor: "release", want: defaultPreprocess},
		{flavor: "", want: defaultPreprocess},
		{flavor: "Coverage", want: defaultPreprocess},
		{flavor: "COVERAGE", want: defaultPreprocess},
		{flavor: "coverage2", want: defaultPreprocess},
		{flavor: "anything at all", want: defaultPreprocess},
	}

	g := newTestGenerator(t)
	for _, tc := range tests {
		t.Run("flavor="+string(tc.flavor), func(t *testing.T) {
			t.Parallel()

			lines := collect(t, g, tc.flavor)

			var preprocess []string
			for _, line := range lines {
				if strings.HasPrefix(line, "  (preprocess ") {
					preprocess = append(preprocess, line)
				}
			}
			require.Equal(t, []string{tc.want}, preprocess)
			require.Equal(t, firstLine, lines[0])
		})
	}
}

func TestLines_CountIsFlavorInvariant(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)
	want := len(collect(t, g, "release"))

	for _, flavor := range []Flavor{"coverage", "", "Coverage", "x"} {
		require.Len(t, collect(t, g, flavor), want, "flavor %q", flavor)
	}
}

func TestLines_Idempotent(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)
	for _, flavor := range []Flavor{"coverage", "release"} {
		first, err := g.Render(flavor)
		require.NoError(t, err)
		second, err := g.Render(flavor)
		require.NoError(t, err)
		require.Equal(t, first, second)

		lines, err := g.Lines(flavor)
		require.NoError(t, err)
		require.Equal(t, slices.Collect(lines), slices.Collect(lines), "ranging twice must yield the same lines")
	}
}

func TestLines_ArtifactRules(t *testing.T) {
	t.Parallel()

	lines := collect(t, newTestGenerator(t), "release")

	var targets []string
	for _, line := range lines {
		if strings.HasPrefix(line, "  (targets ") {
			targets = append(targets, line)
		}
	}
	require.Equal(t, []string{
		"  (targets CairoMock.mli)",
		"  (targets CairoMock.intermediate.ml)",
		"  (targets CairoMock.ml)",
		"  (targets JsOfOCairo.intermediate.ml)",
		"  (targets JsOfOCairo.ml)",
	}, targets)
	require.Equal(t, ")", lines[len(lines)-1])
}

func TestWriteTo(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)
	buf := &bytes.Buffer{}

	err := g.WriteTo(context.Background(), buf, Coverage)
	require.NoError(t, err)

	want, err := g.Render(Coverage)
	require.NoError(t, err)
	require.Equal(t, want, buf.String())
	require.True(t, strings.HasSuffix(buf.String(), ")\n"))
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriteTo_PropagatesWriteError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	err := newTestGenerator(t).WriteTo(context.Background(), failingWriter{err: boom}, "release")

	require.ErrorIs(t, err, boom)
}

func TestWriteTo_UnresolvableManifestWritesNothing(t *testing.T) {
	t.Parallel()

	// Passes the load-time check, but "nope" is not a bool once the flavor
	// is known.
	src := `
source_dir = "src"
library "x" {
  ppx "p" {
    enabled = flavor == "coverage" ? true : "nope"
  }
}
`
	m, err := manifest.Parse(context.Background(), []byte(src), "broken.hcl")
	require.NoError(t, err)
	g := New(m)

	buf := &bytes.Buffer{}
	err = g.WriteTo(context.Background(), buf, "release")
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be a bool")
	require.Empty(t, buf.String())

	err = g.WriteTo(context.Background(), buf, Coverage)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "  (preprocess (pps p))")
}

func TestFlavor_IsCoverage(t *testing.T) {
	t.Parallel()

	require.True(t, Flavor("coverage").IsCoverage())
	require.False(t, Flavor("Coverage").IsCoverage())
	require.False(t, Flavor("").IsCoverage())
}
