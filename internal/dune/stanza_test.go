package dune

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestComment_Lines(t *testing.T) {
	t.Parallel()

	got := slices.Collect(Comment{"first", "", "    indented"}.Lines())

	want := []string{"; first", ";", ";     indented"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("comment lines mismatch (-want +got):\n%s", diff)
	}
}

func TestRule_Lines(t *testing.T) {
	t.Parallel()

	rule := Rule{
		Targets: []string{"CairoMock.mli"},
		Deps:    []Dep{{Name: "src", Path: "CairoMock.cppo.mli"}, {Path: "S.incl.mli"}},
		Action:  CppoAction(),
	}

	got := slices.Collect(rule.Lines())

	want := []string{
		"(rule",
		"  (targets CairoMock.mli)",
		"  (deps (:src CairoMock.cppo.mli) S.incl.mli)",
		"  (action (run %{bin:cppo} -V OCAML:%{ocaml_version} %{src} -o %{targets}))",
		")",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rule lines mismatch (-want +got):\n%s", diff)
	}
}

func TestLibrary_Lines(t *testing.T) {
	t.Parallel()

	unwrapped := false
	tests := []struct {
		name string
		lib  Library
		want []string
	}{
		{
			name: "minimal",
			lib:  Library{Name: "foo"},
			want: []string{"(library", "  (name foo)", ")"},
		},
		{
			name: "all fields",
			lib: Library{
				Name:       "JsOfOCairo",
				PublicName: "JsOfOCairo",
				Preprocess: []string{"js_of_ocaml-ppx", "bisect_ppx"},
				Libraries:  []string{"js_of_ocaml"},
				Wrapped:    &unwrapped,
			},
			want: []string{
				"(library",
				"  (name JsOfOCairo)",
				"  (public_name JsOfOCairo)",
				"  (preprocess (pps js_of_ocaml-ppx bisect_ppx))",
				"  (libraries js_of_ocaml)",
				"  (wrapped false)",
				")",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := slices.Collect(tc.lib.Lines())
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("library lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDirectiveRewriteAction(t *testing.T) {
	t.Parallel()

	got := DirectiveRewriteAction("src")

	require.Equal(t,
		`(with-stdout-to %{targets} (run %{bin:sed} "s|# \\([0-9]\\+\\) \"|# \\1 \"src/|" %{interm}))`,
		got)
}

func TestQuote(t *testing.T) {
	t.Parallel()

	require.Equal(t, `"plain"`, Quote("plain"))
	require.Equal(t, `"a \"b\" \\c"`, Quote(`a "b" \c`))
}

func TestConcat_StopsEarly(t *testing.T) {
	t.Parallel()

	var got []string
	for line := range Concat(Comment{"a", "b"}, Blank{}, Comment{"c"}) {
		got = append(got, line)
		if len(got) == 3 {
			break
		}
	}

	require.Equal(t, []string{"; a", "; b", ""}, got)
}
