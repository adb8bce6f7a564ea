package dune

import "strings"

// CppoAction runs cppo on the %{src} dep, tagging the OCaml version, and
// writes %{targets}.
func CppoAction() string {
	return "(run %{bin:cppo} -V OCAML:%{ocaml_version} %{src} -o %{targets})"
}

// DirectiveRewriteAction pipes the %{interm} dep through sed, rewriting the
// `# N "file"` line directives cppo leaves behind to `# N "dir/file"`, and
// captures stdout into %{targets}.
//
// Tools that resolve those directives relative to the build root (bisect_ppx
// in particular) otherwise fail to open the original source.
func DirectiveRewriteAction(dir string) string {
	script := `s|# \([0-9]\+\) "|# \1 "` + dir + `/|`
	return "(with-stdout-to %{targets} (run %{bin:sed} " + Quote(script) + " %{interm}))"
}

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Quote renders s as a dune quoted string.
func Quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}
