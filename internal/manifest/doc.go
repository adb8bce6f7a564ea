// Package manifest loads the HCL description of the dune rules dunegen
// renders: the preamble comment, the cppo artifacts and the library stanza.
//
// A manifest is decoded once; the parts that depend on the flavor (currently
// the `enabled` expression of a `ppx` block) are kept as hcl.Expression and
// evaluated per call against an EvalContext holding the `flavor` variable.
// The default manifest is compiled into the binary.
package manifest
