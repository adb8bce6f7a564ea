// Package dune models the handful of dune stanzas the generator emits
// (comments, rules and a library) and renders them to text lines.
//
// Rendering is lazy: every Stanza exposes its lines as an iter.Seq so the
// caller decides whether to stream them to a writer or collect them.
package dune
