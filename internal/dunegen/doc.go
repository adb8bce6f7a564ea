// Package dunegen renders the dune rule file of the JsOfOCairo package from
// a rule manifest and a flavor.
//
// The output is fully determined by the manifest and the flavor: the same
// inputs always produce byte-identical text, and the number of lines never
// depends on the flavor.
package dunegen
