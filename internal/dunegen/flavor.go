package dunegen

// Flavor selects a variant of the generated rules. It is opaque: any value
// other than Coverage gets the default rules.
type Flavor string

// Coverage instruments the library with bisect_ppx.
const Coverage Flavor = "coverage"

// IsCoverage reports whether f is exactly Coverage. The comparison is case
// sensitive.
func (f Flavor) IsCoverage() bool {
	return f == Coverage
}
