package models

// RevealEntry is the outcome for one identifier of the enrolling party.
type RevealEntry struct {
	// Index is the position of the identifier in the private bundle.
	Index      int
	Identifier string
	Mutual     bool
}

// RevealReport is the decrypted outcome of a result bundle.
type RevealReport struct {
	ResultID string
	SourceID string
	Profile  string
	Entries  []RevealEntry

	// Enrollment is the journal record of the private bundle, nil when the
	// journal is off or never saw it.
	Enrollment *Enrollment
}

// Bits returns the positional booleans of the report.
func (r RevealReport) Bits() []bool {
	bits := make([]bool, len(r.Entries))
	for i, e := range r.Entries {
		bits[i] = e.Mutual
	}
	return bits
}

// Mutual returns the identifiers present on both lists, in private bundle
// order.
func (r RevealReport) Mutual() []string {
	var out []string
	for _, e := range r.Entries {
		if e.Mutual {
			out = append(out, e.Identifier)
		}
	}
	return out
}
