package crypto

import (
	"fmt"

	"github.com/MKhiriev/go-mutual-friends/internal/identifier"
)

// GroupSize is the number of slots one identifier occupies: one hexadecimal
// digit per slot.
const GroupSize = identifier.Nibbles

// filler marks an unused group in a local block. No hexadecimal digit equals
// it, so an unused group never compares equal.
const filler = 16

// Layout describes how identifiers are packed into plaintext slots.
// A ciphertext holds Groups consecutive groups of GroupSize slots; groups are
// aligned so that none crosses the boundary between the two BGV rows.
type Layout struct {
	Slots  int
	Groups int
}

func newLayout(slots int) (Layout, error) {
	if slots%(2*GroupSize) != 0 {
		return Layout{}, fmt.Errorf("slot count %d is not a multiple of %d", slots, 2*GroupSize)
	}
	return Layout{Slots: slots, Groups: slots / GroupSize}, nil
}

// Replicate writes the digits of id into every group.
func (l Layout) Replicate(id identifier.ID) []uint64 {
	digits := id.Nibbles()
	values := make([]uint64, l.Slots)
	for g := 0; g < l.Groups; g++ {
		base := g * GroupSize
		for k, d := range digits {
			values[base+k] = uint64(d)
		}
	}
	return values
}

// Pack writes ids into consecutive groups, one identifier per group. Groups
// past len(ids) carry the filler value in their lead slot.
func (l Layout) Pack(ids []identifier.ID) ([]uint64, error) {
	if len(ids) > l.Groups {
		return nil, fmt.Errorf("%w: block of %d identifiers, layout holds %d", ErrCapacityExceeded, len(ids), l.Groups)
	}

	values := make([]uint64, l.Slots)
	for g := 0; g < l.Groups; g++ {
		base := g * GroupSize
		if g >= len(ids) {
			values[base] = filler
			continue
		}
		for k, d := range ids[g].Nibbles() {
			values[base+k] = uint64(d)
		}
	}
	return values, nil
}

// LeadValues returns a slot vector holding next() at every group lead slot
// and zero everywhere else.
func (l Layout) LeadValues(next func() uint64) []uint64 {
	values := make([]uint64, l.Slots)
	for g := 0; g < l.Groups; g++ {
		values[g*GroupSize] = next()
	}
	return values
}

// AnyLeadZero reports whether any group lead slot holds zero.
func (l Layout) AnyLeadZero(values []uint64) bool {
	for g := 0; g < l.Groups && g*GroupSize < len(values); g++ {
		if values[g*GroupSize] == 0 {
			return true
		}
	}
	return false
}

// Group extracts the identifier stored in group g. It fails if any slot of
// the group does not hold a hexadecimal digit.
func (l Layout) Group(values []uint64, g int) (identifier.ID, error) {
	if g < 0 || g >= l.Groups || len(values) < l.Slots {
		return identifier.ID{}, fmt.Errorf("group %d out of range", g)
	}

	var digits [identifier.Nibbles]uint8
	base := g * GroupSize
	for k := range digits {
		v := values[base+k]
		if v > 0xf {
			return identifier.ID{}, fmt.Errorf("%w: slot %d holds %d", ErrMalformedCiphertext, base+k, v)
		}
		digits[k] = uint8(v)
	}
	return identifier.FromNibbles(digits), nil
}
