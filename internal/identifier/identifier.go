// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package identifier converts opaque external user identifiers of the form
// usr_xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx to and from a fixed-width
// 128-bit value.
//
// Only the exact canonical grouping with lowercase hexadecimal digits is
// accepted, which makes [ID.String] the exact inverse of [Parse].
package identifier

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	// Prefix is the fixed prefix of every external identifier.
	Prefix = "usr_"

	// Nibbles is the number of hexadecimal digits in an identifier.
	Nibbles = 32

	payloadLen = 36 // 32 hex digits + 4 dashes
)

// dashAt lists payload offsets that must hold '-'.
var dashAt = [...]int{8, 13, 18, 23}

// ID is the 128-bit canonical form of an external identifier.
// Hi holds the most significant 64 bits.
type ID struct {
	Hi uint64
	Lo uint64
}

// Parse converts an external identifier string into an [ID].
// It returns an error wrapping [ErrInvalidFormat] when s does not match
// usr_ followed by 8-4-4-4-12 lowercase hexadecimal groups.
func Parse(s string) (ID, error) {
	payload, ok := strings.CutPrefix(s, Prefix)
	if !ok {
		return ID{}, fmt.Errorf("%w: missing %q prefix in %q", ErrInvalidFormat, Prefix, s)
	}
	if len(payload) != payloadLen {
		return ID{}, fmt.Errorf("%w: %q has %d characters after prefix, want %d", ErrInvalidFormat, s, len(payload), payloadLen)
	}

	var digits [Nibbles]uint8
	n, d := 0, 0
	for i := 0; i < len(payload); i++ {
		c := payload[i]
		if d < len(dashAt) && i == dashAt[d] {
			if c != '-' {
				return ID{}, fmt.Errorf("%w: expected '-' at position %d in %q", ErrInvalidFormat, len(Prefix)+i, s)
			}
			d++
			continue
		}

		v, ok := hexValue(c)
		if !ok {
			return ID{}, fmt.Errorf("%w: invalid character %q at position %d in %q", ErrInvalidFormat, c, len(Prefix)+i, s)
		}
		digits[n] = v
		n++
	}

	return FromNibbles(digits), nil
}

// MustParse is like [Parse] but panics on error. Intended for tests and
// package-level fixtures only.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseAll converts every string in ids, preserving order. It stops at the
// first malformed entry and reports its index.
func ParseAll(ids []string) ([]ID, error) {
	out := make([]ID, len(ids))
	for i, s := range ids {
		id, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("identifier #%d: %w", i, err)
		}
		out[i] = id
	}
	return out, nil
}

// String returns the canonical external form of id.
func (id ID) String() string {
	hex := fmt.Sprintf("%016x%016x", id.Hi, id.Lo)
	return Prefix + hex[0:8] + "-" + hex[8:12] + "-" + hex[12:16] + "-" + hex[16:20] + "-" + hex[20:32]
}

// Nibbles returns the 32 hexadecimal digits of id, most significant first.
func (id ID) Nibbles() [Nibbles]uint8 {
	var out [Nibbles]uint8
	for i := 0; i < 16; i++ {
		out[i] = uint8(id.Hi>>(60-4*i)) & 0xf
		out[16+i] = uint8(id.Lo>>(60-4*i)) & 0xf
	}
	return out
}

// FromNibbles is the inverse of [ID.Nibbles]. Only the low four bits of each
// digit are used.
func FromNibbles(digits [Nibbles]uint8) ID {
	var id ID
	for i := 0; i < 16; i++ {
		id.Hi = id.Hi<<4 | uint64(digits[i]&0xf)
		id.Lo = id.Lo<<4 | uint64(digits[16+i]&0xf)
	}
	return id
}

// MarshalBinary encodes id as 16 big-endian bytes.
func (id ID) MarshalBinary() ([]byte, error) {
	b := id.Bytes()
	return b[:], nil
}

// Bytes returns the 16-byte big-endian form of id.
func (id ID) Bytes() [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], id.Hi)
	binary.BigEndian.PutUint64(b[8:], id.Lo)
	return b
}

// UnmarshalBinary decodes 16 big-endian bytes into id.
func (id *ID) UnmarshalBinary(b []byte) error {
	if len(b) != 16 {
		return fmt.Errorf("%w: binary identifier must be 16 bytes, got %d", ErrInvalidFormat, len(b))
	}
	id.Hi = binary.BigEndian.Uint64(b[:8])
	id.Lo = binary.BigEndian.Uint64(b[8:])
	return nil
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	default:
		return 0, false
	}
}
