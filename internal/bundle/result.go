package bundle

import (
	"fmt"

	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
	"github.com/google/uuid"
)

// Result holds one compressed encrypted boolean per entry of the public
// bundle it was computed against, in the same order. SourceID is the ID of
// that public bundle.
type Result struct {
	ID       uuid.UUID
	SourceID uuid.UUID
	Profile  string
	Bits     []crypto.CompressedCiphertext
}

type rawResult struct {
	ID       []byte   `cbor:"1,keyasint"`
	SourceID []byte   `cbor:"2,keyasint"`
	Profile  string   `cbor:"3,keyasint"`
	Bits     [][]byte `cbor:"4,keyasint"`
}

// EncodeResult serializes r.
func (c *Codec) EncodeResult(r *Result) ([]byte, error) {
	bits := make([][]byte, len(r.Bits))
	for i, b := range r.Bits {
		bits[i] = b
	}
	return c.seal(KindResult, rawResult{
		ID:       r.ID[:],
		SourceID: r.SourceID[:],
		Profile:  r.Profile,
		Bits:     bits,
	})
}

// DecodeResult parses a result bundle. Bits stay compressed.
func (c *Codec) DecodeResult(data []byte) (*Result, error) {
	var raw rawResult
	if err := c.open(data, KindResult, &raw); err != nil {
		return nil, err
	}

	id, err := uuid.FromBytes(raw.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: bundle id: %w", ErrDeserialization, err)
	}
	source, err := uuid.FromBytes(raw.SourceID)
	if err != nil {
		return nil, fmt.Errorf("%w: source bundle id: %w", ErrDeserialization, err)
	}
	if _, err = crypto.SchemeFor(raw.Profile); err != nil {
		return nil, err
	}

	bits := make([]crypto.CompressedCiphertext, len(raw.Bits))
	for i, b := range raw.Bits {
		bits[i] = b
	}

	return &Result{ID: id, SourceID: source, Profile: raw.Profile, Bits: bits}, nil
}

// CheckPair verifies that r was computed against the public half of p.
func CheckPair(p *Private, r *Result) error {
	if r.Profile != p.Profile {
		return fmt.Errorf("%w: result is %s, private bundle is %s", crypto.ErrCryptoConfigMismatch, r.Profile, p.Profile)
	}
	if r.SourceID != p.ID {
		return fmt.Errorf("%w: result computed for %s, private bundle is %s", ErrBundleMismatch, r.SourceID, p.ID)
	}
	if len(r.Bits) != len(p.Identifiers) {
		return fmt.Errorf("%w: %d results for %d identifiers", ErrBundleMismatch, len(r.Bits), len(p.Identifiers))
	}
	return nil
}

// Bit decompresses and decodes the i-th encrypted boolean of r under the
// scheme of the secret key that will reveal it.
func (c *Codec) Bit(scheme *crypto.Scheme, r *Result, i int) (*crypto.EncryptedBool, error) {
	b, err := crypto.DecompressEncryptedBool(scheme, c.zstd, r.Bits[i])
	if err != nil {
		return nil, fmt.Errorf("result #%d: %w", i, classify(err))
	}
	return b, nil
}
