package bundle

import (
	"fmt"

	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
	"github.com/google/uuid"
)

// Public is the shareable half of an enrollment: ordered compressed
// ciphertexts plus the compute key. Ciphertexts[i] encrypts the i-th
// identifier of the paired [Private] bundle.
type Public struct {
	ID          uuid.UUID
	Profile     string
	Ciphertexts []crypto.CompressedCiphertext
	Key         *crypto.ComputeKey
}

type rawPublic struct {
	ID          []byte   `cbor:"1,keyasint"`
	Profile     string   `cbor:"2,keyasint"`
	Ciphertexts [][]byte `cbor:"3,keyasint"`
	ComputeKey  []byte   `cbor:"4,keyasint"`
}

// EncodePublic serializes p.
func (c *Codec) EncodePublic(p *Public) ([]byte, error) {
	key, err := p.Key.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encode compute key: %w", err)
	}

	cts := make([][]byte, len(p.Ciphertexts))
	for i, ct := range p.Ciphertexts {
		cts[i] = ct
	}

	return c.seal(KindPublic, rawPublic{
		ID:          p.ID[:],
		Profile:     p.Profile,
		Ciphertexts: cts,
		ComputeKey:  key,
	})
}

// DecodePublic parses a public bundle. Ciphertexts stay compressed; use
// [Codec.Ciphertext] to open them one at a time.
func (c *Codec) DecodePublic(data []byte) (*Public, error) {
	var raw rawPublic
	if err := c.open(data, KindPublic, &raw); err != nil {
		return nil, err
	}

	id, err := uuid.FromBytes(raw.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: bundle id: %w", ErrDeserialization, err)
	}
	if _, err = crypto.SchemeFor(raw.Profile); err != nil {
		return nil, err
	}

	key, err := crypto.UnmarshalComputeKey(raw.ComputeKey)
	if err != nil {
		return nil, classify(err)
	}
	if key.Profile() != raw.Profile {
		return nil, fmt.Errorf("%w: public bundle is %s, compute key is %s", crypto.ErrCryptoConfigMismatch, raw.Profile, key.Profile())
	}

	cts := make([]crypto.CompressedCiphertext, len(raw.Ciphertexts))
	for i, ct := range raw.Ciphertexts {
		cts[i] = ct
	}

	return &Public{ID: id, Profile: raw.Profile, Ciphertexts: cts, Key: key}, nil
}

// Ciphertext decompresses and decodes the i-th ciphertext of p.
func (c *Codec) Ciphertext(p *Public, i int) (*crypto.Ciphertext, error) {
	ct, err := crypto.DecompressCiphertext(p.Key.Scheme(), c.zstd, p.Ciphertexts[i])
	if err != nil {
		return nil, fmt.Errorf("ciphertext #%d: %w", i, classify(err))
	}
	return ct, nil
}
