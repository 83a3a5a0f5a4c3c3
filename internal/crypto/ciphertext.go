package crypto

import (
	"fmt"

	"github.com/MKhiriev/go-mutual-friends/internal/compress"
	"github.com/tuneinsight/lattigo/v6/core/rlwe"
)

// Ciphertext is a BGV ciphertext bound to the scheme it was produced under.
type Ciphertext struct {
	scheme *Scheme
	value  *rlwe.Ciphertext
}

// EncryptedBool is the outcome of a comparison or an OR: it decrypts to
// true iff one of its group lead slots is zero.
type EncryptedBool struct {
	Ciphertext
}

// LocalBlock is a ciphertext packing up to Layout.Groups local identifiers,
// one per slot group.
type LocalBlock struct {
	Ciphertext
	Count int
}

// CompressedCiphertext is the zstd-compressed binary form of a ciphertext.
type CompressedCiphertext []byte

// Profile returns the profile ID of the ciphertext.
func (c *Ciphertext) Profile() string { return c.scheme.profile.ID }

// Level returns the remaining multiplicative level.
func (c *Ciphertext) Level() int { return c.value.Level() }

// MarshalBinary returns the lattigo binary encoding of the ciphertext.
func (c *Ciphertext) MarshalBinary() ([]byte, error) {
	return c.value.MarshalBinary()
}

// Compress marshals and compresses the ciphertext.
func (c *Ciphertext) Compress(codec *compress.Codec) (CompressedCiphertext, error) {
	raw, err := c.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal ciphertext: %w", err)
	}
	return codec.Compress(raw), nil
}

// DecompressCiphertext reverses [Ciphertext.Compress]. Decompression
// failures wrap [compress.ErrCorrupt]; undecodable or foreign-shaped
// ciphertexts wrap [ErrMalformedCiphertext].
func DecompressCiphertext(scheme *Scheme, codec *compress.Codec, cc CompressedCiphertext) (*Ciphertext, error) {
	raw, err := codec.Decompress(cc)
	if err != nil {
		return nil, err
	}
	return UnmarshalCiphertext(scheme, raw)
}

// DecompressEncryptedBool is [DecompressCiphertext] for encrypted booleans.
func DecompressEncryptedBool(scheme *Scheme, codec *compress.Codec, cc CompressedCiphertext) (*EncryptedBool, error) {
	ct, err := DecompressCiphertext(scheme, codec, cc)
	if err != nil {
		return nil, err
	}
	return &EncryptedBool{Ciphertext: *ct}, nil
}

// UnmarshalCiphertext decodes a lattigo ciphertext and checks that it fits
// the scheme.
func UnmarshalCiphertext(scheme *Scheme, raw []byte) (*Ciphertext, error) {
	ct := new(rlwe.Ciphertext)
	err := guard(func() error {
		if err := ct.UnmarshalBinary(raw); err != nil {
			return err
		}
		if ct.Degree() != 1 {
			return fmt.Errorf("degree %d, want 1", ct.Degree())
		}
		if n := ct.Value[0].N(); n != scheme.params.N() {
			return fmt.Errorf("ring degree %d, want %d", n, scheme.params.N())
		}
		if ct.Level() > scheme.params.MaxLevel() {
			return fmt.Errorf("level %d above profile maximum %d", ct.Level(), scheme.params.MaxLevel())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCiphertext, err)
	}
	return &Ciphertext{scheme: scheme, value: ct}, nil
}

// alignLevels drops the higher of the two ciphertexts to the level of the
// lower one. Dropping RNS limbs is a valid BGV modulus switch without
// rescaling. Inputs are never modified.
func alignLevels(a, b *rlwe.Ciphertext) (*rlwe.Ciphertext, *rlwe.Ciphertext) {
	switch {
	case a.Level() > b.Level():
		return dropTo(a, b.Level()), b
	case b.Level() > a.Level():
		return a, dropTo(b, a.Level())
	default:
		return a, b
	}
}

func dropTo(ct *rlwe.Ciphertext, level int) *rlwe.Ciphertext {
	c := ct.CopyNew()
	c.Resize(c.Degree(), level)
	return c
}
