package crypto

import (
	"fmt"

	"github.com/MKhiriev/go-mutual-friends/internal/identifier"
	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"
)

// Revealer decrypts under a [SecretKey].
type Revealer struct {
	scheme  *Scheme
	dec     *rlwe.Decryptor
	encoder *bgv.Encoder
}

// NewRevealer builds a revealer for sk.
func NewRevealer(sk *SecretKey) *Revealer {
	return &Revealer{
		scheme:  sk.scheme,
		dec:     rlwe.NewDecryptor(sk.scheme.params, sk.sk),
		encoder: bgv.NewEncoder(sk.scheme.params),
	}
}

// ShallowCopy returns a revealer safe to use concurrently with r.
func (r *Revealer) ShallowCopy() *Revealer {
	return &Revealer{scheme: r.scheme, dec: r.dec.ShallowCopy(), encoder: r.encoder.ShallowCopy()}
}

// Reveal decrypts an encrypted boolean.
func (r *Revealer) Reveal(b *EncryptedBool) (bool, error) {
	values, err := r.decrypt(&b.Ciphertext)
	if err != nil {
		return false, err
	}
	return r.scheme.layout.AnyLeadZero(values), nil
}

// DecryptID recovers the identifier of a ciphertext produced by
// [Encryptor.EncryptID].
func (r *Revealer) DecryptID(ct *Ciphertext) (identifier.ID, error) {
	values, err := r.decrypt(ct)
	if err != nil {
		return identifier.ID{}, err
	}
	return r.scheme.layout.Group(values, 0)
}

func (r *Revealer) decrypt(ct *Ciphertext) ([]uint64, error) {
	if err := checkSameScheme("ciphertext", r.scheme, ct.scheme); err != nil {
		return nil, err
	}

	values := make([]uint64, r.scheme.layout.Slots)
	err := guard(func() error {
		return r.encoder.Decode(r.dec.DecryptNew(ct.value), values)
	})
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return values, nil
}
