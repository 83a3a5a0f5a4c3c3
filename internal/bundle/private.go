package bundle

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
	"github.com/MKhiriev/go-mutual-friends/internal/identifier"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Private is the secret half of an enrollment: the ordered plaintext
// identifiers and the secret key. It never leaves the enrolling party.
type Private struct {
	ID          uuid.UUID
	Profile     string
	Identifiers []identifier.ID
	Key         *crypto.SecretKey
}

type rawPrivate struct {
	ID      []byte `cbor:"1,keyasint"`
	Profile string `cbor:"2,keyasint"`
	Sealed  bool   `cbor:"3,keyasint"`
	Salt    []byte `cbor:"4,keyasint,omitempty"`
	Payload []byte `cbor:"5,keyasint"`
}

type rawPrivatePayload struct {
	Identifiers [][]byte `cbor:"1,keyasint"`
	SecretKey   []byte   `cbor:"2,keyasint"`
}

// EncodePrivate serializes p, sealing identifiers and key when the codec
// carries a passphrase.
func (c *Codec) EncodePrivate(p *Private) ([]byte, error) {
	key, err := p.Key.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encode secret key: %w", err)
	}

	ids := make([][]byte, len(p.Identifiers))
	for i, id := range p.Identifiers {
		b := id.Bytes()
		ids[i] = b[:]
	}

	payload, err := cbor.Marshal(rawPrivatePayload{Identifiers: ids, SecretKey: key})
	if err != nil {
		return nil, fmt.Errorf("encode private payload: %w", err)
	}

	raw := rawPrivate{ID: p.ID[:], Profile: p.Profile, Payload: payload}
	if c.passphrase != "" {
		if raw.Salt, err = c.keyChain.GenerateSalt(); err != nil {
			return nil, fmt.Errorf("generate salt: %w", err)
		}
		if raw.Payload, err = c.keyChain.Seal(payload, c.keyChain.DeriveKEK(c.passphrase, raw.Salt)); err != nil {
			return nil, fmt.Errorf("seal private payload: %w", err)
		}
		raw.Sealed = true
	}

	return c.seal(KindPrivate, raw)
}

// DecodePrivate parses a private bundle, opening the seal if needed.
func (c *Codec) DecodePrivate(data []byte) (*Private, error) {
	var raw rawPrivate
	if err := c.open(data, KindPrivate, &raw); err != nil {
		return nil, err
	}

	id, err := uuid.FromBytes(raw.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: bundle id: %w", ErrDeserialization, err)
	}
	if _, err = crypto.SchemeFor(raw.Profile); err != nil {
		return nil, err
	}

	payload := raw.Payload
	if raw.Sealed {
		if c.passphrase == "" {
			return nil, ErrPassphraseRequired
		}
		payload, err = c.keyChain.Open(raw.Payload, c.keyChain.DeriveKEK(c.passphrase, raw.Salt))
		if err != nil {
			return nil, fmt.Errorf("open private bundle: %w", err)
		}
	}

	var body rawPrivatePayload
	if err = decMode.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: private payload: %w", ErrDeserialization, err)
	}

	ids := make([]identifier.ID, len(body.Identifiers))
	for i, b := range body.Identifiers {
		if err = ids[i].UnmarshalBinary(b); err != nil {
			return nil, fmt.Errorf("%w: identifier #%d: %w", ErrDeserialization, i, err)
		}
	}

	key, err := crypto.UnmarshalSecretKey(body.SecretKey)
	if err != nil {
		return nil, classify(err)
	}
	if key.Profile() != raw.Profile {
		return nil, fmt.Errorf("%w: private bundle is %s, secret key is %s", crypto.ErrCryptoConfigMismatch, raw.Profile, key.Profile())
	}

	return &Private{ID: id, Profile: raw.Profile, Identifiers: ids, Key: key}, nil
}

// IsSealed reports whether err came from a sealed bundle that could not be
// opened.
func IsSealed(err error) bool {
	return errors.Is(err, ErrPassphraseRequired) || errors.Is(err, crypto.ErrSealOpen)
}
