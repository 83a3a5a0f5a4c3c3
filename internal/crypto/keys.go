// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/tuneinsight/lattigo/v6/core/rlwe"
)

// SecretKey grants encryption and decryption. It never leaves the
// enrolling party.
type SecretKey struct {
	scheme *Scheme
	sk     *rlwe.SecretKey
}

// ComputeKey grants homomorphic evaluation only: the public encryption key
// plus the relinearization and rotation keys needed by [Comparator] and
// [Aggregator]. It is safe to disclose.
type ComputeKey struct {
	scheme *Scheme
	pk     *rlwe.PublicKey
	evk    *rlwe.MemEvaluationKeySet
}

// Profile returns the profile ID the key was generated under.
func (k *SecretKey) Profile() string { return k.scheme.profile.ID }

// Scheme returns the scheme the key belongs to.
func (k *SecretKey) Scheme() *Scheme { return k.scheme }

// Profile returns the profile ID the key was generated under.
func (k *ComputeKey) Profile() string { return k.scheme.profile.ID }

// Scheme returns the scheme the key belongs to.
func (k *ComputeKey) Scheme() *Scheme { return k.scheme }

// KeyManager generates key pairs. It keeps no state and touches no storage.
type KeyManager struct{}

// NewKeyManager returns a [KeyManager].
func NewKeyManager() *KeyManager {
	return &KeyManager{}
}

// Generate creates a fresh SecretKey and its paired ComputeKey under the
// given profile.
func (m *KeyManager) Generate(profileID string) (*SecretKey, *ComputeKey, error) {
	scheme, err := SchemeFor(profileID)
	if err != nil {
		return nil, nil, err
	}

	params := scheme.params
	kgen := rlwe.NewKeyGenerator(params)
	sk, pk := kgen.GenKeyPairNew()
	rlk := kgen.GenRelinearizationKeyNew(sk)

	galEls := params.GaloisElementsForInnerSum(1, GroupSize)
	gks := kgen.GenGaloisKeysNew(galEls, sk)

	evk := rlwe.NewMemEvaluationKeySet(rlk, gks...)

	return &SecretKey{scheme: scheme, sk: sk}, &ComputeKey{scheme: scheme, pk: pk, evk: evk}, nil
}

// keyRecord is the serialized form of both key kinds.
type keyRecord struct {
	Profile     string `cbor:"1,keyasint"`
	Fingerprint []byte `cbor:"2,keyasint"`
	Key         []byte `cbor:"3,keyasint"`
	EvalKeys    []byte `cbor:"4,keyasint,omitempty"`
}

// MarshalBinary encodes the key together with its profile.
func (k *SecretKey) MarshalBinary() ([]byte, error) {
	raw, err := k.sk.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal secret key: %w", err)
	}
	return cbor.Marshal(keyRecord{
		Profile:     k.scheme.profile.ID,
		Fingerprint: k.scheme.fingerprint,
		Key:         raw,
	})
}

// MarshalBinary encodes the key together with its profile.
func (k *ComputeKey) MarshalBinary() ([]byte, error) {
	rawPK, err := k.pk.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal public key: %w", err)
	}
	rawEVK, err := k.evk.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal evaluation keys: %w", err)
	}
	return cbor.Marshal(keyRecord{
		Profile:     k.scheme.profile.ID,
		Fingerprint: k.scheme.fingerprint,
		Key:         rawPK,
		EvalKeys:    rawEVK,
	})
}

// UnmarshalSecretKey decodes a key produced by [SecretKey.MarshalBinary].
// The embedded profile must be known and its fingerprint must match.
func UnmarshalSecretKey(data []byte) (*SecretKey, error) {
	rec, scheme, err := decodeKeyRecord(data)
	if err != nil {
		return nil, err
	}

	sk := new(rlwe.SecretKey)
	if err = guard(func() error { return sk.UnmarshalBinary(rec.Key) }); err != nil {
		return nil, fmt.Errorf("%w: secret key: %w", ErrMalformedCiphertext, err)
	}
	if sk.Value.Q.N() != scheme.params.N() {
		return nil, fmt.Errorf("%w: secret key ring degree %d, profile expects %d", ErrCryptoConfigMismatch, sk.Value.Q.N(), scheme.params.N())
	}

	return &SecretKey{scheme: scheme, sk: sk}, nil
}

// UnmarshalComputeKey decodes a key produced by [ComputeKey.MarshalBinary].
// The embedded profile must be known and its fingerprint must match.
func UnmarshalComputeKey(data []byte) (*ComputeKey, error) {
	rec, scheme, err := decodeKeyRecord(data)
	if err != nil {
		return nil, err
	}

	pk := new(rlwe.PublicKey)
	if err = guard(func() error { return pk.UnmarshalBinary(rec.Key) }); err != nil {
		return nil, fmt.Errorf("%w: public key: %w", ErrMalformedCiphertext, err)
	}
	if pk.Value[0].Q.N() != scheme.params.N() {
		return nil, fmt.Errorf("%w: public key ring degree %d, profile expects %d", ErrCryptoConfigMismatch, pk.Value[0].Q.N(), scheme.params.N())
	}

	evk := new(rlwe.MemEvaluationKeySet)
	if err = guard(func() error { return evk.UnmarshalBinary(rec.EvalKeys) }); err != nil {
		return nil, fmt.Errorf("%w: evaluation keys: %w", ErrMalformedCiphertext, err)
	}
	if evk.RelinearizationKey == nil {
		return nil, fmt.Errorf("%w: evaluation keys without relinearization key", ErrMalformedCiphertext)
	}
	for _, galEl := range scheme.params.GaloisElementsForInnerSum(1, GroupSize) {
		if _, err = evk.GetGaloisKey(galEl); err != nil {
			return nil, fmt.Errorf("%w: missing rotation key %d", ErrMalformedCiphertext, galEl)
		}
	}

	return &ComputeKey{scheme: scheme, pk: pk, evk: evk}, nil
}

func decodeKeyRecord(data []byte) (keyRecord, *Scheme, error) {
	var rec keyRecord
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return keyRecord{}, nil, fmt.Errorf("%w: key record: %w", ErrMalformedCiphertext, err)
	}

	scheme, err := SchemeFor(rec.Profile)
	if err != nil {
		return keyRecord{}, nil, err
	}
	if !bytes.Equal(rec.Fingerprint, scheme.fingerprint) {
		return keyRecord{}, nil, fmt.Errorf("%w: key fingerprint does not match profile %s", ErrCryptoConfigMismatch, rec.Profile)
	}

	return rec, scheme, nil
}

// guard converts a panic raised while decoding untrusted bytes into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while decoding: %v", r)
		}
	}()
	return fn()
}
