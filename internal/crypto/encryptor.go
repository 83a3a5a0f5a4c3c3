// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/MKhiriev/go-mutual-friends/internal/identifier"
	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"
)

// Encryptor encrypts the enrolling party's identifiers under its
// [SecretKey]. Each identifier is replicated into every slot group so that
// one remote ciphertext can be compared against a whole local block.
type Encryptor struct {
	scheme  *Scheme
	encoder *bgv.Encoder
	enc     *rlwe.Encryptor
}

// NewEncryptor creates an encryptor bound to sk.
func NewEncryptor(sk *SecretKey) *Encryptor {
	return &Encryptor{
		scheme:  sk.scheme,
		encoder: bgv.NewEncoder(sk.scheme.params),
		enc:     rlwe.NewEncryptor(sk.scheme.params, sk.sk),
	}
}

// ShallowCopy returns an encryptor sharing read-only state with e, safe to
// use from another goroutine.
func (e *Encryptor) ShallowCopy() *Encryptor {
	return &Encryptor{scheme: e.scheme, encoder: e.encoder.ShallowCopy(), enc: e.enc.ShallowCopy()}
}

// EncryptID encrypts one identifier.
func (e *Encryptor) EncryptID(id identifier.ID) (*Ciphertext, error) {
	ct, err := encryptValues(e.scheme, e.encoder, e.enc, e.scheme.layout.Replicate(id), e.scheme.params.MaxLevel())
	if err != nil {
		return nil, fmt.Errorf("encrypt identifier: %w", err)
	}
	return &Ciphertext{scheme: e.scheme, value: ct}, nil
}

// LocalEncoder encrypts the comparing party's own identifiers under the
// remote party's public key, packed into blocks.
type LocalEncoder struct {
	scheme  *Scheme
	encoder *bgv.Encoder
	enc     *rlwe.Encryptor
}

// NewLocalEncoder creates an encoder bound to the public part of key.
func NewLocalEncoder(key *ComputeKey) *LocalEncoder {
	return &LocalEncoder{
		scheme:  key.scheme,
		encoder: bgv.NewEncoder(key.scheme.params),
		enc:     rlwe.NewEncryptor(key.scheme.params, key.pk),
	}
}

// ShallowCopy returns an encoder safe to use from another goroutine.
func (e *LocalEncoder) ShallowCopy() *LocalEncoder {
	return &LocalEncoder{scheme: e.scheme, encoder: e.encoder.ShallowCopy(), enc: e.enc.ShallowCopy()}
}

// PlanBlocks shuffles ids and splits them into blocks of at most
// Layout.Groups identifiers. The shuffle keeps the group a local identifier
// lands in independent of its position in the local list.
func (e *LocalEncoder) PlanBlocks(ids []identifier.ID) ([][]identifier.ID, error) {
	if err := e.scheme.CheckCapacity(len(ids)); err != nil {
		return nil, err
	}

	shuffled := make([]identifier.ID, len(ids))
	copy(shuffled, ids)
	if err := shuffle(shuffled); err != nil {
		return nil, err
	}

	g := e.scheme.layout.Groups
	blocks := make([][]identifier.ID, 0, e.scheme.Blocks(len(ids)))
	for start := 0; start < len(shuffled); start += g {
		end := min(start+g, len(shuffled))
		blocks = append(blocks, shuffled[start:end])
	}
	return blocks, nil
}

// EncryptBlock packs and encrypts up to Layout.Groups identifiers.
func (e *LocalEncoder) EncryptBlock(ids []identifier.ID) (*LocalBlock, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("local block: %w", ErrEmptyInput)
	}

	values, err := e.scheme.layout.Pack(ids)
	if err != nil {
		return nil, err
	}

	ct, err := encryptValues(e.scheme, e.encoder, e.enc, values, e.scheme.params.MaxLevel())
	if err != nil {
		return nil, fmt.Errorf("encrypt local block: %w", err)
	}
	return &LocalBlock{Ciphertext: Ciphertext{scheme: e.scheme, value: ct}, Count: len(ids)}, nil
}

// EncryptFalse returns an encryption of "no match": every lead slot holds
// one. It is the identity element of [Aggregator.OrReduce].
func (e *LocalEncoder) EncryptFalse() (*EncryptedBool, error) {
	values := e.scheme.layout.LeadValues(func() uint64 { return 1 })
	ct, err := encryptValues(e.scheme, e.encoder, e.enc, values, e.scheme.params.MaxLevel())
	if err != nil {
		return nil, fmt.Errorf("encrypt false: %w", err)
	}
	return &EncryptedBool{Ciphertext{scheme: e.scheme, value: ct}}, nil
}

func encryptValues(s *Scheme, encoder *bgv.Encoder, enc *rlwe.Encryptor, values []uint64, level int) (*rlwe.Ciphertext, error) {
	pt := bgv.NewPlaintext(s.params, level)
	if err := encoder.Encode(values, pt); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return enc.EncryptNew(pt)
}

// shuffle is a Fisher-Yates shuffle driven by crypto/rand.
func shuffle(ids []identifier.ID) error {
	for i := len(ids) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("shuffle: %w", err)
		}
		k := int(j.Int64())
		ids[i], ids[k] = ids[k], ids[i]
	}
	return nil
}

// nonZeroSampler draws uniform values in [1, t-1] from crypto/rand.
type nonZeroSampler struct {
	t   uint64
	buf [8]byte
	err error
}

func (s *nonZeroSampler) next() uint64 {
	if s.err != nil {
		return 1
	}
	if _, err := rand.Read(s.buf[:]); err != nil {
		s.err = err
		return 1
	}
	return binary.LittleEndian.Uint64(s.buf[:])%(s.t-1) + 1
}
