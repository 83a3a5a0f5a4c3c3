// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v6/schemes/bgv"
)

// Comparator evaluates encrypted equality. It is a per-worker handle built
// from a [ComputeKey]: the key material is shared read-only, the evaluator
// buffers are owned by the handle. Use [Comparator.ShallowCopy] to get a
// handle for another goroutine.
type Comparator struct {
	scheme  *Scheme
	eval    *bgv.Evaluator
	encoder *bgv.Encoder
}

// NewComparator builds a comparator for key.
func NewComparator(key *ComputeKey) *Comparator {
	return &Comparator{
		scheme:  key.scheme,
		eval:    bgv.NewEvaluator(key.scheme.params, key.evk),
		encoder: bgv.NewEncoder(key.scheme.params),
	}
}

// ShallowCopy returns a comparator safe to use concurrently with c.
func (c *Comparator) ShallowCopy() *Comparator {
	return &Comparator{scheme: c.scheme, eval: c.eval.ShallowCopy(), encoder: c.encoder.ShallowCopy()}
}

// Compare tests the remote identifier against every identifier of the local
// block at once. In the result, the lead slot of group g is zero iff the
// remote identifier equals the identifier packed in group g, and a uniformly
// random non-zero value otherwise.
//
// Per group: s = Σ (r_k − l_k)² over the 32 digit slots. Every term is at
// most 16², so s < 32·16² < t and s is zero exactly when all digits agree.
func (c *Comparator) Compare(remote *Ciphertext, local *LocalBlock) (*EncryptedBool, error) {
	if err := checkSameScheme("remote ciphertext", c.scheme, remote.scheme); err != nil {
		return nil, err
	}
	if err := checkSameScheme("local block", c.scheme, local.scheme); err != nil {
		return nil, err
	}

	r, l := alignLevels(remote.value, local.value)
	if r.Level() < compareDepth {
		return nil, fmt.Errorf("%w: comparison needs level %d, ciphertext has %d", ErrCapacityExceeded, compareDepth, r.Level())
	}

	diff, err := c.eval.SubNew(r, l)
	if err != nil {
		return nil, fmt.Errorf("subtract: %w", err)
	}

	sq, err := c.eval.MulRelinNew(diff, diff)
	if err != nil {
		return nil, fmt.Errorf("square: %w", err)
	}
	if err = c.eval.Rescale(sq, sq); err != nil {
		return nil, fmt.Errorf("rescale square: %w", err)
	}

	sum := bgv.NewCiphertext(c.scheme.params, 1, sq.Level())
	if err = c.eval.InnerSum(sq, 1, GroupSize, sum); err != nil {
		return nil, fmt.Errorf("inner sum: %w", err)
	}

	sampler := &nonZeroSampler{t: c.scheme.params.PlaintextModulus()}
	mask := bgv.NewPlaintext(c.scheme.params, sum.Level())
	if err = c.encoder.Encode(c.scheme.layout.LeadValues(sampler.next), mask); err != nil {
		return nil, fmt.Errorf("encode mask: %w", err)
	}
	if sampler.err != nil {
		return nil, fmt.Errorf("sample mask: %w", sampler.err)
	}

	out, err := c.eval.MulNew(sum, mask)
	if err != nil {
		return nil, fmt.Errorf("apply mask: %w", err)
	}
	if err = c.eval.Rescale(out, out); err != nil {
		return nil, fmt.Errorf("rescale masked: %w", err)
	}

	return &EncryptedBool{Ciphertext{scheme: c.scheme, value: out}}, nil
}
