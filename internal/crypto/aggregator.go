package crypto

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"
)

// Aggregator OR-reduces encrypted booleans. With zero meaning true, OR is
// slot-wise multiplication: the plaintext modulus is prime, so a product
// is zero iff one of its factors is.
type Aggregator struct {
	scheme *Scheme
	eval   *bgv.Evaluator
}

// NewAggregator builds an aggregator for key.
func NewAggregator(key *ComputeKey) *Aggregator {
	return &Aggregator{
		scheme: key.scheme,
		eval:   bgv.NewEvaluator(key.scheme.params, key.evk),
	}
}

// ShallowCopy returns an aggregator safe to use concurrently with a.
func (a *Aggregator) ShallowCopy() *Aggregator {
	return &Aggregator{scheme: a.scheme, eval: a.eval.ShallowCopy()}
}

// OrReduce folds row into one encrypted boolean as a balanced pairwise tree.
// identity must encrypt false; it pads levels with an odd element count.
// An empty row is rejected with [ErrEmptyInput].
func (a *Aggregator) OrReduce(identity *EncryptedBool, row []*EncryptedBool) (*EncryptedBool, error) {
	if len(row) == 0 {
		return nil, fmt.Errorf("aggregation row: %w", ErrEmptyInput)
	}
	if identity == nil {
		return nil, fmt.Errorf("aggregation identity is nil")
	}
	if err := checkSameScheme("aggregation identity", a.scheme, identity.scheme); err != nil {
		return nil, err
	}

	level := make([]*rlwe.Ciphertext, len(row))
	for i, b := range row {
		if err := checkSameScheme(fmt.Sprintf("row element %d", i), a.scheme, b.scheme); err != nil {
			return nil, err
		}
		level[i] = b.value
	}
	if len(level) == 1 {
		return row[0], nil
	}

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, identity.value)
		}

		next := make([]*rlwe.Ciphertext, len(level)/2)
		for i := range next {
			out, err := a.or(level[2*i], level[2*i+1])
			if err != nil {
				return nil, err
			}
			next[i] = out
		}
		level = next
	}

	return &EncryptedBool{Ciphertext{scheme: a.scheme, value: level[0]}}, nil
}

func (a *Aggregator) or(x, y *rlwe.Ciphertext) (*rlwe.Ciphertext, error) {
	x, y = alignLevels(x, y)
	if x.Level() == 0 {
		return nil, fmt.Errorf("%w: no level left for OR", ErrCapacityExceeded)
	}

	out, err := a.eval.MulRelinNew(x, y)
	if err != nil {
		return nil, fmt.Errorf("or: %w", err)
	}
	if err = a.eval.Rescale(out, out); err != nil {
		return nil, fmt.Errorf("or rescale: %w", err)
	}
	return out, nil
}
