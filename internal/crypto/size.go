package crypto

// Serialized sizes are upper bounds derived from the ring parameters: the
// polynomial payload is exact and a fixed allowance covers metadata, map
// headers and the CBOR and zstd framing around each element.
const (
	elementOverhead = 4 << 10
	bundleOverhead  = 1 << 20
)

// CiphertextSize bounds one fresh ciphertext as stored in a public bundle:
// two polynomials over every Q modulus, zstd block headers included.
func (s *Scheme) CiphertextSize() uint64 {
	raw := 2 * uint64(s.params.QCount()) * uint64(s.params.N()) * 8
	return raw + raw>>10 + elementOverhead
}

// ComputeKeySize bounds the marshalled [ComputeKey]: the public key, the
// relinearization key and one Galois key per inner-sum rotation.
func (s *Scheme) ComputeKeySize() uint64 {
	qp := uint64(s.params.QCount()+s.params.PCount()) * uint64(s.params.N()) * 8
	rows := uint64(s.params.BaseRNSDecompositionVectorSize(s.params.MaxLevelQ(), s.params.MaxLevelP()))
	gadget := rows*2*qp + elementOverhead
	keys := uint64(1 + len(s.params.GaloisElementsForInnerSum(1, GroupSize)))
	return 2*qp + elementOverhead + keys*gadget
}

// PublicBundleSize bounds the decoded public bundle of n enrolled
// identifiers, one ciphertext each.
func (s *Scheme) PublicBundleSize(n int) uint64 {
	return s.ComputeKeySize() + uint64(n)*s.CiphertextSize() + bundleOverhead
}

// MaxBundleSize is the largest decoded public bundle any registered profile
// produces for a list of [Scheme.Capacity] identifiers.
func MaxBundleSize() (uint64, error) {
	var largest uint64
	for _, id := range Profiles() {
		s, err := SchemeFor(id)
		if err != nil {
			return 0, err
		}
		largest = max(largest, s.PublicBundleSize(s.Capacity()))
	}
	return largest, nil
}
