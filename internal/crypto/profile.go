// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"fmt"
	"slices"
	"sync"

	"github.com/tuneinsight/lattigo/v6/schemes/bgv"
)

// Profile identifiers. The production profile is the default; the dev
// profiles use a smaller ring and must not be used for real data.
const (
	ProfileV1      = "bgv-n14-t65537-v1"
	ProfileDev     = "bgv-n13-t65537-dev1"
	ProfileDevDeep = "bgv-n13-t65537-dev2"

	DefaultProfile = ProfileV1
)

// plaintextModulus is prime and ≡ 1 mod 2N for every registered ring, so all
// N slots are usable and a product of slots is zero only if a factor is.
const plaintextModulus = 65537

// Profile is a named, versioned BGV parameter set.
type Profile struct {
	ID       string
	Insecure bool

	literal bgv.ParametersLiteral
}

var profiles = map[string]Profile{
	ProfileV1: {
		ID: ProfileV1,
		literal: bgv.ParametersLiteral{
			LogN:             14,
			LogQ:             []int{58, 55, 55, 55, 55, 55},
			LogP:             []int{58},
			PlaintextModulus: plaintextModulus,
		},
	},
	ProfileDev: {
		ID:       ProfileDev,
		Insecure: true,
		literal: bgv.ParametersLiteral{
			LogN:             13,
			LogQ:             []int{55, 50, 50, 50},
			LogP:             []int{55},
			PlaintextModulus: plaintextModulus,
		},
	},
	ProfileDevDeep: {
		ID:       ProfileDevDeep,
		Insecure: true,
		literal: bgv.ParametersLiteral{
			LogN:             13,
			LogQ:             []int{55, 50, 50, 50, 50},
			LogP:             []int{55},
			PlaintextModulus: plaintextModulus,
		},
	},
}

// Profiles returns the registered profile IDs in sorted order.
func Profiles() []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// LookupProfile returns the profile registered under id.
func LookupProfile(id string) (Profile, error) {
	p, ok := profiles[id]
	if !ok {
		return Profile{}, fmt.Errorf("%w: unknown profile %q", ErrCryptoConfigMismatch, id)
	}
	return p, nil
}

// Scheme is an instantiated profile: BGV parameters plus the slot layout
// derived from them. Schemes are immutable and shared.
type Scheme struct {
	profile     Profile
	params      bgv.Parameters
	layout      Layout
	fingerprint []byte
}

var (
	schemesMu sync.Mutex
	schemes   = make(map[string]*Scheme)
)

// SchemeFor returns the cached [Scheme] for a profile ID, instantiating it on
// first use.
func SchemeFor(profileID string) (*Scheme, error) {
	schemesMu.Lock()
	defer schemesMu.Unlock()

	if s, ok := schemes[profileID]; ok {
		return s, nil
	}

	profile, err := LookupProfile(profileID)
	if err != nil {
		return nil, err
	}

	params, err := bgv.NewParametersFromLiteral(profile.literal)
	if err != nil {
		return nil, fmt.Errorf("instantiate profile %q: %w", profileID, err)
	}

	raw, err := params.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal parameters of %q: %w", profileID, err)
	}
	sum := sha256.Sum256(raw)

	layout, err := newLayout(params.MaxSlots())
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", profileID, err)
	}

	s := &Scheme{
		profile:     profile,
		params:      params,
		layout:      layout,
		fingerprint: sum[:],
	}
	schemes[profileID] = s
	return s, nil
}

// Profile returns the profile the scheme was built from.
func (s *Scheme) Profile() Profile { return s.profile }

// Params returns the BGV parameters.
func (s *Scheme) Params() bgv.Parameters { return s.params }

// Layout returns the slot layout.
func (s *Scheme) Layout() Layout { return s.layout }

// Fingerprint is the SHA-256 of the marshalled parameters.
func (s *Scheme) Fingerprint() []byte { return slices.Clone(s.fingerprint) }

// compareDepth is the number of levels one comparison consumes: the
// squaring of the difference and the multiplication by the lead-slot mask.
const compareDepth = 2

// Blocks returns how many local blocks are needed for n local identifiers.
func (s *Scheme) Blocks(n int) int {
	g := s.layout.Groups
	return (n + g - 1) / g
}

// Capacity is the largest local list the profile can aggregate: every
// level left after comparison allows one more halving of the OR tree.
func (s *Scheme) Capacity() int {
	orDepth := s.params.MaxLevel() - compareDepth
	if orDepth < 0 {
		return 0
	}
	return s.layout.Groups << orDepth
}

// CheckCapacity returns [ErrCapacityExceeded] if n local identifiers do not
// fit into the profile, and [ErrEmptyInput] if n is zero.
func (s *Scheme) CheckCapacity(n int) error {
	if n == 0 {
		return fmt.Errorf("local identifiers: %w", ErrEmptyInput)
	}
	if c := s.Capacity(); n > c {
		return fmt.Errorf("%w: %d local identifiers, profile %s holds at most %d", ErrCapacityExceeded, n, s.profile.ID, c)
	}
	return nil
}

func (s *Scheme) sameAs(other *Scheme) bool {
	return s == other || (other != nil && s.profile.ID == other.profile.ID && slices.Equal(s.fingerprint, other.fingerprint))
}

func checkSameScheme(what string, a, b *Scheme) error {
	if a == nil || b == nil {
		return fmt.Errorf("%w: %s without profile", ErrCryptoConfigMismatch, what)
	}
	if !a.sameAs(b) {
		return fmt.Errorf("%w: %s uses %s, expected %s", ErrCryptoConfigMismatch, what, b.profile.ID, a.profile.ID)
	}
	return nil
}
