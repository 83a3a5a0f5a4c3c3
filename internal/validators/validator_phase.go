package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mutual-friends/internal/bundle"
	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
)

const (
	FieldFriends  = "friends"
	FieldProfile  = "profile"
	FieldRemote   = "remote"
	FieldLocal    = "local"
	FieldCapacity = "capacity"
	FieldPairing  = "pairing"
)

// EnrollInput is the friend list handed to the enroll phase.
type EnrollInput struct {
	Friends []string
	Profile string
	// MaxBundleSize is the decoded size limit the public bundle must fit
	// in. Zero skips the size check.
	MaxBundleSize uint64
}

// ComputeInput is everything the compute phase needs before the comparison
// matrix starts.
type ComputeInput struct {
	// Profile is the profile this party accepts.
	Profile string
	Remote  *bundle.Public
	Local   *bundle.Private
}

// RevealInput pairs the enrolling party's private bundle with the result
// returned to it.
type RevealInput struct {
	Private *bundle.Private
	Result  *bundle.Result
}

type PhaseValidator struct {
}

func NewPhaseValidator() Validator {
	return &PhaseValidator{}
}

func (v *PhaseValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case EnrollInput:
		return v.validateEnroll(ctx, value, fields...)
	case *EnrollInput:
		return v.validateEnroll(ctx, *value, fields...)

	case ComputeInput:
		return v.validateCompute(ctx, value, fields...)
	case *ComputeInput:
		return v.validateCompute(ctx, *value, fields...)

	case RevealInput:
		return v.validateReveal(ctx, value, fields...)
	case *RevealInput:
		return v.validateReveal(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *PhaseValidator) validateEnroll(_ context.Context, in EnrollInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFriends, FieldProfile, FieldCapacity}
	}

	for _, f := range fields {
		switch f {
		case FieldFriends:
			if len(in.Friends) == 0 {
				return fmt.Errorf("friend list: %w", crypto.ErrEmptyInput)
			}
		case FieldProfile:
			if _, err := crypto.LookupProfile(in.Profile); err != nil {
				return err
			}
		case FieldCapacity:
			if err := checkEnrollSize(in); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// checkEnrollSize rejects lists whose public bundle the comparing party
// could not load.
func checkEnrollSize(in EnrollInput) error {
	scheme, err := crypto.SchemeFor(in.Profile)
	if err != nil {
		return err
	}
	n := len(in.Friends)
	if err = scheme.CheckCapacity(n); err != nil {
		return err
	}
	if in.MaxBundleSize == 0 {
		return nil
	}
	if size := scheme.PublicBundleSize(n); size > in.MaxBundleSize {
		return fmt.Errorf("%w: public bundle of %d identifiers needs up to %d bytes, decoded size limit is %d",
			crypto.ErrCapacityExceeded, n, size, in.MaxBundleSize)
	}
	return nil
}

// validateCompute runs in the order of the fields; the default order puts
// the cheap structural checks before the capacity check.
func (v *PhaseValidator) validateCompute(_ context.Context, in ComputeInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRemote, FieldLocal, FieldProfile, FieldCapacity}
	}
	if in.Remote == nil || in.Local == nil {
		return ErrMissingBundle
	}

	for _, f := range fields {
		switch f {
		case FieldRemote:
			if len(in.Remote.Ciphertexts) == 0 {
				return fmt.Errorf("remote list: %w", crypto.ErrEmptyInput)
			}
			if in.Remote.Key == nil {
				return fmt.Errorf("%w: remote bundle carries no compute key", ErrMissingBundle)
			}
		case FieldLocal:
			if len(in.Local.Identifiers) == 0 {
				return fmt.Errorf("local list: %w", crypto.ErrEmptyInput)
			}
		case FieldProfile:
			if in.Remote.Profile != in.Profile {
				return fmt.Errorf("%w: remote bundle uses %q, this side is configured for %q",
					crypto.ErrCryptoConfigMismatch, in.Remote.Profile, in.Profile)
			}
		case FieldCapacity:
			if in.Remote.Key == nil {
				return fmt.Errorf("%w: remote bundle carries no compute key", ErrMissingBundle)
			}
			if err := in.Remote.Key.Scheme().CheckCapacity(len(in.Local.Identifiers)); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *PhaseValidator) validateReveal(_ context.Context, in RevealInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPairing}
	}
	if in.Private == nil || in.Result == nil {
		return ErrMissingBundle
	}

	for _, f := range fields {
		switch f {
		case FieldPairing:
			if err := bundle.CheckPair(in.Private, in.Result); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
