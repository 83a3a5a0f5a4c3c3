package crypto

import "errors"

// Sentinel errors returned by the homomorphic layer. Callers should match
// them with [errors.Is].
var (
	// ErrCryptoConfigMismatch is returned when keys, ciphertexts or bundles
	// were produced under different (or unknown) encryption-parameter
	// profiles.
	ErrCryptoConfigMismatch = errors.New("encryption parameter profile mismatch")

	// ErrEmptyInput is returned when an identifier list or an aggregation
	// row is empty.
	ErrEmptyInput = errors.New("empty input")

	// ErrCapacityExceeded is returned when the local list does not fit into
	// the multiplicative depth of the selected profile.
	ErrCapacityExceeded = errors.New("local list exceeds profile capacity")

	// ErrMalformedCiphertext is returned when serialized ciphertext or key
	// material cannot be decoded into the shape the profile expects.
	ErrMalformedCiphertext = errors.New("malformed ciphertext or key material")

	// ErrSealOpen is returned when a sealed blob cannot be opened, usually
	// because of a wrong passphrase.
	ErrSealOpen = errors.New("cannot open sealed data")
)
