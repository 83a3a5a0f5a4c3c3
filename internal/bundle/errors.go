package bundle

import "errors"

// Sentinel errors returned while encoding or decoding bundles.
var (
	// ErrDecompression is returned when the zstd layer of a bundle or of a
	// single ciphertext is corrupt.
	ErrDecompression = errors.New("bundle decompression failed")

	// ErrTooLarge is returned when a well-formed bundle or ciphertext
	// decodes past the configured size limit.
	ErrTooLarge = errors.New("bundle exceeds decoded size limit")

	// ErrDeserialization is returned when the bundle header (magic, format
	// version, kind) or the typed body cannot be decoded. It is always
	// reported before any cryptographic decoding is attempted.
	ErrDeserialization = errors.New("bundle deserialization failed")

	// ErrBundleMismatch is returned when a result bundle was computed
	// against another enrollment than the private bundle at hand.
	ErrBundleMismatch = errors.New("result bundle does not belong to this enrollment")

	// ErrPassphraseRequired is returned when a sealed private bundle is
	// opened without a passphrase.
	ErrPassphraseRequired = errors.New("private bundle is sealed, passphrase required")
)
