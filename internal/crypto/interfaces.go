package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_mock.go -package=mock

// KeyChain protects serialized secret material at rest with a passphrase.
//
// Scheme:
//
//	Salt = GenerateSalt()                    (step 1)
//	KEK  = DeriveKEK(passphrase, salt)       (step 2)
//	Blob = Seal(plaintext, KEK)              (step 3)
//
// The salt is stored next to the blob in clear; without the passphrase the
// blob is random noise.
type KeyChain interface {
	// GenerateSalt returns 16 random bytes.
	GenerateSalt() ([]byte, error)

	// DeriveKEK stretches passphrase and salt into a 256-bit key with
	// Argon2id. The KEK only ever lives in memory.
	DeriveKEK(passphrase string, salt []byte) []byte

	// Seal encrypts plaintext with AES-256-GCM under kek and returns
	// nonce ‖ ciphertext.
	Seal(plaintext, kek []byte) ([]byte, error)

	// Open reverses Seal. A wrong KEK or a modified blob yields an error
	// wrapping ErrSealOpen.
	Open(blob, kek []byte) ([]byte, error)
}
