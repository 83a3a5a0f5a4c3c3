package service

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/MKhiriev/go-mutual-friends/internal/bundle"
	"github.com/MKhiriev/go-mutual-friends/internal/compress"
	"github.com/MKhiriev/go-mutual-friends/internal/config"
	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
	"github.com/MKhiriev/go-mutual-friends/internal/identifier"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	keysOnce sync.Once
	devSK    *crypto.SecretKey
	devCK    *crypto.ComputeKey
	keysErr  error
)

// devKeys: общая пара ключей dev-профиля для тестов, которым не важна свежесть ключей
func devKeys(t *testing.T) (*crypto.SecretKey, *crypto.ComputeKey) {
	t.Helper()
	keysOnce.Do(func() {
		devSK, devCK, keysErr = crypto.NewKeyManager().Generate(crypto.ProfileDev)
	})
	require.NoError(t, keysErr)
	return devSK, devCK
}

func newCodec(t *testing.T) *bundle.Codec {
	t.Helper()
	return newLimitedCodec(t, 0)
}

// newLimitedCodec caps every decoded bundle at maxDecoded bytes.
func newLimitedCodec(t *testing.T, maxDecoded uint64) *bundle.Codec {
	t.Helper()
	z, err := compress.NewCodec("fastest", maxDecoded)
	require.NoError(t, err)
	t.Cleanup(func() { _ = z.Close() })
	return bundle.NewCodec(z)
}

// testConfig returns a config whose bundle files live in dir.
func testConfig(dir, profile string) *config.StructuredConfig {
	cfg := config.Defaults()
	cfg.Crypto.Profile = profile
	cfg.Storage.DB.DSN = config.JournalOff
	cfg.Storage.Files = config.Files{
		SecretPath:       filepath.Join(dir, config.DefaultSecretPath),
		PublicPath:       filepath.Join(dir, config.DefaultPublicPath),
		RemotePublicPath: filepath.Join(dir, config.DefaultRemotePublicPath),
		ResultPath:       filepath.Join(dir, config.DefaultResultPath),
		RemoteResultPath: filepath.Join(dir, config.DefaultRemoteResultPath),
	}
	cfg.Workers = config.Workers{Strategy: config.StrategySequential, Count: 1}
	return cfg
}

// userID builds the external form of a small numeric identifier.
func userID(n uint64) string {
	return identifier.ID{Lo: n}.String()
}

func userIDs(ns ...uint64) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = userID(n)
	}
	return out
}

// encodedPublic encrypts ids under the shared dev keys.
func encodedPublic(t *testing.T, c *bundle.Codec, id uuid.UUID, ns ...uint64) []byte {
	t.Helper()
	sk, ck := devKeys(t)
	enc := crypto.NewEncryptor(sk)

	p := &bundle.Public{ID: id, Profile: crypto.ProfileDev, Key: ck}
	for _, n := range ns {
		ct, err := enc.EncryptID(identifier.ID{Lo: n})
		require.NoError(t, err)
		cc, err := ct.Compress(c.Compression())
		require.NoError(t, err)
		p.Ciphertexts = append(p.Ciphertexts, cc)
	}

	data, err := c.EncodePublic(p)
	require.NoError(t, err)
	return data
}

func encodedPrivate(t *testing.T, c *bundle.Codec, id uuid.UUID, ns ...uint64) []byte {
	t.Helper()
	sk, _ := devKeys(t)

	p := &bundle.Private{ID: id, Profile: crypto.ProfileDev, Key: sk}
	for _, n := range ns {
		p.Identifiers = append(p.Identifiers, identifier.ID{Lo: n})
	}

	data, err := c.EncodePrivate(p)
	require.NoError(t, err)
	return data
}

// fixedIDs hands out predetermined bundle IDs.
type fixedIDs struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (f *fixedIDs) Generate() uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.ids[0]
	f.ids = f.ids[1:]
	return id
}
