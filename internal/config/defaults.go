package config

import (
	"runtime"
	"time"

	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
)

// Default bundle locations, relative to the working directory.
const (
	DefaultSecretPath       = "secret_data"
	DefaultPublicPath       = "public_data"
	DefaultRemotePublicPath = "download/public_data"
	DefaultResultPath       = "result_data"
	DefaultRemoteResultPath = "download/result_data"

	// JournalOff as the journal DSN disables the run journal.
	JournalOff = "off"
)

// Defaults returns the lowest-priority configuration source.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel: "info",
		},
		Storage: Storage{
			Files: Files{
				SecretPath:       DefaultSecretPath,
				PublicPath:       DefaultPublicPath,
				RemotePublicPath: DefaultRemotePublicPath,
				ResultPath:       DefaultResultPath,
				RemoteResultPath: DefaultRemoteResultPath,
			},
			DB: DB{
				DSN: "mutual_friends.db",
			},
			CompressionLevel: "best",
			MaxDecodedSize:   defaultMaxDecodedSize(),
		},
		Adapter: Adapter{
			BaseURL:        "https://api.vrchat.cloud/api/1",
			RequestTimeout: 30 * time.Second,
		},
		Workers: Workers{
			Strategy:         StrategyPool,
			Count:            runtime.NumCPU(),
			ProgressInterval: 500 * time.Millisecond,
		},
		Crypto: Crypto{
			Profile: crypto.DefaultProfile,
		},
	}
}

// defaultMaxDecodedSize admits the public bundle of a full-capacity list
// under every registered profile. Zero leaves the choice to the compression
// codec.
func defaultMaxDecodedSize() uint64 {
	size, err := crypto.MaxBundleSize()
	if err != nil {
		return 0
	}
	return size
}
