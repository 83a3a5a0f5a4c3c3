// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// mutual-friends tool. It is populated by merging values from environment
// variables, command-line flags, an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds run-level settings: phase, passphrase, log level.
	App App `envPrefix:"APP_"`

	// Storage holds bundle file locations, compression and the journal DB.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the identity-provider endpoint settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers selects how the compute matrix and the encryption loop run.
	Workers Workers `envPrefix:"WORKERS_"`

	// Crypto selects the homomorphic parameter profile for new enrollments.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Phase names accepted by App.Mode.
const (
	ModeInit  = "init"
	ModeCalc  = "calc"
	ModeCheck = "check"

	// ModeHistory lists journaled enrollments instead of running a phase.
	ModeHistory = "history"
)

// App holds run-level settings.
type App struct {
	// Mode is one of init, calc, check or history. Empty means "ask in the
	// TUI".
	// Env: APP_MODE
	Mode string `env:"MODE"`

	// Passphrase seals the private bundle. Empty disables sealing.
	// Env: APP_PASSPHRASE
	Passphrase string `env:"PASSPHRASE"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Clipboard copies the revealed mutual friends to the system clipboard.
	// Env: APP_CLIPBOARD
	Clipboard bool `env:"CLIPBOARD"`
}

// Storage groups bundle files, compression and the run journal.
type Storage struct {
	// Files holds the bundle file locations.
	Files Files `envPrefix:"FILES_"`

	// DB holds the run journal connection settings.
	DB DB `envPrefix:"DB_"`

	// CompressionLevel is a zstd level name: fastest, default, better, best.
	// Env: STORAGE_COMPRESSION_LEVEL
	CompressionLevel string `env:"COMPRESSION_LEVEL"`

	// MaxDecodedSize caps the decompressed size of any bundle or ciphertext.
	// Env: STORAGE_MAX_DECODED_SIZE
	MaxDecodedSize uint64 `env:"MAX_DECODED_SIZE"`
}

// Files holds the paths of the bundles the three phases read and write.
type Files struct {
	// SecretPath is written by init and read by check.
	// Env: STORAGE_FILES_SECRET
	SecretPath string `env:"SECRET"`

	// PublicPath is written by init and sent to the other party.
	// Env: STORAGE_FILES_PUBLIC
	PublicPath string `env:"PUBLIC"`

	// RemotePublicPath is the other party's public bundle read by calc.
	// Env: STORAGE_FILES_REMOTE_PUBLIC
	RemotePublicPath string `env:"REMOTE_PUBLIC"`

	// ResultPath is written by calc and sent back to the other party.
	// Env: STORAGE_FILES_RESULT
	ResultPath string `env:"RESULT"`

	// RemoteResultPath is the result bundle received back, read by check.
	// Env: STORAGE_FILES_REMOTE_RESULT
	RemoteResultPath string `env:"REMOTE_RESULT"`
}

// DB holds connection settings for the run journal.
type DB struct {
	// DSN is the SQLite database file of the run journal. The value "off"
	// disables the journal.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds the identity-provider endpoint settings.
type Adapter struct {
	// BaseURL is the root of the VRChat API.
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds every identity-provider request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Execution strategies accepted by Workers.Strategy.
const (
	StrategySequential = "sequential"
	StrategyPool       = "pool"
)

// Workers configures the execution strategy.
type Workers struct {
	// Strategy is sequential or pool.
	// Env: WORKERS_STRATEGY
	Strategy string `env:"STRATEGY"`

	// Count is the pool size. Ignored by the sequential strategy.
	// Env: WORKERS_COUNT
	Count int `env:"COUNT"`

	// ProgressInterval is how often compute progress is logged.
	// Env: WORKERS_PROGRESS_INTERVAL
	ProgressInterval time.Duration `env:"PROGRESS_INTERVAL"`
}

// Crypto selects the homomorphic parameter profile.
type Crypto struct {
	// Profile is used for new enrollments. calc and check always follow the
	// profile recorded in the bundles they read.
	// Env: CRYPTO_PROFILE
	Profile string `env:"PROFILE"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (first source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
