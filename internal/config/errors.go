package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid identity-provider settings
	// (for example, missing base URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty bundle path or an unknown zstd level).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid run-level settings
	// (for example, an unknown mode).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid execution settings
	// (for example, an unknown strategy or a non-positive pool size).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidCryptoConfigs indicates an unregistered parameter profile.
	ErrInvalidCryptoConfigs = errors.New("invalid crypto configuration")
)
