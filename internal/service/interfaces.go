package service

import (
	"context"

	"github.com/MKhiriev/go-mutual-friends/models"
	"github.com/google/uuid"
)

// EnrollService runs the init phase.
type EnrollService interface {
	// Enroll parses friends, generates a fresh key pair, encrypts every
	// identifier in order and writes the private and public bundle as one
	// atomic pair. An empty list fails with [ErrEmptyInput] before any key
	// is generated or file touched.
	Enroll(ctx context.Context, friends []string) (models.Enrollment, error)
}

// ComputeService runs the calc phase.
type ComputeService interface {
	// Compute compares every entry of the remote public bundle against the
	// local identifiers of this party's private bundle and writes one
	// encrypted membership bit per remote entry, in remote order.
	// Profile, emptiness and capacity are checked before any homomorphic
	// evaluation; a single failed comparison fails the whole phase.
	Compute(ctx context.Context) (models.Computation, error)
}

// RevealService runs the check phase.
type RevealService interface {
	// Reveal decrypts the result bundle returned by the other party with
	// the secret key of the private bundle it was computed for.
	Reveal(ctx context.Context) (models.RevealReport, error)
}

// HistoryService reads the run journal.
type HistoryService interface {
	// Enrollments returns the most recent enrollments, newest first. It is
	// empty when the journal is disabled.
	Enrollments(ctx context.Context) ([]models.Enrollment, error)
}

// AppInfoService exposes build metadata to the terminal UI.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// IDGenerator issues bundle identifiers.
type IDGenerator interface {
	Generate() uuid.UUID
}

// ProgressSink receives progress snapshots of a running stage.
type ProgressSink func(stage string, done, total int64)
