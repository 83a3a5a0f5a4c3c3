package store

import (
	"context"

	"github.com/MKhiriev/go-mutual-friends/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// BundleStorage reads and writes bundle files. Writes are atomic: a reader
// never observes a partially written bundle.
type BundleStorage interface {
	// Read returns the whole content of the bundle at path.
	Read(ctx context.Context, path string) ([]byte, error)

	// Write atomically replaces the file at path with data.
	Write(ctx context.Context, path string, data []byte) error

	// WritePair writes two bundles so that either both final files are
	// replaced or neither is touched.
	WritePair(ctx context.Context, first, second File) error
}

// File is a bundle path together with its content.
type File struct {
	Path string
	Data []byte
}

// Journal records finished runs of the three phases.
type Journal interface {
	RecordEnrollment(ctx context.Context, e models.Enrollment) error
	RecordComputation(ctx context.Context, c models.Computation) error
	RecordReveal(ctx context.Context, r models.Reveal) error

	// Enrollment returns the journaled enrollment for a bundle ID.
	Enrollment(ctx context.Context, bundleID string) (models.Enrollment, error)

	// Enrollments returns the most recent enrollments, newest first.
	Enrollments(ctx context.Context, limit uint64) ([]models.Enrollment, error)
}
