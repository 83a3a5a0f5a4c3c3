package store

import "errors"

// Sentinel errors returned by the bundle file storage. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrIO is returned when a bundle file cannot be read, written, synced
	// or renamed.
	ErrIO = errors.New("bundle file i/o failed")

	// ErrBundleNotFound is returned when a bundle file to read does not
	// exist.
	ErrBundleNotFound = errors.New("bundle file not found")
)

// ErrNotJournaled is returned by [Journal.Enrollment] for a bundle ID the
// journal has no record of. It is always joined with [sql.ErrNoRows].
var ErrNotJournaled = errors.New("enrollment not journaled")

// Low-level database operation errors returned (or wrapped) by the journal
// when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query with
	// squirrel fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRows is returned when scanning journal rows fails.
	ErrScanningRows = errors.New("failed to scan journal rows")
)
