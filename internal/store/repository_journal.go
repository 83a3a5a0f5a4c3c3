package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/MKhiriev/go-mutual-friends/models"
)

// retryDelays are the pauses between attempts of a journal write that failed
// with a retryable error.
var retryDelays = []time.Duration{50 * time.Millisecond, 200 * time.Millisecond, 500 * time.Millisecond}

// journalRepository is the SQLite-backed implementation of [Journal].
type journalRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewJournalRepository constructs a [Journal] backed by db.
func NewJournalRepository(db *DB, logger *logger.Logger) Journal {
	logger.Debug().Msg("creating journal repository")
	return &journalRepository{
		db:     db,
		logger: logger,
	}
}

// RecordEnrollment implements [Journal].
func (r *journalRepository) RecordEnrollment(ctx context.Context, e models.Enrollment) error {
	query, args, err := buildInsertEnrollmentQuery(e)
	if err != nil {
		return err
	}
	return r.exec(ctx, "journalRepository.RecordEnrollment", query, args)
}

// RecordComputation implements [Journal].
func (r *journalRepository) RecordComputation(ctx context.Context, c models.Computation) error {
	query, args, err := buildInsertComputationQuery(c)
	if err != nil {
		return err
	}
	return r.exec(ctx, "journalRepository.RecordComputation", query, args)
}

// RecordReveal implements [Journal].
func (r *journalRepository) RecordReveal(ctx context.Context, rv models.Reveal) error {
	query, args, err := buildInsertRevealQuery(rv)
	if err != nil {
		return err
	}
	return r.exec(ctx, "journalRepository.RecordReveal", query, args)
}

// Enrollment implements [Journal]. It returns [ErrNotJournaled] when the
// bundle ID was never journaled.
func (r *journalRepository) Enrollment(ctx context.Context, bundleID string) (models.Enrollment, error) {
	items, err := r.selectEnrollments(ctx, bundleID, 1)
	if err != nil {
		return models.Enrollment{}, err
	}
	if len(items) == 0 {
		return models.Enrollment{}, fmt.Errorf("enrollment %s: %w: %w", bundleID, ErrNotJournaled, sql.ErrNoRows)
	}
	return items[0], nil
}

// Enrollments implements [Journal].
func (r *journalRepository) Enrollments(ctx context.Context, limit uint64) ([]models.Enrollment, error) {
	return r.selectEnrollments(ctx, "", limit)
}

func (r *journalRepository) selectEnrollments(ctx context.Context, bundleID string, limit uint64) ([]models.Enrollment, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectEnrollmentsQuery(bundleID, limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "journalRepository.selectEnrollments").Msg("failed to query enrollments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err = rows.Scan(&e.BundleID, &e.Profile, &e.Identifiers, &e.PrivatePath, &e.PublicPath, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		items = append(items, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// exec runs a write statement, retrying while the database is busy.
func (r *journalRepository) exec(ctx context.Context, fn, query string, args []any) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 0; ; attempt++ {
		if _, err = r.db.ExecContext(ctx, query, args...); err == nil {
			return nil
		}
		if attempt == len(retryDelays) || r.db.errorClassificator.Classify(err) != Retryable {
			break
		}

		log.Warn().Err(err).Str("func", fn).Int("attempt", attempt+1).Msg("journal busy, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelays[attempt]):
		}
	}

	log.Err(err).Str("func", fn).Msg("failed to execute journal statement")
	return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}

// nopJournal is used when the journal is disabled.
type nopJournal struct{}

func (nopJournal) RecordEnrollment(context.Context, models.Enrollment) error   { return nil }
func (nopJournal) RecordComputation(context.Context, models.Computation) error { return nil }
func (nopJournal) RecordReveal(context.Context, models.Reveal) error           { return nil }

func (nopJournal) Enrollment(_ context.Context, bundleID string) (models.Enrollment, error) {
	return models.Enrollment{}, fmt.Errorf("enrollment %s: %w: %w", bundleID, ErrNotJournaled, sql.ErrNoRows)
}

func (nopJournal) Enrollments(context.Context, uint64) ([]models.Enrollment, error) {
	return nil, nil
}
