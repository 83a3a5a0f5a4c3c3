package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-mutual-friends/models"
)

// psql is the statement builder for the SQLite journal ("?" placeholders).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var enrollmentColumns = []string{
	"bundle_id",
	"profile",
	"identifiers",
	"private_path",
	"public_path",
	"created_at",
}

func buildInsertEnrollmentQuery(e models.Enrollment) (string, []any, error) {
	query, args, err := psql.
		Insert(e.TableName()).
		Columns(enrollmentColumns...).
		Values(e.BundleID, e.Profile, e.Identifiers, e.PrivatePath, e.PublicPath, e.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertComputationQuery(c models.Computation) (string, []any, error) {
	query, args, err := psql.
		Insert(c.TableName()).
		Columns(
			"result_id",
			"source_id",
			"profile",
			"remote",
			"local",
			"strategy",
			"workers",
			"duration_ms",
			"result_path",
			"created_at",
		).
		Values(
			c.ResultID,
			c.SourceID,
			c.Profile,
			c.Remote,
			c.Local,
			c.Strategy,
			c.Workers,
			c.Duration.Milliseconds(),
			c.ResultPath,
			c.CreatedAt.UTC(),
		).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertRevealQuery(r models.Reveal) (string, []any, error) {
	query, args, err := psql.
		Insert(r.TableName()).
		Columns("result_id", "source_id", "total", "mutual", "created_at").
		Values(r.ResultID, r.SourceID, r.Total, r.Mutual, r.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildSelectEnrollmentsQuery selects enrollments newest first. An empty
// bundleID selects all of them; limit 0 means no limit.
func buildSelectEnrollmentsQuery(bundleID string, limit uint64) (string, []any, error) {
	b := psql.
		Select(enrollmentColumns...).
		From(models.Enrollment{}.TableName()).
		OrderBy("created_at DESC")

	if bundleID != "" {
		b = b.Where(sq.Eq{"bundle_id": bundleID})
	}
	if limit > 0 {
		b = b.Limit(limit)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
