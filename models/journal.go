package models

import "time"

// Enrollment is a journal record written after a successful init run.
type Enrollment struct {
	// BundleID is shared by the public and private bundle of the run.
	BundleID    string    `db:"bundle_id"`
	Profile     string    `db:"profile"`
	Identifiers int       `db:"identifiers"`
	PrivatePath string    `db:"private_path"`
	PublicPath  string    `db:"public_path"`
	CreatedAt   time.Time `db:"created_at"`
}

// TableName returns the journal table for [Enrollment].
func (Enrollment) TableName() string {
	return "enrollments"
}

// Computation is a journal record written after a successful calc run.
type Computation struct {
	ResultID   string        `db:"result_id"`
	SourceID   string        `db:"source_id"`
	Profile    string        `db:"profile"`
	Remote     int           `db:"remote"`
	Local      int           `db:"local"`
	Strategy   string        `db:"strategy"`
	Workers    int           `db:"workers"`
	Duration   time.Duration `db:"duration_ms"`
	ResultPath string        `db:"result_path"`
	CreatedAt  time.Time     `db:"created_at"`
}

// TableName returns the journal table for [Computation].
func (Computation) TableName() string {
	return "computations"
}

// Reveal is a journal record written after a successful check run.
type Reveal struct {
	ResultID  string    `db:"result_id"`
	SourceID  string    `db:"source_id"`
	Total     int       `db:"total"`
	Mutual    int       `db:"mutual"`
	CreatedAt time.Time `db:"created_at"`
}

// TableName returns the journal table for [Reveal].
func (Reveal) TableName() string {
	return "reveals"
}
