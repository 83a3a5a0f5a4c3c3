package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mutual-friends/internal/config"
	"github.com/MKhiriev/go-mutual-friends/internal/logger"
)

// Storages groups the persistence dependencies of the phase services.
type Storages struct {
	// Bundles reads and writes bundle files.
	Bundles BundleStorage

	// Journal records finished runs. It is a no-op when the journal is
	// disabled in the configuration.
	Journal Journal

	db *DB
}

// NewStorages initialises the storage layer:
//  1. Opens the SQLite journal at cfg.DB.DSN, creating the file if needed,
//     unless the DSN is [config.JournalOff].
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Wires the file-system bundle storage.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Debug().Msg("creating new storages...")

	s := &Storages{
		Bundles: NewFileBundleStorage(log),
		Journal: nopJournal{},
	}

	if cfg.DB.DSN == config.JournalOff {
		log.Info().Msg("run journal disabled")
		return s, nil
	}

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("journal connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	s.db = db
	s.Journal = NewJournalRepository(db, log)
	return s, nil
}

// Close releases the journal connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
