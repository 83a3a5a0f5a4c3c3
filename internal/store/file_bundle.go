package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-mutual-friends/internal/logger"
)

// fileBundleStorage is the file-system implementation of [BundleStorage].
// Every write goes to a temporary file in the destination directory which is
// synced and then renamed over the final path.
type fileBundleStorage struct {
	logger *logger.Logger
}

// NewFileBundleStorage constructs a [BundleStorage] on the local file system.
func NewFileBundleStorage(logger *logger.Logger) BundleStorage {
	return &fileBundleStorage{logger: logger}
}

// Read implements [BundleStorage].
func (s *fileBundleStorage) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrBundleNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}

	logger.FromContext(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("bundle read")
	return data, nil
}

// Write implements [BundleStorage].
func (s *fileBundleStorage) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := writeTemp(path, data)
	if err != nil {
		return err
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: rename %s: %w", ErrIO, path, err)
	}
	syncDir(path)

	logger.FromContext(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("bundle written")
	return nil
}

// WritePair implements [BundleStorage]. Both temporaries are fully written
// and synced before the first rename. If the second rename fails the first
// destination is restored to its previous state.
func (s *fileBundleStorage) WritePair(ctx context.Context, first, second File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log := logger.FromContext(ctx)

	tmp1, err := writeTemp(first.Path, first.Data)
	if err != nil {
		return err
	}
	tmp2, err := writeTemp(second.Path, second.Data)
	if err != nil {
		_ = os.Remove(tmp1)
		return err
	}

	// keep the previous first file aside until the pair is complete
	backup := ""
	if _, err = os.Stat(first.Path); err == nil {
		backup = first.Path + ".bak"
		if err = os.Rename(first.Path, backup); err != nil {
			_ = os.Remove(tmp1)
			_ = os.Remove(tmp2)
			return fmt.Errorf("%w: back up %s: %w", ErrIO, first.Path, err)
		}
	}

	if err = os.Rename(tmp1, first.Path); err != nil {
		_ = os.Remove(tmp1)
		_ = os.Remove(tmp2)
		restore(first.Path, backup)
		return fmt.Errorf("%w: rename %s: %w", ErrIO, first.Path, err)
	}

	if err = os.Rename(tmp2, second.Path); err != nil {
		_ = os.Remove(tmp2)
		_ = os.Remove(first.Path)
		restore(first.Path, backup)
		log.Err(err).Str("func", "fileBundleStorage.WritePair").Msg("second rename failed, first bundle rolled back")
		return fmt.Errorf("%w: rename %s: %w", ErrIO, second.Path, err)
	}

	if backup != "" {
		_ = os.Remove(backup)
	}
	syncDir(first.Path)
	syncDir(second.Path)

	log.Debug().
		Str("first", first.Path).
		Str("second", second.Path).
		Msg("bundle pair written")
	return nil
}

// writeTemp writes data to a synced temporary file next to path and returns
// its name. On failure nothing is left behind.
func writeTemp(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create dir %s: %w", ErrIO, dir, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp for %s: %w", ErrIO, path, err)
	}
	name := f.Name()

	if _, err = f.Write(data); err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(name, 0o600)
	}
	if err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}

	return name, nil
}

func restore(path, backup string) {
	if backup != "" {
		_ = os.Rename(backup, path)
	}
}

// syncDir flushes the directory entry of path. Errors are ignored: not every
// platform supports syncing directories.
func syncDir(path string) {
	d, err := os.Open(filepath.Dir(path))
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
