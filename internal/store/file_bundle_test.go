package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// ── Write / Read ────────────────────────────────────────────────────────────

func TestFileBundleStorage_WriteRead(t *testing.T) {
	s := NewFileBundleStorage(logger.Nop())
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "download", "result_data")

	require.NoError(t, s.Write(ctx, path, []byte("first")))
	require.NoError(t, s.Write(ctx, path, []byte("second")))

	got, err := s.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
	assert.Equal(t, []string{"result_data"}, listDir(t, filepath.Dir(path)), "no temp files left")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileBundleStorage_ReadMissing(t *testing.T) {
	s := NewFileBundleStorage(logger.Nop())

	_, err := s.Read(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, ErrBundleNotFound)
}

func TestFileBundleStorage_ReadDirectory(t *testing.T) {
	s := NewFileBundleStorage(logger.Nop())

	_, err := s.Read(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrIO)
}

func TestFileBundleStorage_CanceledContext(t *testing.T) {
	s := NewFileBundleStorage(logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()

	err := s.Write(ctx, filepath.Join(dir, "x"), []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, listDir(t, dir))
}

// ── WritePair ───────────────────────────────────────────────────────────────

func TestFileBundleStorage_WritePair(t *testing.T) {
	s := NewFileBundleStorage(logger.Nop())
	ctx := context.Background()
	dir := t.TempDir()
	priv := File{Path: filepath.Join(dir, "secret_data"), Data: []byte("secret")}
	pub := File{Path: filepath.Join(dir, "public_data"), Data: []byte("public")}

	require.NoError(t, s.WritePair(ctx, priv, pub))

	got, err := os.ReadFile(priv.Path)
	require.NoError(t, err)
	assert.Equal(t, priv.Data, got)
	got, err = os.ReadFile(pub.Path)
	require.NoError(t, err)
	assert.Equal(t, pub.Data, got)
	assert.ElementsMatch(t, []string{"secret_data", "public_data"}, listDir(t, dir))
}

func TestFileBundleStorage_WritePair_SecondFailsKeepsOldFirst(t *testing.T) {
	s := NewFileBundleStorage(logger.Nop())
	ctx := context.Background()
	dir := t.TempDir()

	firstPath := filepath.Join(dir, "secret_data")
	require.NoError(t, os.WriteFile(firstPath, []byte("old secret"), 0o600))

	// a directory at the second path makes its rename fail
	secondPath := filepath.Join(dir, "public_data")
	require.NoError(t, os.MkdirAll(filepath.Join(secondPath, "occupied"), 0o755))

	err := s.WritePair(ctx,
		File{Path: firstPath, Data: []byte("new secret")},
		File{Path: secondPath, Data: []byte("new public")},
	)
	require.ErrorIs(t, err, ErrIO)

	got, err := os.ReadFile(firstPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("old secret"), got)
	assert.ElementsMatch(t, []string{"secret_data", "public_data"}, listDir(t, dir))
}

func TestFileBundleStorage_WritePair_FirstNewSecondFails(t *testing.T) {
	s := NewFileBundleStorage(logger.Nop())
	ctx := context.Background()
	dir := t.TempDir()

	firstPath := filepath.Join(dir, "secret_data")
	secondPath := filepath.Join(dir, "public_data")
	require.NoError(t, os.MkdirAll(filepath.Join(secondPath, "occupied"), 0o755))

	err := s.WritePair(ctx,
		File{Path: firstPath, Data: []byte("secret")},
		File{Path: secondPath, Data: []byte("public")},
	)
	require.ErrorIs(t, err, ErrIO)

	_, err = os.Stat(firstPath)
	assert.True(t, os.IsNotExist(err), "first bundle must not exist after a failed pair write")
	assert.Equal(t, []string{"public_data"}, listDir(t, dir))
}
