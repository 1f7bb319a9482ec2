package updater

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	store, err := NewStore(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return store
}

func TestStore_Save_NewFile(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)

	err := store.Save("ai-conferences.yml", []byte("- title: ICML\n"))

	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "ai-conferences.yml"))
	require.NoError(t, err)
	assert.Equal(t, "- title: ICML\n", string(data))
}

func TestStore_Save_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	path := filepath.Join(dir, "security-conferences.yml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	err := store.Save("security-conferences.yml", []byte("new"))

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	// Backup must be cleaned up on success
	_, err = os.Stat(path + ".backup")
	assert.True(t, os.IsNotExist(err), "backup should be removed after successful save")
}

func TestStore_Save_KeepsOriginalWhenBackupFails(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	path := filepath.Join(dir, "ai-conferences.yml")
	require.NoError(t, os.WriteFile(path, []byte("previous data"), 0o644))

	// Occupy the backup path with a non-empty directory so the backup
	// rename fails before anything is written
	backupPath := path + ".backup"
	require.NoError(t, os.MkdirAll(filepath.Join(backupPath, "blocker"), 0o755))

	err := store.Save("ai-conferences.yml", []byte("new data"))

	require.Error(t, err)
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "previous data", string(data), "original data should survive a failed save")
}

func TestNewStore_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := NewStore(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
