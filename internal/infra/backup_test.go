package infra_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecore/internal/infra"
)

func newTestManager(t *testing.T) (*infra.BackupManager, string, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "trade.db")
	backupDir := filepath.Join(dir, "backups")
	require.NoError(t, os.WriteFile(dbPath, []byte("estado original"), 0644))
	return infra.NewBackupManager(dbPath, backupDir, 7, zerolog.Nop()), dbPath, backupDir
}

func TestBackupCreateAndList(t *testing.T) {
	mgr, _, backupDir := newTestManager(t)

	info, err := mgr.Create()
	require.NoError(t, err)
	assert.Greater(t, info.SizeBytes, int64(0))
	assert.FileExists(t, filepath.Join(backupDir, info.Name))

	backups, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, info.Name, backups[0].Name)
}

func TestBackupListEmptyDirIsNotAnError(t *testing.T) {
	mgr, _, _ := newTestManager(t)

	backups, err := mgr.List()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	mgr, dbPath, _ := newTestManager(t)

	info, err := mgr.Create()
	require.NoError(t, err)

	// Corrupt the live database, then restore the snapshot over it.
	require.NoError(t, os.WriteFile(dbPath, []byte("corrupto"), 0644))
	require.NoError(t, mgr.Restore(info.Name))

	restored, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.Equal(t, "estado original", string(restored))
}

func TestBackupRestoreRejectsPathTraversal(t *testing.T) {
	mgr, _, _ := newTestManager(t)

	assert.Error(t, mgr.Restore("../outside.zip"))
	assert.Error(t, mgr.Restore("sub/dir.zip"))
}

func TestBackupRestoreUnknownArchive(t *testing.T) {
	mgr, _, _ := newTestManager(t)

	assert.Error(t, mgr.Restore("backup_20200101_000000.zip"))
}

func TestBackupCleanupKeepsRecentArchives(t *testing.T) {
	mgr, _, backupDir := newTestManager(t)

	_, err := mgr.Create()
	require.NoError(t, err)

	deleted, err := mgr.Cleanup()
	require.NoError(t, err)
	assert.Equal(t, 0, deleted, "fresh archives stay within retention")

	backups, err := mgr.List()
	require.NoError(t, err)
	assert.Len(t, backups, 1)
	assert.DirExists(t, backupDir)
}
