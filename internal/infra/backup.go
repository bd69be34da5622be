package infra

// backup.go — SQLite database backup manager.
// Each backup is a zip archive containing the database file plus a
// metadata.json describing when and from where it was taken. Old archives
// are pruned by age.

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type backupMetadata struct {
	CreatedAt time.Time `json:"created_at"`
	DBPath    string    `json:"db_path"`
	SizeBytes int64     `json:"size_bytes"`
}

// BackupInfo describes one archive on disk.
type BackupInfo struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// BackupManager snapshots the database file into timestamped zip archives.
type BackupManager struct {
	dbPath    string
	backupDir string
	retention time.Duration
	log       zerolog.Logger
}

func NewBackupManager(dbPath, backupDir string, retentionDays int, log zerolog.Logger) *BackupManager {
	return &BackupManager{
		dbPath:    dbPath,
		backupDir: backupDir,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		log:       log.With().Str("component", "backup").Logger(),
	}
}

// Create snapshots the database into a new archive and returns its info.
// The copy reads the main database file; with WAL journaling a checkpoint
// may lag, which is acceptable for periodic disaster-recovery snapshots.
func (m *BackupManager) Create() (*BackupInfo, error) {
	if err := os.MkdirAll(m.backupDir, 0755); err != nil {
		return nil, fmt.Errorf("backup: create dir: %w", err)
	}

	st, err := os.Stat(m.dbPath)
	if err != nil {
		return nil, fmt.Errorf("backup: stat database: %w", err)
	}

	now := time.Now()
	name := fmt.Sprintf("backup_%s.zip", now.Format("20060102_150405"))
	archivePath := filepath.Join(m.backupDir, name)

	f, err := os.Create(archivePath)
	if err != nil {
		return nil, fmt.Errorf("backup: create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	if err := m.addDatabaseEntry(zw); err != nil {
		zw.Close()
		os.Remove(archivePath)
		return nil, err
	}

	meta := backupMetadata{CreatedAt: now, DBPath: m.dbPath, SizeBytes: st.Size()}
	mw, err := zw.Create("metadata.json")
	if err != nil {
		zw.Close()
		os.Remove(archivePath)
		return nil, fmt.Errorf("backup: create metadata entry: %w", err)
	}
	if err := json.NewEncoder(mw).Encode(meta); err != nil {
		zw.Close()
		os.Remove(archivePath)
		return nil, fmt.Errorf("backup: write metadata: %w", err)
	}

	if err := zw.Close(); err != nil {
		os.Remove(archivePath)
		return nil, fmt.Errorf("backup: close archive: %w", err)
	}

	info, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("backup: stat archive: %w", err)
	}

	m.log.Info().Str("archive", name).Int64("size_bytes", info.Size()).Msg("backup created")
	return &BackupInfo{Name: name, SizeBytes: info.Size(), CreatedAt: now}, nil
}

func (m *BackupManager) addDatabaseEntry(zw *zip.Writer) error {
	src, err := os.Open(m.dbPath)
	if err != nil {
		return fmt.Errorf("backup: open database: %w", err)
	}
	defer src.Close()

	w, err := zw.Create(filepath.Base(m.dbPath))
	if err != nil {
		return fmt.Errorf("backup: create db entry: %w", err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("backup: copy database: %w", err)
	}
	return nil
}

// List returns the archives in the backup directory, newest first.
func (m *BackupManager) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("backup: read dir: %w", err)
	}

	backups := make([]BackupInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".zip") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Name:      e.Name(),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime(),
		})
	}
	sort.Slice(backups, func(i, j int) bool { return backups[i].CreatedAt.After(backups[j].CreatedAt) })
	return backups, nil
}

// Cleanup removes archives older than the retention period and returns how
// many were deleted.
func (m *BackupManager) Cleanup() (int, error) {
	backups, err := m.List()
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-m.retention)
	deleted := 0
	for _, b := range backups {
		if b.CreatedAt.After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(m.backupDir, b.Name)); err != nil {
			m.log.Warn().Err(err).Str("archive", b.Name).Msg("backup cleanup: remove failed")
			continue
		}
		deleted++
	}
	if deleted > 0 {
		m.log.Info().Int("deleted", deleted).Msg("backup cleanup done")
	}
	return deleted, nil
}

// Restore extracts the database file from the named archive over the current
// database path. Callers must ensure the application is quiesced first.
func (m *BackupManager) Restore(name string) error {
	// Reject path traversal in user-supplied archive names.
	if filepath.Base(name) != name {
		return fmt.Errorf("backup: invalid archive name %q", name)
	}

	archivePath := filepath.Join(m.backupDir, name)
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("backup: open archive: %w", err)
	}
	defer zr.Close()

	dbName := filepath.Base(m.dbPath)
	for _, f := range zr.File {
		if f.Name != dbName {
			continue
		}
		src, err := f.Open()
		if err != nil {
			return fmt.Errorf("backup: open db entry: %w", err)
		}
		defer src.Close()

		dst, err := os.Create(m.dbPath)
		if err != nil {
			return fmt.Errorf("backup: open target database: %w", err)
		}
		defer dst.Close()

		if _, err := io.Copy(dst, src); err != nil {
			return fmt.Errorf("backup: restore copy: %w", err)
		}
		m.log.Info().Str("archive", name).Msg("database restored")
		return nil
	}
	return fmt.Errorf("backup: archive %q does not contain %s", name, dbName)
}
