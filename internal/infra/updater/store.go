package updater

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Store persists validated conference data with backup-then-replace
// semantics: the live file is renamed aside before the new data is written,
// and restored if the write fails, so a crash mid-update never leaves a
// truncated data file behind.
type Store struct {
	dataDir string
	logger  *slog.Logger
}

// NewStore creates a Store rooted at dataDir. The directory is created if
// it does not exist.
func NewStore(dataDir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dataDir, err)
	}
	return &Store{
		dataDir: dataDir,
		logger:  logger,
	}, nil
}

// Save replaces fileName with data.
//
// Sequence: rename the live file to <fileName>.backup, write the new data,
// delete the backup. On write failure the backup is renamed back into place
// and the original error is returned.
func (s *Store) Save(fileName string, data []byte) error {
	path := filepath.Join(s.dataDir, fileName)
	backupPath := path + ".backup"

	hasBackup := false
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, backupPath); err != nil {
			return fmt.Errorf("back up %s: %w", path, err)
		}
		hasBackup = true
		s.logger.Debug("created backup", slog.String("path", backupPath))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		writeErr := fmt.Errorf("write %s: %w", path, err)
		if hasBackup {
			if restoreErr := os.Rename(backupPath, path); restoreErr != nil {
				s.logger.Error("backup restore failed",
					slog.String("path", path),
					slog.Any("error", restoreErr))
			} else {
				s.logger.Info("restored previous data from backup",
					slog.String("path", path))
			}
		}
		return writeErr
	}

	if hasBackup {
		if err := os.Remove(backupPath); err != nil {
			// The stale backup is harmless, just noisy
			s.logger.Warn("could not remove backup",
				slog.String("path", backupPath),
				slog.Any("error", err))
		}
	}

	s.logger.Info("saved conference data",
		slog.String("file", fileName),
		slog.Int("bytes", len(data)))
	return nil
}
