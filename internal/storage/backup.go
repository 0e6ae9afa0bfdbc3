package storage

import (
	"fmt"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// BackupPath returns the path of backup n for the file at path.
// Backups are named path.bak.N; lower numbers are more recent.
func BackupPath(path string, n int) string {
	return fmt.Sprintf("%s%s.%d", path, BackupSuffix, n)
}

// rotateBackups shifts existing backups to make room for a new one:
// .bak.2 -> .bak.3, .bak.1 -> .bak.2, dropping the oldest.
// Missing files are not an error.
func rotateBackups(path string) error {
	if err := os.Remove(BackupPath(path, MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(BackupPath(path, i), BackupPath(path, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// CreateBackup copies the file at path to .bak.1 after rotating older
// backups. Nothing happens when the file does not exist yet.
func CreateBackup(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := rotateBackups(path); err != nil {
		return err
	}

	return copyFile(path, BackupPath(path, 1))
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Number int    // The backup number (1 is the most recent)
	Path   string // The full path to the backup file
}

// ListBackups returns the existing backups of path, most recent first.
func ListBackups(path string) []BackupInfo {
	var backups []BackupInfo
	for i := 1; i <= MaxBackupCount; i++ {
		backupPath := BackupPath(path, i)
		if _, err := os.Stat(backupPath); err == nil {
			backups = append(backups, BackupInfo{Number: i, Path: backupPath})
		}
	}
	return backups
}

// RestoreBackup copies backup n over the file at path. The current file is
// backed up first, so a restore can itself be undone.
func RestoreBackup(path string, n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	backupPath := BackupPath(path, n)
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist", n)
		}
		return err
	}

	// Read before rotating: rotation renames the backup being restored.
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return err
	}

	if err := CreateBackup(path); err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = sourceFile.Close() }()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}
	return destFile.Close()
}

// Backups lists the backups of key.
func (s *FileStore) Backups(key string) ([]BackupInfo, error) {
	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}
	return ListBackups(path), nil
}

// Restore replaces the value of key with backup n.
func (s *FileStore) Restore(key string, n int) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	return RestoreBackup(path, n)
}
