// Package fsutil writes small state files so a crash never leaves them
// half written, and keeps the previous version next to them.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// BackupSuffix is appended to a path to name its backup copy.
const BackupSuffix = ".bak"

// WriteFileAtomic replaces path with data via a synced temp file in the
// same directory.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if err := fill(tmp, data, perm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}

	if err := replace(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename %s -> %s: %w", tmpPath, path, err)
	}

	syncDir(dir)
	return nil
}

// WriteFileWithBackup copies the current contents of path to path+".bak"
// and then writes data atomically. A missing or unreadable original only
// skips the backup.
func WriteFileWithBackup(path string, data []byte, perm os.FileMode) error {
	if old, err := os.ReadFile(path); err == nil {
		if err := WriteFileAtomic(path+BackupSuffix, old, perm); err != nil {
			return fmt.Errorf("backup %s: %w", path, err)
		}
	}
	return WriteFileAtomic(path, data, perm)
}

// ReadFileOrBackup reads path. When path does not exist or valid rejects
// its contents, the backup is tried instead. fromBackup reports which copy
// was returned. If neither exists the error satisfies os.IsNotExist.
func ReadFileOrBackup(path string, valid func([]byte) error) (data []byte, fromBackup bool, err error) {
	data, err = os.ReadFile(path)
	if err == nil {
		if valid == nil {
			return data, false, nil
		}
		if err = valid(data); err == nil {
			return data, false, nil
		}
	}
	primaryErr := err

	backup, bErr := os.ReadFile(path + BackupSuffix)
	if bErr != nil {
		return nil, false, primaryErr
	}
	if valid != nil {
		if vErr := valid(backup); vErr != nil {
			return nil, false, errors.Join(primaryErr, fmt.Errorf("backup: %w", vErr))
		}
	}
	return backup, true, nil
}

func fill(f *os.File, data []byte, perm os.FileMode) error {
	if err := f.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s: %w", f.Name(), err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", f.Name(), err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("fsync %s: %w", f.Name(), err)
	}
	return nil
}

// replace renames src over dst. Windows refuses to rename onto an existing
// file, so there dst is removed first and the swap is not atomic.
func replace(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || runtime.GOOS != "windows" {
		return err
	}
	if _, statErr := os.Stat(dst); statErr != nil {
		return err
	}
	if rmErr := os.Remove(dst); rmErr != nil {
		return err
	}
	return os.Rename(src, dst)
}

func syncDir(dir string) {
	f, err := os.Open(dir)
	if err != nil {
		return
	}
	defer f.Close()
	_ = f.Sync()
}
