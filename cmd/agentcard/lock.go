package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ///////////////////////////////////////////////
// Export Lock
// ///////////////////////////////////////////////

// exportLockPath returns the lock file for exportDir. It sits next to the
// directory so the directory itself only ever holds cards.
func exportLockPath(exportDir string) string {
	return filepath.Clean(exportDir) + ".lock"
}

// exportLock is held by a watching process for as long as it runs, so two
// watchers never write the same export directory.
type exportLock struct {
	f *os.File
}

// acquireExportLock locks the export directory's lock file and records the
// holder's PID in it. It fails immediately if another process holds the lock.
func acquireExportLock(exportDir string) (*exportLock, error) {
	path := exportLockPath(exportDir)
	// A releasing holder unlinks the file before unlocking it. Locking that
	// unlinked inode proves nothing, so reopen the path and try again.
	for range 3 {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open lock file: %w", err)
		}
		if err := lockFile(f); err != nil {
			holder, _ := os.ReadFile(path)
			f.Close()
			if len(holder) > 0 {
				return nil, fmt.Errorf("export dir %s is in use by pid %s: %w", exportDir, holder, err)
			}
			return nil, fmt.Errorf("export dir %s is in use: %w", exportDir, err)
		}
		if !isCurrent(f) {
			_ = unlockFile(f)
			f.Close()
			continue
		}
		if err := f.Truncate(0); err != nil {
			_ = unlockFile(f)
			f.Close()
			return nil, fmt.Errorf("truncate lock file: %w", err)
		}
		if _, err := f.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0); err != nil {
			_ = unlockFile(f)
			f.Close()
			return nil, fmt.Errorf("write lock file: %w", err)
		}
		return &exportLock{f: f}, nil
	}
	return nil, fmt.Errorf("export dir %s: lock file keeps being replaced", exportDir)
}

// isCurrent reports whether f is still the file at its path.
func isCurrent(f *os.File) bool {
	opened, err := f.Stat()
	if err != nil {
		return false
	}
	onDisk, err := os.Stat(f.Name())
	if err != nil {
		return false
	}
	return os.SameFile(opened, onDisk)
}

// Release removes the lock file, then unlocks it. A waiting process that
// locks the old file in between sees it is no longer current and retries.
// Where an open file cannot be removed, removal happens after close.
func (l *exportLock) Release() {
	removed := os.Remove(l.f.Name()) == nil
	_ = unlockFile(l.f)
	l.f.Close()
	if !removed {
		os.Remove(l.f.Name())
	}
}
