package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestExportLockPath(t *testing.T) {
	got := exportLockPath(filepath.Join("out", "exports") + string(filepath.Separator))
	if want := filepath.Join("out", "exports.lock"); got != want {
		t.Errorf("exportLockPath = %q, want %q", got, want)
	}
}

func TestAcquireExportLock(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	lock, err := acquireExportLock(dir)
	if err != nil {
		t.Fatalf("acquireExportLock: %v", err)
	}
	data, err := os.ReadFile(exportLockPath(dir))
	if err != nil {
		t.Fatalf("read lock file: %v", err)
	}
	if string(data) != strconv.Itoa(os.Getpid()) {
		t.Errorf("lock file = %q, want own pid", data)
	}

	_, err = acquireExportLock(dir)
	if err == nil {
		t.Fatal("second acquire succeeded while lock is held")
	}
	if !strings.Contains(err.Error(), "in use") {
		t.Errorf("error = %v, want in-use message", err)
	}

	lock.Release()
	if _, err := os.Stat(exportLockPath(dir)); !os.IsNotExist(err) {
		t.Errorf("lock file still present after Release: %v", err)
	}

	again, err := acquireExportLock(dir)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	again.Release()
}

func TestIsCurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports.lock")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if !isCurrent(f) {
		t.Fatal("freshly opened file should be current")
	}
	if err := os.Remove(path); err != nil {
		t.Skipf("cannot remove an open file here: %v", err)
	}
	if isCurrent(f) {
		t.Error("unlinked file should not be current")
	}
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if isCurrent(f) {
		t.Error("replaced file should not be current")
	}
}

// A lock held on an unlinked inode must not block a new holder of the path.
func TestAcquireExportLock_IgnoresUnlinkedHolder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	old, err := os.OpenFile(exportLockPath(dir), os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	defer old.Close()
	if err := lockFile(old); err != nil {
		t.Fatalf("lockFile: %v", err)
	}
	if err := os.Remove(old.Name()); err != nil {
		t.Skipf("cannot remove an open file here: %v", err)
	}

	lock, err := acquireExportLock(dir)
	if err != nil {
		t.Fatalf("acquireExportLock: %v", err)
	}
	lock.Release()
	_ = unlockFile(old)
}
