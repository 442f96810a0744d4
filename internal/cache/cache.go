// Package cache keeps the on-disk snapshot of the book mirror and the
// exported HTML index. The snapshot lets startup render with whatever
// data was last seen when the remote store is unreachable.
package cache

import (
	"os"
	"path/filepath"
)

// Manager handles the local cache directory.
type Manager struct {
	baseDir string
}

// New creates a cache Manager rooted at baseDir.
func New(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// SnapshotPath returns the path of the mirror snapshot file.
func (m *Manager) SnapshotPath() string {
	return filepath.Join(m.baseDir, "books.yml")
}

// IndexPath returns the path of the exported HTML index.
func (m *Manager) IndexPath() string {
	return filepath.Join(m.baseDir, "index.html")
}

// EnsureDir creates the cache directory.
func (m *Manager) EnsureDir() error {
	return os.MkdirAll(m.baseDir, 0750)
}
