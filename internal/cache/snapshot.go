package cache

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hondana-dev/hondana/internal/book"
	"gopkg.in/yaml.v3"
)

// WriteSnapshot persists the mirrored books to disk. Called after every
// completed reload; the write is atomic (temp file + rename) so a crash
// never leaves a torn snapshot.
func (m *Manager) WriteSnapshot(books []book.Book) error {
	if err := m.EnsureDir(); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(books); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	dest := m.SnapshotPath()
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// ReadSnapshot loads the persisted books, or an empty slice when no
// snapshot exists yet.
func (m *Manager) ReadSnapshot() ([]book.Book, error) {
	data, err := os.ReadFile(m.SnapshotPath())
	if err != nil {
		if os.IsNotExist(err) {
			return []book.Book{}, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var books []book.Book
	if err := yaml.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if books == nil {
		books = []book.Book{}
	}
	return books, nil
}
