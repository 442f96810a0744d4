// Package mirror holds the in-memory copy of the remote book collection.
// The mirror is the single source of truth for rendering. It is only ever
// replaced wholesale after a completed reload — never patched in place —
// so it reflects remote state as of the last completed reload and nothing
// finer-grained (last reload wins).
package mirror

import (
	"sync"

	"github.com/hondana-dev/hondana/internal/book"
)

// Mirror is the local ordered copy of the book collection. Reloads run
// on background goroutines while the event loop renders, so access is
// guarded; the installed slice itself is immutable by convention.
type Mirror struct {
	mu         sync.RWMutex
	books      []book.Book
	generation uint64
}

// New returns an empty mirror at generation zero.
func New() *Mirror {
	return &Mirror{}
}

// ReplaceAll installs a fresh book slice and bumps the generation. The
// caller hands over ownership of the slice and must not mutate it after.
func (m *Mirror) ReplaceAll(books []book.Book) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books = books
	m.generation++
}

// Books returns the current book slice in mirror order. Callers must not
// mutate it.
func (m *Mirror) Books() []book.Book {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.books
}

// ByID returns the book with the given numeric id, or nil.
func (m *Mirror) ByID(id int) *book.Book {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return book.ByID(m.books, id)
}

// Len returns the number of mirrored books.
func (m *Mirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.books)
}

// Generation counts completed wholesale replacements. A changed
// generation means the slice identity changed, which is how callers
// distinguish a fresh reload from a local patch.
func (m *Mirror) Generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generation
}
