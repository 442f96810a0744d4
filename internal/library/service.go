// Package library owns reconciliation between the local mirror and the
// remote book collection. The only consistency mechanism is the full
// reload: every successful write is followed by a wholesale mirror
// replacement, so the mirror reflects remote state as of the last
// completed reload and concurrent writers resolve to last-reload-wins.
package library

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/hondana-dev/hondana/internal/book"
	"github.com/hondana-dev/hondana/internal/cache"
	"github.com/hondana-dev/hondana/internal/mirror"
	"github.com/hondana-dev/hondana/internal/social"
	"github.com/hondana-dev/hondana/internal/store"
)

// Counts are the derived per-book numbers computed from the two
// sub-collections. They are cached per book id and refreshed on each
// detail view — there is no other invalidation.
type Counts struct {
	WantToRead int
	Comments   int
}

// Service reconciles the mirror with the remote store. Fetches run on
// background goroutines while the event loop reads, so the counts cache
// is guarded.
type Service struct {
	store   store.Store
	mirror  *mirror.Mirror
	cache   *cache.Manager
	social  *social.Service
	col     string
	timeout time.Duration

	countsMu sync.Mutex
	counts   map[int]Counts
}

// New creates a Service. timeout bounds the startup reachability check.
func New(st store.Store, m *mirror.Mirror, c *cache.Manager, collection string, timeout time.Duration) *Service {
	return &Service{
		store:   st,
		mirror:  m,
		cache:   c,
		social:  social.NewService(st, collection),
		col:     collection,
		timeout: timeout,
		counts:  make(map[int]Counts),
	}
}

// Mirror returns the service's mirror.
func (s *Service) Mirror() *mirror.Mirror {
	return s.mirror
}

// Social returns the comment/reaction service bound to the same store.
func (s *Service) Social() *social.Service {
	return s.social
}

// Startup performs the bounded initialization handshake: ping the store
// within the configured timeout and reload on success; otherwise fall
// back to the on-disk snapshot. Rendering proceeds either way — startup
// never blocks past the timeout.
func (s *Service) Startup(ctx context.Context) (fromRemote bool, err error) {
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.store.Ping(pingCtx); err == nil {
		if err := s.Reload(ctx); err == nil {
			return true, nil
		}
	}

	books, err := s.cache.ReadSnapshot()
	if err != nil {
		return false, fmt.Errorf("snapshot fallback: %w", err)
	}
	if len(books) > 0 {
		s.mirror.ReplaceAll(books)
	}
	return false, nil
}

// Reload replaces the mirror wholesale from the remote collection and
// refreshes the snapshot. On remote error the mirror is left untouched.
// An empty remote result also leaves the existing mirror in place, so a
// transiently empty listing never wipes local data.
func (s *Service) Reload(ctx context.Context) error {
	docs, err := s.store.ListAll(ctx, s.col)
	if err != nil {
		return fmt.Errorf("loading books: %w", err)
	}
	if len(docs) == 0 {
		return nil
	}

	books := make([]book.Book, 0, len(docs))
	for _, d := range docs {
		b, err := book.FromRemote(d.ID, d.Data)
		if err != nil {
			continue // tolerate individual malformed documents
		}
		books = append(books, b)
	}
	book.AssignIDs(books)

	s.mirror.ReplaceAll(books)
	// Snapshot refresh is best-effort; a failed write must not fail the
	// reload the user sees.
	_ = s.cache.WriteSnapshot(books)
	return nil
}

// Save validates the draft and writes it to the remote store, then
// reloads. Validation failures reject the draft before any remote call.
// On update, a vanished target document is upserted instead of failing.
func (s *Service) Save(ctx context.Context, d book.Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}

	b := d.Clean()
	data, err := b.ToRemote()
	if err != nil {
		return err
	}

	if b.ID == 0 {
		if _, err := s.store.Create(ctx, s.col, data); err != nil {
			return fmt.Errorf("creating book: %w", err)
		}
	} else {
		remoteID := s.resolveRemoteID(b)
		err := s.store.Update(ctx, s.col, remoteID, data)
		if errors.Is(err, store.ErrNotFound) {
			// Stale or mismatched id — create the document instead.
			err = s.store.UpsertMerge(ctx, s.col, remoteID, data)
		}
		if err != nil {
			return fmt.Errorf("saving book: %w", err)
		}
	}

	return s.Reload(ctx)
}

// Delete removes the book from the remote store and reloads. The caller
// is responsible for user confirmation.
func (s *Service) Delete(ctx context.Context, id int) error {
	b := s.mirror.ByID(id)
	if b == nil {
		return nil // stale id — nothing to delete
	}
	if err := s.store.Delete(ctx, s.col, s.resolveRemoteID(*b)); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	s.countsMu.Lock()
	delete(s.counts, id)
	s.countsMu.Unlock()
	return s.Reload(ctx)
}

// Counts fetches fresh sub-collection counts for the book and caches
// them under its numeric id.
func (s *Service) Counts(ctx context.Context, b book.Book) (Counts, error) {
	w, c, err := s.social.Counts(ctx, SubKey(b))
	if err != nil {
		return Counts{}, err
	}
	counts := Counts{WantToRead: w, Comments: c}
	s.countsMu.Lock()
	s.counts[b.ID] = counts
	s.countsMu.Unlock()
	return counts, nil
}

// CachedCounts returns the last fetched counts for a book id, if any.
func (s *Service) CachedCounts(id int) (Counts, bool) {
	s.countsMu.Lock()
	defer s.countsMu.Unlock()
	c, ok := s.counts[id]
	return c, ok
}

// SubKey returns the identity a book's sub-collections are keyed by:
// the remote document id when present, else the stringified numeric id.
// This matches how Save resolves write targets, so comments and
// reactions stay attached across renames of the local numeric id.
func SubKey(b book.Book) string {
	if b.RemoteID != "" {
		return b.RemoteID
	}
	return strconv.Itoa(b.ID)
}

func (s *Service) resolveRemoteID(b book.Book) string {
	return SubKey(b)
}
