package library_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/hondana-dev/hondana/internal/book"
	"github.com/hondana-dev/hondana/internal/cache"
	"github.com/hondana-dev/hondana/internal/library"
	"github.com/hondana-dev/hondana/internal/mirror"
	"github.com/hondana-dev/hondana/internal/store"
)

func newService(t *testing.T, mem *store.Memory) *library.Service {
	t.Helper()
	return library.New(mem, mirror.New(), cache.New(t.TempDir()), "books", time.Second)
}

func validDraft() book.Draft {
	return book.Draft{
		Title:        "銀河鉄道の夜",
		Author:       "宮沢賢治",
		Introduction: "intro",
		Summary:      "summary",
		Keywords:     " fantasy , classic ",
	}
}

func TestSave_ValidationRejectsBeforeRemoteCall(t *testing.T) {
	mem := store.NewMemory()
	svc := newService(t, mem)

	d := validDraft()
	d.Keywords = " , "
	err := svc.Save(context.Background(), d)
	if err == nil {
		t.Fatal("invalid draft accepted")
	}
	if mem.Calls() != 0 {
		t.Errorf("remote calls on validation failure = %d, want 0", mem.Calls())
	}
}

func TestSave_CreateSplitsKeywordsAndReloads(t *testing.T) {
	mem := store.NewMemory()
	svc := newService(t, mem)
	ctx := context.Background()

	genBefore := svc.Mirror().Generation()
	if err := svc.Save(ctx, validDraft()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	docs, _ := mem.ListAll(ctx, "books")
	if len(docs) != 1 {
		t.Fatalf("stored %d documents, want 1", len(docs))
	}
	var wire struct {
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal(docs[0].Data, &wire); err != nil {
		t.Fatalf("decoding stored document: %v", err)
	}
	if len(wire.Keywords) != 2 || wire.Keywords[0] != "fantasy" || wire.Keywords[1] != "classic" {
		t.Errorf("keywords = %v, want [fantasy classic]", wire.Keywords)
	}

	if svc.Mirror().Generation() == genBefore {
		t.Error("mirror generation unchanged after successful save")
	}
	if svc.Mirror().Len() != 1 {
		t.Errorf("mirror has %d books after save, want 1", svc.Mirror().Len())
	}
}

func TestSave_UpdateExisting(t *testing.T) {
	mem := store.NewMemory()
	mem.Seed("books", "5", []byte(`{"title":"old","author":"a","introduction":"i","summary":"s","keywords":["k"]}`))
	svc := newService(t, mem)
	ctx := context.Background()

	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	b := svc.Mirror().ByID(5)
	if b == nil {
		t.Fatal("book 5 missing after reload")
	}

	d := book.DraftOf(*b)
	d.Title = "new title"
	if err := svc.Save(ctx, d); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := svc.Mirror().ByID(5)
	if got == nil || got.Title != "new title" {
		t.Errorf("after update: %+v", got)
	}
	if svc.Mirror().Len() != 1 {
		t.Errorf("update created extra books: %d", svc.Mirror().Len())
	}
}

func TestSave_VanishedTargetUpserts(t *testing.T) {
	mem := store.NewMemory()
	svc := newService(t, mem)
	ctx := context.Background()

	// A draft that claims an existing id whose document is gone. Update
	// returns not-found and the save falls back to an upsert.
	d := validDraft()
	d.ID = 9
	d.RemoteID = "9"
	if err := svc.Save(ctx, d); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := mem.Get(ctx, "books", "9"); err != nil {
		t.Errorf("document 9 not upserted: %v", err)
	}
}

func TestReload_ErrorKeepsMirror(t *testing.T) {
	mem := store.NewMemory()
	mem.Seed("books", "1", []byte(`{"title":"t","author":"a"}`))
	svc := newService(t, mem)
	ctx := context.Background()

	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	gen := svc.Mirror().Generation()

	mem.Err = context.DeadlineExceeded
	if err := svc.Reload(ctx); err == nil {
		t.Fatal("Reload on failing store succeeded")
	}
	if svc.Mirror().Len() != 1 || svc.Mirror().Generation() != gen {
		t.Error("mirror changed by failed reload")
	}
}

func TestReload_EmptyResultKeepsMirror(t *testing.T) {
	mem := store.NewMemory()
	mem.Seed("books", "1", []byte(`{"title":"t","author":"a"}`))
	svc := newService(t, mem)
	ctx := context.Background()

	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	// Simulate a transiently empty listing by deleting the document.
	_ = mem.Delete(ctx, "books", "1")
	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("Reload on empty: %v", err)
	}
	if svc.Mirror().Len() != 1 {
		t.Errorf("empty listing wiped the mirror: %d books", svc.Mirror().Len())
	}
}

func TestReload_SkipsMalformedDocuments(t *testing.T) {
	mem := store.NewMemory()
	mem.Seed("books", "1", []byte(`{"title":"good","author":"a"}`))
	mem.Seed("books", "2", []byte(`not json`))
	svc := newService(t, mem)

	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if svc.Mirror().Len() != 1 {
		t.Errorf("mirror has %d books, want 1 (malformed skipped)", svc.Mirror().Len())
	}
}

func TestDelete_RemovesAndReloads(t *testing.T) {
	mem := store.NewMemory()
	mem.Seed("books", "1", []byte(`{"title":"keep","author":"a"}`))
	mem.Seed("books", "2", []byte(`{"title":"drop","author":"a"}`))
	svc := newService(t, mem)
	ctx := context.Background()

	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if err := svc.Delete(ctx, 2); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if svc.Mirror().Len() != 1 || svc.Mirror().ByID(2) != nil {
		t.Errorf("book 2 still mirrored after delete")
	}
	if _, err := mem.Get(ctx, "books", "2"); err != store.ErrNotFound {
		t.Errorf("document 2 still stored: %v", err)
	}
}

func TestDelete_StaleIDIsNoop(t *testing.T) {
	mem := store.NewMemory()
	svc := newService(t, mem)

	if err := svc.Delete(context.Background(), 42); err != nil {
		t.Fatalf("Delete of unknown id: %v", err)
	}
	if mem.Calls() != 0 {
		t.Errorf("remote calls for stale delete = %d, want 0", mem.Calls())
	}
}

func TestStartup_FallsBackToSnapshot(t *testing.T) {
	mem := store.NewMemory()
	mem.Err = context.DeadlineExceeded
	c := cache.New(t.TempDir())
	if err := c.WriteSnapshot([]book.Book{{ID: 1, Title: "cached", Author: "a"}}); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	svc := library.New(mem, mirror.New(), c, "books", 50*time.Millisecond)

	fromRemote, err := svc.Startup(context.Background())
	if err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if fromRemote {
		t.Error("fromRemote true with unreachable store")
	}
	if svc.Mirror().Len() != 1 || svc.Mirror().ByID(1).Title != "cached" {
		t.Errorf("snapshot not restored: %d books", svc.Mirror().Len())
	}
}

func TestStartup_RemoteWinsWhenReachable(t *testing.T) {
	mem := store.NewMemory()
	mem.Seed("books", "1", []byte(`{"title":"remote","author":"a"}`))
	svc := newService(t, mem)

	fromRemote, err := svc.Startup(context.Background())
	if err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if !fromRemote {
		t.Error("fromRemote false with reachable store")
	}
	if svc.Mirror().Len() != 1 || svc.Mirror().ByID(1).Title != "remote" {
		t.Errorf("remote books not loaded")
	}
}

func TestCounts_CachedPerBook(t *testing.T) {
	mem := store.NewMemory()
	mem.Seed("books/7/comments", "c1", []byte(`{"authorId":"x","content":"hi"}`))
	mem.Seed("books/7/wantToRead", "r1", []byte(`{"authorId":"x"}`))
	mem.Seed("books/7/wantToRead", "r2", []byte(`{"authorId":"y"}`))
	svc := newService(t, mem)
	b := book.Book{ID: 7, RemoteID: "7"}

	if _, ok := svc.CachedCounts(7); ok {
		t.Error("counts cached before any fetch")
	}
	got, err := svc.Counts(context.Background(), b)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if got.WantToRead != 2 || got.Comments != 1 {
		t.Errorf("counts = %+v, want {2 1}", got)
	}
	cached, ok := svc.CachedCounts(7)
	if !ok || cached != got {
		t.Errorf("cached counts = %+v, %v", cached, ok)
	}
}

func TestSubKey_PrefersRemoteID(t *testing.T) {
	if k := library.SubKey(book.Book{ID: 3, RemoteID: "abc"}); k != "abc" {
		t.Errorf("SubKey = %q, want abc", k)
	}
	if k := library.SubKey(book.Book{ID: 3}); k != "3" {
		t.Errorf("SubKey = %q, want 3", k)
	}
}

func TestService_ConcurrentFetchesAndReads(t *testing.T) {
	mem := store.NewMemory()
	mem.Seed("books", "1", []byte(`{"title":"t","author":"a","introduction":"i","summary":"s","keywords":["k"]}`))
	mem.Seed("books", "2", []byte(`{"title":"t2","author":"a","introduction":"i","summary":"s","keywords":["k"]}`))
	svc := newService(t, mem)
	ctx := context.Background()
	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	// Counts fetches and reloads run on background goroutines while the
	// event loop keeps reading the mirror and the counts cache.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		b := *svc.Mirror().ByID(i%2 + 1)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.Counts(ctx, b)
		}()
		go func() {
			defer wg.Done()
			_ = svc.Reload(ctx)
		}()
		_, _ = svc.CachedCounts(b.ID)
		_ = svc.Mirror().Books()
		_ = svc.Mirror().Generation()
	}
	wg.Wait()

	if svc.Mirror().Len() != 2 {
		t.Errorf("mirror len = %d, want 2", svc.Mirror().Len())
	}
	if _, ok := svc.CachedCounts(1); !ok {
		t.Error("counts for book 1 not cached")
	}
}
