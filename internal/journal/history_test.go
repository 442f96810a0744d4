package journal_test

import (
	"testing"

	"github.com/hondana-dev/hondana/internal/journal"
)

func TestHistory_PushBackForward(t *testing.T) {
	h := journal.NewHistory(journal.Entry{Screen: journal.ScreenList})
	h.Push(journal.Entry{Screen: journal.ScreenDetail, BookID: 7})
	h.Push(journal.Entry{Screen: journal.ScreenEdit, BookID: 7})

	e, ok := h.Back()
	if !ok || e.Screen != journal.ScreenDetail || e.BookID != 7 {
		t.Fatalf("Back = %+v, %v", e, ok)
	}
	e, ok = h.Back()
	if !ok || e.Screen != journal.ScreenList {
		t.Fatalf("second Back = %+v, %v", e, ok)
	}
	if _, ok := h.Back(); ok {
		t.Error("Back past the start should report false")
	}

	e, ok = h.Forward()
	if !ok || e.Screen != journal.ScreenDetail || e.BookID != 7 {
		t.Fatalf("Forward = %+v, %v", e, ok)
	}
	e, ok = h.Forward()
	if !ok || e.Screen != journal.ScreenEdit {
		t.Fatalf("second Forward = %+v, %v", e, ok)
	}
	if _, ok := h.Forward(); ok {
		t.Error("Forward past the end should report false")
	}
}

func TestHistory_ReplayDoesNotGrowStack(t *testing.T) {
	h := journal.NewHistory(journal.Entry{Screen: journal.ScreenList})
	h.Push(journal.Entry{Screen: journal.ScreenDetail, BookID: 7})

	depth := h.Depth()
	for i := 0; i < 5; i++ {
		h.Back()
		h.Forward()
	}
	if h.Depth() != depth {
		t.Errorf("depth after replays = %d, want %d", h.Depth(), depth)
	}
	if cur := h.Current(); cur.Screen != journal.ScreenDetail || cur.BookID != 7 {
		t.Errorf("current after replays = %+v", cur)
	}
}

func TestHistory_PushDiscardsForward(t *testing.T) {
	h := journal.NewHistory(journal.Entry{Screen: journal.ScreenList})
	h.Push(journal.Entry{Screen: journal.ScreenDetail, BookID: 1})
	h.Back()
	h.Push(journal.Entry{Screen: journal.ScreenDetail, BookID: 2})

	if _, ok := h.Forward(); ok {
		t.Error("forward entries should be discarded by a new push")
	}
	e, _ := h.Back()
	if e.Screen != journal.ScreenList {
		t.Errorf("Back after branch = %+v", e)
	}
}
