package book_test

import (
	"strings"
	"testing"

	"github.com/hondana-dev/hondana/internal/book"
)

// --- FromRemote / fallback chains ---

func TestFromRemote_FallbackChains(t *testing.T) {
	legacy := []byte(`{"title":"T","author":"A","description":"legacy text"}`)
	b, err := book.FromRemote("doc1", legacy)
	if err != nil {
		t.Fatalf("FromRemote: %v", err)
	}
	if b.Introduction != "legacy text" {
		t.Errorf("Introduction = %q, want legacy fallback", b.Introduction)
	}
	if b.Summary != "legacy text" {
		t.Errorf("Summary = %q, want legacy fallback", b.Summary)
	}

	modern := []byte(`{"title":"T","author":"A","introduction":"intro","summary":"sum"}`)
	b, err = book.FromRemote("doc2", modern)
	if err != nil {
		t.Fatalf("FromRemote: %v", err)
	}
	if b.Introduction != "intro" || b.Summary != "sum" {
		t.Errorf("modern fields not preserved: %+v", b)
	}
	if b.Description != "intro" {
		t.Errorf("Description = %q, want reverse fallback to introduction", b.Description)
	}
}

func TestFromRemote_NilKeywords(t *testing.T) {
	b, err := book.FromRemote("x", []byte(`{"title":"T"}`))
	if err != nil {
		t.Fatalf("FromRemote: %v", err)
	}
	if b.Keywords == nil {
		t.Error("Keywords should be non-nil after normalization")
	}
}

func TestFromRemote_BadJSON(t *testing.T) {
	if _, err := book.FromRemote("x", []byte(`{not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

// --- AssignIDs ---

func TestAssignIDs_NumericRemoteIDsKept(t *testing.T) {
	books := []book.Book{
		{RemoteID: "3"},
		{RemoteID: "7"},
	}
	book.AssignIDs(books)
	if books[0].ID != 3 || books[1].ID != 7 {
		t.Errorf("numeric remote ids not used verbatim: %d, %d", books[0].ID, books[1].ID)
	}
}

func TestAssignIDs_OpaqueIDsNumberedPastMax(t *testing.T) {
	books := []book.Book{
		{RemoteID: "abc123"},
		{RemoteID: "9"},
		{RemoteID: "xyz789"},
	}
	book.AssignIDs(books)
	if books[1].ID != 9 {
		t.Errorf("numeric id not kept: %d", books[1].ID)
	}
	if books[0].ID != 10 || books[2].ID != 11 {
		t.Errorf("opaque ids = %d, %d, want 10, 11", books[0].ID, books[2].ID)
	}
}

func TestAssignIDs_UniquePositive(t *testing.T) {
	books := []book.Book{
		{RemoteID: "5"},
		{RemoteID: "5"}, // duplicate numeric remote id
		{RemoteID: "0"},
		{RemoteID: "-2"},
		{RemoteID: "weird"},
	}
	book.AssignIDs(books)
	seen := make(map[int]bool)
	for i, b := range books {
		if b.ID <= 0 {
			t.Errorf("[%d] id %d not positive", i, b.ID)
		}
		if seen[b.ID] {
			t.Errorf("[%d] id %d not unique", i, b.ID)
		}
		seen[b.ID] = true
	}
}

// --- Draft validation ---

func TestDraft_Validate_AllRequired(t *testing.T) {
	d := book.Draft{
		Title:        "T",
		Author:       "A",
		Introduction: "I",
		Summary:      "S",
		Keywords:     "k1, k2",
	}
	if err := d.Validate(); err != nil {
		t.Errorf("valid draft rejected: %v", err)
	}
}

func TestDraft_Validate_EmptyKeywords(t *testing.T) {
	d := book.Draft{Title: "T", Author: "A", Introduction: "I", Summary: "S", Keywords: " , ,"}
	err := d.Validate()
	if err == nil {
		t.Fatal("draft with empty keywords accepted")
	}
	if !strings.Contains(err.Error(), "keywords") {
		t.Errorf("error %q does not name keywords", err)
	}
}

func TestDraft_Validate_WhitespaceTitle(t *testing.T) {
	d := book.Draft{Title: "   ", Author: "A", Introduction: "I", Summary: "S", Keywords: "k"}
	if err := d.Validate(); err == nil {
		t.Error("whitespace-only title accepted")
	}
}

func TestDraft_Clean_DropsHalfFilledGroups(t *testing.T) {
	d := book.Draft{
		Title: "T", Author: "A", Introduction: "I", Summary: "S", Keywords: "k1, k2",
		Quotes: []book.Quote{
			{Title: "q1", Content: "c1", PageNumber: " 12 "},
			{Title: "q2", Content: ""}, // dropped
		},
		Reflections: []book.Reflection{
			{Title: "", Content: "c"}, // dropped
			{Title: "r2", Content: "c2"},
		},
	}
	b := d.Clean()
	if len(b.Quotes) != 1 || b.Quotes[0].PageNumber != "12" {
		t.Errorf("Quotes = %+v, want one trimmed quote", b.Quotes)
	}
	if len(b.Reflections) != 1 || b.Reflections[0].Title != "r2" {
		t.Errorf("Reflections = %+v, want one reflection", b.Reflections)
	}
	if len(b.Keywords) != 2 {
		t.Errorf("Keywords = %v, want 2 entries", b.Keywords)
	}
}

func TestParseKeywords(t *testing.T) {
	got := book.ParseKeywords(" k1,  k2 ,, k3")
	want := []string{"k1", "k2", "k3"}
	if len(got) != len(want) {
		t.Fatalf("ParseKeywords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// --- Filter ---

func sample() []book.Book {
	return []book.Book{
		{ID: 1, Title: "A", Author: "X", Description: "alpha", Keywords: []string{"k"}},
		{ID: 2, Title: "Basics", Author: "Y", Description: "beta"},
	}
}

func TestFilter_CaseInsensitiveTitle(t *testing.T) {
	got := book.Filter{Search: "a"}.Apply(sample())
	if len(got) != 2 {
		t.Fatalf("search %q matched %d books, want 2", "a", len(got))
	}
	got = book.Filter{Search: "BASICS"}.Apply(sample())
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("upper-case search failed: %+v", got)
	}
}

func TestFilter_NoMatch(t *testing.T) {
	got := book.Filter{Search: "zzz"}.Apply(sample())
	if len(got) != 0 {
		t.Errorf("expected 0 matches, got %d", len(got))
	}
}

func TestFilter_ByAuthor(t *testing.T) {
	got := book.Filter{Author: "Y"}.Apply(sample())
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("author filter: %+v", got)
	}
}

func TestAuthors_DistinctOrdered(t *testing.T) {
	books := append(sample(), book.Book{ID: 3, Author: "X"})
	got := book.Authors(books)
	if len(got) != 2 || got[0] != "X" || got[1] != "Y" {
		t.Errorf("Authors = %v, want [X Y]", got)
	}
}

func TestByID(t *testing.T) {
	books := sample()
	if b := book.ByID(books, 2); b == nil || b.Title != "Basics" {
		t.Errorf("ByID(2) = %+v", b)
	}
	if b := book.ByID(books, 99); b != nil {
		t.Errorf("ByID(99) = %+v, want nil", b)
	}
}
