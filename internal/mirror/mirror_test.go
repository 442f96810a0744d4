package mirror_test

import (
	"testing"

	"github.com/hondana-dev/hondana/internal/book"
	"github.com/hondana-dev/hondana/internal/mirror"
)

func TestReplaceAll_BumpsGeneration(t *testing.T) {
	m := mirror.New()
	if m.Generation() != 0 {
		t.Fatalf("new mirror generation = %d, want 0", m.Generation())
	}

	m.ReplaceAll([]book.Book{{ID: 1, Title: "A"}})
	if m.Generation() != 1 {
		t.Errorf("generation = %d after first replace, want 1", m.Generation())
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}

	m.ReplaceAll([]book.Book{{ID: 1}, {ID: 2}})
	if m.Generation() != 2 {
		t.Errorf("generation = %d after second replace, want 2", m.Generation())
	}
	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}
}

func TestByID(t *testing.T) {
	m := mirror.New()
	m.ReplaceAll([]book.Book{{ID: 7, Title: "Seven"}})

	if b := m.ByID(7); b == nil || b.Title != "Seven" {
		t.Errorf("ByID(7) = %+v", b)
	}
	if b := m.ByID(8); b != nil {
		t.Errorf("ByID(8) = %+v, want nil", b)
	}
}

func TestBooks_PreservesOrder(t *testing.T) {
	m := mirror.New()
	m.ReplaceAll([]book.Book{{ID: 3}, {ID: 1}, {ID: 2}})

	got := m.Books()
	want := []int{3, 1, 2}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("[%d] = %d, want %d", i, got[i].ID, id)
		}
	}
}
