package social_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hondana-dev/hondana/internal/identity"
	"github.com/hondana-dev/hondana/internal/social"
	"github.com/hondana-dev/hondana/internal/store"
)

func reader(id, name string) *identity.Profile {
	return &identity.Profile{AnonymousID: id, DisplayName: name, ReactedBookIDs: []string{}}
}

func TestPostComment_RoundTrip(t *testing.T) {
	mem := store.NewMemory()
	svc := social.NewService(mem, "books")
	ctx := context.Background()
	p := reader("anon1", "Reader One")

	c, err := svc.PostComment(ctx, p, "7", "  great book  ")
	if err != nil {
		t.Fatalf("PostComment: %v", err)
	}
	if c.Content != "great book" {
		t.Errorf("content not trimmed: %q", c.Content)
	}
	if c.ID == "" {
		t.Error("comment id empty")
	}

	got, err := svc.Comments(ctx, "7")
	if err != nil {
		t.Fatalf("Comments: %v", err)
	}
	if len(got) != 1 || got[0].AuthorName != "Reader One" {
		t.Errorf("comments = %+v", got)
	}
}

func TestPostComment_Validation(t *testing.T) {
	svc := social.NewService(store.NewMemory(), "books")
	ctx := context.Background()
	p := reader("anon1", "R")

	if _, err := svc.PostComment(ctx, p, "7", "   "); !errors.Is(err, social.ErrEmptyComment) {
		t.Errorf("blank comment → %v, want ErrEmptyComment", err)
	}
	long := strings.Repeat("あ", social.MaxCommentLen+1)
	if _, err := svc.PostComment(ctx, p, "7", long); !errors.Is(err, social.ErrCommentTooLong) {
		t.Errorf("long comment → %v, want ErrCommentTooLong", err)
	}
	// Exactly at the limit is fine (runes, not bytes).
	atLimit := strings.Repeat("あ", social.MaxCommentLen)
	if _, err := svc.PostComment(ctx, p, "7", atLimit); err != nil {
		t.Errorf("comment at limit rejected: %v", err)
	}
	if _, err := svc.PostComment(ctx, nil, "7", "x"); !errors.Is(err, social.ErrNoProfile) {
		t.Errorf("nil profile → %v, want ErrNoProfile", err)
	}
}

func TestEditComment_OwnershipAdvisory(t *testing.T) {
	mem := store.NewMemory()
	svc := social.NewService(mem, "books")
	ctx := context.Background()
	owner := reader("anon1", "Owner")
	other := reader("anon2", "Other")

	c, err := svc.PostComment(ctx, owner, "7", "original")
	if err != nil {
		t.Fatalf("PostComment: %v", err)
	}

	if err := svc.EditComment(ctx, other, "7", c.ID, "hijack"); !errors.Is(err, social.ErrNotOwner) {
		t.Errorf("foreign edit → %v, want ErrNotOwner", err)
	}

	if err := svc.EditComment(ctx, owner, "7", c.ID, "updated"); err != nil {
		t.Fatalf("EditComment: %v", err)
	}
	got, _ := svc.Comments(ctx, "7")
	if got[0].Content != "updated" || !got[0].Edited {
		t.Errorf("edited comment = %+v", got[0])
	}
	if !got[0].UpdatedAt.After(got[0].CreatedAt) && !got[0].UpdatedAt.Equal(got[0].CreatedAt) {
		t.Error("UpdatedAt not advanced")
	}
}

func TestDeleteComment_OwnershipAdvisory(t *testing.T) {
	mem := store.NewMemory()
	svc := social.NewService(mem, "books")
	ctx := context.Background()
	owner := reader("anon1", "Owner")
	other := reader("anon2", "Other")

	c, _ := svc.PostComment(ctx, owner, "7", "mine")

	if err := svc.DeleteComment(ctx, other, "7", c.ID); !errors.Is(err, social.ErrNotOwner) {
		t.Errorf("foreign delete → %v, want ErrNotOwner", err)
	}
	if err := svc.DeleteComment(ctx, owner, "7", c.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	got, _ := svc.Comments(ctx, "7")
	if len(got) != 0 {
		t.Errorf("comment not deleted: %+v", got)
	}
}

func TestToggleReaction_SequentialRoundTrip(t *testing.T) {
	mem := store.NewMemory()
	svc := social.NewService(mem, "books")
	ctx := context.Background()
	p := reader("anon1", "R")

	active, err := svc.ToggleReaction(ctx, p, "7")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !active || !p.HasReacted("7") {
		t.Error("first toggle should activate")
	}

	active, err = svc.ToggleReaction(ctx, p, "7")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if active || p.HasReacted("7") {
		t.Error("second toggle should deactivate")
	}

	reactions, _ := svc.Reactions(ctx, "7")
	if len(reactions) != 0 {
		t.Errorf("reactions after round trip = %+v", reactions)
	}
}

func TestToggleReaction_OnePerReader(t *testing.T) {
	mem := store.NewMemory()
	svc := social.NewService(mem, "books")
	ctx := context.Background()
	a := reader("anonA", "A")
	b := reader("anonB", "B")

	_, _ = svc.ToggleReaction(ctx, a, "7")
	_, _ = svc.ToggleReaction(ctx, b, "7")

	w, c, err := svc.Counts(ctx, "7")
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if w != 2 || c != 0 {
		t.Errorf("counts = (%d, %d), want (2, 0)", w, c)
	}
}

func TestComments_NewestFirst(t *testing.T) {
	mem := store.NewMemory()
	svc := social.NewService(mem, "books")
	ctx := context.Background()

	// Seed with explicit timestamps to avoid same-instant ordering.
	mem.Seed("books/7/comments", "c1", []byte(`{"authorId":"anon1","content":"old","createdAt":"2026-01-01T00:00:00Z"}`))
	mem.Seed("books/7/comments", "c2", []byte(`{"authorId":"anon1","content":"new","createdAt":"2026-02-01T00:00:00Z"}`))

	got, err := svc.Comments(ctx, "7")
	if err != nil {
		t.Fatalf("Comments: %v", err)
	}
	if len(got) != 2 || got[0].Content != "new" || got[1].Content != "old" {
		t.Errorf("order wrong: %+v", got)
	}
}
