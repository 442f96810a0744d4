// Package social implements the comment and "want to read" reaction
// sub-features. Both live in per-book sub-collections of the remote
// store and are signed by the anonymous reader profile. Ownership
// checks compare stored anonymous ids locally — the store enforces
// nothing, so the checks are advisory, client-trust-only.
package social

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hondana-dev/hondana/internal/identity"
	"github.com/hondana-dev/hondana/internal/store"
)

// MaxCommentLen is the comment length ceiling in runes.
const MaxCommentLen = 500

var (
	// ErrNoProfile is returned when no reader profile exists yet.
	ErrNoProfile = errors.New("no reader profile — set a display name first")
	// ErrEmptyComment is returned for blank comment content.
	ErrEmptyComment = errors.New("comment is empty")
	// ErrCommentTooLong is returned when content exceeds MaxCommentLen.
	ErrCommentTooLong = fmt.Errorf("comment exceeds %d characters", MaxCommentLen)
	// ErrNotOwner is returned when editing or deleting someone else's
	// comment.
	ErrNotOwner = errors.New("comment belongs to another reader")
)

// Comment is one comment on a book.
type Comment struct {
	ID         string    `json:"-"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Edited     bool      `json:"isEdited"`
}

// Reaction is one "want to read" marker on a book.
type Reaction struct {
	ID         string    `json:"-"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// OwnedBy reports whether the comment was written under the given
// profile's anonymous identity.
func (c Comment) OwnedBy(p *identity.Profile) bool {
	return p != nil && c.AuthorID == p.AnonymousID
}

// Service runs comment and reaction operations against the store.
type Service struct {
	store store.Store
	books string // books collection name

	now func() time.Time
}

// NewService creates a Service over the given store and books
// collection.
func NewService(st store.Store, booksCollection string) *Service {
	return &Service{store: st, books: booksCollection, now: time.Now}
}

func (s *Service) commentsCol(bookID string) string {
	return store.Sub(s.books, bookID, "comments")
}

func (s *Service) reactionsCol(bookID string) string {
	return store.Sub(s.books, bookID, "wantToRead")
}

// Comments returns the book's comments, newest first.
func (s *Service) Comments(ctx context.Context, bookID string) ([]Comment, error) {
	docs, err := s.store.ListAll(ctx, s.commentsCol(bookID))
	if err != nil {
		return nil, fmt.Errorf("loading comments: %w", err)
	}
	out := make([]Comment, 0, len(docs))
	for _, d := range docs {
		var c Comment
		if err := json.Unmarshal(d.Data, &c); err != nil {
			continue // skip malformed documents rather than failing the list
		}
		c.ID = d.ID
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// PostComment validates and stores a new comment signed by the profile.
func (s *Service) PostComment(ctx context.Context, p *identity.Profile, bookID, content string) (Comment, error) {
	if p == nil {
		return Comment{}, ErrNoProfile
	}
	content, err := cleanContent(content)
	if err != nil {
		return Comment{}, err
	}

	now := s.now()
	c := Comment{
		AuthorID:   p.AnonymousID,
		AuthorName: p.DisplayName,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	data, err := json.Marshal(c)
	if err != nil {
		return Comment{}, err
	}
	id, err := s.store.Create(ctx, s.commentsCol(bookID), data)
	if err != nil {
		return Comment{}, fmt.Errorf("posting comment: %w", err)
	}
	c.ID = id
	return c, nil
}

// EditComment updates a comment's content. Only the comment's author
// may edit it; the check is advisory (client-side only).
func (s *Service) EditComment(ctx context.Context, p *identity.Profile, bookID, commentID, content string) error {
	if p == nil {
		return ErrNoProfile
	}
	content, err := cleanContent(content)
	if err != nil {
		return err
	}

	doc, err := s.store.Get(ctx, s.commentsCol(bookID), commentID)
	if err != nil {
		return fmt.Errorf("loading comment: %w", err)
	}
	var c Comment
	if err := json.Unmarshal(doc.Data, &c); err != nil {
		return fmt.Errorf("decoding comment: %w", err)
	}
	if !c.OwnedBy(p) {
		return ErrNotOwner
	}

	c.Content = content
	c.UpdatedAt = s.now()
	c.Edited = true
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := s.store.Update(ctx, s.commentsCol(bookID), commentID, data); err != nil {
		return fmt.Errorf("updating comment: %w", err)
	}
	return nil
}

// DeleteComment removes a comment. Only the author may delete it.
func (s *Service) DeleteComment(ctx context.Context, p *identity.Profile, bookID, commentID string) error {
	if p == nil {
		return ErrNoProfile
	}
	doc, err := s.store.Get(ctx, s.commentsCol(bookID), commentID)
	if err != nil {
		return fmt.Errorf("loading comment: %w", err)
	}
	var c Comment
	if err := json.Unmarshal(doc.Data, &c); err != nil {
		return fmt.Errorf("decoding comment: %w", err)
	}
	if !c.OwnedBy(p) {
		return ErrNotOwner
	}
	if err := s.store.Delete(ctx, s.commentsCol(bookID), commentID); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}

// Reactions returns all "want to read" markers for the book.
func (s *Service) Reactions(ctx context.Context, bookID string) ([]Reaction, error) {
	docs, err := s.store.ListAll(ctx, s.reactionsCol(bookID))
	if err != nil {
		return nil, fmt.Errorf("loading reactions: %w", err)
	}
	out := make([]Reaction, 0, len(docs))
	for _, d := range docs {
		var r Reaction
		if err := json.Unmarshal(d.Data, &r); err != nil {
			continue
		}
		r.ID = d.ID
		out = append(out, r)
	}
	return out, nil
}

// ToggleReaction flips the reader's "want to read" marker for the book
// and returns the new state. The store exposes no atomic conditional
// write, so this is lookup-then-mutate: two toggles racing from the
// same identity can transiently double-add. Sequential toggles always
// round-trip.
func (s *Service) ToggleReaction(ctx context.Context, p *identity.Profile, bookID string) (bool, error) {
	if p == nil {
		return false, ErrNoProfile
	}

	existing, err := s.Reactions(ctx, bookID)
	if err != nil {
		return false, err
	}
	for _, r := range existing {
		if r.AuthorID == p.AnonymousID {
			if err := s.store.Delete(ctx, s.reactionsCol(bookID), r.ID); err != nil {
				return true, fmt.Errorf("removing reaction: %w", err)
			}
			p.SetReacted(bookID, false)
			return false, nil
		}
	}

	r := Reaction{
		AuthorID:   p.AnonymousID,
		AuthorName: p.DisplayName,
		CreatedAt:  s.now(),
	}
	data, err := json.Marshal(r)
	if err != nil {
		return false, err
	}
	if _, err := s.store.Create(ctx, s.reactionsCol(bookID), data); err != nil {
		return false, fmt.Errorf("adding reaction: %w", err)
	}
	p.SetReacted(bookID, true)
	return true, nil
}

// Counts returns the want-to-read and comment counts for a book.
func (s *Service) Counts(ctx context.Context, bookID string) (wantToRead, comments int, err error) {
	reactions, err := s.store.ListAll(ctx, s.reactionsCol(bookID))
	if err != nil {
		return 0, 0, fmt.Errorf("counting reactions: %w", err)
	}
	cs, err := s.store.ListAll(ctx, s.commentsCol(bookID))
	if err != nil {
		return 0, 0, fmt.Errorf("counting comments: %w", err)
	}
	return len(reactions), len(cs), nil
}

func cleanContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyComment
	}
	if utf8.RuneCountInString(content) > MaxCommentLen {
		return "", ErrCommentTooLong
	}
	return content, nil
}
