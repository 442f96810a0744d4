// Package store talks to the remote document store. The journal treats
// the store as an external collaborator behind a minimal interface:
// collections of JSON documents plus per-book sub-collections for
// comments and reactions.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Document is one record in a remote collection.
type Document struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// Store is the minimal surface of the remote document store.
type Store interface {
	// Ping reports whether the remote store is reachable. Used once at
	// startup with a bounded timeout; on failure the app renders from
	// the local snapshot instead of blocking.
	Ping(ctx context.Context) error

	// ListAll fetches every document in a collection, in store order.
	ListAll(ctx context.Context, collection string) ([]Document, error)

	// Get fetches a single document. Returns ErrNotFound if absent.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Create adds a document and returns its store-assigned id.
	Create(ctx context.Context, collection string, data []byte) (string, error)

	// Update overwrites an existing document. Returns ErrNotFound if the
	// document does not exist.
	Update(ctx context.Context, collection, id string, data []byte) error

	// UpsertMerge writes the document, merging with any existing fields
	// and creating it when absent.
	UpsertMerge(ctx context.Context, collection, id string, data []byte) error

	// Delete removes a document. Deleting an absent document is not an
	// error.
	Delete(ctx context.Context, collection, id string) error
}

// Sub returns the collection path of a sub-collection scoped under one
// document, e.g. Sub("books", "7", "comments") → "books/7/comments".
func Sub(collection, id, name string) string {
	return fmt.Sprintf("%s/%s/%s", collection, id, name)
}
