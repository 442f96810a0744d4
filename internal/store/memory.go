package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-memory Store with the same semantics as the HTTP
// client. It backs --offline mode and the test suites; the call counter makes
// the "no remote call on validation failure" property observable.
// Operations may arrive from background goroutines, so all state is
// guarded by one mutex.
type Memory struct {
	// Err, when set, makes every operation fail with it.
	Err error

	mu        sync.Mutex
	callCount int

	collections map[string]*memCollection
}

// Calls reports how many operations have been issued, including failed
// ones.
func (m *Memory) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

type memCollection struct {
	order []string
	docs  map[string]json.RawMessage
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]*memCollection)}
}

var _ Store = (*Memory)(nil)

// Seed inserts a document with a fixed id, bypassing the call counter.
// Test setup only.
func (m *Memory) Seed(collection, id string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.collection(collection)
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = append(json.RawMessage(nil), data...)
}

func (m *Memory) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	return m.Err
}

func (m *Memory) ListAll(ctx context.Context, collection string) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	if m.Err != nil {
		return nil, m.Err
	}
	c := m.collection(collection)
	out := make([]Document, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, Document{ID: id, Data: c.docs[id]})
	}
	return out, nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	if m.Err != nil {
		return Document{}, m.Err
	}
	c := m.collection(collection)
	data, ok := c.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Data: data}, nil
}

func (m *Memory) Create(ctx context.Context, collection string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	if m.Err != nil {
		return "", m.Err
	}
	id := uuid.NewString()
	c := m.collection(collection)
	c.order = append(c.order, id)
	c.docs[id] = append(json.RawMessage(nil), data...)
	return id, nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	if m.Err != nil {
		return m.Err
	}
	c := m.collection(collection)
	if _, ok := c.docs[id]; !ok {
		return ErrNotFound
	}
	c.docs[id] = append(json.RawMessage(nil), data...)
	return nil
}

func (m *Memory) UpsertMerge(ctx context.Context, collection, id string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	if m.Err != nil {
		return m.Err
	}
	c := m.collection(collection)
	existing, ok := c.docs[id]
	if !ok {
		c.order = append(c.order, id)
		c.docs[id] = append(json.RawMessage(nil), data...)
		return nil
	}

	// Field-level merge of two JSON objects.
	var base, patch map[string]json.RawMessage
	if err := json.Unmarshal(existing, &base); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &patch); err != nil {
		return err
	}
	for k, v := range patch {
		base[k] = v
	}
	merged, err := json.Marshal(base)
	if err != nil {
		return err
	}
	c.docs[id] = merged
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	if m.Err != nil {
		return m.Err
	}
	c := m.collection(collection)
	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	for i, did := range c.order {
		if did == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) collection(name string) *memCollection {
	c, ok := m.collections[name]
	if !ok {
		c = &memCollection{docs: make(map[string]json.RawMessage)}
		m.collections[name] = c
	}
	return c
}
