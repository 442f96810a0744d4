package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is an authenticated HTTP client for the document-store API.
type Client struct {
	token   string
	apiBase string
	project string
	http    *http.Client
}

// NewClient creates a Client for the given API base URL and project.
func NewClient(token, apiBase, project string) *Client {
	apiBase = strings.TrimRight(apiBase, "/")
	return &Client{
		token:   token,
		apiBase: apiBase,
		project: project,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

var _ Store = (*Client)(nil)

// Ping checks reachability of the store.
func (c *Client) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, c.url("ping"), nil, nil)
}

// ListAll fetches every document in a collection.
func (c *Client) ListAll(ctx context.Context, collection string) ([]Document, error) {
	var out struct {
		Documents []Document `json:"documents"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.collectionURL(collection), nil, &out); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

// Get fetches a single document.
func (c *Client) Get(ctx context.Context, collection, id string) (Document, error) {
	var doc Document
	err := c.doJSON(ctx, http.MethodGet, c.documentURL(collection, id), nil, &doc)
	return doc, err
}

// Create adds a document and returns its store-assigned id.
func (c *Client) Create(ctx context.Context, collection string, data []byte) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, c.collectionURL(collection), data, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// Update overwrites an existing document.
func (c *Client) Update(ctx context.Context, collection, id string, data []byte) error {
	return c.doJSON(ctx, http.MethodPatch, c.documentURL(collection, id), data, nil)
}

// UpsertMerge writes the document, merging fields and creating it when
// absent.
func (c *Client) UpsertMerge(ctx context.Context, collection, id string, data []byte) error {
	return c.doJSON(ctx, http.MethodPut, c.documentURL(collection, id)+"?merge=true", data, nil)
}

// Delete removes a document. An absent document is not an error.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	err := c.doJSON(ctx, http.MethodDelete, c.documentURL(collection, id), nil, nil)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// doJSON sends a request and decodes the JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, url string, body []byte, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// url builds an API URL from path segments under the project root.
func (c *Client) url(parts ...string) string {
	all := append([]string{c.apiBase, "v1", "projects", c.project}, parts...)
	return strings.Join(all, "/")
}

func (c *Client) collectionURL(collection string) string {
	return c.url("collections", collection, "documents")
}

func (c *Client) documentURL(collection, id string) string {
	return c.url("collections", collection, "documents", id)
}

// checkStatus returns a typed error for non-2xx responses.
func checkStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("store API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
