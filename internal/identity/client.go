// Package identity talks to the remote identity provider and keeps the
// locally generated anonymous reader profile. The provider gates admin
// mode; the anonymous profile is not an authentication principal.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Session is the signed-in principal.
type Session struct {
	Email  string
	UserID string
	Token  string
}

// Client is an HTTP client for the identity provider.
type Client struct {
	apiKey    string
	apiBase   string
	http      *http.Client
	session   *Session
	observers []func(*Session)
}

// NewClient creates a Client for the given API base URL and key.
func NewClient(apiKey, apiBase string) *Client {
	return &Client{
		apiKey:  apiKey,
		apiBase: strings.TrimRight(apiBase, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// OnChange registers an observer invoked with the current session after
// every sign-in (non-nil) and sign-out (nil). The observer also fires
// immediately with the current state, mirroring auth-state listeners
// that replay the current principal on attach.
func (c *Client) OnChange(fn func(*Session)) {
	c.observers = append(c.observers, fn)
	fn(c.session)
}

// Session returns the current signed-in principal, or nil.
func (c *Client) Session() *Session {
	return c.session
}

// SignIn authenticates with email and password. Failure kinds are mapped
// to the package sentinel errors.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/accounts:signInWithPassword?key=%s", c.apiBase, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeSignInError(resp.Body)
	}

	var out struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	c.session = &Session{Email: out.Email, UserID: out.LocalID, Token: out.IDToken}
	c.notify()
	return c.session, nil
}

// SignOut clears the current session and notifies observers.
func (c *Client) SignOut() {
	c.session = nil
	c.notify()
}

func (c *Client) notify() {
	for _, fn := range c.observers {
		fn(c.session)
	}
}

// decodeSignInError maps provider error codes to sentinel errors.
func decodeSignInError(r io.Reader) error {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	raw, _ := io.ReadAll(r)
	if err := json.Unmarshal(raw, &e); err != nil {
		return fmt.Errorf("sign-in failed: %s", strings.TrimSpace(string(raw)))
	}

	code := e.Error.Message
	switch {
	case code == "EMAIL_NOT_FOUND":
		return ErrUnknownAccount
	case code == "INVALID_PASSWORD" || code == "INVALID_LOGIN_CREDENTIALS":
		return ErrInvalidCredentials
	case code == "INVALID_EMAIL":
		return ErrMalformedEmail
	case strings.HasPrefix(code, "TOO_MANY_ATTEMPTS"):
		return ErrRateLimited
	default:
		return fmt.Errorf("sign-in failed: %s", code)
	}
}
