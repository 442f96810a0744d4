package identity_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hondana-dev/hondana/internal/identity"
)

func signInServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestSignIn_Success_NotifiesObserver(t *testing.T) {
	srv := signInServer(t, http.StatusOK, `{"localId":"u1","email":"a@b.jp","idToken":"tok"}`)
	defer srv.Close()

	c := identity.NewClient("key", srv.URL)

	var calls []*identity.Session
	c.OnChange(func(s *identity.Session) { calls = append(calls, s) })
	if len(calls) != 1 || calls[0] != nil {
		t.Fatalf("observer should fire immediately with nil session, got %v", calls)
	}

	s, err := c.SignIn(context.Background(), "a@b.jp", "pw")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if s.UserID != "u1" || s.Email != "a@b.jp" {
		t.Errorf("session = %+v", s)
	}
	if len(calls) != 2 || calls[1] == nil {
		t.Errorf("observer not notified of sign-in: %v", calls)
	}

	c.SignOut()
	if len(calls) != 3 || calls[2] != nil {
		t.Errorf("observer not notified of sign-out: %v", calls)
	}
	if c.Session() != nil {
		t.Error("session not cleared after sign-out")
	}
}

func TestSignIn_ErrorKinds(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{"EMAIL_NOT_FOUND", identity.ErrUnknownAccount},
		{"INVALID_PASSWORD", identity.ErrInvalidCredentials},
		{"INVALID_LOGIN_CREDENTIALS", identity.ErrInvalidCredentials},
		{"INVALID_EMAIL", identity.ErrMalformedEmail},
		{"TOO_MANY_ATTEMPTS_TRY_LATER", identity.ErrRateLimited},
	}
	for _, tc := range cases {
		srv := signInServer(t, http.StatusBadRequest, `{"error":{"message":"`+tc.code+`"}}`)
		c := identity.NewClient("key", srv.URL)
		_, err := c.SignIn(context.Background(), "a@b.jp", "pw")
		if !errors.Is(err, tc.want) {
			t.Errorf("code %s → %v, want %v", tc.code, err, tc.want)
		}
		srv.Close()
	}
}

// --- Profile ---

func TestProfile_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	p, err := identity.LoadProfile(dir)
	if err != nil {
		t.Fatalf("LoadProfile empty dir: %v", err)
	}
	if p != nil {
		t.Fatal("expected nil profile before creation")
	}

	p, err = identity.NewProfile(dir, "Reader")
	if err != nil {
		t.Fatalf("NewProfile: %v", err)
	}
	if p.AnonymousID == "" {
		t.Error("AnonymousID empty")
	}

	p2, err := identity.LoadProfile(dir)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p2 == nil || p2.AnonymousID != p.AnonymousID || p2.DisplayName != "Reader" {
		t.Errorf("reloaded profile = %+v", p2)
	}
}

func TestProfile_Reactions(t *testing.T) {
	p := &identity.Profile{AnonymousID: "x", ReactedBookIDs: []string{}}

	p.SetReacted("7", true)
	p.SetReacted("7", true) // idempotent add
	if !p.HasReacted("7") {
		t.Error("HasReacted(7) = false after set")
	}
	if len(p.ReactedBookIDs) != 1 {
		t.Errorf("duplicate reaction recorded: %v", p.ReactedBookIDs)
	}

	p.SetReacted("7", false)
	if p.HasReacted("7") {
		t.Error("HasReacted(7) = true after clear")
	}
}
