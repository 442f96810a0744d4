package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Profile is the anonymous reader identity: generated once, persisted
// durably, reused across runs. It signs comments and reactions but
// grants no access — comment ownership checks against it are advisory,
// client-trust-only.
type Profile struct {
	AnonymousID    string   `json:"anonymousId"`
	DisplayName    string   `json:"displayName"`
	ReactedBookIDs []string `json:"reactedBookIds"`
}

const profileFile = "reader.json"

// LoadProfile reads the stored profile from dir. Returns nil (no error)
// when none exists yet.
func LoadProfile(dir string) (*Profile, error) {
	data, err := os.ReadFile(filepath.Join(dir, profileFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading reader profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing reader profile: %w", err)
	}
	return &p, nil
}

// NewProfile creates a profile with a fresh anonymous id and persists it.
func NewProfile(dir, displayName string) (*Profile, error) {
	p := &Profile{
		AnonymousID:    uuid.NewString(),
		DisplayName:    displayName,
		ReactedBookIDs: []string{},
	}
	if err := p.Save(dir); err != nil {
		return nil, err
	}
	return p, nil
}

// Save writes the profile to dir.
func (p *Profile) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, profileFile), data, 0600)
}

// HasReacted reports whether the reader has an active reaction for the
// book.
func (p *Profile) HasReacted(bookID string) bool {
	for _, id := range p.ReactedBookIDs {
		if id == bookID {
			return true
		}
	}
	return false
}

// SetReacted records or clears the local reaction marker for the book.
func (p *Profile) SetReacted(bookID string, on bool) {
	if on {
		if !p.HasReacted(bookID) {
			p.ReactedBookIDs = append(p.ReactedBookIDs, bookID)
		}
		return
	}
	out := p.ReactedBookIDs[:0]
	for _, id := range p.ReactedBookIDs {
		if id != bookID {
			out = append(out, id)
		}
	}
	p.ReactedBookIDs = out
}
