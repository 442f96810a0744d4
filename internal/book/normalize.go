package book

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// wireBook is the remote document shape. Older records carry only a
// description; newer ones split it into introduction and summary.
type wireBook struct {
	Title        string       `json:"title"`
	Author       string       `json:"author"`
	ImageURL     string       `json:"imageUrl"`
	Introduction string       `json:"introduction"`
	Summary      string       `json:"summary"`
	Description  string       `json:"description"`
	Keywords     []string     `json:"keywords"`
	Quotes       []Quote      `json:"quotes"`
	Reflections  []Reflection `json:"reflections"`
}

// FromRemote decodes one remote document into a Book, applying the
// field fallback chains that tolerate schema drift across record
// versions. The numeric ID is left unset; call AssignIDs on the full
// load to derive unique ids.
func FromRemote(remoteID string, data []byte) (Book, error) {
	var w wireBook
	if err := json.Unmarshal(data, &w); err != nil {
		return Book{}, fmt.Errorf("decoding book document %s: %w", remoteID, err)
	}

	b := Book{
		RemoteID:     remoteID,
		Title:        w.Title,
		Author:       w.Author,
		ImageURL:     w.ImageURL,
		Introduction: fallback(w.Introduction, w.Description),
		Summary:      fallback(w.Summary, w.Description),
		Description:  fallback(w.Description, w.Introduction),
		Keywords:     w.Keywords,
		Quotes:       w.Quotes,
		Reflections:  w.Reflections,
	}
	if b.Keywords == nil {
		b.Keywords = []string{}
	}
	return b, nil
}

// AssignIDs derives a unique positive numeric id for every book in place.
// Remote identifiers that parse as positive integers are used verbatim;
// the rest are numbered past the highest id seen, in load order, so ids
// from one load never collide.
func AssignIDs(books []Book) {
	maxID := 0
	taken := make(map[int]bool, len(books))

	for i := range books {
		n, err := strconv.Atoi(books[i].RemoteID)
		if err == nil && n > 0 && !taken[n] {
			books[i].ID = n
			taken[n] = true
			if n > maxID {
				maxID = n
			}
		} else {
			books[i].ID = 0
		}
	}
	for i := range books {
		if books[i].ID == 0 {
			maxID++
			books[i].ID = maxID
			taken[maxID] = true
		}
	}
}

// ToRemote encodes the book's content fields as a remote document body.
// Local identifiers never travel over the wire.
func (b Book) ToRemote() ([]byte, error) {
	w := wireBook{
		Title:        b.Title,
		Author:       b.Author,
		ImageURL:     b.ImageURL,
		Introduction: b.Introduction,
		Summary:      b.Summary,
		Keywords:     b.Keywords,
		Quotes:       b.Quotes,
		Reflections:  b.Reflections,
	}
	if w.Quotes == nil {
		w.Quotes = []Quote{}
	}
	if w.Reflections == nil {
		w.Reflections = []Reflection{}
	}
	return json.Marshal(w)
}

func fallback(primary, secondary string) string {
	if primary != "" {
		return primary
	}
	return secondary
}
