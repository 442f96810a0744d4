package book

import "strings"

// Draft holds edit-form input before it becomes a Book. ID is zero when
// creating a new entry.
type Draft struct {
	ID           int
	RemoteID     string
	Title        string
	Author       string
	ImageURL     string
	Introduction string
	Summary      string
	Keywords     string // comma-separated
	Quotes       []Quote
	Reflections  []Reflection
}

// ValidationError lists the required fields missing from a draft.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "required: " + strings.Join(e.Missing, ", ")
}

// Validate checks the required fields. It runs before any remote write;
// a failing draft must never reach the store.
func (d Draft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Author) == "" {
		missing = append(missing, "author")
	}
	if strings.TrimSpace(d.Introduction) == "" {
		missing = append(missing, "introduction")
	}
	if strings.TrimSpace(d.Summary) == "" {
		missing = append(missing, "summary")
	}
	if len(ParseKeywords(d.Keywords)) == 0 {
		missing = append(missing, "keywords")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Clean converts the draft into a Book with trimmed fields. Quote and
// reflection groups missing a title or content are dropped, matching the
// edit screen's treatment of half-filled repeated groups.
func (d Draft) Clean() Book {
	b := Book{
		ID:           d.ID,
		RemoteID:     d.RemoteID,
		Title:        strings.TrimSpace(d.Title),
		Author:       strings.TrimSpace(d.Author),
		ImageURL:     strings.TrimSpace(d.ImageURL),
		Introduction: strings.TrimSpace(d.Introduction),
		Summary:      strings.TrimSpace(d.Summary),
		Keywords:     ParseKeywords(d.Keywords),
	}
	for _, q := range d.Quotes {
		q.Title = strings.TrimSpace(q.Title)
		q.Content = strings.TrimSpace(q.Content)
		q.PageNumber = strings.TrimSpace(q.PageNumber)
		if q.Title != "" && q.Content != "" {
			b.Quotes = append(b.Quotes, q)
		}
	}
	for _, r := range d.Reflections {
		r.Title = strings.TrimSpace(r.Title)
		r.Content = strings.TrimSpace(r.Content)
		if r.Title != "" && r.Content != "" {
			b.Reflections = append(b.Reflections, r)
		}
	}
	return b
}

// DraftOf pre-populates a draft from an existing book for the edit screen.
func DraftOf(b Book) Draft {
	return Draft{
		ID:           b.ID,
		RemoteID:     b.RemoteID,
		Title:        b.Title,
		Author:       b.Author,
		ImageURL:     b.ImageURL,
		Introduction: b.Introduction,
		Summary:      b.Summary,
		Keywords:     strings.Join(b.Keywords, ", "),
		Quotes:       append([]Quote(nil), b.Quotes...),
		Reflections:  append([]Reflection(nil), b.Reflections...),
	}
}

// ParseKeywords splits a comma-separated keyword string, trimming
// whitespace and dropping empties.
func ParseKeywords(raw string) []string {
	var out []string
	for _, k := range strings.Split(raw, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
