package book

// Book is one entry in the journal's book collection.
//
// ID is the numeric in-app identifier, assigned locally when the remote
// identifier is not itself numeric. RemoteID addresses the document in the
// remote store and may differ from ID.
type Book struct {
	ID           int          `json:"id" yaml:"id"`
	RemoteID     string       `json:"remoteId,omitempty" yaml:"remote_id,omitempty"`
	Title        string       `json:"title" yaml:"title"`
	Author       string       `json:"author" yaml:"author"`
	ImageURL     string       `json:"imageUrl,omitempty" yaml:"image_url,omitempty"`
	Introduction string       `json:"introduction" yaml:"introduction"`
	Summary      string       `json:"summary" yaml:"summary"`
	Description  string       `json:"description,omitempty" yaml:"description,omitempty"` // legacy field, kept for older records
	Keywords     []string     `json:"keywords" yaml:"keywords"`
	Quotes       []Quote      `json:"quotes,omitempty" yaml:"quotes,omitempty"`
	Reflections  []Reflection `json:"reflections,omitempty" yaml:"reflections,omitempty"`
}

// Quote is a cited passage with an optional page reference.
type Quote struct {
	Title      string `json:"title" yaml:"title"`
	Content    string `json:"content" yaml:"content"`
	PageNumber string `json:"pageNumber,omitempty" yaml:"page_number,omitempty"`
}

// Reflection is a free-form note paired with the quotes by index.
type Reflection struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// ByID returns the first book with the given ID, or nil.
func ByID(books []Book, id int) *Book {
	for i := range books {
		if books[i].ID == id {
			return &books[i]
		}
	}
	return nil
}
