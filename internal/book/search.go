package book

import "strings"

// Filter applies all non-empty criteria and returns matching books.
type Filter struct {
	Search string // matches title, author, or description, case-insensitive
	Author string // exact author match
}

// Apply returns the subset of books matching all non-empty filter fields,
// in input order.
func (f Filter) Apply(books []Book) []Book {
	var out []Book
	for _, b := range books {
		if f.Author != "" && b.Author != f.Author {
			continue
		}
		if f.Search != "" && !matchesSearch(b, f.Search) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Authors returns the distinct author names in first-appearance order,
// for the author filter control.
func Authors(books []Book) []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range books {
		if b.Author == "" || seen[b.Author] {
			continue
		}
		seen[b.Author] = true
		out = append(out, b.Author)
	}
	return out
}

func matchesSearch(b Book, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(b.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Author), q) {
		return true
	}
	return strings.Contains(strings.ToLower(b.Description), q)
}
