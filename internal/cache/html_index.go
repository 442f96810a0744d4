package cache

import (
	"fmt"
	"html/template"
	"os"

	"github.com/hondana-dev/hondana/internal/book"
)

// cardView is the per-book view-model for the HTML index. Rendering
// goes through html/template so every user-supplied string is escaped
// in one place.
type cardView struct {
	Title        string
	Author       string
	ImageURL     string
	Introduction string
	Keywords     []string
}

type indexView struct {
	Count int
	Cards []cardView
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>hondana</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #1a1a1a; color: #e0e0e0; margin: 0; padding: 24px; }
h1 { font-size: 1.6rem; margin-bottom: 4px; }
.subtitle { color: #888; font-size: .9rem; margin-bottom: 24px; }
.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 18px; max-width: 1200px; }
.card { background: #242424; border: 1px solid #333; border-radius: 8px; padding: 16px; }
.card img { width: 100%; height: 180px; object-fit: cover; border-radius: 4px; margin-bottom: 10px; }
.card h3 { margin: 0 0 4px; font-size: 1.05rem; }
.author { color: #9ad; font-size: .9rem; margin: 0 0 8px; }
.intro { color: #aaa; font-size: .85rem; display: -webkit-box; -webkit-line-clamp: 3; -webkit-box-orient: vertical; overflow: hidden; }
.kw { display: inline-block; background: #2a3a3a; color: #7dd; border-radius: 4px; padding: 2px 8px; margin: 6px 4px 0 0; font-size: .75rem; }
.empty { color: #888; text-align: center; margin-top: 3rem; }
</style>
</head>
<body>
<h1>hondana</h1>
<p class="subtitle">{{.Count}} books</p>
{{if .Cards}}<div class="grid">
{{range .Cards}}<div class="card">
{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}" onerror="this.style.display='none'">{{end}}
<h3>{{.Title}}</h3>
<p class="author">{{.Author}}</p>
<p class="intro">{{.Introduction}}</p>
{{range .Keywords}}<span class="kw">{{.}}</span>{{end}}
</div>
{{end}}</div>
{{else}}<p class="empty">該当する本が見つかりませんでした</p>{{end}}
</body>
</html>
`))

// WriteHTMLIndex renders the journal to a static index.html in the
// cache directory and returns its path.
func (m *Manager) WriteHTMLIndex(books []book.Book) (string, error) {
	if err := m.EnsureDir(); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	view := indexView{Count: len(books)}
	for _, b := range books {
		view.Cards = append(view.Cards, cardView{
			Title:        b.Title,
			Author:       b.Author,
			ImageURL:     b.ImageURL,
			Introduction: b.Introduction,
			Keywords:     b.Keywords,
		})
	}

	f, err := os.Create(m.IndexPath())
	if err != nil {
		return "", fmt.Errorf("creating index.html: %w", err)
	}
	defer f.Close()

	if err := indexTmpl.Execute(f, view); err != nil {
		return "", fmt.Errorf("rendering index.html: %w", err)
	}
	return m.IndexPath(), nil
}
