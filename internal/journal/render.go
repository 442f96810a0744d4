package journal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hondana-dev/hondana/internal/book"
	"github.com/hondana-dev/hondana/internal/social"
	"github.com/hondana-dev/hondana/internal/tui"
)

// notFoundPlaceholder is rendered instead of cards when a filter
// matches nothing.
const notFoundPlaceholder = "該当する本が見つかりませんでした"

var (
	sectionTitle = tui.StyleHeader.MarginTop(1)
	quoteStyle   = lipgloss.NewStyle().Foreground(tui.ColorCyan).PaddingLeft(2)
	bodyStyle    = tui.StyleNormal.PaddingLeft(2)
	metaStyle    = tui.StyleHelp.PaddingLeft(2)
)

// pairedSection is one row of the interleaved quote/reflection layout.
type pairedSection struct {
	Quote      *book.Quote
	Reflection *book.Reflection
	Index      int
}

// interleave pairs quotes and reflections by index. The result has
// exactly max(len(quotes), len(reflections)) sections; a section's
// quote or reflection is nil past the end of its slice, so aligned
// pairs stay adjacent regardless of unequal counts.
func interleave(quotes []book.Quote, reflections []book.Reflection) []pairedSection {
	n := len(quotes)
	if len(reflections) > n {
		n = len(reflections)
	}
	out := make([]pairedSection, 0, n)
	for i := 0; i < n; i++ {
		s := pairedSection{Index: i}
		if i < len(quotes) {
			s.Quote = &quotes[i]
		}
		if i < len(reflections) {
			s.Reflection = &reflections[i]
		}
		out = append(out, s)
	}
	return out
}

// renderDetail renders the full detail view body for a book.
func renderDetail(b book.Book, counts string, comments []social.Comment) string {
	var sb strings.Builder

	sb.WriteString(tui.StyleHeader.Render(b.Title) + "\n")
	sb.WriteString(tui.StyleHelp.Render(b.Author) + "\n")
	if counts != "" {
		sb.WriteString(tui.StyleSuccess.Render(counts) + "\n")
	}
	if len(b.Keywords) > 0 {
		sb.WriteString(tui.StyleKeyword.Render(strings.Join(b.Keywords, " · ")) + "\n")
	}

	sb.WriteString(sectionTitle.Render("導入・紹介") + "\n")
	sb.WriteString(bodyStyle.Render(b.Introduction) + "\n")
	sb.WriteString(sectionTitle.Render("要約") + "\n")
	sb.WriteString(bodyStyle.Render(b.Summary) + "\n")

	for _, s := range interleave(b.Quotes, b.Reflections) {
		if s.Quote != nil {
			sb.WriteString(sectionTitle.Render(fmt.Sprintf("💬 引用%d", s.Index+1)) + "\n")
			sb.WriteString(bodyStyle.Render(s.Quote.Title) + "\n")
			sb.WriteString(quoteStyle.Render("\""+s.Quote.Content+"\"") + "\n")
			if s.Quote.PageNumber != "" {
				sb.WriteString(metaStyle.Render("p."+s.Quote.PageNumber) + "\n")
			}
		}
		if s.Reflection != nil {
			sb.WriteString(sectionTitle.Render(fmt.Sprintf("💡 考察%d", s.Index+1)) + "\n")
			sb.WriteString(bodyStyle.Render(s.Reflection.Title) + "\n")
			sb.WriteString(bodyStyle.Render(s.Reflection.Content) + "\n")
		}
	}

	sb.WriteString(sectionTitle.Render(fmt.Sprintf("コメント (%d)", len(comments))) + "\n")
	if len(comments) == 0 {
		sb.WriteString(metaStyle.Render("まだコメントはありません") + "\n")
	}
	for _, c := range comments {
		header := fmt.Sprintf("%s · %s", c.AuthorName, c.CreatedAt.Format("2006-01-02 15:04"))
		if c.Edited {
			header += " (編集済み)"
		}
		sb.WriteString(metaStyle.Render(header) + "\n")
		sb.WriteString(bodyStyle.Render(c.Content) + "\n")
	}

	return sb.String()
}
