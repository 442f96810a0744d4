package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/hondana-dev/hondana/internal/book"
)

// BookItem represents a book in the journal list with its reaction and
// comment counts.
type BookItem struct {
	Book       book.Book
	WantToRead int
	Comments   int
	HasCounts  bool
}

// FilterValue returns a string used for filtering in the list
func (b BookItem) FilterValue() string {
	keywords := strings.Join(b.Book.Keywords, " ")
	return fmt.Sprintf("%s %s %s", b.Book.Title, b.Book.Author, keywords)
}

// Column width constraints
const (
	minTitleWidth    = 12
	maxTitleWidth    = 48
	minAuthorWidth   = 8
	maxAuthorWidth   = 24
	minKeywordWidth  = 6
	minCountsWidth   = 9
	maxCountsWidth   = 12
	columnGap        = 1
	fallbackRowWidth = 80
)

// computeColumnWidths distributes available width proportionally across columns.
func computeColumnWidths(totalWidth int) (titleW, authorW, keywordW, countsW int) {
	prefix := 2
	gaps := columnGap * 3
	usable := totalWidth - prefix - gaps
	if usable < minTitleWidth+minAuthorWidth+minKeywordWidth+minCountsWidth {
		return minTitleWidth, minAuthorWidth, minKeywordWidth, minCountsWidth
	}
	titleW = usable * 45 / 100
	if titleW > maxTitleWidth {
		titleW = maxTitleWidth
	}
	remaining := usable - titleW
	authorW = remaining * 40 / 100
	if authorW > maxAuthorWidth {
		authorW = maxAuthorWidth
	}
	countsW = remaining * 25 / 100
	if countsW > maxCountsWidth {
		countsW = maxCountsWidth
	}
	keywordW = remaining - authorW - countsW
	if titleW < minTitleWidth {
		titleW = minTitleWidth
	}
	if authorW < minAuthorWidth {
		authorW = minAuthorWidth
	}
	if keywordW < minKeywordWidth {
		keywordW = minKeywordWidth
	}
	if countsW < minCountsWidth {
		countsW = minCountsWidth
	}
	return
}

// padOrTruncate pads s to exactly width display cells, truncating with
// "…" if necessary. Display width, not rune count, so double-width
// Japanese text aligns correctly.
func padOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(s)
	if w > width {
		return xansi.Truncate(s, width, "…")
	}
	if w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// renderBookItem renders a book in the journal list with fixed-width columns.
func renderBookItem(w io.Writer, m list.Model, index int, item list.Item) {
	bookItem, ok := item.(BookItem)
	if !ok {
		return
	}

	listWidth := m.Width()
	if listWidth <= 0 {
		listWidth = fallbackRowWidth
	}
	titleW, authorW, keywordW, countsW := computeColumnWidths(listWidth)

	gap := strings.Repeat(" ", columnGap)

	isCursor := index == m.Index()
	prefix := "  "
	if isCursor {
		prefix = lipgloss.NewStyle().Foreground(ColorYellow).Render("›") + " "
	}

	titleCol := padOrTruncate(bookItem.Book.Title, titleW)
	authorCol := padOrTruncate(bookItem.Book.Author, authorW)
	keywordCol := padOrTruncate(strings.Join(bookItem.Book.Keywords, " · "), keywordW)

	countsStr := ""
	if bookItem.HasCounts {
		countsStr = fmt.Sprintf("♥%d 💬%d", bookItem.WantToRead, bookItem.Comments)
	}
	countsCol := padOrTruncate(countsStr, countsW)

	var titleStyled, authorStyled, keywordStyled, countsStyled string
	if isCursor {
		titleStyled = StyleHighlight.Render(titleCol)
		authorStyled = lipgloss.NewStyle().Foreground(ColorYellow).Faint(true).Render(authorCol)
		keywordStyled = StyleKeyword.Render(keywordCol)
		countsStyled = StyleHighlight.Render(countsCol)
	} else {
		titleStyled = StyleNormal.Render(titleCol)
		authorStyled = StyleHelp.Render(authorCol)
		keywordStyled = StyleKeyword.Render(keywordCol)
		countsStyled = StyleSuccess.Render(countsCol)
	}

	line := prefix + titleStyled + gap + authorStyled + gap + keywordStyled + gap + countsStyled
	_, _ = fmt.Fprint(w, line)
}

// bookDelegate renders BookItems as single aligned rows.
type bookDelegate struct{}

func (d bookDelegate) Height() int                             { return 1 }
func (d bookDelegate) Spacing() int                            { return 0 }
func (d bookDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d bookDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	renderBookItem(w, m, index, item)
}

// NewBookList builds a bubbles list over the given items with the
// journal's row delegate and title.
func NewBookList(items []list.Item, title string) list.Model {
	l := list.New(items, bookDelegate{}, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = StyleHeader
	return l
}
