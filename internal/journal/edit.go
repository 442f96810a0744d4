package journal

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hondana-dev/hondana/internal/book"
	"github.com/hondana-dev/hondana/internal/library"
	"github.com/hondana-dev/hondana/internal/tui"
)

// Fixed field indexes in the edit form. Quote and reflection groups
// follow after these.
const (
	editFieldTitle = iota
	editFieldAuthor
	editFieldImageURL
	editFieldIntro
	editFieldSummary
	editFieldKeywords
	editFixedFields
)

const (
	quoteGroupSize      = 3 // title, content, page number
	reflectionGroupSize = 2 // title, content
)

// editModel is the edit screen: a field form pre-populated from the
// existing book, or empty when creating. Quote and reflection groups
// are repeated field groups that can be appended and removed.
type editModel struct {
	bookID      int
	remoteID    string
	quotes      int // current quote group count
	reflections int // current reflection group count
	inputs      []textinput.Model
	labels      []string
	focused     int
	formErr     error
}

func newEditModel(lib *library.Service, bookID int) editModel {
	var d book.Draft
	if bookID != 0 {
		if b := lib.Mirror().ByID(bookID); b != nil {
			d = book.DraftOf(*b)
		}
	}

	m := editModel{
		bookID:      d.ID,
		remoteID:    d.RemoteID,
		quotes:      len(d.Quotes),
		reflections: len(d.Reflections),
	}
	m.buildInputs(d)
	return m
}

func newInput(label, value, placeholder string) (textinput.Model, string) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CharLimit = 2000
	return ti, label
}

func (e *editModel) addInput(label, value, placeholder string) {
	ti, l := newInput(label, value, placeholder)
	e.inputs = append(e.inputs, ti)
	e.labels = append(e.labels, l)
}

func (e *editModel) buildInputs(d book.Draft) {
	e.inputs = nil
	e.labels = nil
	e.addInput("タイトル", d.Title, "本のタイトル")
	e.addInput("著者", d.Author, "著者名")
	e.addInput("画像URL", d.ImageURL, "https://...")
	e.addInput("導入・紹介", d.Introduction, "どんな本か")
	e.addInput("要約", d.Summary, "内容の要約")
	e.addInput("キーワード", d.Keywords, "カンマ区切り 例: 組織, 対話")
	for i := 0; i < e.quotes; i++ {
		var q book.Quote
		if i < len(d.Quotes) {
			q = d.Quotes[i]
		}
		e.addInput(fmt.Sprintf("引用%d タイトル", i+1), q.Title, "例：新規事業における「適応課題」")
		e.addInput(fmt.Sprintf("引用%d 内容", i+1), q.Content, "")
		e.addInput(fmt.Sprintf("引用%d ページ", i+1), q.PageNumber, "例：77-79")
	}
	for i := 0; i < e.reflections; i++ {
		var r book.Reflection
		if i < len(d.Reflections) {
			r = d.Reflections[i]
		}
		e.addInput(fmt.Sprintf("考察%d タイトル", i+1), r.Title, "")
		e.addInput(fmt.Sprintf("考察%d 内容", i+1), r.Content, "")
	}
	if e.focused >= len(e.inputs) {
		e.focused = len(e.inputs) - 1
	}
}

// collectDraft reads the form back into a draft.
func (e *editModel) collectDraft() book.Draft {
	d := book.Draft{
		ID:           e.bookID,
		Title:        e.inputs[editFieldTitle].Value(),
		Author:       e.inputs[editFieldAuthor].Value(),
		ImageURL:     e.inputs[editFieldImageURL].Value(),
		Introduction: e.inputs[editFieldIntro].Value(),
		Summary:      e.inputs[editFieldSummary].Value(),
		Keywords:     e.inputs[editFieldKeywords].Value(),
	}
	if e.bookID != 0 {
		// RemoteID rides along from the mirrored book on save.
		d.RemoteID = e.remoteID
	}
	idx := editFixedFields
	for i := 0; i < e.quotes; i++ {
		d.Quotes = append(d.Quotes, book.Quote{
			Title:      e.inputs[idx].Value(),
			Content:    e.inputs[idx+1].Value(),
			PageNumber: e.inputs[idx+2].Value(),
		})
		idx += quoteGroupSize
	}
	for i := 0; i < e.reflections; i++ {
		d.Reflections = append(d.Reflections, book.Reflection{
			Title:   e.inputs[idx].Value(),
			Content: e.inputs[idx+1].Value(),
		})
		idx += reflectionGroupSize
	}
	return d
}

// addQuote appends an empty quote group after the existing ones.
func (e *editModel) addQuote() {
	d := e.collectDraft()
	d.Quotes = append(d.Quotes, book.Quote{})
	e.quotes++
	e.buildInputs(d)
	e.focused = editFixedFields + (e.quotes-1)*quoteGroupSize
}

// addReflection appends an empty reflection group.
func (e *editModel) addReflection() {
	d := e.collectDraft()
	d.Reflections = append(d.Reflections, book.Reflection{})
	e.reflections++
	e.buildInputs(d)
	e.focused = editFixedFields + e.quotes*quoteGroupSize + (e.reflections-1)*reflectionGroupSize
}

// removeFocusedGroup deletes the quote or reflection group containing
// the focused field. Fixed fields are never removable.
func (e *editModel) removeFocusedGroup() {
	if e.focused < editFixedFields {
		return
	}
	d := e.collectDraft()
	pos := e.focused - editFixedFields
	quoteFields := e.quotes * quoteGroupSize
	if pos < quoteFields {
		i := pos / quoteGroupSize
		d.Quotes = append(d.Quotes[:i], d.Quotes[i+1:]...)
		e.quotes--
	} else {
		i := (pos - quoteFields) / reflectionGroupSize
		d.Reflections = append(d.Reflections[:i], d.Reflections[i+1:]...)
		e.reflections--
	}
	e.buildInputs(d)
	if e.focused >= len(e.inputs) {
		e.focused = len(e.inputs) - 1
	}
}

func (e *editModel) focusCmd() tea.Cmd {
	if len(e.inputs) == 0 {
		return nil
	}
	for i := range e.inputs {
		e.inputs[i].Blur()
	}
	return e.inputs[e.focused].Focus()
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigateBack()

	case "tab", "down":
		m.edit.focused = (m.edit.focused + 1) % len(m.edit.inputs)
		return m, m.edit.focusCmd()

	case "shift+tab", "up":
		m.edit.focused = (m.edit.focused - 1 + len(m.edit.inputs)) % len(m.edit.inputs)
		return m, m.edit.focusCmd()

	case "ctrl+q":
		m.edit.addQuote()
		return m, m.edit.focusCmd()

	case "ctrl+r":
		m.edit.addReflection()
		return m, m.edit.focusCmd()

	case "ctrl+x":
		m.edit.removeFocusedGroup()
		return m, m.edit.focusCmd()

	case "ctrl+s":
		m.edit.formErr = nil
		return m, m.saveCmd(m.edit.collectDraft())
	}

	var cmd tea.Cmd
	m.edit.inputs[m.edit.focused], cmd = m.edit.inputs[m.edit.focused].Update(msg)
	return m, cmd
}

func (m Model) saveCmd(d book.Draft) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{created: d.ID == 0, err: m.lib.Save(context.Background(), d)}
	}
}

func (e editModel) view() string {
	title := "本を追加"
	if e.bookID != 0 {
		title = "本を編集"
	}

	out := tui.StyleHeader.Render(title) + "\n\n"
	for i, in := range e.inputs {
		label := e.labels[i]
		if i == e.focused {
			out += tui.StyleHighlight.Render("› "+label) + "\n"
		} else {
			out += tui.StyleHelp.Render("  "+label) + "\n"
		}
		out += "  " + in.View() + "\n"
	}
	if e.formErr != nil {
		out += "\n" + tui.StyleError.Render("入力が不足しています: "+e.formErr.Error()) + "\n"
	}

	shortcuts := []tui.ShortcutEntry{
		{Key: "ctrl+s", Label: "保存"},
		{Key: "ctrl+q", Label: "引用を追加"},
		{Key: "ctrl+r", Label: "考察を追加"},
		{Key: "ctrl+x", Label: "この項目を削除"},
		{Key: "esc", Label: "キャンセル"},
	}
	return out + "\n" + tui.RenderFooterBar(shortcuts, "")
}
