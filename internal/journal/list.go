package journal

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hondana-dev/hondana/internal/book"
	"github.com/hondana-dev/hondana/internal/library"
	"github.com/hondana-dev/hondana/internal/tui"
)

// listModel is the list screen: one row per mirrored book, in mirror
// order, filtered by the search input and the author cycle.
type listModel struct {
	list         list.Model
	authorFilter string
	width        int
	height       int
}

func newListModel(lib *library.Service) listModel {
	m := listModel{}
	m.list = tui.NewBookList(m.buildItems(lib), "hondana 読書ジャーナル")
	return m
}

// buildItems renders the mirror through the author filter into list
// items, decorated with any cached counts.
func (lm *listModel) buildItems(lib *library.Service) []list.Item {
	books := book.Filter{Author: lm.authorFilter}.Apply(lib.Mirror().Books())
	items := make([]list.Item, 0, len(books))
	for _, b := range books {
		item := tui.BookItem{Book: b}
		if counts, ok := lib.CachedCounts(b.ID); ok {
			item.WantToRead = counts.WantToRead
			item.Comments = counts.Comments
			item.HasCounts = true
		}
		items = append(items, item)
	}
	return items
}

// rebuild re-renders the list from the current mirror. Called after
// every reload so the screen always reflects the latest generation.
func (lm *listModel) rebuild(lib *library.Service) {
	lm.list.SetItems(lm.buildItems(lib))
}

func (lm *listModel) setSize(width, height int) {
	lm.width = width
	lm.height = height
	h, v := tui.StyleBorder.GetFrameSize()
	lm.list.SetSize(width-h, height-v-2)
}

func (lm *listModel) setCounts(bookID int, counts library.Counts) {
	for i, it := range lm.list.Items() {
		item, ok := it.(tui.BookItem)
		if !ok || item.Book.ID != bookID {
			continue
		}
		item.WantToRead = counts.WantToRead
		item.Comments = counts.Comments
		item.HasCounts = true
		lm.list.SetItem(i, item)
		return
	}
}

// cycleAuthor advances the author filter: all authors in first-seen
// order, then back to unfiltered.
func (lm *listModel) cycleAuthor(lib *library.Service) {
	authors := book.Authors(lib.Mirror().Books())
	if len(authors) == 0 {
		return
	}
	if lm.authorFilter == "" {
		lm.authorFilter = authors[0]
	} else {
		next := ""
		for i, a := range authors {
			if a == lm.authorFilter && i+1 < len(authors) {
				next = authors[i+1]
				break
			}
		}
		lm.authorFilter = next
	}
	lm.rebuild(lib)
}

func (lm *listModel) selected() (tui.BookItem, bool) {
	item, ok := lm.list.SelectedItem().(tui.BookItem)
	return item, ok
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the built-in filter input is active every key belongs to it.
	if m.list.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list.list, cmd = m.list.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Select):
		if item, ok := m.list.selected(); ok {
			model, cmd := m.goTo(Entry{Screen: ScreenDetail, BookID: item.Book.ID}, true)
			return model, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		if m.mode != ModeAdmin {
			return m.showToast("管理モードでのみ追加できます", "warning")
		}
		model, cmd := m.goTo(Entry{Screen: ScreenEdit}, true)
		return model, cmd

	case key.Matches(msg, m.keys.Edit):
		if m.mode != ModeAdmin {
			return m.showToast("管理モードでのみ編集できます", "warning")
		}
		if item, ok := m.list.selected(); ok {
			model, cmd := m.goTo(Entry{Screen: ScreenEdit, BookID: item.Book.ID}, true)
			return model, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Login):
		if m.mode == ModeAdmin {
			return m.switchToNormalMode()
		}
		return m.openLogin()

	case key.Matches(msg, m.keys.Back):
		return m.navigateBack()

	case key.Matches(msg, m.keys.Forward):
		return m.navigateForward()

	case msg.String() == "a":
		m.list.cycleAuthor(m.lib)
		m.activeCmd = "a"
		return m, tui.HighlightCmd()

	case msg.String() == "r":
		m.activeCmd = "r"
		return m, tea.Batch(m.reloadCmd(), tui.HighlightCmd())
	}

	var cmd tea.Cmd
	m.list.list, cmd = m.list.list.Update(msg)
	return m, cmd
}

func (m Model) viewList() string {
	body := m.list.list.View()
	if len(m.list.list.VisibleItems()) == 0 {
		body += "\n" + tui.StyleHelp.Render(notFoundPlaceholder)
	}
	if m.list.authorFilter != "" {
		body += "\n" + tui.StyleKeyword.Render("著者: "+m.list.authorFilter)
	}

	shortcuts := []tui.ShortcutEntry{
		{Key: "enter", Label: "開く"},
		{Key: "/", Label: "検索"},
		{Key: "a", Label: "著者"},
		{Key: "r", Label: "再読込"},
	}
	if m.mode == ModeAdmin {
		shortcuts = append(shortcuts,
			tui.ShortcutEntry{Key: "n", Label: "新規"},
			tui.ShortcutEntry{Key: "e", Label: "編集"},
			tui.ShortcutEntry{Key: "L", Label: "ログアウト"},
		)
	} else {
		shortcuts = append(shortcuts, tui.ShortcutEntry{Key: "L", Label: "管理"})
	}
	shortcuts = append(shortcuts, tui.ShortcutEntry{Key: "q", Label: "終了"})

	return body + "\n" + tui.RenderFooterBar(shortcuts, m.activeCmd)
}
