package journal

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hondana-dev/hondana/internal/chat"
	"github.com/hondana-dev/hondana/internal/library"
	"github.com/hondana-dev/hondana/internal/social"
	"github.com/hondana-dev/hondana/internal/tui"
)

// detailModel is the detail screen for one book: scrollable content,
// interleaved quotes and reflections, comments and the reaction state.
type detailModel struct {
	bookID   int
	viewport viewport.Model
	comments []social.Comment
	counts   string

	commentInput     textinput.Model
	commenting       bool
	confirmingDelete bool

	width  int
	height int
}

func newDetailModel(lib *library.Service, bookID, width, height int) detailModel {
	ci := textinput.New()
	ci.Placeholder = "コメントを入力 (500文字まで)"
	ci.CharLimit = social.MaxCommentLen

	d := detailModel{
		bookID:       bookID,
		commentInput: ci,
		width:        width,
		height:       height,
	}
	d.viewport = viewport.New(width, contentHeight(height))
	return d
}

func contentHeight(total int) int {
	h := total - 4 // header, footer, status line
	if h < 5 {
		h = 5
	}
	return h
}

func (d *detailModel) setSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = width
	d.viewport.Height = contentHeight(height)
}

// refresh re-renders the viewport content from the current mirror.
func (d *detailModel) refresh(lib *library.Service) {
	b := lib.Mirror().ByID(d.bookID)
	if b == nil {
		d.viewport.SetContent(tui.StyleHelp.Render(notFoundPlaceholder))
		return
	}
	d.viewport.SetContent(renderDetail(*b, d.counts, d.comments))
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail.commenting {
		return m.updateCommentInput(msg)
	}

	if m.detail.confirmingDelete {
		switch msg.String() {
		case "y":
			m.detail.confirmingDelete = false
			return m, m.deleteCmd(m.detail.bookID)
		case "n", "esc":
			m.detail.confirmingDelete = false
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		return m.navigateBack()

	case key.Matches(msg, m.keys.Forward):
		return m.navigateForward()

	case key.Matches(msg, m.keys.Edit):
		if m.mode != ModeAdmin {
			return m.showToast("管理モードでのみ編集できます", "warning")
		}
		model, cmd := m.goTo(Entry{Screen: ScreenEdit, BookID: m.detail.bookID}, true)
		return model, cmd

	case key.Matches(msg, m.keys.Delete):
		if m.mode != ModeAdmin {
			return m.showToast("管理モードでのみ削除できます", "warning")
		}
		m.detail.confirmingDelete = true
		return m, nil

	case key.Matches(msg, m.keys.React):
		m.activeCmd = "w"
		return m, tea.Batch(m.toggleReactionCmd(m.detail.bookID), tui.HighlightCmd())

	case key.Matches(msg, m.keys.Comment):
		m.detail.commenting = true
		cmd := m.detail.commentInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Chat):
		m.activeCmd = "t"
		model, cmd := m.copyChatURL()
		return model, tea.Batch(cmd, tui.HighlightCmd())

	case msg.String() == "y":
		m.activeCmd = "y"
		model, cmd := m.copyBookInfo()
		return model, tea.Batch(cmd, tui.HighlightCmd())
	}

	var cmd tea.Cmd
	m.detail.viewport, cmd = m.detail.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateCommentInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.detail.commenting = false
		m.detail.commentInput.SetValue("")
		return m, nil
	case "enter":
		content := m.detail.commentInput.Value()
		m.detail.commenting = false
		m.detail.commentInput.SetValue("")
		return m, m.postCommentCmd(m.detail.bookID, content)
	}

	var cmd tea.Cmd
	m.detail.commentInput, cmd = m.detail.commentInput.Update(msg)
	return m, cmd
}

func (m Model) toggleReactionCmd(bookID int) tea.Cmd {
	b := m.lib.Mirror().ByID(bookID)
	if b == nil {
		return nil
	}
	subKey := library.SubKey(*b)
	profile := m.profile
	return func() tea.Msg {
		active, err := m.lib.Social().ToggleReaction(context.Background(), profile, subKey)
		return reactionMsg{bookID: bookID, active: active, err: err}
	}
}

func (m Model) postCommentCmd(bookID int, content string) tea.Cmd {
	b := m.lib.Mirror().ByID(bookID)
	if b == nil {
		return nil
	}
	subKey := library.SubKey(*b)
	profile := m.profile
	return func() tea.Msg {
		_, err := m.lib.Social().PostComment(context.Background(), profile, subKey, content)
		return commentPostedMsg{bookID: bookID, err: err}
	}
}

func (m Model) deleteCmd(bookID int) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{err: m.lib.Delete(context.Background(), bookID)}
	}
}

func (m Model) copyChatURL() (tea.Model, tea.Cmd) {
	b := m.lib.Mirror().ByID(m.detail.bookID)
	if b == nil {
		return m, nil
	}
	if err := chat.CopyToClipboard(m.chatb.URL(*b)); err != nil {
		return m.showToast("コピーに失敗しました", "error")
	}
	return m.showToast("チャットURLをコピーしました。ブラウザで開いてください。", "success")
}

func (m Model) copyBookInfo() (tea.Model, tea.Cmd) {
	b := m.lib.Mirror().ByID(m.detail.bookID)
	if b == nil {
		return m, nil
	}
	if err := chat.CopyToClipboard(chat.CopyText(*b)); err != nil {
		return m.showToast("コピーに失敗しました。手動でコピーしてください。", "error")
	}
	return m.showToast("本の情報をコピーしました。チャットに貼り付けてください。", "success")
}

func (m Model) viewDetail() string {
	body := m.detail.viewport.View()

	if m.detail.confirmingDelete {
		return body + "\n" + tui.StyleError.Render("この本を削除しますか？ (y/n)")
	}
	if m.detail.commenting {
		return body + "\n" + m.detail.commentInput.View()
	}

	reacted := false
	if b := m.lib.Mirror().ByID(m.detail.bookID); b != nil && m.profile != nil {
		reacted = m.profile.HasReacted(library.SubKey(*b))
	}
	reactLabel := "読みたい"
	if reacted {
		reactLabel = "読みたい済み"
	}

	shortcuts := []tui.ShortcutEntry{
		{Key: "w", Label: reactLabel},
		{Key: "c", Label: "コメント"},
		{Key: "t", Label: "チャット"},
		{Key: "y", Label: "情報コピー"},
	}
	if m.mode == ModeAdmin {
		shortcuts = append(shortcuts,
			tui.ShortcutEntry{Key: "e", Label: "編集"},
			tui.ShortcutEntry{Key: "x", Label: "削除"},
		)
	}
	shortcuts = append(shortcuts, tui.ShortcutEntry{Key: "esc", Label: "戻る"})

	return body + "\n" + tui.RenderFooterBar(shortcuts, m.activeCmd)
}
