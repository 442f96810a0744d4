package journal

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hondana-dev/hondana/internal/tui"
)

// gateModel is the view-password prompt shown before anything renders.
// It deters casual visitors; it is not an authentication boundary.
type gateModel struct {
	input   textinput.Model
	errText string
}

func newGateModel() gateModel {
	ti := textinput.New()
	ti.Placeholder = "閲覧パスワード"
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 64
	ti.Focus()
	return gateModel{input: ti}
}

func (m Model) updateGate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.gate.input.Value() == m.gatePassword {
			m.gateOpen = true
			m.gate.errText = ""
			// The gate is not a navigable state: history restarts at
			// the list so back gestures never land on the prompt.
			m.hist = NewHistory(Entry{Screen: ScreenList})
			model, cmd := m.goTo(Entry{Screen: ScreenList}, false)
			return model, cmd
		}
		m.gate.errText = "パスワードが正しくありません"
		m.gate.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.gate.input, cmd = m.gate.input.Update(msg)
	return m, cmd
}

func (g gateModel) view() string {
	body := tui.StyleHeader.Render("hondana") + "\n\n" +
		tui.StyleNormal.Render("閲覧パスワードを入力してください") + "\n\n" +
		g.input.View() + "\n"
	if g.errText != "" {
		body += tui.StyleError.Render(g.errText) + "\n"
	}
	return body + "\n" + tui.StyleHelp.Render("enter: 確認 · ctrl+c: 終了")
}
