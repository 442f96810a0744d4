package journal

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hondana-dev/hondana/internal/tui"
)

// loginModel is the admin sign-in overlay.
type loginModel struct {
	email    textinput.Model
	password textinput.Model
	focused  int
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "メールアドレス"
	email.CharLimit = 128
	password := textinput.New()
	password.Placeholder = "パスワード"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128
	return loginModel{email: email, password: password}
}

func (m Model) openLogin() (tea.Model, tea.Cmd) {
	m.loggingIn = true
	m.login = newLoginModel()
	cmd := m.login.email.Focus()
	return m, cmd
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.loggingIn = false
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.login.focused = (m.login.focused + 1) % 2
		if m.login.focused == 0 {
			m.login.password.Blur()
			cmd := m.login.email.Focus()
			return m, cmd
		}
		m.login.email.Blur()
		cmd := m.login.password.Focus()
		return m, cmd
	case "enter":
		email := strings.TrimSpace(m.login.email.Value())
		password := m.login.password.Value()
		if email == "" || password == "" {
			return m.showToast("メールアドレスとパスワードを入力してください", "warning")
		}
		return m, m.signInCmd(email, password)
	}

	var cmd tea.Cmd
	if m.login.focused == 0 {
		m.login.email, cmd = m.login.email.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

func (m Model) signInCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.idn.SignIn(context.Background(), email, password)
		return signInMsg{err: err}
	}
}

func (l loginModel) view() string {
	content := tui.StyleHeader.Render("管理者ログイン") + "\n\n" +
		l.email.View() + "\n" +
		l.password.View()
	shortcuts := []tui.ShortcutEntry{
		{Key: "enter", Label: "ログイン"},
		{Key: "tab", Label: "項目移動"},
		{Key: "esc", Label: "戻る"},
	}
	return tui.RenderWithFooter(content, shortcuts, "")
}
