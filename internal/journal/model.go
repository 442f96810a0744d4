// Package journal is the interactive book journal: a three-screen
// state machine (list, detail, edit) over the locally mirrored book
// collection, with an optional view-password gate in front. Screen
// transitions are recorded in a back/forward history and replayed on
// navigation gestures without re-recording.
package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hondana-dev/hondana/internal/book"
	"github.com/hondana-dev/hondana/internal/chat"
	"github.com/hondana-dev/hondana/internal/identity"
	"github.com/hondana-dev/hondana/internal/library"
	"github.com/hondana-dev/hondana/internal/social"
	"github.com/hondana-dev/hondana/internal/tui"
)

// Mode is the current privilege mode.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeAdmin  Mode = "admin"
)

// Options wires the journal's collaborators.
type Options struct {
	Library    *library.Service
	Identity   *identity.Client
	Profile    *identity.Profile
	ProfileDir string
	Chat       *chat.Builder

	// GatePassword enables the view-password gate when non-empty. The
	// unlocked state is session-scoped: it lives in the model and dies
	// with the program.
	GatePassword string
}

// Model is the journal's top-level bubbletea model.
type Model struct {
	lib        *library.Service
	idn        *identity.Client
	profile    *identity.Profile
	profileDir string
	chatb      *chat.Builder

	keys tui.JournalKeys
	hist *History
	mode Mode

	gatePassword string
	gateOpen     bool

	gate   gateModel
	list   listModel
	detail detailModel
	edit   editModel
	login  loginModel

	loggingIn bool

	// status is the latest accessibility announcement, rendered in a
	// polite status line rather than spoken.
	status  string
	toast   toast
	toastID int

	// activeCmd briefly highlights the fired footer shortcut.
	activeCmd string

	width  int
	height int
	ready  bool
}

// New creates the journal model. The first screen is the gate when a
// view password is configured, otherwise the list.
func New(opts Options) Model {
	start := Entry{Screen: ScreenList}
	if opts.GatePassword != "" {
		start = Entry{Screen: ScreenGate}
	}

	m := Model{
		lib:          opts.Library,
		idn:          opts.Identity,
		profile:      opts.Profile,
		profileDir:   opts.ProfileDir,
		chatb:        opts.Chat,
		keys:         tui.NewJournalKeys(),
		hist:         NewHistory(start),
		mode:         ModeNormal,
		gatePassword: opts.GatePassword,
		gateOpen:     opts.GatePassword == "",
		gate:         newGateModel(),
		login:        newLoginModel(),
	}
	m.list = newListModel(m.lib)
	return m
}

// Mode returns the current privilege mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Status returns the latest screen announcement.
func (m Model) Status() string {
	return m.status
}

// Init starts the initial load handshake.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startupCmd(), textinput.Blink)
}

func (m Model) startupCmd() tea.Cmd {
	return func() tea.Msg {
		fromRemote, err := m.lib.Startup(context.Background())
		return startupDoneMsg{fromRemote: fromRemote, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.list.setSize(msg.Width, msg.Height)
		m.detail.setSize(msg.Width, msg.Height)
		return m, nil

	case startupDoneMsg:
		if msg.err != nil {
			return m.showToast("データの読み込みに失敗しました", "error")
		}
		m.list.rebuild(m.lib)
		if !msg.fromRemote {
			return m.showToast("オフラインデータを表示しています", "warning")
		}
		return m, nil

	case reloadedMsg:
		if msg.err != nil {
			// Keep rendering the existing mirror.
			return m.showToast("データの読み込みに失敗しました", "error")
		}
		m.list.rebuild(m.lib)
		return m, nil

	case savedMsg:
		return m.handleSaved(msg)

	case deletedMsg:
		if msg.err != nil {
			return m.showToast("削除に失敗しました: "+msg.err.Error(), "error")
		}
		m.list.rebuild(m.lib)
		model, cmd := m.goTo(Entry{Screen: ScreenList}, true)
		model2, toastCmd := model.showToast("本を削除しました", "success")
		return model2, tea.Batch(cmd, toastCmd)

	case countsMsg:
		return m.handleCounts(msg)

	case commentsMsg:
		if msg.err == nil && msg.bookID == m.detail.bookID {
			m.detail.comments = msg.comments
			m.detail.refresh(m.lib)
		}
		return m, nil

	case reactionMsg:
		return m.handleReaction(msg)

	case commentPostedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, social.ErrCommentTooLong) || errors.Is(msg.err, social.ErrEmptyComment) {
				return m.showToast(msg.err.Error(), "warning")
			}
			return m.showToast("コメントの投稿に失敗しました", "error")
		}
		model, toastCmd := m.showToast("コメントを投稿しました", "success")
		jm := model.(Model)
		return jm, tea.Batch(toastCmd, jm.fetchCommentsCmd(msg.bookID), jm.fetchCountsCmd(msg.bookID))

	case signInMsg:
		return m.handleSignIn(msg)

	case toastClearMsg:
		if msg.id == m.toast.id {
			m.toast = toast{}
		}
		return m, nil

	case tui.ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveScreen(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.loggingIn {
		return m.updateLogin(msg)
	}

	switch m.hist.Current().Screen {
	case ScreenGate:
		return m.updateGate(msg)
	case ScreenList:
		return m.updateList(msg)
	case ScreenDetail:
		return m.updateDetail(msg)
	case ScreenEdit:
		return m.updateEdit(msg)
	}
	return m, nil
}

func (m Model) updateActiveScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.hist.Current().Screen {
	case ScreenList:
		m.list.list, cmd = m.list.list.Update(msg)
	case ScreenDetail:
		m.detail.viewport, cmd = m.detail.viewport.Update(msg)
	}
	return m, cmd
}

// goTo applies a screen transition. push records it in history; replays
// from back/forward gestures pass push=false so the stacks do not grow.
// Every transition re-renders the target from the current mirror and
// announces the destination screen.
func (m Model) goTo(e Entry, push bool) (Model, tea.Cmd) {
	if push {
		m.hist.Push(e)
	}
	m.status = e.Screen.Label() + "画面に移動しました"

	var cmds []tea.Cmd
	switch e.Screen {
	case ScreenList:
		m.list.rebuild(m.lib)
	case ScreenDetail:
		m.detail = newDetailModel(m.lib, e.BookID, m.width, m.height)
		m.detail.refresh(m.lib)
		cmds = append(cmds, m.fetchCountsCmd(e.BookID), m.fetchCommentsCmd(e.BookID))
	case ScreenEdit:
		m.edit = newEditModel(m.lib, e.BookID)
		cmds = append(cmds, m.edit.focusCmd())
	}
	return m, tea.Batch(cmds...)
}

// navigateBack replays the previous history entry without pushing.
func (m Model) navigateBack() (tea.Model, tea.Cmd) {
	e, ok := m.hist.Back()
	if !ok {
		return m, nil
	}
	model, cmd := m.goTo(e, false)
	return model, cmd
}

// navigateForward replays the next history entry without pushing.
func (m Model) navigateForward() (tea.Model, tea.Cmd) {
	e, ok := m.hist.Forward()
	if !ok {
		return m, nil
	}
	model, cmd := m.goTo(e, false)
	return model, cmd
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if isValidationError(msg.err) {
			m.edit.formErr = msg.err
			return m, nil
		}
		return m.showToast("保存に失敗しました: "+msg.err.Error(), "error")
	}

	m.list.rebuild(m.lib)
	text := "本の情報を保存しました"
	if msg.created {
		text = "新しい本を追加しました"
	}
	model, cmd := m.goTo(Entry{Screen: ScreenList}, true)
	model2, toastCmd := model.showToast(text, "success")
	return model2, tea.Batch(cmd, toastCmd)
}

func (m Model) handleCounts(msg countsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, nil // counts are decorative, stay quiet
	}
	// Drop responses raced by a newer reload.
	if msg.gen != m.lib.Mirror().Generation() {
		return m, nil
	}
	if m.hist.Current().Screen == ScreenDetail && m.detail.bookID == msg.bookID {
		m.detail.counts = fmt.Sprintf("♥ 読みたい %d · 💬 コメント %d", msg.counts.WantToRead, msg.counts.Comments)
		m.detail.refresh(m.lib)
	}
	m.list.setCounts(msg.bookID, msg.counts)
	return m, nil
}

func (m Model) handleReaction(msg reactionMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.showToast("リアクションに失敗しました", "error")
	}
	if m.profile != nil {
		_ = m.profile.Save(m.profileDir)
	}
	text := "「読みたい」を取り消しました"
	if msg.active {
		text = "「読みたい」に追加しました"
	}
	model, toastCmd := m.showToast(text, "success")
	jm := model.(Model)
	return jm, tea.Batch(toastCmd, jm.fetchCountsCmd(msg.bookID))
}

func (m Model) handleSignIn(msg signInMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.showToast(loginErrorMessage(msg.err), "error")
	}
	m.loggingIn = false
	m.mode = ModeAdmin
	m.status = "管理モードに切り替わりました"
	m.list.rebuild(m.lib)
	return m.showToast("管理モードに切り替わりました", "success")
}

// switchToNormalMode signs out and returns to the list screen.
func (m Model) switchToNormalMode() (tea.Model, tea.Cmd) {
	m.idn.SignOut()
	m.mode = ModeNormal
	m.status = "通常モードに切り替わりました"
	model, cmd := m.goTo(Entry{Screen: ScreenList}, true)
	return model, cmd
}

func (m Model) showToast(message, level string) (tea.Model, tea.Cmd) {
	m.toastID++
	m.toast = toast{id: m.toastID, message: message, level: level}
	return m, clearToastCmd(m.toastID)
}

func (m Model) fetchCountsCmd(bookID int) tea.Cmd {
	b := m.lib.Mirror().ByID(bookID)
	if b == nil {
		return nil
	}
	gen := m.lib.Mirror().Generation()
	bk := *b
	return func() tea.Msg {
		counts, err := m.lib.Counts(context.Background(), bk)
		return countsMsg{bookID: bookID, counts: counts, gen: gen, err: err}
	}
}

func (m Model) fetchCommentsCmd(bookID int) tea.Cmd {
	b := m.lib.Mirror().ByID(bookID)
	if b == nil {
		return nil
	}
	subKey := library.SubKey(*b)
	return func() tea.Msg {
		comments, err := m.lib.Social().Comments(context.Background(), subKey)
		return commentsMsg{bookID: bookID, comments: comments, err: err}
	}
}

func (m Model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		return reloadedMsg{err: m.lib.Reload(context.Background())}
	}
}

func (m Model) View() string {
	if !m.ready {
		return "読み込み中..."
	}

	var body string
	if m.loggingIn {
		body = m.login.view()
	} else {
		switch m.hist.Current().Screen {
		case ScreenGate:
			body = m.gate.view()
		case ScreenList:
			body = m.viewList()
		case ScreenDetail:
			body = m.viewDetail()
		case ScreenEdit:
			body = m.edit.view()
		}
	}

	statusLine := tui.StyleHelp.Render(m.status)
	if m.toast.message != "" {
		style := tui.StyleSuccess
		switch m.toast.level {
		case "error":
			style = tui.StyleError
		case "warning":
			style = tui.StyleHighlight
		}
		statusLine = style.Render(m.toast.message)
	}
	return body + "\n" + statusLine
}

func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, identity.ErrUnknownAccount):
		return "ユーザーが見つかりません"
	case errors.Is(err, identity.ErrInvalidCredentials):
		return "パスワードが正しくありません"
	case errors.Is(err, identity.ErrMalformedEmail):
		return "メールアドレスの形式が正しくありません"
	case errors.Is(err, identity.ErrRateLimited):
		return "ログイン試行回数が多すぎます。しばらく待ってから再試行してください"
	default:
		return "ログインに失敗しました"
	}
}

// isValidationError distinguishes draft validation failures, which stay
// on the edit screen, from remote failures, which toast.
func isValidationError(err error) bool {
	var ve *book.ValidationError
	return errors.As(err, &ve)
}
