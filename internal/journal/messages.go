package journal

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hondana-dev/hondana/internal/library"
	"github.com/hondana-dev/hondana/internal/social"
)

// startupDoneMsg carries the result of the initial load handshake.
type startupDoneMsg struct {
	fromRemote bool
	err        error
}

// reloadedMsg is emitted after a full mirror reload attempt.
type reloadedMsg struct {
	err error
}

// savedMsg is emitted after a save attempt (create or update).
type savedMsg struct {
	created bool
	err     error
}

// deletedMsg is emitted after a delete attempt.
type deletedMsg struct {
	err error
}

// countsMsg carries fresh sub-collection counts for a book. gen is the
// mirror generation at fetch time; stale responses are dropped.
type countsMsg struct {
	bookID int
	counts library.Counts
	gen    uint64
	err    error
}

// commentsMsg carries a book's comment list, newest first.
type commentsMsg struct {
	bookID   int
	comments []social.Comment
	err      error
}

// reactionMsg is emitted after a want-to-read toggle.
type reactionMsg struct {
	bookID int
	active bool
	err    error
}

// commentPostedMsg is emitted after posting a comment.
type commentPostedMsg struct {
	bookID int
	err    error
}

// signInMsg is emitted after an admin sign-in attempt.
type signInMsg struct {
	err error
}

// toastClearMsg expires the current toast.
type toastClearMsg struct {
	id int
}

// toastDuration is how long a toast stays visible.
const toastDuration = 4 * time.Second

// toast is a transient notification line.
type toast struct {
	id      int
	message string
	level   string // "info", "success", "warning", "error"
}

// clearToastCmd schedules expiry for the toast with the given id, so a
// newer toast is not wiped by an older timer.
func clearToastCmd(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastClearMsg{id: id}
	})
}
