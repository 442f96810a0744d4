package journal

// Screen identifies one of the journal's screens.
type Screen string

const (
	ScreenGate   Screen = "gate"
	ScreenList   Screen = "list"
	ScreenDetail Screen = "detail"
	ScreenEdit   Screen = "edit"
)

// Label returns the Japanese display name used in announcements.
func (s Screen) Label() string {
	switch s {
	case ScreenList:
		return "一覧"
	case ScreenDetail:
		return "詳細"
	case ScreenEdit:
		return "編集"
	default:
		return string(s)
	}
}

// Entry is one navigable state: a screen plus the book it was opened
// for. BookID is zero on the list screen and when creating a new book.
type Entry struct {
	Screen Screen
	BookID int
}

// History mirrors screen transitions into back/forward stacks so
// navigation gestures replay recorded states. Replays never push, so
// going back and forth does not grow the stacks.
type History struct {
	back    []Entry
	current Entry
	forward []Entry
}

// NewHistory starts the history at the given entry.
func NewHistory(start Entry) *History {
	return &History{current: start}
}

// Current returns the entry being displayed.
func (h *History) Current() Entry {
	return h.current
}

// Push records a forward transition. Any forward entries from earlier
// back-navigation are discarded, like a browser visiting a new page.
func (h *History) Push(e Entry) {
	h.back = append(h.back, h.current)
	h.current = e
	h.forward = nil
}

// Back moves to the previous entry. The second return is false when
// there is nothing to go back to.
func (h *History) Back() (Entry, bool) {
	if len(h.back) == 0 {
		return h.current, false
	}
	h.forward = append(h.forward, h.current)
	h.current = h.back[len(h.back)-1]
	h.back = h.back[:len(h.back)-1]
	return h.current, true
}

// Forward moves to the next entry after a Back.
func (h *History) Forward() (Entry, bool) {
	if len(h.forward) == 0 {
		return h.current, false
	}
	h.back = append(h.back, h.current)
	h.current = h.forward[len(h.forward)-1]
	h.forward = h.forward[:len(h.forward)-1]
	return h.current, true
}

// Depth returns the number of entries behind the current one.
func (h *History) Depth() int {
	return len(h.back)
}
