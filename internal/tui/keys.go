package tui

import "github.com/charmbracelet/bubbles/key"

// JournalKeys defines the key bindings shared across journal screens.
type JournalKeys struct {
	Quit    key.Binding
	Select  key.Binding
	Back    key.Binding
	Forward key.Binding
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	React   key.Binding
	Comment key.Binding
	Chat    key.Binding
	Login   key.Binding
}

// NewJournalKeys creates the standard journal key bindings.
func NewJournalKeys() JournalKeys {
	return JournalKeys{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "forward"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new book"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
		React: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "want to read"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Chat: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "chat about book"),
		),
		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "admin login"),
		),
	}
}
