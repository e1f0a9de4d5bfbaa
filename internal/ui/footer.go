package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width          int
	hasSession     bool // Whether a session is selected
	sidebarFocused bool // Whether sidebar has focus
	selecting      bool // Whether the chat panel is in message-selection mode
	modalOpen      bool // Whether a modal is showing
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(hasSession, sidebarFocused, selecting, modalOpen bool) {
	f.hasSession = hasSession
	f.sidebarFocused = sidebarFocused
	f.selecting = selecting
	f.modalOpen = modalOpen
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// View renders the footer
func (f *Footer) View() string {
	var bindings []KeyBinding

	switch {
	case f.modalOpen:
		bindings = []KeyBinding{
			{Key: "←/→", Desc: "choose"},
			{Key: "enter", Desc: "confirm"},
			{Key: "esc", Desc: "cancel"},
		}
	case f.selecting:
		bindings = []KeyBinding{
			{Key: "alt+↑/↓", Desc: "move"},
			{Key: "alt+d", Desc: "delete message"},
			{Key: "esc", Desc: "done"},
		}
	case f.sidebarFocused:
		bindings = []KeyBinding{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "open"},
			{Key: "n", Desc: "new chat"},
			{Key: "d", Desc: "delete"},
			{Key: "q", Desc: "quit"},
		}
		if f.hasSession {
			bindings = append(bindings, KeyBinding{Key: "tab", Desc: "switch pane"})
		}
	default:
		bindings = []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "ctrl+l", Desc: "clear chat"},
			{Key: "alt+↑/↓", Desc: "select message"},
			{Key: "tab", Desc: "switch pane"},
			{Key: "pgup/dn", Desc: "scroll"},
		}
	}

	var parts []string
	for _, b := range bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	return FooterStyle.Width(f.width).Render(content)
}
