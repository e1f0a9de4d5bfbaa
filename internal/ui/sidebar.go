package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/zhubert/parley/internal/chat"
)

// Sidebar represents the left panel with the session list
type Sidebar struct {
	sessions     []chat.Session
	selectedIdx  int
	activeID     int
	width        int
	height       int
	focused      bool
	scrollOffset int
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	return &Sidebar{}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetSessions replaces the session list, clamping the cursor so it
// always points at a real entry.
func (s *Sidebar) SetSessions(sessions []chat.Session) {
	s.sessions = sessions
	if s.selectedIdx >= len(sessions) {
		s.selectedIdx = len(sessions) - 1
	}
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
}

// SetActive marks the session currently shown in the chat panel.
func (s *Sidebar) SetActive(id int) {
	s.activeID = id
	for i, sess := range s.sessions {
		if sess.ID == id {
			s.selectedIdx = i
			return
		}
	}
}

// MoveUp moves the cursor up one entry.
func (s *Sidebar) MoveUp() {
	if s.selectedIdx > 0 {
		s.selectedIdx--
	}
}

// MoveDown moves the cursor down one entry.
func (s *Sidebar) MoveDown() {
	if s.selectedIdx < len(s.sessions)-1 {
		s.selectedIdx++
	}
}

// SelectedID returns the session under the cursor.
func (s *Sidebar) SelectedID() (int, bool) {
	if len(s.sessions) == 0 {
		return 0, false
	}
	return s.sessions[s.selectedIdx].ID, true
}

// visibleRows returns how many session rows fit below the panel title.
func (s *Sidebar) visibleRows() int {
	ctx := GetViewContext()
	rows := ctx.InnerHeight(s.height) - 1 // minus the "Chats" title line
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View renders the sidebar
func (s *Sidebar) View() string {
	panelStyle := PanelStyle
	if s.focused {
		panelStyle = PanelFocusedStyle
	}

	ctx := GetViewContext()
	innerWidth := ctx.InnerWidth(s.width)

	var sb strings.Builder
	sb.WriteString(PanelTitleStyle.Render("Chats"))
	sb.WriteString("\n")

	if len(s.sessions) == 0 {
		sb.WriteString(SidebarItemStyle.Render(SidebarCountStyle.Render("no chats - press n")))
	} else {
		rows := s.visibleRows()

		// Keep the cursor inside the visible window
		if s.selectedIdx < s.scrollOffset {
			s.scrollOffset = s.selectedIdx
		}
		if s.selectedIdx >= s.scrollOffset+rows {
			s.scrollOffset = s.selectedIdx - rows + 1
		}

		end := s.scrollOffset + rows
		if end > len(s.sessions) {
			end = len(s.sessions)
		}

		for i := s.scrollOffset; i < end; i++ {
			sess := s.sessions[i]

			marker := "  "
			if sess.ID == s.activeID {
				marker = "● "
			}
			label := fmt.Sprintf("%s%s %s", marker, sess.Title,
				SidebarCountStyle.Render(fmt.Sprintf("(%d)", len(sess.Messages))))
			plain := fmt.Sprintf("%s%s (%d)", marker, sess.Title, len(sess.Messages))

			// Truncate on display cells, not bytes
			if runewidth.StringWidth(plain) > innerWidth-2 {
				label = runewidth.Truncate(plain, innerWidth-2, "…")
			}

			style := SidebarItemStyle
			if i == s.selectedIdx && s.focused {
				style = SidebarSelectedStyle
			}
			sb.WriteString(style.Render(label))
			if i < end-1 {
				sb.WriteString("\n")
			}
		}
	}

	return panelStyle.Width(s.width).Height(s.height).Render(sb.String())
}
