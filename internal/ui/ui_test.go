package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/zhubert/parley/internal/chat"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		expected string
	}{
		{"sub-second", 200 * time.Millisecond, "0.2s"},
		{"seconds", 12*time.Second + 300*time.Millisecond, "12.3s"},
		{"minutes", 83 * time.Second, "1:23"},
		{"exact minute", time.Minute, "1:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatElapsed(tt.d); got != tt.expected {
				t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.expected)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b := parseHexColor("#7C3AED")
	if r != 0x7C || g != 0x3A || b != 0xED {
		t.Errorf("parseHexColor = (%d, %d, %d), want (124, 58, 237)", r, g, b)
	}

	r, g, b = parseHexColor("garbage")
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("parseHexColor on garbage = (%d, %d, %d), want zeros", r, g, b)
	}
}

func TestRenderMessageText_WrapsLongLines(t *testing.T) {
	long := strings.Repeat("word ", 30)
	out := renderMessageText(long, 20)

	for _, line := range strings.Split(out, "\n") {
		if len(line) > 20 {
			t.Errorf("line longer than wrap width: %q", line)
		}
	}
}

func TestRenderMessageText_CodeBlock(t *testing.T) {
	input := "before\n```go\nfunc main() {}\n```\nafter"
	out := renderMessageText(input, 80)

	if !strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Errorf("prose lines missing from output: %q", out)
	}
	if !strings.Contains(out, "main") {
		t.Errorf("code content missing from output: %q", out)
	}
	if strings.Contains(out, "```") {
		t.Errorf("code fence markers should not be rendered: %q", out)
	}
}

func TestRenderMessageText_UnterminatedCodeBlock(t *testing.T) {
	out := renderMessageText("```\ncode without closing fence", 80)
	if !strings.Contains(out, "code without closing fence") {
		t.Errorf("unterminated code block content missing: %q", out)
	}
}

func TestSidebar_Navigation(t *testing.T) {
	s := NewSidebar()
	s.SetSize(30, 20)
	s.SetSessions([]chat.Session{{ID: 1, Title: "Chat 1"}, {ID: 2, Title: "Chat 2"}, {ID: 3, Title: "Chat 3"}})

	if id, ok := s.SelectedID(); !ok || id != 1 {
		t.Fatalf("initial SelectedID() = (%d, %v), want (1, true)", id, ok)
	}

	s.MoveDown()
	s.MoveDown()
	if id, _ := s.SelectedID(); id != 3 {
		t.Errorf("SelectedID() after two MoveDown = %d, want 3", id)
	}

	// Cursor stops at the last entry
	s.MoveDown()
	if id, _ := s.SelectedID(); id != 3 {
		t.Errorf("SelectedID() past end = %d, want 3", id)
	}

	s.MoveUp()
	if id, _ := s.SelectedID(); id != 2 {
		t.Errorf("SelectedID() after MoveUp = %d, want 2", id)
	}
}

func TestSidebar_ClampsCursorOnShrink(t *testing.T) {
	s := NewSidebar()
	s.SetSessions([]chat.Session{{ID: 1}, {ID: 2}, {ID: 3}})
	s.MoveDown()
	s.MoveDown()

	// List shrinks under the cursor
	s.SetSessions([]chat.Session{{ID: 1}})
	if id, ok := s.SelectedID(); !ok || id != 1 {
		t.Errorf("SelectedID() after shrink = (%d, %v), want (1, true)", id, ok)
	}

	s.SetSessions(nil)
	if _, ok := s.SelectedID(); ok {
		t.Error("SelectedID() on empty list should report false")
	}
}

func TestSidebar_SetActiveMovesCursor(t *testing.T) {
	s := NewSidebar()
	s.SetSessions([]chat.Session{{ID: 1}, {ID: 2}, {ID: 3}})

	s.SetActive(3)
	if id, _ := s.SelectedID(); id != 3 {
		t.Errorf("SelectedID() after SetActive(3) = %d, want 3", id)
	}
}

func TestSidebar_ViewListsSessions(t *testing.T) {
	s := NewSidebar()
	s.SetSize(40, 20)
	s.SetSessions([]chat.Session{
		{ID: 1, Title: "Chat 1", Messages: []chat.Message{{}, {}}},
		{ID: 2, Title: "Chat 2"},
	})

	view := s.View()
	if !strings.Contains(view, "Chat 1") || !strings.Contains(view, "Chat 2") {
		t.Errorf("sidebar view missing session titles:\n%s", view)
	}
}

func TestSidebar_ViewEmpty(t *testing.T) {
	s := NewSidebar()
	s.SetSize(40, 20)

	if !strings.Contains(s.View(), "no chats") {
		t.Error("empty sidebar should show the no-chats hint")
	}
}

func TestFooter_ContextBindings(t *testing.T) {
	tests := []struct {
		name           string
		hasSession     bool
		sidebarFocused bool
		selecting      bool
		modalOpen      bool
		wantKey        string
		skipKey        string
	}{
		{"sidebar focused", true, true, false, false, "new chat", "send"},
		{"chat focused", true, false, false, false, "send", "new chat"},
		{"selecting", true, false, true, false, "delete message", "send"},
		{"modal open", true, false, false, true, "confirm", "send"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFooter()
			f.SetWidth(120)
			f.SetContext(tt.hasSession, tt.sidebarFocused, tt.selecting, tt.modalOpen)
			view := f.View()

			if !strings.Contains(view, tt.wantKey) {
				t.Errorf("footer missing %q binding:\n%s", tt.wantKey, view)
			}
			if strings.Contains(view, tt.skipKey) {
				t.Errorf("footer should not show %q binding:\n%s", tt.skipKey, view)
			}
		})
	}
}

func TestFooter_NoTabWithoutSession(t *testing.T) {
	f := NewFooter()
	f.SetWidth(120)
	f.SetContext(false, true, false, false)

	if strings.Contains(f.View(), "switch pane") {
		t.Error("footer should hide tab binding when no session exists")
	}
}

func TestHeader_View(t *testing.T) {
	h := NewHeader()
	h.SetWidth(60)
	h.SetSessionTitle("Chat 2")

	view := h.View()
	if !strings.Contains(view, "p") || len(view) == 0 {
		t.Errorf("header view empty or missing title: %q", view)
	}
}

func TestChat_Selection(t *testing.T) {
	c := NewChat()
	c.SetSession("Chat 1", []chat.Message{
		{ID: 10, From: chat.SenderBot, Text: "hello"},
		{ID: 20, From: chat.SenderUser, Text: "hi"},
		{ID: 30, From: chat.SenderBot, Text: "how"},
	})

	if _, ok := c.SelectedMessageID(); ok {
		t.Fatal("no selection expected before SelectPrev")
	}

	// First SelectPrev lands on the newest message
	c.SelectPrev()
	if id, ok := c.SelectedMessageID(); !ok || id != 30 {
		t.Errorf("SelectedMessageID() = (%d, %v), want (30, true)", id, ok)
	}

	c.SelectPrev()
	c.SelectPrev()
	if id, _ := c.SelectedMessageID(); id != 10 {
		t.Errorf("SelectedMessageID() at top = %d, want 10", id)
	}

	// Stops at the oldest message
	c.SelectPrev()
	if id, _ := c.SelectedMessageID(); id != 10 {
		t.Errorf("SelectedMessageID() past top = %d, want 10", id)
	}

	c.SelectNext()
	if id, _ := c.SelectedMessageID(); id != 20 {
		t.Errorf("SelectedMessageID() after SelectNext = %d, want 20", id)
	}

	c.CancelSelection()
	if _, ok := c.SelectedMessageID(); ok {
		t.Error("selection should be gone after CancelSelection")
	}
}

func TestChat_GetInputTrims(t *testing.T) {
	c := NewChat()
	c.input.SetValue("  hello  ")

	if got := c.GetInput(); got != "hello" {
		t.Errorf("GetInput() = %q, want %q", got, "hello")
	}
}

func TestChat_SetSessionResetsSelection(t *testing.T) {
	c := NewChat()
	c.SetSession("Chat 1", []chat.Message{{ID: 1, Text: "a"}})
	c.SelectPrev()

	c.SetSession("Chat 2", []chat.Message{{ID: 2, Text: "b"}})
	if c.IsSelecting() {
		t.Error("switching sessions should leave selection mode")
	}
}

func TestModal_ShowHide(t *testing.T) {
	m := NewModal()
	if m.IsVisible() {
		t.Fatal("new modal should be hidden")
	}

	state := NewConfirmDeleteSessionState(2, "Chat 2")
	m.Show(state)
	if !m.IsVisible() {
		t.Fatal("modal should be visible after Show")
	}
	if state.Confirmed() {
		t.Error("confirm should default to false")
	}

	m.Hide()
	if m.IsVisible() {
		t.Error("modal should be hidden after Hide")
	}
}
