package ui

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/logger"
)

// StopwatchTickMsg is sent to update the waiting stopwatch display
type StopwatchTickMsg time.Time

// Chat represents the right panel with the conversation view
type Chat struct {
	viewport     viewport.Model
	input        textarea.Model
	width        int
	height       int
	focused      bool
	messages     []chat.Message
	sessionTitle string
	hasSession   bool

	waiting       bool      // A bot reply is pending
	waitStartTime time.Time // When waiting started (for the stopwatch)

	// Message-selection mode (alt+up/alt+down)
	selecting   bool
	selectedIdx int
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Type your message..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
		messages: []chat.Message{},
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	chatPanelHeight := height - InputTotalHeight
	innerWidth := ctx.InnerWidth(width)
	viewportHeight := ctx.InnerHeight(chatPanelHeight)
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)
	c.input.SetWidth(innerWidth - InputPaddingWidth)

	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetSession sets the conversation to display
func (c *Chat) SetSession(title string, messages []chat.Message) {
	c.sessionTitle = title
	c.messages = messages
	c.hasSession = true
	c.selecting = false
	c.updateContent()
}

// ClearSession clears the conversation
func (c *Chat) ClearSession() {
	c.sessionTitle = ""
	c.messages = nil
	c.hasSession = false
	c.waiting = false
	c.selecting = false
	c.updateContent()
}

// GetInput returns the current input text, trimmed
func (c *Chat) GetInput() string {
	val := strings.TrimSpace(c.input.Value())
	logger.Debug("Chat.GetInput: value=%q, len=%d", val, len(val))
	return val
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetWaiting toggles the reply-pending indicator
func (c *Chat) SetWaiting(waiting bool) {
	c.waiting = waiting
	if waiting {
		c.waitStartTime = time.Now()
	}
	c.updateContent()
}

// IsWaiting returns whether a bot reply is pending
func (c *Chat) IsWaiting() bool {
	return c.waiting
}

// IsSelecting returns whether message-selection mode is active
func (c *Chat) IsSelecting() bool {
	return c.selecting
}

// SelectPrev moves the selection to the previous (older) message,
// entering selection mode at the newest message when inactive.
func (c *Chat) SelectPrev() {
	if len(c.messages) == 0 {
		return
	}
	if !c.selecting {
		c.selecting = true
		c.selectedIdx = len(c.messages) - 1
	} else if c.selectedIdx > 0 {
		c.selectedIdx--
	}
	c.updateContent()
}

// SelectNext moves the selection toward the newest message.
func (c *Chat) SelectNext() {
	if !c.selecting || len(c.messages) == 0 {
		return
	}
	if c.selectedIdx < len(c.messages)-1 {
		c.selectedIdx++
	}
	c.updateContent()
}

// CancelSelection leaves message-selection mode.
func (c *Chat) CancelSelection() {
	c.selecting = false
	c.updateContent()
}

// SelectedMessageID returns the ID of the selected message.
func (c *Chat) SelectedMessageID() (int64, bool) {
	if !c.selecting || c.selectedIdx >= len(c.messages) {
		return 0, false
	}
	return c.messages[c.selectedIdx].ID, true
}

// StopwatchTick returns a command that advances the waiting stopwatch
func StopwatchTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return StopwatchTickMsg(t)
	})
}

// formatElapsed formats a duration as a stopwatch string (e.g., "1.2s", "1:23")
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}

// renderMessageText renders message text, word-wrapping prose and
// syntax-highlighting fenced code blocks.
func renderMessageText(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var result strings.Builder
	lines := strings.Split(content, "\n")
	inCodeBlock := false
	codeBlockLang := ""
	var codeBlockContent strings.Builder

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			if !inCodeBlock {
				inCodeBlock = true
				codeBlockLang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				codeBlockContent.Reset()
			} else {
				inCodeBlock = false
				result.WriteString(highlightCode(codeBlockContent.String(), codeBlockLang))
				result.WriteString("\n")
				codeBlockLang = ""
			}
			continue
		}

		if inCodeBlock {
			if codeBlockContent.Len() > 0 {
				codeBlockContent.WriteString("\n")
			}
			codeBlockContent.WriteString(line)
		} else {
			result.WriteString(wordwrap.String(line, width))
			result.WriteString("\n")
		}
	}

	// Unterminated code block: render what we have
	if inCodeBlock {
		result.WriteString(highlightCode(codeBlockContent.String(), codeBlockLang))
	}

	return strings.TrimRight(result.String(), "\n")
}

// renderNoSessionMessage renders the placeholder when no chat is selected
func (c *Chat) renderNoSessionMessage() string {
	msgStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var sb strings.Builder
	sb.WriteString(msgStyle.Italic(true).Render("No chat selected"))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("Press "))
	sb.WriteString(keyStyle.Render("n"))
	sb.WriteString(msgStyle.Render(" to start a new chat"))
	return sb.String()
}

func (c *Chat) updateContent() {
	var sb strings.Builder

	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	if !c.hasSession {
		sb.WriteString(c.renderNoSessionMessage())
	} else if len(c.messages) == 0 && !c.waiting {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("Say something..."))
	} else {
		for i, msg := range c.messages {
			if i > 0 {
				sb.WriteString("\n\n")
			}

			var roleStyle lipgloss.Style
			var roleName string
			if msg.From == chat.SenderUser {
				roleStyle = ChatUserStyle
				roleName = "You"
			} else {
				roleStyle = ChatBotStyle
				roleName = "Bot"
			}

			body := renderMessageText(strings.TrimSpace(msg.Text), wrapWidth)
			if c.selecting && i == c.selectedIdx {
				sb.WriteString(roleStyle.Render("▸ " + roleName + ":"))
				sb.WriteString("\n")
				sb.WriteString(ChatSelectedMessageStyle.Render(body))
			} else {
				sb.WriteString(roleStyle.Render(roleName + ":"))
				sb.WriteString("\n")
				sb.WriteString(body)
			}
		}

		if c.waiting {
			if len(c.messages) > 0 {
				sb.WriteString("\n\n")
			}
			elapsed := time.Since(c.waitStartTime)
			stopwatchStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
			sb.WriteString(ChatBotStyle.Render("Bot:"))
			sb.WriteString("\n")
			sb.WriteString(StatusLoadingStyle.Render("Typing... "))
			sb.WriteString(stopwatchStyle.Render(formatElapsed(elapsed)))
		}
	}

	c.viewport.SetContent(sb.String())
	if c.selecting {
		// Keep the selected message in view rather than pinning to bottom
		return
	}
	c.viewport.GotoBottom()
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.(type) {
	case StopwatchTickMsg:
		if c.waiting {
			c.updateContent()
			cmds = append(cmds, StopwatchTick())
		}
		return c, tea.Batch(cmds...)
	}

	if c.focused && c.hasSession {
		// Scroll keys bypass the input and go to the viewport
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			switch keyMsg.String() {
			case "pgup", "pgdown", "ctrl+up", "ctrl+down", "home", "end",
				"ctrl+u", "ctrl+d":
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				cmds = append(cmds, cmd)
				return c, tea.Batch(cmds...)
			}
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)

		// Keep key events out of the viewport while typing
		if _, isKey := msg.(tea.KeyPressMsg); isKey {
			return c, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	if !c.hasSession {
		return panelStyle.Width(c.width).Height(c.height).Render(c.renderNoSessionMessage())
	}

	chatPanelHeight := c.height - InputTotalHeight
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
