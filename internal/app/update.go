package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/nav"
	"github.com/zhubert/parley/internal/notification"
	"github.com/zhubert/parley/internal/ui"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case ui.StopwatchTickMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	case BotReplyMsg:
		return m.handleBotReply(msg)

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// handleBotReply lands a deferred reply. The session may have been
// deleted (or re-indexed away) since the reply was scheduled; the store
// treats that as a silent no-op and the reply is dropped.
func (m *Model) handleBotReply(msg BotReplyMsg) (tea.Model, tea.Cmd) {
	delete(m.waiting, msg.SessionID)

	sess, ok := m.store.Get(msg.SessionID)
	if !ok {
		logger.Debug("App: dropping reply for deleted session %d", msg.SessionID)
		if m.activeID == msg.SessionID {
			m.chat.SetWaiting(false)
		}
		return m, nil
	}

	botMsg := m.store.NewBotMessage(msg.Text)
	m.store.Append(msg.SessionID, botMsg)
	m.sidebar.SetSessions(m.store.Sessions())

	if msg.SessionID == m.activeID {
		m.refreshActive()
	}

	if m.config.GetNotificationsEnabled() {
		go notification.ReplyArrived(sess.Title)
	}
	return m, nil
}

// handleKey routes key presses: modal first, then global keys, then the
// focused panel.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	key := msg.String()

	switch key {
	case keys.CtrlC:
		return m, tea.Quit

	case keys.Tab:
		if m.activeID != 0 {
			m.toggleFocus()
		}
		return m, nil
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m *Model) toggleFocus() {
	if m.focus == FocusSidebar {
		m.focus = FocusChat
	} else {
		m.focus = FocusSidebar
	}
	m.sidebar.SetFocused(m.focus == FocusSidebar)
	m.chat.SetFocused(m.focus == FocusChat)
}

// handleSidebarKey handles keys while the session list is focused.
func (m *Model) handleSidebarKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case keys.Up, "k":
		m.sidebar.MoveUp()
		return m, nil

	case keys.Down, "j":
		m.sidebar.MoveDown()
		return m, nil

	case keys.Enter:
		if id, ok := m.sidebar.SelectedID(); ok {
			m.setActive(id)
			m.navigateTo(id)
		}
		return m, nil

	case "n":
		return m.createSession()

	case "d":
		if id, ok := m.sidebar.SelectedID(); ok {
			if sess, found := m.store.Get(id); found {
				m.modal.Show(ui.NewConfirmDeleteSessionState(sess.ID, sess.Title))
			}
		}
		return m, nil
	}
	return m, nil
}

// handleChatKey handles keys while the chat panel is focused.
func (m *Model) handleChatKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Enter:
		return m.sendMessage()

	case keys.CtrlL:
		if sess, ok := m.store.Get(m.activeID); ok {
			m.modal.Show(ui.NewConfirmClearState(sess.ID, sess.Title))
		}
		return m, nil

	case keys.AltUp:
		m.chat.SelectPrev()
		return m, nil

	case keys.AltDown:
		m.chat.SelectNext()
		return m, nil

	case keys.AltD:
		if msgID, ok := m.chat.SelectedMessageID(); ok {
			m.store.DeleteMessage(m.activeID, msgID)
			m.chat.CancelSelection()
			m.refreshActive()
			m.sidebar.SetSessions(m.store.Sessions())
		}
		return m, nil

	case keys.Escape:
		if m.chat.IsSelecting() {
			m.chat.CancelSelection()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// handleModalKey drives the active confirmation modal.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Escape:
		m.modal.Hide()
		return m, nil

	case keys.Enter:
		state := m.modal.State
		m.modal.Hide()
		switch s := state.(type) {
		case *ui.ConfirmDeleteSessionState:
			if s.Confirmed() {
				return m.deleteSession(s.SessionID)
			}
		case *ui.ConfirmClearState:
			if s.Confirmed() {
				m.store.Clear(s.SessionID)
				m.refreshActive()
				m.sidebar.SetSessions(m.store.Sessions())
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

// createSession adds a session and makes it active.
func (m *Model) createSession() (tea.Model, tea.Cmd) {
	id := m.store.Create()
	m.sidebar.SetSessions(m.store.Sessions())
	m.setActive(id)
	m.navigateTo(id)
	return m, nil
}

// deleteSession removes a session, then reconciles the active session
// against the re-indexed list. The store never touches the router; the
// app feeds the store's output through nav.Reconcile and navigates
// itself.
func (m *Model) deleteSession(id int) (tea.Model, tea.Cmd) {
	if !m.store.Delete(id) {
		return m, nil
	}

	sessions := m.store.Sessions()
	m.sidebar.SetSessions(sessions)

	// Re-indexing may have shifted the active session's ID
	newID, moved, none := nav.Reconcile(m.activeID, sessions)
	switch {
	case none:
		m.clearActive()
		m.router.NavigateNone()
		m.saveRoute()
		m.focus = FocusSidebar
		m.sidebar.SetFocused(true)
		m.chat.SetFocused(false)
	case moved:
		m.setActive(newID)
		m.navigateTo(newID)
	default:
		// Same ID, but the session under it may be a different chat now
		m.refreshActive()
	}
	return m, nil
}

// sendMessage appends the typed message and schedules the bot reply.
func (m *Model) sendMessage() (tea.Model, tea.Cmd) {
	input := m.chat.GetInput()
	if input == "" {
		return m, nil
	}

	userMsg, err := m.store.NewUserMessage(input)
	if err != nil {
		logger.Warn("App: rejected message: %v", err)
		return m, nil
	}

	if !m.store.Append(m.activeID, userMsg) {
		return m, nil
	}
	m.chat.ClearInput()
	m.refreshActive()
	m.sidebar.SetSessions(m.store.Sessions())

	m.waiting[m.activeID] = true
	m.chat.SetWaiting(true)

	return m, tea.Batch(
		ui.StopwatchTick(),
		scheduleReply(m.activeID, input, m.config.ReplyDelay()),
	)
}
