// Package app wires the session store, reply engine, router, and UI
// components into the main Bubble Tea model.
package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/nav"
	"github.com/zhubert/parley/internal/reply"
	"github.com/zhubert/parley/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// BotReplyMsg delivers a deferred bot reply. It carries the session the
// reply was scheduled for, so a reply whose session has been deleted in
// the meantime can be dropped.
type BotReplyMsg struct {
	SessionID int
	Text      string
}

// Model is the main Bubble Tea model
type Model struct {
	config *config.Config
	store  *chat.Store
	router *nav.Router

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	activeID int // 0 when no session is active

	// Sessions with a scheduled reply that has not landed yet
	waiting map[int]bool
}

// New creates the app model. The initial active session comes from the
// requested route fragment, falling back to the first session when the
// fragment is stale or unparseable.
func New(cfg *config.Config, store *chat.Store, requestedRoute string) *Model {
	m := &Model{
		config:  cfg,
		store:   store,
		header:  ui.NewHeader(),
		footer:  ui.NewFooter(),
		sidebar: ui.NewSidebar(),
		chat:    ui.NewChat(),
		modal:   ui.NewModal(),
		focus:   FocusSidebar,
		waiting: make(map[int]bool),
	}

	sessions := store.Sessions()
	m.sidebar.SetSessions(sessions)
	m.sidebar.SetFocused(true)

	if id, ok := nav.Resolve(requestedRoute, sessions); ok {
		m.router = nav.NewRouter(nav.RouteFor(id))
		m.setActive(id)
	} else {
		m.router = nav.NewRouter("")
	}
	m.saveRoute()

	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// ActiveSessionID returns the active session, 0 when none.
func (m *Model) ActiveSessionID() int {
	return m.activeID
}

// Route returns the current route fragment.
func (m *Model) Route() string {
	return m.router.Current()
}

// setActive switches the chat panel to the given session.
func (m *Model) setActive(id int) {
	sess, ok := m.store.Get(id)
	if !ok {
		return
	}
	m.activeID = id
	m.chat.SetSession(sess.Title, sess.Messages)
	m.chat.SetWaiting(m.waiting[id])
	m.sidebar.SetActive(id)
	m.header.SetSessionTitle(sess.Title)
}

// refreshActive re-reads the active session from the store.
func (m *Model) refreshActive() {
	if m.activeID == 0 {
		return
	}
	m.setActive(m.activeID)
}

// clearActive empties the chat panel when no session remains.
func (m *Model) clearActive() {
	m.activeID = 0
	m.chat.ClearSession()
	m.header.SetSessionTitle("")
}

// navigateTo points the router at a session and records the route.
func (m *Model) navigateTo(id int) {
	m.router.NavigateTo(id)
	m.saveRoute()
}

// saveRoute persists the current route so the next run restores it.
func (m *Model) saveRoute() {
	m.config.SetLastRoute(m.router.Current())
	if err := m.config.Save(); err != nil {
		logger.Warn("App: failed to save route: %v", err)
	}
}

// scheduleReply computes the bot reply for input and delivers it after
// the configured delay, tagged with the session it belongs to.
func scheduleReply(sessionID int, input string, delay time.Duration) tea.Cmd {
	text := reply.For(input)
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return BotReplyMsg{SessionID: sessionID, Text: text}
	})
}
