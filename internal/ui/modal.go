package ui

import (
	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/keys"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered over the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	modal := ModalStyle.Render(m.State.Render())
	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// huhFormUpdate is the common Update logic for huh-based modals.
// It intercepts Enter and Escape (handled by the app-layer modal
// handlers) and delegates everything else to the huh form.
func huhFormUpdate(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Enter, keys.Escape:
			return form, nil
		}
	}

	m, cmd := form.Update(msg)
	form = m.(*huh.Form)
	return form, cmd
}

// ModalTheme returns a huh theme matching the modal color palette.
func ModalTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		t.Focused.Base = lipgloss.NewStyle().PaddingLeft(1)
		t.Focused.Card = t.Focused.Base
		t.Focused.Title = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
		t.Focused.Description = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)

		t.Focused.FocusedButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(ColorTextInverse).
			Background(ColorPrimary)
		t.Focused.BlurredButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(ColorTextMuted)

		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base

		t.FieldSeparator = lipgloss.NewStyle().SetString("\n")
		t.Help = help.New().Styles

		return t
	})
}

// confirmForm builds a single-confirm huh form with the modal theme.
func confirmForm(title, affirmative, negative string, value *bool) *huh.Form {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative(affirmative).
				Negative(negative).
				Value(value),
		),
	).WithTheme(ModalTheme()).WithShowHelp(false)
	form.Init()
	return form
}

// =============================================================================
// ConfirmDeleteSessionState - State for the Delete Chat modal
// =============================================================================

type ConfirmDeleteSessionState struct {
	SessionID    int
	SessionTitle string
	confirmed    bool
	form         *huh.Form
}

func (*ConfirmDeleteSessionState) modalState() {}

func (s *ConfirmDeleteSessionState) Title() string { return "Delete Chat?" }

func (s *ConfirmDeleteSessionState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	label := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(s.SessionTitle)
	help := ModalHelpStyle.Render("Enter to confirm, Esc to cancel")

	return lipgloss.JoinVertical(lipgloss.Left, title, label, s.form.View(), help)
}

func (s *ConfirmDeleteSessionState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Confirmed reports whether the user picked the affirmative option.
func (s *ConfirmDeleteSessionState) Confirmed() bool {
	return s.confirmed
}

// NewConfirmDeleteSessionState creates the delete-chat confirmation modal.
func NewConfirmDeleteSessionState(id int, title string) *ConfirmDeleteSessionState {
	s := &ConfirmDeleteSessionState{SessionID: id, SessionTitle: title}
	s.form = confirmForm("Remaining chats will be renumbered.", "Delete", "Keep", &s.confirmed)
	return s
}

// =============================================================================
// ConfirmClearState - State for the Clear Chat modal
// =============================================================================

type ConfirmClearState struct {
	SessionID    int
	SessionTitle string
	confirmed    bool
	form         *huh.Form
}

func (*ConfirmClearState) modalState() {}

func (s *ConfirmClearState) Title() string { return "Clear Chat?" }

func (s *ConfirmClearState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	label := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(s.SessionTitle)
	help := ModalHelpStyle.Render("Enter to confirm, Esc to cancel")

	return lipgloss.JoinVertical(lipgloss.Left, title, label, s.form.View(), help)
}

func (s *ConfirmClearState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Confirmed reports whether the user picked the affirmative option.
func (s *ConfirmClearState) Confirmed() bool {
	return s.confirmed
}

// NewConfirmClearState creates the clear-chat confirmation modal.
func NewConfirmClearState(id int, title string) *ConfirmClearState {
	s := &ConfirmClearState{SessionID: id, SessionTitle: title}
	s.form = confirmForm("All messages will be removed.", "Clear", "Keep", &s.confirmed)
	return s
}
