// Package ui provides the user interface components for the Parley TUI.
//
// # Overview
//
// The ui package implements the visual components of Parley using the Bubble Tea
// framework and Lipgloss styling library. It follows the Model-Update-View pattern
// established by Bubble Tea.
//
// # Layout System
//
// The layout is organized as follows:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │                                   │
//	│   Sidebar       │         Chat Panel                │
//	│   (1/3 width)   │         (2/3 width)               │
//	│                 │                                   │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
// All size calculations should go through ViewContext to ensure consistency.
//
// Header: Displays the application title and the active chat title.
// Uses a gradient background with the primary color.
//
// Footer: Shows context-aware keyboard shortcuts. The displayed shortcuts
// change based on focus state and whether a modal or message selection
// is active.
//
// Sidebar: Lists all chats in order. Supports selection with keyboard
// navigation (j/k or arrow keys).
//
// Chat: The main conversation panel showing message history and input.
// Includes a viewport for scrolling through messages and a textarea for
// input, plus a typing indicator while a bot reply is pending.
//
// Modal: Popup confirmation dialogs built on huh forms:
//   - ConfirmDeleteSessionState: Confirm chat deletion
//   - ConfirmClearState: Confirm clearing a chat's messages
//
// # Focus System
//
// The application has two focus states:
//   - FocusSidebar: Chat list is focused, keyboard controls navigation
//   - FocusChat: Chat panel is focused, keyboard input goes to textarea
//
// Tab key toggles between focus states. The 'q' key only quits when
// the sidebar is focused (to allow typing 'q' in chat).
package ui
