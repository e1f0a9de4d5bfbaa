// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/zhubert/parley/internal/logger"
)

// notifyFunc matches beeep.Notify and exists so tests can intercept
// notifications instead of hitting the OS.
type notifyFunc func(title, message string, appIcon any) error

var notifier notifyFunc = beeep.Notify

// SetNotifier replaces the notification function. Test hook.
func SetNotifier(fn notifyFunc) {
	notifier = fn
}

// ResetNotifier restores the default beeep-backed notifier.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	logger.Debug("Notification: sending - title=%q, message=%q", title, message)
	// Empty icon string lets beeep pick the platform default
	err := notifier(title, message, "")
	if err != nil {
		logger.Warn("Notification: failed to send: %v", err)
	}
	return err
}

// ReplyArrived sends a notification that a bot reply landed in a session.
func ReplyArrived(sessionTitle string) error {
	return Send("Parley", "New reply in "+sessionTitle)
}
