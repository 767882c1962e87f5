//go:build darwin

// Package notify provides desktop notification support.
// This file implements macOS notifications using osascript.
package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

// darwinNotifier implements notifications for macOS using osascript.
// Notification Center offers no replace-by-id through AppleScript, so
// repeated notifications stack.
type darwinNotifier struct {
	opts Options
}

// newPlatformNotifier creates the macOS notifier.
func newPlatformNotifier(opts Options) Notifier {
	return &darwinNotifier{opts: opts}
}

// Show sends a macOS notification using osascript.
func (n *darwinNotifier) Show(note Notification) error {
	cmd := exec.Command("osascript", "-e", notificationScript(note, n.opts.Sound))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}

// IsSupported returns true if osascript is available.
func (n *darwinNotifier) IsSupported() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

func (n *darwinNotifier) Close() error {
	return nil
}

func notificationScript(note Notification, sound bool) string {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`,
		escapeAppleScript(note.Body), escapeAppleScript(note.Title))
	if sound {
		script += ` sound name "default"`
	}
	return script
}

// escapeAppleScript escapes special characters for AppleScript strings.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
