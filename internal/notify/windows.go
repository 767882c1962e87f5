//go:build windows

// Package notify provides desktop notification support.
// This file implements Windows toast notifications.
package notify

import (
	"fmt"
	"path/filepath"

	"github.com/go-toast/toast"
)

// toastNotifier implements notifications for Windows using toast.
type toastNotifier struct {
	opts Options
}

// newPlatformNotifier creates the Windows notifier.
func newPlatformNotifier(opts Options) Notifier {
	return &toastNotifier{opts: opts}
}

// Show pushes a toast. Toasts cannot be replaced by id through the
// PowerShell bridge, so repeated notifications stack.
func (n *toastNotifier) Show(note Notification) error {
	t := toast.Notification{
		AppID:   n.opts.AppName,
		Title:   note.Title,
		Message: note.Body,
	}
	// toast only understands image files, not themed icon names.
	if filepath.IsAbs(note.Icon) {
		t.Icon = note.Icon
	}
	if !n.opts.Sound {
		t.Audio = toast.Silent
	}
	if err := t.Push(); err != nil {
		return fmt.Errorf("toast push failed: %w", err)
	}
	return nil
}

func (n *toastNotifier) IsSupported() bool {
	return true
}

func (n *toastNotifier) Close() error {
	return nil
}
