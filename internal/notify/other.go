//go:build !darwin && !linux && !windows

// Package notify provides desktop notification support.
// This file covers the remaining platforms through beeep.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// beeepNotifier implements notifications using the cross-platform beeep library.
type beeepNotifier struct {
	opts Options
}

// newPlatformNotifier creates a beeep-based notifier.
func newPlatformNotifier(opts Options) Notifier {
	return &beeepNotifier{opts: opts}
}

// Show sends a notification using beeep. beeep has no notion of ids.
func (n *beeepNotifier) Show(note Notification) error {
	var err error
	if n.opts.Sound {
		err = beeep.Alert(note.Title, note.Body, note.Icon)
	} else {
		err = beeep.Notify(note.Title, note.Body, note.Icon)
	}
	if err != nil {
		return fmt.Errorf("beeep notify: %w", err)
	}
	return nil
}

// IsSupported returns true since beeep handles platform detection internally.
func (n *beeepNotifier) IsSupported() bool {
	return true
}

func (n *beeepNotifier) Close() error {
	return nil
}
