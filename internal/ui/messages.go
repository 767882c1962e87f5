// Package ui provides terminal user interface components for littleprince.
// This file defines the message types that reach the App from outside the
// key and mouse stream: startup, notification activation and the clock.
package ui

import "time"

// startupMsg is delivered once after Init so the first Update can run the
// permission check with the program already drawing.
type startupMsg struct{}

// activatedMsg is sent when the user activates one of our notifications.
type activatedMsg struct {
	id int32
}

// tickMsg is sent periodically to expire status messages.
type tickMsg time.Time
