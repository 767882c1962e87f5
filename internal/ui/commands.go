package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// startupCmd returns a command that kicks off the startup checks.
func startupCmd() tea.Cmd {
	return func() tea.Msg {
		return startupMsg{}
	}
}

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// activationSender adapts a running program to a notification activation
// callback. The callback runs on the notifier's goroutine and only hands
// the event over to the event loop.
func activationSender(p *tea.Program) func(id int32) {
	return func(id int32) {
		p.Send(activatedMsg{id: id})
	}
}
