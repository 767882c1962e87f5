// Package ui provides the terminal user interface for littleprince.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation and customization.
package ui

import (
	"strings"

	"littleprince/internal/config"
	"littleprince/internal/daypart"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Helpers
// =============================================================================

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys. "space" is accepted as
// a spelling of the space bar.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed == "space" {
			trimmed = " "
		}
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// keyLabel renders the first key of a binding for help text.
func keyLabel(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	switch keys[0] {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	}
	return keys[0]
}

// =============================================================================
// Main screen keys
// =============================================================================

// KeyMap defines the keys of the main screen.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding

	Morning key.Binding
	Day     key.Binding
	Evening key.Binding
	Night   key.Binding

	Prev  key.Binding
	Next  key.Binding
	Press key.Binding

	// pick only feeds the help bar with one "1-4 select" entry.
	pick key.Binding
}

// DefaultKeyMap returns the default main screen bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(&config.KeysConfig{})
}

// NewKeyMap creates main screen key bindings from config.
func NewKeyMap(cfg *config.KeysConfig) KeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}

	morning := parseKeys(cfg.Morning, "1")
	day := parseKeys(cfg.Day, "2")
	evening := parseKeys(cfg.Evening, "3")
	night := parseKeys(cfg.Night, "4")
	prev := parseKeys(cfg.Prev, "left", "h")
	next := parseKeys(cfg.Next, "right", "l", "tab")
	press := parseKeys(cfg.Press, "enter", " ")

	pickLabel := strings.Join([]string{keyLabel(morning), keyLabel(day), keyLabel(evening), keyLabel(night)}, "/")
	if pickLabel == "1/2/3/4" {
		pickLabel = "1-4"
	}

	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		Morning: key.NewBinding(
			key.WithKeys(morning...),
			key.WithHelp(keyLabel(morning), daypart.Morning.Content().Title),
		),
		Day: key.NewBinding(
			key.WithKeys(day...),
			key.WithHelp(keyLabel(day), daypart.Day.Content().Title),
		),
		Evening: key.NewBinding(
			key.WithKeys(evening...),
			key.WithHelp(keyLabel(evening), daypart.Evening.Content().Title),
		),
		Night: key.NewBinding(
			key.WithKeys(night...),
			key.WithHelp(keyLabel(night), daypart.Night.Content().Title),
		),
		Prev: key.NewBinding(
			key.WithKeys(prev...),
			key.WithHelp(keyLabel(prev), "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys(next...),
			key.WithHelp(keyLabel(next), "next"),
		),
		Press: key.NewBinding(
			key.WithKeys(press...),
			key.WithHelp(keyLabel(press), "press"),
		),
		pick: key.NewBinding(
			key.WithKeys(append(append(append(append([]string{}, morning...), day...), evening...), night...)...),
			key.WithHelp(pickLabel, "select"),
		),
	}
}

// selectionFor returns the selection bound directly to msg, if any.
func (k KeyMap) selectionFor(msg tea.KeyMsg) (daypart.Selection, bool) {
	switch {
	case key.Matches(msg, k.Morning):
		return daypart.Morning, true
	case key.Matches(msg, k.Day):
		return daypart.Day, true
	case key.Matches(msg, k.Evening):
		return daypart.Evening, true
	case key.Matches(msg, k.Night):
		return daypart.Night, true
	}
	return daypart.Default, false
}

// ShortHelp returns the short help for the main screen (implements help.KeyMap).
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.pick, k.Prev, k.Next, k.Press, k.Help, k.Quit}
}

// FullHelp returns the full help for the main screen (implements help.KeyMap).
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Morning, k.Day, k.Evening, k.Night},
		{k.Prev, k.Next, k.Press},
		{k.Help, k.Quit},
	}
}

// =============================================================================
// Permission prompt keys
// =============================================================================

// PromptKeyMap defines keys for the notification permission prompt.
type PromptKeyMap struct {
	Allow key.Binding
	Deny  key.Binding
}

// NewPromptKeyMap creates prompt key bindings from config.
func NewPromptKeyMap(cfg *config.KeysConfig) PromptKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return PromptKeyMap{
		Allow: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Allow, "y", "Y", "enter")...),
			key.WithHelp("y/enter", "allow"),
		),
		Deny: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Deny, "n", "N", "esc")...),
			key.WithHelp("n/esc", "don't allow"),
		),
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
