package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders a help screen
type HelpOverlay struct {
	width  int
	height int
	styles *Styles
	keys   KeyMap
	prompt PromptKeyMap
}

// NewHelpOverlay creates a new help overlay listing the given bindings.
func NewHelpOverlay(styles *Styles, keys KeyMap, prompt PromptKeyMap) *HelpOverlay {
	return &HelpOverlay{
		styles: styles,
		keys:   keys,
		prompt: prompt,
	}
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	overlayWidth := 50
	if h.width > 0 {
		overlayWidth = min(50, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(18)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	row := func(b key.Binding) string {
		return keyStyle.Render(bindingKeys(b)) + descStyle.Render(b.Help().Desc) + "\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("🌹 littleprince - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Time of day"))
	b.WriteString("\n")
	b.WriteString(row(h.keys.Morning))
	b.WriteString(row(h.keys.Day))
	b.WriteString(row(h.keys.Evening))
	b.WriteString(row(h.keys.Night))

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Buttons"))
	b.WriteString("\n")
	b.WriteString(row(h.keys.Prev))
	b.WriteString(row(h.keys.Next))
	b.WriteString(row(h.keys.Press))
	b.WriteString(keyStyle.Render("click") + descStyle.Render("press") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Permission prompt"))
	b.WriteString("\n")
	b.WriteString(row(h.prompt.Allow))
	b.WriteString(row(h.prompt.Deny))

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Global"))
	b.WriteString("\n")
	b.WriteString(row(h.keys.Help))
	b.WriteString(row(h.keys.Quit))

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or Esc to close"))

	content := overlayStyle.Render(b.String())

	return RenderCentered(content, h.width, h.height)
}

// bindingKeys lists the keys of b the way a user types them.
func bindingKeys(b key.Binding) string {
	keys := b.Keys()
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == " " {
			k = "space"
		}
		labels = append(labels, k)
	}
	return strings.Join(labels, " / ")
}

// RenderCentered centers content in the terminal
func RenderCentered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
