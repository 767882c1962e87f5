package ui

import (
	"littleprince/internal/config"
	"littleprince/internal/host"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized with theme configuration.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorBg        lipgloss.Color
	ColorBgLight   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	// Component styles
	TitleStyle   lipgloss.Style
	ArtStyle     lipgloss.Style
	CaptionStyle lipgloss.Style
	BodyStyle    lipgloss.Style

	ButtonStyle         lipgloss.Style
	ButtonFocusedStyle  lipgloss.Style
	ButtonSelectedStyle lipgloss.Style

	// Permission badge styles
	PermissionGrantedStyle lipgloss.Style
	PermissionDeniedStyle  lipgloss.Style
	PermissionPendingStyle lipgloss.Style

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
}

// NewStyles creates a new Styles instance from the given config.
// If a theme color is empty, it uses the appropriate default.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme)
}

// NewStylesFromTheme creates a new Styles instance from a ThemeConfig.
// If a theme color is empty, it uses the appropriate default.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	s := &Styles{}

	s.ColorPrimary = colorOrDefault(theme.Primary, "#D97706")
	s.ColorAccent = colorOrDefault(theme.Accent, "#DC2626")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")

	// Fixed semantic colors (not configurable from theme)
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorWarning = lipgloss.Color("#F59E0B")
	s.ColorSuccess = lipgloss.Color("#10B981")

	s.ColorBg = colorOrDefault(theme.Background, "#1F2937")
	s.ColorBgLight = lipgloss.Color("#374151")
	s.ColorText = colorOrDefault(theme.Text, "#F9FAFB")
	s.ColorTextMuted = lipgloss.Color("#9CA3AF")

	s.initComponentStyles()

	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

func (s *Styles) initComponentStyles() {
	// Title bar
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	// Image region
	s.ArtStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary)

	s.CaptionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorAccent)

	s.BodyStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Italic(true)

	// Buttons
	s.ButtonStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Foreground(s.ColorText).
		Padding(0, 2)

	s.ButtonFocusedStyle = s.ButtonStyle.
		BorderForeground(s.ColorPrimary).
		Bold(true)

	s.ButtonSelectedStyle = s.ButtonStyle.
		BorderForeground(s.ColorAccent).
		Foreground(s.ColorAccent)

	s.PermissionGrantedStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess)

	s.PermissionDeniedStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger)

	s.PermissionPendingStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning)

	// Help bar
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	// Status messages
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)
}

// PermissionBadge renders the notification permission for the title bar.
func (s *Styles) PermissionBadge(state host.PermissionState) string {
	switch state {
	case host.PermissionGranted:
		return s.PermissionGrantedStyle.Render("🔔 on")
	case host.PermissionDenied:
		return s.PermissionDeniedStyle.Render("🔕 off")
	default:
		return s.PermissionPendingStyle.Render("🔔 ?")
	}
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i+1 < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		result += s.HelpKeyStyle.Render("["+keys[i]+"]") + " " + s.HelpStyle.Render(keys[i+1])
	}
	return result
}
