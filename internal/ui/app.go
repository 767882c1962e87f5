// Package ui provides terminal user interface components for littleprince.
// This file contains the main App model: one screen with the picture for the
// current time of day, a row of four buttons and the overlays on top of it.
package ui

import (
	"strings"
	"time"

	"littleprince/internal/art"
	"littleprince/internal/config"
	"littleprince/internal/daypart"
	"littleprince/internal/dispatch"
	"littleprince/internal/notify"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LayoutMode determines how the buttons are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows the four buttons in one row.
	LayoutWide LayoutMode = iota
	// LayoutNarrow stacks the buttons in a two by two grid.
	LayoutNarrow
)

const (
	defaultNarrowThreshold = 60

	// buttonWidth is the width of a button label area, border excluded.
	buttonWidth = 10
	buttonGap   = 1
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	NarrowLayoutThreshold int
}

// zone is a clickable screen rectangle, inclusive of x0/y0 and exclusive
// of x1/y1.
type zone struct {
	x0, y0, x1, y1 int
}

func (z zone) contains(x, y int) bool {
	return x >= z.x0 && x < z.x1 && y >= z.y0 && y < z.y1
}

// permissionPrompt is the pending "allow notifications?" question.
type permissionPrompt struct {
	answer func(granted bool)
}

// App is the main application model.
type App struct {
	holder      *daypart.Holder
	dispatcher  *dispatch.Dispatcher
	styles      *Styles
	config      *AppConfig
	helpOverlay *HelpOverlay
	helpBar     help.Model
	prompt      *permissionPrompt
	focus       daypart.Selection
	layoutMode  LayoutMode
	showHelp    bool
	started     bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool

	// Key bindings
	keys       KeyMap
	promptKeys PromptKeyMap
	helpKeys   HelpKeyMap

	// artHeight is the height of the tallest picture so the buttons stay
	// put when the selection changes.
	artHeight int

	// Button positions for mouse click detection
	buttons [4]zone
}

// NewApp creates a new application showing holder's selection and
// notifying through d. The app becomes d's permission prompter.
func NewApp(holder *daypart.Holder, d *dispatch.Dispatcher, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{
			Keys:                  &config.KeysConfig{},
			NarrowLayoutThreshold: defaultNarrowThreshold,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	if holder == nil {
		holder = daypart.NewHolder()
	}

	keys := NewKeyMap(cfg.Keys)
	promptKeys := NewPromptKeyMap(cfg.Keys)

	helpBar := help.New()
	helpBar.Styles.ShortKey = styles.HelpKeyStyle
	helpBar.Styles.ShortDesc = styles.HelpStyle
	helpBar.Styles.ShortSeparator = styles.HelpStyle
	helpBar.Styles.Ellipsis = styles.HelpStyle

	app := &App{
		holder:      holder,
		dispatcher:  d,
		styles:      styles,
		config:      cfg,
		helpOverlay: NewHelpOverlay(styles, keys, promptKeys),
		helpBar:     helpBar,
		focus:       holder.Get(),
		keys:        keys,
		promptKeys:  promptKeys,
		helpKeys:    DefaultHelpKeyMap(),
		artHeight:   maxArtHeight(),
	}
	d.SetPrompter(app)
	app.updateLayout()

	return app
}

// maxArtHeight returns the line count of the tallest picture.
func maxArtHeight() int {
	h := 0
	for _, s := range daypart.All() {
		if n := lipgloss.Height(art.Image(s.Content().Icon)); n > h {
			h = n
		}
	}
	return h
}

// Init starts the clock and schedules the startup permission check.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startupCmd(),
	)
}

// RequestPermission shows the permission prompt. answer is called once
// the user has decided. It implements dispatch.Prompter.
func (a *App) RequestPermission(answer func(granted bool)) {
	a.prompt = &permissionPrompt{answer: answer}
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startupMsg:
		if !a.started {
			a.started = true
			a.dispatcher.CheckAndRequestPermission()
		}
		return a, nil

	case activatedMsg:
		// Coming back from a notification starts over on the main screen.
		a.showHelp = false
		a.holder.Reset()
		a.focus = a.holder.Get()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The permission prompt takes every key until it is answered. Quitting
	// leaves it unanswered so the next start asks again.
	if a.prompt != nil {
		switch {
		case key.Matches(msg, a.promptKeys.Allow):
			a.answerPrompt(true)
		case key.Matches(msg, a.promptKeys.Deny):
			a.answerPrompt(false)
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			return a, tea.Quit
		}
		return a, nil
	}

	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return a, nil
	}

	if s, ok := a.keys.selectionFor(msg); ok {
		a.press(s)
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true

	case key.Matches(msg, a.keys.Prev):
		a.moveFocus(-1)

	case key.Matches(msg, a.keys.Next):
		a.moveFocus(1)

	case key.Matches(msg, a.keys.Press):
		a.press(a.focus)
	}

	return a, nil
}

func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return a, nil
	}

	// The prompt has to be answered with the keyboard.
	if a.prompt != nil {
		return a, nil
	}

	// Any click closes help
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if s, ok := a.buttonAt(msg.X, msg.Y); ok {
		a.press(s)
	}
	return a, nil
}

func (a *App) answerPrompt(granted bool) {
	answer := a.prompt.answer
	a.prompt = nil
	answer(granted)

	if granted {
		a.SetStatus("Notifications allowed", false)
	} else {
		a.SetStatus("Notifications turned off", false)
	}
}

// press selects s and fires its notification.
func (a *App) press(s daypart.Selection) {
	a.focus = s
	a.holder.Set(s)
	a.dispatcher.Notify(s)
}

// moveFocus moves the button focus by delta, wrapping around.
func (a *App) moveFocus(delta int) {
	all := daypart.All()
	n := len(all)
	a.focus = all[((int(a.focus)+delta)%n+n)%n]
}

// buttonAt returns the button under x, y.
func (a *App) buttonAt(x, y int) (daypart.Selection, bool) {
	for i, z := range a.buttons {
		if z.contains(x, y) {
			return daypart.All()[i], true
		}
	}
	return daypart.Default, false
}

// buttonsTop is the first screen row of the button block: title bar,
// blank line, picture, blank line, caption, body and one more blank line.
func (a *App) buttonsTop() int {
	return 2 + a.artHeight + 4
}

// updateLayout recalculates the layout mode and button positions.
func (a *App) updateLayout() {
	a.helpOverlay.SetSize(a.width, a.height)
	a.helpBar.Width = a.width

	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = defaultNarrowThreshold
	}
	if a.width > 0 && a.width < threshold {
		a.layoutMode = LayoutNarrow
	} else {
		a.layoutMode = LayoutWide
	}

	sample := a.styles.ButtonStyle.Width(buttonWidth).Render("")
	bw := lipgloss.Width(sample)
	bh := lipgloss.Height(sample)

	perRow := 4
	if a.layoutMode == LayoutNarrow {
		perRow = 2
	}
	rowWidth := perRow*bw + (perRow-1)*buttonGap
	left := max(0, (a.width-rowWidth)/2)
	top := a.buttonsTop()

	for i := range a.buttons {
		col := i % perRow
		row := i / perRow
		x := left + col*(bw+buttonGap)
		y := top + row*bh
		a.buttons[i] = zone{x0: x, y0: y, x1: x + bw, y1: y + bh}
	}
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return "\n  " + a.styles.CaptionStyle.Render("Au revoir!") + "\n\n"
	}

	if a.prompt != nil {
		return a.renderPermissionPrompt()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	current := a.holder.Get()
	c := current.Content()

	var b strings.Builder

	b.WriteString(a.renderTitleBar())
	b.WriteString("\n\n")

	picture := a.styles.ArtStyle.Height(a.artHeight).Render(art.Image(c.Icon))
	b.WriteString(a.center(picture))
	b.WriteString("\n\n")

	b.WriteString(a.center(a.styles.CaptionStyle.Render(c.Title)))
	b.WriteString("\n")
	b.WriteString(a.center(a.styles.BodyStyle.Render(c.Body)))
	b.WriteString("\n\n")

	b.WriteString(a.renderButtons(current))
	b.WriteString("\n\n")

	b.WriteString(a.renderHelpBar())

	return b.String()
}

// renderButtons renders the four buttons at the positions updateLayout
// computed.
func (a *App) renderButtons(current daypart.Selection) string {
	all := daypart.All()
	rendered := make([]string, len(all))
	for i, s := range all {
		style := a.styles.ButtonStyle
		switch {
		case s == a.focus:
			style = a.styles.ButtonFocusedStyle
		case s == current:
			style = a.styles.ButtonSelectedStyle
		}
		rendered[i] = style.Width(buttonWidth).Align(lipgloss.Center).Render(s.Content().Title)
	}

	gap := strings.Repeat(" ", buttonGap)
	var rows []string
	if a.layoutMode == LayoutNarrow {
		rows = append(rows,
			lipgloss.JoinHorizontal(lipgloss.Top, rendered[0], gap, rendered[1]),
			lipgloss.JoinHorizontal(lipgloss.Top, rendered[2], gap, rendered[3]),
		)
	} else {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			rendered[0], gap, rendered[1], gap, rendered[2], gap, rendered[3]))
	}

	return indent(lipgloss.JoinVertical(lipgloss.Left, rows...), a.buttons[0].x0)
}

// renderTitleBar creates the top title bar with the notification state.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" littleprince ")
	badge := a.styles.PermissionBadge(a.dispatcher.PermissionState())

	spacer := a.width - lipgloss.Width(title) - lipgloss.Width(badge)
	if spacer < 2 {
		spacer = 2
	}
	return title + strings.Repeat(" ", spacer) + badge
}

// renderHelpBar shows the status message or the key hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}
	return a.helpBar.View(a.keys)
}

func (a *App) renderPermissionPrompt() string {
	overlayWidth := 50
	if a.width > 0 {
		overlayWidth = min(50, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorPrimary).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Allow littleprince to send you notifications?"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render("A notification is shown each time you pick a time of day."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.RenderHelp(
		a.promptKeys.Allow.Help().Key, a.promptKeys.Allow.Help().Desc,
		a.promptKeys.Deny.Help().Key, a.promptKeys.Deny.Help().Desc,
	))

	return RenderCentered(overlayStyle.Render(b.String()), a.width, a.height)
}

// center indents every line of block so the block sits in the middle of
// the terminal.
func (a *App) center(block string) string {
	return indent(block, max(0, (a.width-lipgloss.Width(block))/2))
}

// indent prefixes every line of block with n spaces.
func indent(block string, n int) string {
	if n <= 0 {
		return block
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// Run starts the Bubble Tea program. When n reports activations they are
// delivered to the running app.
func Run(holder *daypart.Holder, d *dispatch.Dispatcher, n notify.Notifier, styles *Styles, cfg *AppConfig) error {
	app := NewApp(holder, d, styles, cfg)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	if act, ok := n.(notify.Activator); ok {
		if err := act.OnActivate(activationSender(p)); err != nil {
			app.SetStatus("Notification clicks unavailable: "+err.Error(), true)
		}
	}

	_, err := p.Run()
	return err
}
