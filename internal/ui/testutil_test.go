package ui

import (
	"testing"

	"littleprince/internal/config"
	"littleprince/internal/daypart"
	"littleprince/internal/dispatch"
	"littleprince/internal/host"
	"littleprince/internal/notify"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
func setupTest(t *testing.T) {
	t.Helper()
	// Use ASCII profile to disable all color codes in output
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// recordingNotifier keeps every notification it is asked to show.
type recordingNotifier struct {
	shown []notify.Notification
}

func (r *recordingNotifier) Show(n notify.Notification) error {
	r.shown = append(r.shown, n)
	return nil
}

func (r *recordingNotifier) IsSupported() bool { return true }
func (r *recordingNotifier) Close() error      { return nil }

// testApp bundles an App with the collaborators tests inspect.
type testApp struct {
	app      *App
	holder   *daypart.Holder
	registry *host.Registry
	notes    *recordingNotifier
}

// createTestApp builds an App backed by a fresh host registry in a temp dir.
func createTestApp(t *testing.T, cfg *AppConfig) *testApp {
	t.Helper()
	reg, err := host.Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open host registry: %v", err)
	}

	notes := &recordingNotifier{}
	d := dispatch.New(reg, notes, dispatch.Options{RequireChannel: true, RequirePermission: true})
	if err := d.EnsureChannel(); err != nil {
		t.Fatalf("failed to create channel: %v", err)
	}

	holder := daypart.NewHolder()
	return &testApp{
		app:      NewApp(holder, d, createTestStyles(), cfg),
		holder:   holder,
		registry: reg,
		notes:    notes,
	}
}

// grant answers the startup permission prompt with yes.
func (ta *testApp) grant(t *testing.T) {
	t.Helper()
	ta.app.Update(startupMsg{})
	if ta.app.prompt == nil {
		t.Fatal("expected permission prompt after startup")
	}
	ta.app.Update(keyRunes("y"))
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
