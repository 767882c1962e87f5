package dispatch

import (
	"errors"
	"testing"

	"littleprince/internal/daypart"
	"littleprince/internal/host"
	"littleprince/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	shown []notify.Notification
	err   error
}

func (r *recordingNotifier) Show(n notify.Notification) error {
	if r.err != nil {
		return r.err
	}
	r.shown = append(r.shown, n)
	return nil
}

func (r *recordingNotifier) IsSupported() bool { return true }
func (r *recordingNotifier) Close() error      { return nil }

// deferredPrompter keeps the answer callback so tests decide when the user answers.
type deferredPrompter struct {
	calls  int
	answer func(bool)
}

func (p *deferredPrompter) RequestPermission(answer func(bool)) {
	p.calls++
	p.answer = answer
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *host.Registry, *recordingNotifier) {
	t.Helper()
	reg, err := host.Open(t.TempDir())
	require.NoError(t, err)

	rec := &recordingNotifier{}
	d := New(reg, rec, Options{RequireChannel: true, RequirePermission: true})
	require.NoError(t, d.EnsureChannel())
	return d, reg, rec
}

func TestEnsureChannel_Twice(t *testing.T) {
	d, reg, _ := newTestDispatcher(t)

	require.NoError(t, d.EnsureChannel())

	channels := reg.Channels()
	require.Len(t, channels, 1)
	assert.Equal(t, ChannelID, channels[0].ID)
	assert.Equal(t, ChannelName, channels[0].Name)
	assert.Equal(t, ChannelDescription, channels[0].Description)
	assert.Equal(t, host.ImportanceDefault, channels[0].Importance)
}

func TestEnsureChannel_NotRequired(t *testing.T) {
	reg, err := host.Open(t.TempDir())
	require.NoError(t, err)

	d := New(reg, &recordingNotifier{}, Options{})
	require.NoError(t, d.EnsureChannel())
	assert.Empty(t, reg.Channels())
}

func TestNotify_GrantedUsesTable(t *testing.T) {
	d, reg, rec := newTestDispatcher(t)
	require.NoError(t, reg.SetPermission(true))

	want := map[daypart.Selection][2]string{
		daypart.Morning: {"Утро", "Привести в порядок свою планету"},
		daypart.Day:     {"День", "Полить розу"},
		daypart.Evening: {"Вечер", "Закрыть розу ширмой"},
		daypart.Night:   {"Ночь", "Полюбоваться закатом"},
	}

	for _, s := range daypart.All() {
		d.Notify(s)
	}

	require.Len(t, rec.shown, 4)
	for i, s := range daypart.All() {
		n := rec.shown[i]
		assert.Equal(t, want[s][0], n.Title, "title for %s", s)
		assert.Equal(t, want[s][1], n.Body, "body for %s", s)
		assert.Equal(t, s.NotificationID(), n.ID)
		assert.Equal(t, ChannelID, n.Channel)
		assert.Equal(t, notify.PriorityDefault, n.Priority)
		assert.True(t, n.AutoCancel)
		assert.NotEmpty(t, n.Action)
		assert.NotEmpty(t, n.Icon)
	}
}

func TestNotify_DayExample(t *testing.T) {
	d, reg, rec := newTestDispatcher(t)
	require.NoError(t, reg.SetPermission(true))

	d.Notify(daypart.Day)

	require.Len(t, rec.shown, 1)
	assert.Equal(t, "День", rec.shown[0].Title)
	assert.Equal(t, "Полить розу", rec.shown[0].Body)
}

func TestNotify_DeniedIsSilent(t *testing.T) {
	d, reg, rec := newTestDispatcher(t)
	require.NoError(t, reg.SetPermission(false))

	for _, s := range daypart.All() {
		assert.NotPanics(t, func() { d.Notify(s) })
	}
	assert.Empty(t, rec.shown)
}

func TestNotify_UndecidedIsSilent(t *testing.T) {
	d, _, rec := newTestDispatcher(t)

	d.Notify(daypart.Evening)
	assert.Empty(t, rec.shown)
}

func TestNotify_PermissionNotRequired(t *testing.T) {
	reg, err := host.Open(t.TempDir())
	require.NoError(t, err)

	rec := &recordingNotifier{}
	d := New(reg, rec, Options{})

	d.Notify(daypart.Night)
	require.Len(t, rec.shown, 1)
	assert.Equal(t, "Ночь", rec.shown[0].Title)
}

func TestNotify_RepeatedSameID(t *testing.T) {
	d, reg, rec := newTestDispatcher(t)
	require.NoError(t, reg.SetPermission(true))

	d.Notify(daypart.Morning)
	d.Notify(daypart.Morning)
	d.Notify(daypart.Morning)

	require.Len(t, rec.shown, 3)
	for _, n := range rec.shown {
		assert.Equal(t, rec.shown[0].ID, n.ID)
	}
}

func TestNotify_MissingChannelIsSilent(t *testing.T) {
	d, reg, rec := newTestDispatcher(t)
	require.NoError(t, reg.SetPermission(true))
	require.NoError(t, reg.DeleteChannel(ChannelID))

	assert.False(t, d.Notify(daypart.Day))
	assert.Empty(t, rec.shown)
}

func TestNotify_NotifierErrorSwallowed(t *testing.T) {
	d, reg, rec := newTestDispatcher(t)
	require.NoError(t, reg.SetPermission(true))
	rec.err = errors.New("service unavailable")

	assert.NotPanics(t, func() {
		assert.False(t, d.Notify(daypart.Day))
	})
}

func TestNotify_UnsupportedNotifier(t *testing.T) {
	reg, err := host.Open(t.TempDir())
	require.NoError(t, err)

	d := New(reg, notify.Noop(), Options{})
	assert.False(t, d.Notify(daypart.Morning))
}

func TestNotify_InvalidSelection(t *testing.T) {
	d, reg, rec := newTestDispatcher(t)
	require.NoError(t, reg.SetPermission(true))

	d.Notify(daypart.Selection(9))
	assert.Empty(t, rec.shown)
}

func TestCheckAndRequestPermission_PromptsOnce(t *testing.T) {
	d, reg, rec := newTestDispatcher(t)
	p := &deferredPrompter{}
	d.SetPrompter(p)

	d.CheckAndRequestPermission()
	require.Equal(t, 1, p.calls)
	assert.False(t, reg.Prompted(), "prompted is recorded with the answer")

	// A second check while the prompt is open does not stack prompts.
	d.CheckAndRequestPermission()
	assert.Equal(t, 1, p.calls)

	// Dispatch before the answer arrives is a no-op.
	assert.False(t, d.Notify(daypart.Morning))
	assert.Empty(t, rec.shown)

	p.answer(true)
	assert.True(t, d.Granted())
	assert.True(t, reg.Prompted())

	assert.True(t, d.Notify(daypart.Morning))
	assert.Len(t, rec.shown, 1)

	d.CheckAndRequestPermission()
	assert.Equal(t, 1, p.calls)
}

func TestCheckAndRequestPermission_DenialSticks(t *testing.T) {
	d, reg, rec := newTestDispatcher(t)
	p := &deferredPrompter{}
	d.SetPrompter(p)

	d.CheckAndRequestPermission()
	p.answer(false)
	assert.Equal(t, host.PermissionDenied, reg.Permission())

	d.CheckAndRequestPermission()
	assert.Equal(t, 1, p.calls)

	d.Notify(daypart.Night)
	assert.Empty(t, rec.shown)

	// An external grant re-enables notifications without a new prompt.
	require.NoError(t, reg.SetPermission(true))
	d.Notify(daypart.Night)
	assert.Len(t, rec.shown, 1)
}

func TestCheckAndRequestPermission_UnansweredAsksAgain(t *testing.T) {
	dir := t.TempDir()
	reg, err := host.Open(dir)
	require.NoError(t, err)

	first := New(reg, &recordingNotifier{}, Options{RequireChannel: true, RequirePermission: true})
	require.NoError(t, first.EnsureChannel())
	p := &deferredPrompter{}
	first.SetPrompter(p)
	first.CheckAndRequestPermission()
	require.Equal(t, 1, p.calls)

	// The process ends with the prompt still open.
	reg, err = host.Open(dir)
	require.NoError(t, err)
	assert.Equal(t, host.PermissionNotDetermined, reg.Permission())
	assert.False(t, reg.Prompted())

	rec := &recordingNotifier{}
	second := New(reg, rec, Options{RequireChannel: true, RequirePermission: true})
	next := &deferredPrompter{}
	second.SetPrompter(next)
	second.CheckAndRequestPermission()
	require.Equal(t, 1, next.calls)

	next.answer(true)
	assert.True(t, second.Notify(daypart.Day))
	assert.Len(t, rec.shown, 1)
}

func TestCheckAndRequestPermission_AlreadyGranted(t *testing.T) {
	d, reg, _ := newTestDispatcher(t)
	require.NoError(t, reg.SetPermission(true))
	p := &deferredPrompter{}
	d.SetPrompter(p)

	d.CheckAndRequestPermission()
	assert.Zero(t, p.calls)
}

func TestCheckAndRequestPermission_NoPrompter(t *testing.T) {
	d, reg, _ := newTestDispatcher(t)

	d.CheckAndRequestPermission()
	assert.False(t, reg.Prompted())
	assert.Equal(t, host.PermissionNotDetermined, reg.Permission())
}

func TestPermissionState(t *testing.T) {
	d, reg, _ := newTestDispatcher(t)
	assert.Equal(t, host.PermissionNotDetermined, d.PermissionState())

	require.NoError(t, reg.SetPermission(false))
	assert.Equal(t, host.PermissionDenied, d.PermissionState())

	open := New(reg, &recordingNotifier{}, Options{})
	assert.Equal(t, host.PermissionGranted, open.PermissionState())
}
