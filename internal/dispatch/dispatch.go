// Package dispatch turns a time-of-day selection into a desktop
// notification. It owns the notification channel, the one-time permission
// request and the permission gate in front of the notifier.
package dispatch

import (
	"io"

	"littleprince/internal/art"
	"littleprince/internal/daypart"
	"littleprince/internal/host"
	"littleprince/internal/notify"

	"github.com/charmbracelet/log"
)

// The channel every littleprince notification is posted on.
const (
	ChannelID          = "le_petit_prince_notifications"
	ChannelName        = "Le Petit Prince Notifications"
	ChannelDescription = "Channel for location notifications"
)

// openAction labels the default action that brings the app back.
const openAction = "Open"

// Prompter asks the user whether notifications may be posted. It must not
// block: answer is called later, once the user has decided.
type Prompter interface {
	RequestPermission(answer func(granted bool))
}

// Options selects which host requirements apply.
type Options struct {
	// RequireChannel makes notifications depend on a registered channel.
	RequireChannel bool

	// RequirePermission gates notifications on an explicit grant.
	RequirePermission bool

	Logger *log.Logger
}

// Dispatcher sends the notification for a selection. It runs on the UI
// event loop and is not safe for concurrent use.
type Dispatcher struct {
	registry *host.Registry
	notifier notify.Notifier
	prompter Prompter
	opts     Options
	log      *log.Logger

	// asking is set while a prompt is open and not yet answered.
	asking bool
}

// New creates a dispatcher posting through n and keeping channel and
// permission state in reg.
func New(reg *host.Registry, n notify.Notifier, opts Options) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if n == nil {
		n = notify.Noop()
	}
	return &Dispatcher{
		registry: reg,
		notifier: n,
		opts:     opts,
		log:      logger,
	}
}

// SetPrompter sets who asks the user for permission.
func (d *Dispatcher) SetPrompter(p Prompter) {
	d.prompter = p
}

// EnsureChannel registers the littleprince channel if it is missing.
// It is safe to call on every launch.
func (d *Dispatcher) EnsureChannel() error {
	if !d.opts.RequireChannel {
		return nil
	}
	return d.registry.CreateChannel(host.Channel{
		ID:          ChannelID,
		Name:        ChannelName,
		Description: ChannelDescription,
		Importance:  host.ImportanceDefault,
	})
}

// CheckAndRequestPermission asks the user for the notification grant
// unless it is already held or the user answered before. A prompt that was
// never answered is asked again on the next call from a new process. The
// answer is only recorded in the host registry.
func (d *Dispatcher) CheckAndRequestPermission() {
	if d.Granted() {
		return
	}
	if d.registry.Prompted() {
		d.log.Debug("permission already answered", "state", d.registry.Permission())
		return
	}
	if d.asking {
		return
	}
	if d.prompter == nil {
		d.log.Debug("no prompter, permission stays undecided")
		return
	}

	d.asking = true
	d.prompter.RequestPermission(d.recordPermission)
}

func (d *Dispatcher) recordPermission(granted bool) {
	d.asking = false
	if err := d.registry.SetPermission(granted); err != nil {
		d.log.Warn("record permission answer", "granted", granted, "err", err)
		return
	}
	if err := d.registry.MarkPrompted(); err != nil {
		d.log.Warn("record permission prompt", "err", err)
	}
	d.log.Info("notification permission answered", "granted", granted)
}

// Granted reports whether notifications are currently allowed.
func (d *Dispatcher) Granted() bool {
	return !d.opts.RequirePermission || d.registry.Granted()
}

// PermissionState returns the grant as the user sees it. When no grant
// is required it always reads granted.
func (d *Dispatcher) PermissionState() host.PermissionState {
	if !d.opts.RequirePermission {
		return host.PermissionGranted
	}
	return d.registry.Permission()
}

// Notify shows the notification for s and reports whether it was handed
// to the desktop. Without permission, without a working notifier, or when
// the notifier fails, nothing is shown and false is returned.
func (d *Dispatcher) Notify(s daypart.Selection) bool {
	if !s.Valid() {
		d.log.Warn("notify called with invalid selection", "selection", s)
		return false
	}
	if !d.Granted() {
		d.log.Debug("notification suppressed", "selection", s, "permission", d.registry.Permission())
		return false
	}
	if d.opts.RequireChannel {
		if _, ok := d.registry.Channel(ChannelID); !ok {
			d.log.Warn("notification channel missing", "channel", ChannelID, "selection", s)
			return false
		}
	}
	if !d.notifier.IsSupported() {
		d.log.Debug("no desktop notifier", "selection", s)
		return false
	}

	c := s.Content()
	note := notify.Notification{
		ID:         s.NotificationID(),
		Channel:    ChannelID,
		Icon:       art.IconName(c.Icon),
		Title:      c.Title,
		Body:       c.Body,
		Priority:   notify.PriorityDefault,
		AutoCancel: true,
		Action:     openAction,
	}

	if err := d.notifier.Show(note); err != nil {
		d.log.Warn("notification failed", "selection", s, "err", err)
		return false
	}
	d.log.Info("notification shown", "selection", s, "id", note.ID)
	return true
}
