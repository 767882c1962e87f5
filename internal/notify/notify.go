// Package notify provides cross-platform desktop notification support.
// It talks to the freedesktop notification service over D-Bus on Linux
// (falling back to notify-send), uses osascript on macOS, toast
// notifications on Windows and beeep everywhere else.
package notify

// Priority maps to the urgency levels offered by notification services.
type Priority int

const (
	PriorityDefault Priority = iota
	PriorityLow
	PriorityHigh
)

// Notification is a single desktop notification.
type Notification struct {
	// ID identifies the notification for replacement: showing a second
	// notification with the same ID replaces the first one where the
	// platform supports it.
	ID int32

	// Channel is the id of the channel the notification is posted on.
	Channel string

	// Icon is a themed icon name or an absolute image path.
	Icon string

	Title string
	Body  string

	Priority Priority

	// AutoCancel dismisses the notification once it is activated.
	AutoCancel bool

	// Action labels the default action. Empty disables activation.
	Action string
}

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Show displays n, replacing an earlier notification with the same ID.
	Show(n Notification) error

	// IsSupported returns true if notifications are supported on this platform.
	IsSupported() bool

	// Close releases any connection held by the notifier.
	Close() error
}

// Activator is implemented by notifiers that report when the user
// activates (clicks) a notification.
type Activator interface {
	OnActivate(fn func(id int32)) error
}

// Options configures platform notifiers.
type Options struct {
	// AppName is shown by the notification service as the sender.
	AppName string

	// Sound asks the service to play its default sound.
	Sound bool
}

type noopNotifier struct{}

func (n *noopNotifier) Show(Notification) error {
	return nil
}

func (n *noopNotifier) IsSupported() bool {
	return false
}

func (n *noopNotifier) Close() error {
	return nil
}

// Noop returns a notifier that drops everything.
func Noop() Notifier {
	return &noopNotifier{}
}

// New creates a platform-specific notifier.
// Returns a no-op notifier if the platform doesn't support notifications.
func New(opts Options) Notifier {
	if opts.AppName == "" {
		opts.AppName = "littleprince"
	}
	n := newPlatformNotifier(opts)
	if n == nil || !n.IsSupported() {
		if n != nil {
			_ = n.Close()
		}
		return &noopNotifier{}
	}
	return n
}
