//go:build linux

// Package notify provides desktop notification support.
// This file implements Linux notifications over the freedesktop D-Bus
// interface, with notify-send as a fallback when no session bus is reachable.
package notify

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	fdoDest      = "org.freedesktop.Notifications"
	fdoPath      = dbus.ObjectPath("/org/freedesktop/Notifications")
	fdoInterface = "org.freedesktop.Notifications"

	defaultActionKey = "default"
	channelHint      = "x-littleprince-channel"
)

// newPlatformNotifier creates the Linux notifier.
func newPlatformNotifier(opts Options) Notifier {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return &execNotifier{opts: opts, ids: make(map[int32]uint32)}
	}
	return newDBusNotifier(sessionBus{conn: conn}, opts)
}

// notificationBus is the part of the session bus the notifier talks to.
type notificationBus interface {
	// Call invokes a method of org.freedesktop.Notifications.
	Call(method string, args ...interface{}) *dbus.Call
	// Subscribe delivers the notification server's signals to ch.
	Subscribe(ch chan *dbus.Signal) error
	Unsubscribe(ch chan *dbus.Signal)
	Close() error
}

// sessionBus is a notificationBus over a live D-Bus connection.
type sessionBus struct {
	conn *dbus.Conn
}

func (b sessionBus) Call(method string, args ...interface{}) *dbus.Call {
	return b.conn.Object(fdoDest, fdoPath).Call(fdoInterface+"."+method, 0, args...)
}

func (b sessionBus) Subscribe(ch chan *dbus.Signal) error {
	if err := b.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(fdoPath),
		dbus.WithMatchInterface(fdoInterface),
	); err != nil {
		return err
	}
	b.conn.Signal(ch)
	return nil
}

func (b sessionBus) Unsubscribe(ch chan *dbus.Signal) {
	b.conn.RemoveSignal(ch)
}

func (b sessionBus) Close() error {
	return b.conn.Close()
}

// shown tracks what the server knows about one of our notifications.
type shown struct {
	id         int32
	autoCancel bool
}

// dbusNotifier implements notifications through org.freedesktop.Notifications.
type dbusNotifier struct {
	opts Options
	bus  notificationBus

	// mu guards the maps and callback; the signal reader runs on its own goroutine.
	mu         sync.Mutex
	serverIDs  map[int32]uint32
	byServerID map[uint32]shown
	onActivate func(id int32)
	signals    chan *dbus.Signal
	done       chan struct{}
	closed     bool
}

func newDBusNotifier(bus notificationBus, opts Options) *dbusNotifier {
	return &dbusNotifier{
		opts:       opts,
		bus:        bus,
		serverIDs:  make(map[int32]uint32),
		byServerID: make(map[uint32]shown),
		done:       make(chan struct{}),
	}
}

// Show sends n, passing the server id of the previous notification with the
// same ID as replaces_id.
func (n *dbusNotifier) Show(note Notification) error {
	n.mu.Lock()
	replaces := n.serverIDs[note.ID]
	n.mu.Unlock()

	var actions []string
	if note.Action != "" {
		actions = []string{defaultActionKey, note.Action}
	}

	hints := map[string]dbus.Variant{
		"urgency":  dbus.MakeVariant(urgency(note.Priority)),
		"resident": dbus.MakeVariant(!note.AutoCancel),
	}
	if note.Channel != "" {
		hints[channelHint] = dbus.MakeVariant(note.Channel)
	}
	if n.opts.Sound {
		hints["sound-name"] = dbus.MakeVariant("message-new-instant")
	} else {
		hints["suppress-sound"] = dbus.MakeVariant(true)
	}

	var serverID uint32
	call := n.bus.Call("Notify",
		n.opts.AppName,
		replaces,
		note.Icon,
		note.Title,
		note.Body,
		actions,
		hints,
		int32(-1),
	)
	if err := call.Store(&serverID); err != nil {
		return fmt.Errorf("dbus notify: %w", err)
	}

	n.mu.Lock()
	if replaces != 0 && replaces != serverID {
		delete(n.byServerID, replaces)
	}
	n.serverIDs[note.ID] = serverID
	n.byServerID[serverID] = shown{id: note.ID, autoCancel: note.AutoCancel}
	n.mu.Unlock()

	return nil
}

// IsSupported returns true once a session bus connection exists.
func (n *dbusNotifier) IsSupported() bool {
	return n.bus != nil
}

// OnActivate subscribes to ActionInvoked and calls fn with the ID of the
// notification whose default action was invoked.
func (n *dbusNotifier) OnActivate(fn func(id int32)) error {
	n.mu.Lock()
	n.onActivate = fn
	start := n.signals == nil && !n.closed
	if start {
		n.signals = make(chan *dbus.Signal, 8)
	}
	signals := n.signals
	n.mu.Unlock()

	if !start {
		return nil
	}

	if err := n.bus.Subscribe(signals); err != nil {
		return fmt.Errorf("dbus match signals: %w", err)
	}
	go n.listen(signals)
	return nil
}

func (n *dbusNotifier) listen(signals <-chan *dbus.Signal) {
	for {
		var sig *dbus.Signal
		select {
		case <-n.done:
			return
		case sig = <-signals:
		}
		n.handleSignal(sig)
	}
}

func (n *dbusNotifier) handleSignal(sig *dbus.Signal) {
	if sig == nil || len(sig.Body) < 1 {
		return
	}
	serverID, ok := sig.Body[0].(uint32)
	if !ok {
		return
	}

	switch sig.Name {
	case fdoInterface + ".ActionInvoked":
		if len(sig.Body) < 2 {
			return
		}
		if key, _ := sig.Body[1].(string); key != defaultActionKey {
			return
		}
		n.mu.Lock()
		s, known := n.byServerID[serverID]
		fn := n.onActivate
		n.mu.Unlock()
		if !known {
			return
		}
		if s.autoCancel {
			_ = n.closeNotification(serverID)
		}
		if fn != nil {
			fn(s.id)
		}

	case fdoInterface + ".NotificationClosed":
		n.mu.Lock()
		if s, known := n.byServerID[serverID]; known {
			delete(n.byServerID, serverID)
			if n.serverIDs[s.id] == serverID {
				delete(n.serverIDs, s.id)
			}
		}
		n.mu.Unlock()
	}
}

func (n *dbusNotifier) closeNotification(serverID uint32) error {
	return n.bus.Call("CloseNotification", serverID).Err
}

// Close stops the signal reader and closes the bus connection.
func (n *dbusNotifier) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	signals := n.signals
	n.mu.Unlock()

	if signals != nil {
		n.bus.Unsubscribe(signals)
	}
	close(n.done)
	return n.bus.Close()
}

func urgency(p Priority) byte {
	switch p {
	case PriorityLow:
		return 0
	case PriorityHigh:
		return 2
	default:
		return 1
	}
}

// execNotifier implements notifications for Linux using notify-send.
type execNotifier struct {
	opts Options
	ids  map[int32]uint32

	probed         bool
	replaceCapable bool
}

// Show sends a notification with notify-send. Replacement needs a
// libnotify new enough to know --replace-id.
func (n *execNotifier) Show(note Notification) error {
	args := []string{
		"--app-name=" + n.opts.AppName,
		"--urgency=" + urgencyName(note.Priority),
	}
	if note.Icon != "" {
		args = append(args, "--icon="+note.Icon)
	}

	canReplace := n.supportsReplace()
	if canReplace {
		args = append(args, "--print-id")
		if prev, ok := n.ids[note.ID]; ok {
			args = append(args, "--replace-id="+strconv.FormatUint(uint64(prev), 10))
		}
	}
	args = append(args, note.Title, note.Body)

	out, err := exec.Command("notify-send", args...).Output()
	if err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}

	if canReplace {
		if id, err := strconv.ParseUint(strings.TrimSpace(string(out)), 10, 32); err == nil {
			n.ids[note.ID] = uint32(id)
		}
	}
	return nil
}

func (n *execNotifier) supportsReplace() bool {
	if n.probed {
		return n.replaceCapable
	}
	n.probed = true
	out, err := exec.Command("notify-send", "--help").CombinedOutput()
	n.replaceCapable = err == nil && bytes.Contains(out, []byte("--replace-id"))
	return n.replaceCapable
}

// IsSupported returns true if notify-send is available.
func (n *execNotifier) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

func (n *execNotifier) Close() error {
	return nil
}

func urgencyName(p Priority) string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "critical"
	default:
		return "normal"
	}
}
