// Package host keeps the operating-system side of notifications: the
// registered channels and the post-notifications permission grant. Desktop
// platforms have neither concept, so littleprince records them in
// host.yaml inside the data directory where they outlive the process.
package host

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"littleprince/internal/fsutil"

	"gopkg.in/yaml.v3"
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	registryFile = "host.yaml"
)

// ErrEmptyChannelID is returned when creating a channel without an id.
var ErrEmptyChannelID = errors.New("channel id is empty")

// Registry holds channels and the permission grant.
// It is not safe for concurrent use.
type Registry struct {
	path     string
	state    state
	now      func() time.Time
	restored bool
}

// Open loads the registry from dir, creating dir if needed.
// A missing host.yaml yields an empty registry. A corrupt one is replaced
// by the previous version kept in host.yaml.bak when there is one.
func Open(dir string) (*Registry, error) {
	if err := os.MkdirAll(dir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	r := &Registry{path: filepath.Join(dir, registryFile), now: time.Now}

	data, fromBackup, err := fsutil.ReadFileOrBackup(r.path, func(b []byte) error {
		var st state
		return yaml.Unmarshal(b, &st)
	})
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	if err := yaml.Unmarshal(data, &r.state); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	r.restored = fromBackup
	return r, nil
}

// Restored reports whether Open had to fall back to the backup copy.
func (r *Registry) Restored() bool {
	return r.restored
}

// Path returns the file backing the registry.
func (r *Registry) Path() string {
	return r.path
}

// CreateChannel registers ch. Creating a channel whose id already exists
// updates its name and description but keeps the original importance, so
// callers can invoke it on every launch.
func (r *Registry) CreateChannel(ch Channel) error {
	if ch.ID == "" {
		return ErrEmptyChannelID
	}
	if ch.Importance == "" {
		ch.Importance = ImportanceDefault
	}

	for i := range r.state.Channels {
		existing := &r.state.Channels[i]
		if existing.ID != ch.ID {
			continue
		}
		if existing.Name == ch.Name && existing.Description == ch.Description {
			return nil
		}
		existing.Name = ch.Name
		existing.Description = ch.Description
		return r.save()
	}

	ch.CreatedAt = r.now()
	r.state.Channels = append(r.state.Channels, ch)
	return r.save()
}

// Channel looks up a channel by id.
func (r *Registry) Channel(id string) (Channel, bool) {
	for _, ch := range r.state.Channels {
		if ch.ID == id {
			return ch, true
		}
	}
	return Channel{}, false
}

// Channels returns a copy of all registered channels.
func (r *Registry) Channels() []Channel {
	out := make([]Channel, len(r.state.Channels))
	copy(out, r.state.Channels)
	return out
}

// DeleteChannel removes a channel. Deleting an unknown id is not an error.
func (r *Registry) DeleteChannel(id string) error {
	for i, ch := range r.state.Channels {
		if ch.ID == id {
			r.state.Channels = append(r.state.Channels[:i], r.state.Channels[i+1:]...)
			return r.save()
		}
	}
	return nil
}

// Permission returns the current post-notifications grant.
func (r *Registry) Permission() PermissionState {
	return r.state.Permission
}

// Granted reports whether notifications may be posted.
func (r *Registry) Granted() bool {
	return r.state.Permission == PermissionGranted
}

// SetPermission records the user's answer.
func (r *Registry) SetPermission(granted bool) error {
	p := PermissionDenied
	if granted {
		p = PermissionGranted
	}
	if r.state.Permission == p {
		return nil
	}
	r.state.Permission = p
	return r.save()
}

// ResetPermission forgets the grant and the fact that the user was asked.
func (r *Registry) ResetPermission() error {
	r.state.Permission = PermissionNotDetermined
	r.state.Prompted = false
	return r.save()
}

// Prompted reports whether the user has already answered the permission prompt.
func (r *Registry) Prompted() bool {
	return r.state.Prompted
}

// MarkPrompted records that the permission prompt was answered.
func (r *Registry) MarkPrompted() error {
	if r.state.Prompted {
		return nil
	}
	r.state.Prompted = true
	return r.save()
}

func (r *Registry) save() error {
	data, err := yaml.Marshal(&r.state)
	if err != nil {
		return fmt.Errorf("marshal host registry: %w", err)
	}
	return fsutil.WriteFileWithBackup(r.path, data, dataFilePerm)
}
