package host

import "time"

// Importance ranks how intrusive notifications on a channel may be.
type Importance string

const (
	ImportanceLow     Importance = "low"
	ImportanceDefault Importance = "default"
	ImportanceHigh    Importance = "high"
)

// Channel groups notifications under a user-visible name.
type Channel struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Importance  Importance `yaml:"importance"`
	CreatedAt   time.Time  `yaml:"created_at"`
}

// PermissionState is the post-notifications grant.
type PermissionState string

const (
	PermissionNotDetermined PermissionState = ""
	PermissionGranted       PermissionState = "granted"
	PermissionDenied        PermissionState = "denied"
)

// String returns a human-readable name for the state.
func (p PermissionState) String() string {
	if p == PermissionNotDetermined {
		return "not determined"
	}
	return string(p)
}

// state is the on-disk layout of host.yaml.
type state struct {
	Channels   []Channel       `yaml:"channels"`
	Permission PermissionState `yaml:"permission,omitempty"`
	Prompted   bool            `yaml:"prompted,omitempty"`
}
