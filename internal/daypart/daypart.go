// Package daypart defines the four times of day shown by littleprince,
// the static content attached to each of them, and the holder of the
// currently selected one.
package daypart

import (
	"errors"
	"fmt"
	"strings"
)

// Selection is one of the four times of day.
type Selection int

const (
	Morning Selection = iota
	Day
	Evening
	Night
)

// Default is the selection active at startup.
const Default = Morning

// ErrUnknownSelection is returned by ParseSelection for names outside the
// enumeration.
var ErrUnknownSelection = errors.New("unknown time of day")

// Content is what the screen and the notification show for a selection.
type Content struct {
	// Icon references an image in the art package.
	Icon  string
	Title string
	Body  string
}

var names = [...]string{
	Morning: "morning",
	Day:     "day",
	Evening: "evening",
	Night:   "night",
}

var contents = map[Selection]Content{
	Morning: {Icon: "morning", Title: "Утро", Body: "Привести в порядок свою планету"},
	Day:     {Icon: "day", Title: "День", Body: "Полить розу"},
	Evening: {Icon: "evening", Title: "Вечер", Body: "Закрыть розу ширмой"},
	Night:   {Icon: "night", Title: "Ночь", Body: "Полюбоваться закатом"},
}

// All returns every selection in display order.
func All() []Selection {
	return []Selection{Morning, Day, Evening, Night}
}

// String returns the lowercase name of the selection.
func (s Selection) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Selection(%d)", int(s))
	}
	return names[s]
}

// Valid reports whether s is one of the four times of day.
func (s Selection) Valid() bool {
	return s >= Morning && s <= Night
}

// Content returns the icon, title and body for s.
func (s Selection) Content() Content {
	return contents[s]
}

// NotificationID returns the identifier used for the notification of s.
// It depends only on the name, so showing the same selection again replaces
// the previous notification instead of stacking a new one.
func (s Selection) NotificationID() int32 {
	var h int32
	for _, r := range s.String() {
		h = 31*h + int32(r)
	}
	return h
}

// ParseSelection converts a name such as "evening" into a Selection.
// Matching ignores case and surrounding whitespace.
func ParseSelection(name string) (Selection, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == want {
			return Selection(i), nil
		}
	}
	return Default, fmt.Errorf("%w: %q", ErrUnknownSelection, name)
}

// Holder owns the current selection. It is not safe for concurrent use;
// it lives on the UI event loop.
type Holder struct {
	current Selection
}

// NewHolder returns a holder set to Default.
func NewHolder() *Holder {
	return &Holder{current: Default}
}

// Get returns the current selection.
func (h *Holder) Get() Selection {
	return h.current
}

// Set replaces the current selection.
func (h *Holder) Set(s Selection) {
	h.current = s
}

// Reset returns the holder to Default.
func (h *Holder) Reset() {
	h.current = Default
}
