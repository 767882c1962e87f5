//go:build darwin

package notify

import (
	"strings"
	"testing"
)

// TestEscapeAppleScript tests AppleScript string escaping.
func TestEscapeAppleScript(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello", "Hello"},
		{`Hello "World"`, `Hello \"World\"`},
		{`Path\to\file`, `Path\\to\\file`},
		{`Mix "quote" and \slash`, `Mix \"quote\" and \\slash`},
		{"Полить розу", "Полить розу"},
	}

	for _, tc := range tests {
		result := escapeAppleScript(tc.input)
		if result != tc.expected {
			t.Errorf("escapeAppleScript(%q) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func TestNotificationScript(t *testing.T) {
	script := notificationScript(Notification{Title: "День", Body: "Полить розу"}, true)
	want := `display notification "Полить розу" with title "День" sound name "default"`
	if script != want {
		t.Errorf("notificationScript() = %q, want %q", script, want)
	}
	if strings.Contains(notificationScript(Notification{}, false), "sound") {
		t.Error("silent script should not name a sound")
	}
}
