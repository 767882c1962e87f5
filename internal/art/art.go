// Package art holds the pictures shown for each time of day.
package art

import (
	"embed"
	"strings"
)

//go:embed images/*.txt
var images embed.FS

// iconNames maps icon references to freedesktop themed icon names used
// by the desktop notification service.
var iconNames = map[string]string{
	"morning": "weather-few-clouds",
	"day":     "weather-clear",
	"evening": "weather-few-clouds-night",
	"night":   "weather-clear-night",
}

const fallbackIcon = "dialog-information"

// Image returns the ASCII picture for icon, or an empty string when icon
// has no picture.
func Image(icon string) string {
	data, err := images.ReadFile("images/" + icon + ".txt")
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(data), "\n")
}

// IconName returns the themed icon name for icon.
func IconName(icon string) string {
	if name, ok := iconNames[icon]; ok {
		return name
	}
	return fallbackIcon
}
