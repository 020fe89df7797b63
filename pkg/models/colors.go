package models

import (
	"regexp"
	"strings"
)

// DefaultColor is the "no color" token applied to notes created without an
// explicit color.
const DefaultColor = "#ffffff"

// Palette tokens accepted by the API in addition to hex colors.
var paletteColors = map[string]struct{}{
	"white":  {},
	"red":    {},
	"orange": {},
	"yellow": {},
	"green":  {},
	"teal":   {},
	"blue":   {},
	"purple": {},
	"pink":   {},
	"brown":  {},
	"gray":   {},
	"grey":   {},
}

var hexColor = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// ValidColor reports whether color is an accepted color value: the empty
// string (reset to default), a #rgb/#rrggbb hex color, or a palette token.
func ValidColor(color string) bool {
	if color == "" {
		return true
	}
	if hexColor.MatchString(color) {
		return true
	}
	_, ok := paletteColors[strings.ToLower(color)]
	return ok
}

// PaletteColors returns the named palette tokens in no particular order.
func PaletteColors() []string {
	out := make([]string, 0, len(paletteColors))
	for c := range paletteColors {
		out = append(out, c)
	}
	return out
}
