package sink

import (
	"encoding/xml"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ValidColor reports whether s is a CSS color name or a #rrggbb value.
func ValidColor(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := colornames.Map[s]; ok {
		return true
	}
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}

// parseColor resolves a CSS color name or #rrggbb value. Unknown colors
// fall back to black.
func parseColor(s string) color.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c
	}
	if len(s) == 7 && s[0] == '#' {
		if v, err := strconv.ParseUint(s[1:], 16, 32); err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
		}
	}
	return color.Black
}

// svgColor normalizes a color for SVG attributes. Values that are not
// colors are escaped so they cannot leave the attribute.
func svgColor(s string) string {
	if s == "" {
		return "none"
	}
	s = strings.ToLower(s)
	if ValidColor(s) {
		return s
	}
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
