package settings

import "fmt"

// StyleScope is the resolved presentation a renderer consumes: a concrete
// light/dark mode and an accent color as RGB components.
type StyleScope struct {
	Mode   string `json:"mode"`
	Accent [3]int `json:"accent"`
}

// ApplyTheme resolves an appearance configuration into a StyleScope. It is a
// pure function: the same configuration always yields the same scope, and
// nothing global is touched. The server has no OS preference to consult, so
// "system" resolves to light.
func ApplyTheme(a Appearance) StyleScope {
	mode := a.ThemeMode
	if mode != ThemeDark {
		mode = ThemeLight
	}
	accent, err := ParseHexColor(a.PrimaryColor)
	if err != nil {
		accent, _ = ParseHexColor(DefaultPrimaryColor)
	}
	return StyleScope{Mode: mode, Accent: accent}
}

// ParseHexColor parses #RGB and #RRGGBB notations.
func ParseHexColor(s string) ([3]int, error) {
	var rgb [3]int
	if len(s) == 0 || s[0] != '#' {
		return rgb, fmt.Errorf("invalid hex color %q", s)
	}
	hex := s[1:]

	nibble := func(c byte) (int, bool) {
		switch {
		case c >= '0' && c <= '9':
			return int(c - '0'), true
		case c >= 'a' && c <= 'f':
			return int(c-'a') + 10, true
		case c >= 'A' && c <= 'F':
			return int(c-'A') + 10, true
		}
		return 0, false
	}

	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			n, ok := nibble(hex[i])
			if !ok {
				return rgb, fmt.Errorf("invalid hex color %q", s)
			}
			rgb[i] = n*16 + n
		}
	case 6:
		for i := 0; i < 3; i++ {
			hi, ok1 := nibble(hex[2*i])
			lo, ok2 := nibble(hex[2*i+1])
			if !ok1 || !ok2 {
				return rgb, fmt.Errorf("invalid hex color %q", s)
			}
			rgb[i] = hi*16 + lo
		}
	default:
		return rgb, fmt.Errorf("invalid hex color %q", s)
	}
	return rgb, nil
}
