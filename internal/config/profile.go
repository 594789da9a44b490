package config

import (
	"strings"

	"github.com/muesli/termenv"
)

// ParseColorProfile maps a profile name (truecolor, 256, ansi, ascii) to a
// termenv profile.
func ParseColorProfile(name string) (termenv.Profile, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "truecolor", "24bit":
		return termenv.TrueColor, true
	case "256", "ansi256":
		return termenv.ANSI256, true
	case "ansi", "16":
		return termenv.ANSI, true
	case "ascii", "none":
		return termenv.Ascii, true
	}
	return termenv.Ascii, false
}

// ColorProfile returns the profile named by COLOR_PROFILE, or fallback when
// it is unset or unknown.
func ColorProfile(fallback termenv.Profile) termenv.Profile {
	if p, ok := ParseColorProfile(GetEnv("COLOR_PROFILE", "")); ok {
		return p
	}
	return fallback
}

// TermColorProfile guesses the colour support of a remote terminal from its
// TERM and COLORTERM values.
func TermColorProfile(term, colorTerm string) termenv.Profile {
	colorTerm = strings.ToLower(colorTerm)
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		return termenv.TrueColor
	}
	term = strings.ToLower(term)
	switch {
	case term == "" || term == "dumb":
		return termenv.Ascii
	case strings.Contains(term, "direct"), strings.Contains(term, "kitty"), strings.Contains(term, "alacritty"), strings.Contains(term, "wezterm"):
		return termenv.TrueColor
	case strings.Contains(term, "256color"):
		return termenv.ANSI256
	}
	return termenv.ANSI
}
