package config

import (
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestParseColorProfile(t *testing.T) {
	tests := []struct {
		name string
		want termenv.Profile
		ok   bool
	}{
		{"truecolor", termenv.TrueColor, true},
		{"256", termenv.ANSI256, true},
		{" ANSI ", termenv.ANSI, true},
		{"ascii", termenv.Ascii, true},
		{"bogus", termenv.Ascii, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseColorProfile(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorProfileEnv(t *testing.T) {
	t.Setenv("COLOR_PROFILE", "256")
	assert.Equal(t, termenv.ANSI256, ColorProfile(termenv.TrueColor))

	t.Setenv("COLOR_PROFILE", "nonsense")
	assert.Equal(t, termenv.TrueColor, ColorProfile(termenv.TrueColor))
}

func TestTermColorProfile(t *testing.T) {
	assert.Equal(t, termenv.TrueColor, TermColorProfile("xterm", "truecolor"))
	assert.Equal(t, termenv.ANSI256, TermColorProfile("xterm-256color", ""))
	assert.Equal(t, termenv.TrueColor, TermColorProfile("xterm-kitty", ""))
	assert.Equal(t, termenv.ANSI, TermColorProfile("vt100", ""))
	assert.Equal(t, termenv.Ascii, TermColorProfile("dumb", ""))
}
