package loop

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/birthday/internal/draw"
)

func TestMessageLines(t *testing.T) {
	lines := messageLines("Happy Birthday!", "Shreya", 80)
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "H A P P Y   B I R T H D A Y !")
	assert.Contains(t, lines[3], "Shreya")
	assert.True(t, strings.HasPrefix(lines[0], "╭"))
	assert.True(t, strings.HasPrefix(lines[4], "╰"))

	// Too narrow for letter spacing or a frame.
	lines = messageLines("Happy Birthday!", "Shreya", 16)
	assert.Equal(t, []string{"Happy Birthday!", "Shreya"}, lines)
}

func TestPresenterDrawsAndClearsMessage(t *testing.T) {
	var out bytes.Buffer
	canvas := draw.NewTerminalCanvas(60, 20, termenv.Ascii)
	p := NewPresenter(canvas, &out, termenv.Ascii, "Happy Birthday!", "Shreya")

	require.NoError(t, p.Present())
	assert.NotContains(t, out.String(), "Shreya")

	out.Reset()
	p.SetOpacity(1)
	require.NoError(t, p.Present())
	assert.Contains(t, out.String(), "Shreya")
	assert.Len(t, p.drawn, 5)

	// Hiding repaints the cells under the text.
	out.Reset()
	p.SetOpacity(0)
	require.NoError(t, p.Present())
	assert.NotContains(t, out.String(), "Shreya")
	assert.NotEmpty(t, out.String())
	assert.Empty(t, p.drawn)
}

func TestPresenterOpacityIsClamped(t *testing.T) {
	p := NewPresenter(draw.NewTerminalCanvas(10, 5, termenv.Ascii), &bytes.Buffer{}, termenv.Ascii, "", "")
	p.SetOpacity(3)
	assert.Equal(t, 1.0, p.Opacity())
	p.SetOpacity(-1)
	assert.Equal(t, 0.0, p.Opacity())
}

func TestPresenterColorsMessage(t *testing.T) {
	var out bytes.Buffer
	canvas := draw.NewTerminalCanvas(60, 20, termenv.TrueColor)
	p := NewPresenter(canvas, &out, termenv.TrueColor, "Hi", "there")
	p.SetOpacity(1)
	require.NoError(t, p.Present())
	assert.Contains(t, out.String(), "38;2;255;215;0")
}
