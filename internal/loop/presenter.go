package loop

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/muesli/termenv"

	"github.com/tomz197/birthday/internal/draw"
)

// MessageColor is the full-opacity colour of the birthday message.
var MessageColor = draw.Hex(0xffd700)

// Presenter writes rendered frames to a terminal and draws the birthday
// message on top. It implements Overlay.
type Presenter struct {
	canvas  *draw.Canvas
	out     *draw.ChunkWriter
	profile termenv.Profile

	title    string
	subtitle string
	opacity  float64

	drawn []span // Cells covered by text last frame, repainted by the next Render
}

// span is a run of n terminal cells starting at 1-based (col, row).
type span struct {
	col, row, n int
}

var _ Overlay = (*Presenter)(nil)

// NewPresenter creates a presenter drawing canvas to w.
func NewPresenter(canvas *draw.Canvas, w io.Writer, profile termenv.Profile, title, subtitle string) *Presenter {
	return &Presenter{
		canvas:   canvas,
		out:      draw.NewChunkWriter(w, canvas.OffsetCol(), canvas.OffsetRow()),
		profile:  profile,
		title:    title,
		subtitle: subtitle,
	}
}

// SetOpacity sets how strongly the message is drawn; 0 hides it.
func (p *Presenter) SetOpacity(opacity float64) {
	p.opacity = max(0, min(1, opacity))
}

// Opacity returns the current message opacity.
func (p *Presenter) Opacity() float64 {
	return p.opacity
}

// SetOffset moves the presented area, clearing the terminal so nothing is
// left behind outside it.
func (p *Presenter) SetOffset(col, row int) {
	if col != p.canvas.OffsetCol() || row != p.canvas.OffsetRow() {
		p.out.WriteString("\033[H\033[2J")
	}
	p.canvas.SetOffset(col, row)
	p.out.SetOffset(col, row)
}

// Clear wipes the terminal and forces a full repaint on the next Present.
func (p *Presenter) Clear() {
	p.out.WriteString("\033[H\033[2J")
	p.canvas.ForceRedraw()
	p.drawn = p.drawn[:0]
}

// Present writes the canvas, the border and the message, then flushes.
func (p *Presenter) Present() error {
	for _, s := range p.drawn {
		p.canvas.MarkTextDirty(s.col, s.row, s.n)
	}
	p.drawn = p.drawn[:0]

	if err := p.canvas.Render(p.out); err != nil {
		return err
	}
	p.canvas.RenderBorder(p.out)

	if p.opacity > 0 {
		p.drawMessage()
	}
	return p.out.Flush()
}

// messageLines lays the message out as a framed box. The title is letter
// spaced when there is room for it.
func messageLines(title, subtitle string, width int) []string {
	spaced := spaceLetters(strings.ToUpper(title))
	if utf8.RuneCountInString(spaced)+4 <= width {
		title = spaced
	}

	inner := max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	if inner+2 > width {
		return []string{title, subtitle}
	}

	lines := []string{
		"╭" + strings.Repeat("─", inner) + "╮",
		"│" + center(title, inner) + "│",
	}
	if subtitle != "" {
		lines = append(lines,
			"│"+strings.Repeat(" ", inner)+"│",
			"│"+center(subtitle, inner)+"│",
		)
	}
	return append(lines, "╰"+strings.Repeat("─", inner)+"╯")
}

func spaceLetters(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

// drawMessage writes the message centred on the canvas, faded toward black
// by the current opacity.
func (p *Presenter) drawMessage() {
	termWidth := p.canvas.TerminalWidth()
	termHeight := p.canvas.TerminalHeight()
	lines := messageLines(p.title, p.subtitle, termWidth)

	col := MessageColor
	if p.opacity < 1 {
		col = col.Blend(draw.Black, 1-p.opacity)
	}
	fg := p.profile.Color(col.Hex())

	top := termHeight/2 - len(lines)/2 + 1
	for i, line := range lines {
		row := top + i
		n := utf8.RuneCountInString(line)
		if row < 1 || row > termHeight || n == 0 {
			continue
		}
		if n > termWidth {
			line = string([]rune(line)[:termWidth])
			n = termWidth
		}
		start := (termWidth-n)/2 + 1
		p.out.WriteAt(start, row, p.profile.String(line).Foreground(fg).Bold().String())
		p.drawn = append(p.drawn, span{col: start, row: row, n: n})
	}
}
