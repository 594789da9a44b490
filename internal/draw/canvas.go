package draw

import (
	"image"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// Canvas is a colour framebuffer with a depth buffer.
// In the terminal it is shown with half-block characters, so every terminal
// cell carries two vertically stacked pixels (height = rows * 2).
type Canvas struct {
	width  int       // Pixel columns
	height int       // Pixel rows
	pix    []RGB     // Flat slice: [y * width + x]
	depth  []float64 // View-space depth per pixel, +Inf when empty

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	profile termenv.Profile
	seqs    map[seqKey]string // Cached SGR sequences per colour

	// Cells already on screen, used to skip unchanged output.
	prev      []cell
	prevValid []bool

	// Reusable buffer to reduce allocations
	renderBuf strings.Builder
	numBuf    [20]byte
	pen       pen
}

type cell struct {
	top, bottom RGB
}

type seqKey struct {
	c  RGB
	bg bool
}

// NewCanvas creates a canvas of width x height pixels.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{profile: termenv.TrueColor, seqs: make(map[seqKey]string)}
	c.Resize(width, height)
	return c
}

// NewTerminalCanvas creates a canvas covering termWidth x termHeight cells.
func NewTerminalCanvas(termWidth, termHeight int, profile termenv.Profile) *Canvas {
	c := NewCanvas(termWidth, termHeight*2)
	c.profile = profile
	return c
}

// Resize reallocates the buffers for new pixel dimensions.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == c.width && height == c.height && c.pix != nil {
		return
	}
	c.width = width
	c.height = height
	c.pix = make([]RGB, width*height)
	c.depth = make([]float64, width*height)
	cells := width * ((height + 1) / 2)
	c.prev = make([]cell, cells)
	c.prevValid = make([]bool, cells)
	c.Clear(Black)
}

// ResizeTerminal resizes the canvas to cover termWidth x termHeight cells.
func (c *Canvas) ResizeTerminal(termWidth, termHeight int) {
	c.Resize(termWidth, termHeight*2)
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Width returns the pixel width.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the pixel height.
func (c *Canvas) Height() int {
	return c.height
}

// TerminalWidth returns the terminal column count covered by the canvas.
func (c *Canvas) TerminalWidth() int {
	return c.width
}

// TerminalHeight returns the terminal row count covered by the canvas.
func (c *Canvas) TerminalHeight() int {
	return (c.height + 1) / 2
}

// Clear fills the canvas with bg and resets the depth buffer.
func (c *Canvas) Clear(bg RGB) {
	for i := range c.pix {
		c.pix[i] = bg
	}
	inf := math.Inf(1)
	for i := range c.depth {
		c.depth[i] = inf
	}
}

// At returns the pixel colour at (x, y), or Black outside the canvas.
func (c *Canvas) At(x, y int) RGB {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Black
	}
	return c.pix[y*c.width+x]
}

// DepthAt returns the stored depth at (x, y).
func (c *Canvas) DepthAt(x, y int) float64 {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return math.Inf(1)
	}
	return c.depth[y*c.width+x]
}

// Set writes a pixel without a depth test.
func (c *Canvas) Set(x, y int, col RGB) {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		c.pix[y*c.width+x] = col
	}
}

// SetDepth writes a pixel only if z is nearer than what is stored. Reports whether it was written.
func (c *Canvas) SetDepth(x, y int, z float64, col RGB) bool {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return false
	}
	i := y*c.width + x
	if z >= c.depth[i] {
		return false
	}
	c.depth[i] = z
	c.pix[i] = col
	return true
}

// DrawLine draws a depth-tested line using Bresenham's algorithm.
// Coordinates are in pixels; z is used for every pixel on the line.
func (c *Canvas) DrawLine(p1, p2 Point, z float64, col RGB) {
	x1 := int(math.Round(p1.X))
	y1 := int(math.Round(p1.Y))
	x2 := int(math.Round(p2.X))
	y2 := int(math.Round(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.SetDepth(x1, y1, z, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// CopyTo writes the canvas into dst, which must be at least the canvas size.
func (c *Canvas) CopyTo(dst *image.RGBA) {
	b := dst.Bounds()
	for y := 0; y < c.height && y < b.Dy(); y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < c.width && x < b.Dx(); x++ {
			p := c.pix[y*c.width+x]
			j := x * 4
			row[j+0] = p.R
			row[j+1] = p.G
			row[j+2] = p.B
			row[j+3] = 0xff
		}
	}
}

// ForceRedraw makes the next Render emit every cell.
func (c *Canvas) ForceRedraw() {
	clear(c.prevValid)
}

// MarkTextDirty invalidates cells overwritten by text so the next frame repaints them.
// col and row are 1-based canvas coordinates.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	rows := c.TerminalHeight()
	r := row - 1
	if r < 0 || r >= rows {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.width {
			c.prevValid[r*c.width+x] = false
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using half-block characters.
// Only cells that changed since the previous Render are written.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.pen = pen{bgDefault: true}
	c.renderBuf.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	rows := c.TerminalHeight()
	lastRow, lastCol := -1, -1

	for row := 0; row < rows; row++ {
		topOffset := row * 2 * c.width
		bottomY := row*2 + 1
		for col := 0; col < c.width; col++ {
			cur := cell{top: c.pix[topOffset+col]}
			if bottomY < c.height {
				cur.bottom = c.pix[bottomY*c.width+col]
			}
			idx := row*c.width + col
			if c.prevValid[idx] && c.prev[idx] == cur {
				continue
			}
			c.prev[idx] = cur
			c.prevValid[idx] = true

			if row != lastRow || col != lastCol+1 {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			lastRow, lastCol = row, col
			c.writeCell(cur)
		}
	}
	c.renderBuf.WriteString(termenv.CSI + termenv.ResetSeq + "m")

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// pen tracks the SGR state already emitted during a Render.
type pen struct {
	fg        RGB
	fgSet     bool
	bg        RGB
	bgSet     bool
	bgDefault bool
}

// writeCell emits one terminal cell showing the two stacked pixels.
// Black pixels use the terminal's default background.
func (c *Canvas) writeCell(cur cell) {
	topOn := cur.top != Black
	bottomOn := cur.bottom != Black
	switch {
	case !topOn && !bottomOn:
		c.defaultBackground()
		c.renderBuf.WriteRune(BlockEmpty)
	case cur.top == cur.bottom:
		c.foreground(cur.top)
		c.renderBuf.WriteRune(BlockFull)
	case !topOn:
		c.foreground(cur.bottom)
		c.defaultBackground()
		c.renderBuf.WriteRune(BlockLowerHalf)
	case !bottomOn:
		c.foreground(cur.top)
		c.defaultBackground()
		c.renderBuf.WriteRune(BlockUpperHalf)
	default:
		c.foreground(cur.top)
		c.background(cur.bottom)
		c.renderBuf.WriteRune(BlockUpperHalf)
	}
}

func (c *Canvas) foreground(col RGB) {
	if c.pen.fgSet && c.pen.fg == col {
		return
	}
	c.writeColor(col, false)
	c.pen.fg, c.pen.fgSet = col, true
}

func (c *Canvas) background(col RGB) {
	if c.pen.bgSet && c.pen.bg == col {
		return
	}
	c.writeColor(col, true)
	c.pen.bg, c.pen.bgSet, c.pen.bgDefault = col, true, false
}

func (c *Canvas) defaultBackground() {
	if c.pen.bgDefault {
		return
	}
	c.renderBuf.WriteString(termenv.CSI + "49m")
	c.pen.bgSet, c.pen.bgDefault = false, true
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeColor appends the SGR sequence selecting col as foreground or background,
// degraded to the canvas colour profile.
func (c *Canvas) writeColor(col RGB, bg bool) {
	key := seqKey{c: col, bg: bg}
	seq, ok := c.seqs[key]
	if !ok {
		if s := c.profile.Color(col.Hex()).Sequence(bg); s != "" {
			seq = termenv.CSI + s + "m"
		}
		c.seqs[key] = seq
	}
	c.renderBuf.WriteString(seq)
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	termWidth := c.TerminalWidth()
	termHeight := c.TerminalHeight()
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + termHeight + 1

	var buf strings.Builder

	if hasV {
		if hasH {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(left) + "H┌" + strings.Repeat("─", termWidth) + "┐")
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(left) + "H└" + strings.Repeat("─", termWidth) + "┘")
		} else {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(c.offsetCol+1) + "H" + strings.Repeat("─", termWidth))
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(c.offsetCol+1) + "H" + strings.Repeat("─", termWidth))
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			r := strconv.Itoa(row)
			buf.WriteString("\033[" + r + ";" + strconv.Itoa(left) + "H│\033[" + r + ";" + strconv.Itoa(right) + "H│")
		}
	}

	io.WriteString(w, buf.String())
}
