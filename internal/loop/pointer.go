package loop

import (
	"github.com/tomz197/birthday/internal/loop/config"
	"github.com/tomz197/birthday/internal/orbit"
)

// DragMode says what a pointer drag does to the view.
type DragMode int

const (
	DragRotate DragMode = iota
	DragPan
)

// Pointer turns button presses and cursor motion, in output pixels, into
// orbit control calls. Front-ends feed it from their own input sources.
// Whether a drag is in progress is the controls' Dragging state.
type Pointer struct {
	mode DragMode
	x, y float64
}

// Press starts a drag at (x, y).
func (p *Pointer) Press(c *orbit.Controls, mode DragMode, x, y float64) {
	p.mode = mode
	p.x, p.y = x, y
	c.BeginDrag()
}

// Move continues a drag to (x, y) on an output height pixels tall. Motion
// without a drag in progress is ignored.
func (p *Pointer) Move(c *orbit.Controls, x, y, height float64) {
	if !c.Dragging() {
		return
	}
	dx, dy := x-p.x, y-p.y
	p.x, p.y = x, y
	if dx == 0 && dy == 0 {
		return
	}
	if p.mode == DragRotate {
		c.Rotate(dx, dy, height)
	} else {
		c.Pan(dx, dy, height)
	}
}

// Release ends the drag.
func (p *Pointer) Release(c *orbit.Controls) {
	if c.Dragging() {
		c.EndDrag()
	}
}

// RotateKeys applies one frame of held direction keys as a short drag.
func RotateKeys(c *orbit.Controls, left, right, up, down bool, height float64) {
	step := config.KeyRotatePixels
	var dx, dy float64
	if left {
		dx -= step
	}
	if right {
		dx += step
	}
	if up {
		dy -= step
	}
	if down {
		dy += step
	}
	if dx != 0 || dy != 0 {
		c.Rotate(dx, dy, height)
	}
}
