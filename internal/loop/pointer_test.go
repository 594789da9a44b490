package loop

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/birthday/internal/geom"
)

func TestPointerMoveWithoutPressIsIgnored(t *testing.T) {
	c := newTestControls()
	var p Pointer
	p.Move(c, 10, 10, 100)
	p.Release(c)
	c.Update()
	assert.False(t, c.Dragging())
	assert.Equal(t, geom.Vec3{}, c.Target)
}

func TestPointerPanMovesTarget(t *testing.T) {
	c := newTestControls()
	var p Pointer
	p.Press(c, DragPan, 0, 0)
	p.Move(c, 0, 20, 100)
	for i := 0; i < 50; i++ {
		c.Update()
	}
	assert.Greater(t, c.Target.Y, 0.0, "dragging down moves the target up")
	assert.InDelta(t, 0, c.Target.X, 1e-9)
}

func TestRotateKeysOppositeCancel(t *testing.T) {
	c := newTestControls()
	start := c.PolarAngle()
	RotateKeys(c, true, true, true, true, 100)
	c.Update()
	assert.InDelta(t, start, c.PolarAngle(), 1e-9)
}
