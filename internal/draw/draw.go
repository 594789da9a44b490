// Package draw provides the colour framebuffer and terminal output used by the renderer.
package draw

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
