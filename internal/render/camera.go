// Package render rasterizes a scene graph snapshot into a draw.Canvas.
package render

import (
	"math"

	"github.com/tomz197/birthday/internal/geom"
)

// Camera is a perspective camera looking down its local -Z axis.
type Camera struct {
	Position geom.Vec3
	Rotation geom.Mat3
	FOV      float64 // Vertical field of view in degrees
	Aspect   float64
	Near     float64
	Far      float64

	focal float64 // 1 / tan(FOV/2), refreshed by UpdateProjection
}

// NewCamera creates a camera at the origin with the given projection.
func NewCamera(fov, aspect, near, far float64) *Camera {
	c := &Camera{
		Rotation: geom.Identity(),
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
	c.UpdateProjection()
	return c
}

// UpdateProjection must be called after FOV or Aspect change.
func (c *Camera) UpdateProjection() {
	c.focal = 1 / math.Tan(c.FOV*math.Pi/360)
	if c.Aspect <= 0 || math.IsNaN(c.Aspect) || math.IsInf(c.Aspect, 0) {
		c.Aspect = 1
	}
}

// LookAt turns the camera to face target.
func (c *Camera) LookAt(target geom.Vec3) {
	c.Rotation = geom.LookRotation(c.Position.Sub(target), geom.Up)
}

// ToView maps a world point into camera space (camera at origin, looking down -Z).
func (c *Camera) ToView(p geom.Vec3) geom.Vec3 {
	return c.Rotation.ApplyInverse(p.Sub(c.Position))
}

// ViewToScreen projects a camera-space point in front of the camera onto a
// width x height pixel grid. depth is the distance along the view axis.
func (c *Camera) ViewToScreen(v geom.Vec3, width, height int) (x, y, depth float64) {
	depth = -v.Z
	ndcX := c.focal / c.Aspect * v.X / depth
	ndcY := c.focal * v.Y / depth
	x = (ndcX + 1) * 0.5 * float64(width)
	y = (1 - ndcY) * 0.5 * float64(height)
	return x, y, depth
}

// Project maps a world point to pixel coordinates. ok is false when the
// point lies outside the near/far range.
func (c *Camera) Project(p geom.Vec3, width, height int) (x, y, depth float64, ok bool) {
	v := c.ToView(p)
	if -v.Z < c.Near || -v.Z > c.Far {
		return 0, 0, 0, false
	}
	x, y, depth = c.ViewToScreen(v, width, height)
	return x, y, depth, true
}
