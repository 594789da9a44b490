// Package orbit implements damped orbit camera controls: drag to rotate
// around a target, wheel to zoom, auto-rotation when idle.
package orbit

import (
	"math"

	"github.com/tomz197/birthday/internal/geom"
	"github.com/tomz197/birthday/internal/loop/config"
	"github.com/tomz197/birthday/internal/render"
)

// epsilon keeps the polar angle away from the poles, where the view basis degenerates.
const epsilon = 0.000001

// spherical holds coordinates around the target. Theta is the azimuth around
// +Y measured from +Z; phi is the polar angle from +Y.
type spherical struct {
	radius, theta, phi float64
}

func sphericalFromVec(v geom.Vec3) spherical {
	r := v.Length()
	if r == 0 {
		return spherical{}
	}
	return spherical{
		radius: r,
		theta:  math.Atan2(v.X, v.Z),
		phi:    math.Acos(clamp(v.Y/r, -1, 1)),
	}
}

func (s spherical) vec() geom.Vec3 {
	sinPhiRadius := math.Sin(s.phi) * s.radius
	return geom.V3(
		sinPhiRadius*math.Sin(s.theta),
		math.Cos(s.phi)*s.radius,
		sinPhiRadius*math.Cos(s.theta),
	)
}

// Orbit returns the point at distance radius from target, polar radians
// down from straight above it and azimuth radians around the vertical axis
// from +Z.
func Orbit(target geom.Vec3, radius, polar, azimuth float64) geom.Vec3 {
	return target.Add(spherical{radius: radius, theta: azimuth, phi: polar}.vec())
}

// Controls orbits a camera around Target.
type Controls struct {
	Target geom.Vec3

	EnableDamping   bool
	DampingFactor   float64
	MinDistance     float64
	MaxDistance     float64
	MinPolarAngle   float64
	MaxPolarAngle   float64
	AutoRotate      bool
	AutoRotateSpeed float64 // 2.0 is one orbit per 30 seconds at 60 fps
	RotateSpeed     float64 // Negative values invert the drag direction
	ZoomSpeed       float64

	camera    *render.Camera
	spherical spherical
	delta     spherical // Pending rotation, consumed by Update
	scale     float64   // Pending zoom factor
	panOffset geom.Vec3 // Pending target movement
	dragging  bool
}

// New creates controls for camera using the scene's configured behaviour:
// damping, bounded zoom, inverted drag and slow auto-rotation.
func New(camera *render.Camera) *Controls {
	c := &Controls{
		EnableDamping:   true,
		DampingFactor:   config.DampingFactor,
		MinDistance:     config.MinDistance,
		MaxDistance:     config.MaxDistance,
		MinPolarAngle:   0,
		MaxPolarAngle:   math.Pi,
		AutoRotate:      true,
		AutoRotateSpeed: config.AutoRotateSpeed,
		RotateSpeed:     config.RotateSpeed,
		ZoomSpeed:       config.ZoomSpeed,
		camera:          camera,
		scale:           1,
	}
	c.spherical = sphericalFromVec(camera.Position.Sub(c.Target))
	return c
}

// PolarAngle returns the camera's angle from straight above the target, in
// radians: 0 is overhead, π is underneath.
func (c *Controls) PolarAngle() float64 {
	return c.spherical.phi
}

// Distance returns the current camera distance from the target.
func (c *Controls) Distance() float64 {
	return c.spherical.radius
}

// BeginDrag pauses auto-rotation while the user holds the view.
func (c *Controls) BeginDrag() {
	c.dragging = true
}

// EndDrag resumes auto-rotation.
func (c *Controls) EndDrag() {
	c.dragging = false
}

// Dragging reports whether a drag is in progress.
func (c *Controls) Dragging() bool {
	return c.dragging
}

// Rotate applies a drag of (dx, dy) pixels on an output of the given height.
// Dragging the full height turns the view by one revolution.
func (c *Controls) Rotate(dx, dy, height float64) {
	if height <= 0 {
		return
	}
	c.rotateLeft(2 * math.Pi * dx * c.RotateSpeed / height)
	c.rotateUp(2 * math.Pi * dy * c.RotateSpeed / height)
}

// Pan moves the target by a drag of (dx, dy) pixels in the camera plane.
func (c *Controls) Pan(dx, dy, height float64) {
	if height <= 0 {
		return
	}
	offset := c.camera.Position.Sub(c.Target)
	targetDistance := offset.Length() * math.Tan(c.camera.FOV/2*math.Pi/180)

	left := c.camera.Rotation.X.Scale(-2 * dx * targetDistance / height)
	up := c.camera.Rotation.Y.Scale(2 * dy * targetDistance / height)
	c.panOffset = c.panOffset.Add(left).Add(up)
}

// Dolly zooms by wheel steps: positive moves closer, negative farther.
func (c *Controls) Dolly(steps float64) {
	c.scale *= math.Pow(c.zoomScale(), steps)
}

func (c *Controls) zoomScale() float64 {
	return math.Pow(0.95, c.ZoomSpeed)
}

func (c *Controls) autoRotationAngle() float64 {
	return 2 * math.Pi / 60 / 60 * c.AutoRotateSpeed
}

func (c *Controls) rotateLeft(angle float64) {
	c.delta.theta -= angle
}

func (c *Controls) rotateUp(angle float64) {
	c.delta.phi -= angle
}

// Update advances damping and auto-rotation by one frame and moves the
// camera. Call exactly once per frame, before reading PolarAngle.
func (c *Controls) Update() {
	offset := c.camera.Position.Sub(c.Target)
	c.spherical = sphericalFromVec(offset)

	if c.AutoRotate && !c.dragging {
		c.rotateLeft(c.autoRotationAngle())
	}

	if c.EnableDamping {
		c.spherical.theta += c.delta.theta * c.DampingFactor
		c.spherical.phi += c.delta.phi * c.DampingFactor
	} else {
		c.spherical.theta += c.delta.theta
		c.spherical.phi += c.delta.phi
	}

	c.spherical.phi = clamp(c.spherical.phi, c.MinPolarAngle, c.MaxPolarAngle)
	c.spherical.phi = clamp(c.spherical.phi, epsilon, math.Pi-epsilon)

	c.spherical.radius = clamp(c.spherical.radius*c.scale, c.MinDistance, c.MaxDistance)

	if c.EnableDamping {
		c.Target = c.Target.Add(c.panOffset.Scale(c.DampingFactor))
	} else {
		c.Target = c.Target.Add(c.panOffset)
	}

	c.camera.Position = c.Target.Add(c.spherical.vec())
	c.camera.LookAt(c.Target)

	if c.EnableDamping {
		c.delta.theta *= 1 - c.DampingFactor
		c.delta.phi *= 1 - c.DampingFactor
		c.panOffset = c.panOffset.Scale(1 - c.DampingFactor)
	} else {
		c.delta = spherical{}
		c.panOffset = geom.Vec3{}
	}
	c.scale = 1
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
