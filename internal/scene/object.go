// Package scene holds the scene graph and the code that populates it:
// lights, the starfield, shooting stars and the ring of paintings.
package scene

import (
	"image"

	"github.com/tomz197/birthday/internal/draw"
	"github.com/tomz197/birthday/internal/geom"
)

// Node is anything that lives in the scene graph.
type Node interface {
	Object() *Object3D
}

// Object3D is the placement shared by every node.
type Object3D struct {
	Position geom.Vec3
	Rotation geom.Mat3
}

// NewObject3D returns an object at the origin with identity rotation.
func NewObject3D() Object3D {
	return Object3D{Rotation: geom.Identity()}
}

// Object implements Node.
func (o *Object3D) Object() *Object3D {
	return o
}

// LookAt rotates the object so its local +Z axis points at target.
func (o *Object3D) LookAt(target geom.Vec3) {
	o.Rotation = geom.LookRotation(target.Sub(o.Position), geom.Up)
}

// LocalToWorld maps a point from object space into world space.
func (o *Object3D) LocalToWorld(p geom.Vec3) geom.Vec3 {
	return o.Rotation.Apply(p).Add(o.Position)
}

// PointsMaterial colours point primitives.
type PointsMaterial struct {
	Color draw.RGB
	Size  float64
}

// Material is a diffuse (Lambert) surface: either a texture or a flat colour.
type Material struct {
	Color      draw.RGB
	Map        *image.RGBA
	DoubleSide bool
}

// Points is a static point cloud.
type Points struct {
	Object3D
	Vertices []geom.Vec3
	Material PointsMaterial
}

// Mesh is a geometry with one material per face group.
type Mesh struct {
	Object3D
	Geometry  Geometry
	Materials []Material
}

// MaterialFor returns the material for a face group, falling back to the first.
func (m *Mesh) MaterialFor(group int) Material {
	if group >= 0 && group < len(m.Materials) {
		return m.Materials[group]
	}
	if len(m.Materials) > 0 {
		return m.Materials[0]
	}
	return Material{Color: draw.Hex(0xffffff)}
}

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Object3D
	Color     draw.RGB
	Intensity float64
}

// SpotLight is a cone light aimed at a target node.
type SpotLight struct {
	Object3D
	Color     draw.RGB
	Intensity float64
	Distance  float64 // Range; 0 means unlimited
	Angle     float64 // Cone half-angle in radians
	Target    Node
}

// Direction returns the unit vector from the light to its target.
func (s *SpotLight) Direction() geom.Vec3 {
	if s.Target == nil {
		return geom.V3(0, -1, 0)
	}
	return s.Target.Object().Position.Sub(s.Position).Normalize()
}

// NewAmbientLight creates an ambient light.
func NewAmbientLight(color draw.RGB, intensity float64) *AmbientLight {
	return &AmbientLight{Object3D: NewObject3D(), Color: color, Intensity: intensity}
}
