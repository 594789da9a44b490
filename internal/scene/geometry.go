package scene

import "github.com/tomz197/birthday/internal/geom"

// Face is a planar quad in object space. Corners wind counter-clockwise when
// seen from the side the normal points to; UV (0,0) is the bottom-left corner.
type Face struct {
	Corners [4]geom.Vec3
	UV      [4][2]float64
	Normal  geom.Vec3
	Group   int // Index into the mesh materials
}

// Geometry produces the faces of a mesh.
type Geometry interface {
	Faces() []Face
}

var quadUV = [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// Box face groups, in material order.
const (
	FaceRight = iota
	FaceLeft
	FaceTop
	FaceBottom
	FaceFront
	FaceBack
)

// Box is an axis-aligned box centred on the origin.
type Box struct {
	Width, Height, Depth float64
}

// Faces returns the six faces ordered right, left, top, bottom, front, back.
func (b Box) Faces() []Face {
	w, h, d := b.Width/2, b.Height/2, b.Depth/2
	v := geom.V3
	return []Face{
		{Corners: [4]geom.Vec3{v(w, -h, d), v(w, -h, -d), v(w, h, -d), v(w, h, d)}, UV: quadUV, Normal: v(1, 0, 0), Group: FaceRight},
		{Corners: [4]geom.Vec3{v(-w, -h, -d), v(-w, -h, d), v(-w, h, d), v(-w, h, -d)}, UV: quadUV, Normal: v(-1, 0, 0), Group: FaceLeft},
		{Corners: [4]geom.Vec3{v(-w, h, d), v(w, h, d), v(w, h, -d), v(-w, h, -d)}, UV: quadUV, Normal: v(0, 1, 0), Group: FaceTop},
		{Corners: [4]geom.Vec3{v(-w, -h, -d), v(w, -h, -d), v(w, -h, d), v(-w, -h, d)}, UV: quadUV, Normal: v(0, -1, 0), Group: FaceBottom},
		{Corners: [4]geom.Vec3{v(-w, -h, d), v(w, -h, d), v(w, h, d), v(-w, h, d)}, UV: quadUV, Normal: v(0, 0, 1), Group: FaceFront},
		{Corners: [4]geom.Vec3{v(w, -h, -d), v(-w, -h, -d), v(-w, h, -d), v(w, h, -d)}, UV: quadUV, Normal: v(0, 0, -1), Group: FaceBack},
	}
}

// Plane is a flat rectangle in the XY plane facing +Z.
type Plane struct {
	Width, Height float64
}

// Faces returns the single face of the plane.
func (p Plane) Faces() []Face {
	w, h := p.Width/2, p.Height/2
	v := geom.V3
	return []Face{
		{Corners: [4]geom.Vec3{v(-w, -h, 0), v(w, -h, 0), v(w, h, 0), v(-w, h, 0)}, UV: quadUV, Normal: v(0, 0, 1)},
	}
}
