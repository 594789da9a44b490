package geom

import "math"

// Mat3 is an orthonormal basis stored as its three axis columns.
// Applying it maps local coordinates to world orientation.
type Mat3 struct {
	X, Y, Z Vec3
}

// Identity returns the identity basis.
func Identity() Mat3 {
	return Mat3{X: Vec3{1, 0, 0}, Y: Vec3{0, 1, 0}, Z: Vec3{0, 0, 1}}
}

// Apply transforms a local vector into the basis' world orientation.
func (m Mat3) Apply(v Vec3) Vec3 {
	return m.X.Scale(v.X).Add(m.Y.Scale(v.Y)).Add(m.Z.Scale(v.Z))
}

// ApplyInverse maps a world vector into local coordinates.
// Valid because the basis is orthonormal (inverse == transpose).
func (m Mat3) ApplyInverse(v Vec3) Vec3 {
	return Vec3{m.X.Dot(v), m.Y.Dot(v), m.Z.Dot(v)}
}

// LookRotation builds a basis whose Z axis points along forward, with X
// perpendicular to up. When forward is parallel to up, Z is nudged so the
// basis stays well defined.
func LookRotation(forward, up Vec3) Mat3 {
	z := forward.Normalize()
	if z.LengthSq() == 0 {
		z = Vec3{0, 0, 1}
	}
	x := up.Cross(z)
	if x.LengthSq() == 0 {
		if math.Abs(up.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)
	return Mat3{X: x, Y: y, Z: z}
}
