package scene

import (
	"image"
	"math"

	"github.com/tomz197/birthday/internal/draw"
	"github.com/tomz197/birthday/internal/geom"
	"github.com/tomz197/birthday/internal/loop/config"
)

// RingPosition returns where painting index of count sits on a ring of the
// given radius around the origin, at angle 2π·index/count in the XZ plane.
func RingPosition(index, count int, radius float64) geom.Vec3 {
	angle := float64(index) / float64(count) * math.Pi * 2
	return geom.V3(math.Cos(angle)*radius, 0, math.Sin(angle)*radius)
}

// Panel is one hung painting: its black backing frame, the textured box and
// the spotlight aimed at it.
type Panel struct {
	Frame    *Mesh
	Painting *Mesh
	Light    *SpotLight
}

// Nodes returns the panel's nodes in insertion order.
func (p Panel) Nodes() []Node {
	return []Node{p.Frame, p.Painting, p.Light}
}

// NewPanel builds the painting at ring slot index, facing the origin.
// The front face carries the texture; back and sides are plain wood.
func NewPanel(texture *image.RGBA, index, count int, radius float64) Panel {
	pos := RingPosition(index, count, radius)

	wood := Material{Color: draw.Hex(config.WoodColor)}
	front := Material{Color: draw.Hex(0xffffff), Map: texture}
	painting := &Mesh{
		Object3D: NewObject3D(),
		Geometry: Box{Width: config.PaintingWidth, Height: config.PaintingHeight, Depth: config.PaintingDepth},
		Materials: []Material{
			FaceRight:  wood,
			FaceLeft:   wood,
			FaceTop:    wood,
			FaceBottom: wood,
			FaceFront:  front,
			FaceBack:   wood,
		},
	}
	painting.Position = pos
	painting.LookAt(geom.Vec3{})

	frame := &Mesh{
		Object3D:  NewObject3D(),
		Geometry:  Plane{Width: config.FrameWidth, Height: config.FrameHeight},
		Materials: []Material{{Color: draw.Hex(config.FrameColor), DoubleSide: true}},
	}
	frame.Position = geom.V3(pos.X, 0, pos.Z+config.FrameOffsetZ)
	frame.LookAt(geom.Vec3{})

	light := &SpotLight{
		Object3D:  NewObject3D(),
		Color:     draw.Hex(config.SpotLightColor),
		Intensity: config.SpotLightPower,
		Distance:  config.SpotLightDistance,
		Angle:     config.SpotLightAngle,
		Target:    painting,
	}
	light.Position = geom.V3(pos.X, config.SpotLightHeight, pos.Z)

	return Panel{Frame: frame, Painting: painting, Light: light}
}
