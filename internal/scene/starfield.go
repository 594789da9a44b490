package scene

import (
	"math/rand/v2"

	"github.com/tomz197/birthday/internal/draw"
	"github.com/tomz197/birthday/internal/geom"
	"github.com/tomz197/birthday/internal/loop/config"
)

// NewStarfield scatters count points uniformly through the cube [-extent, extent]^3.
func NewStarfield(rng *rand.Rand, count int, extent float64) *Points {
	vertices := make([]geom.Vec3, count)
	for i := range vertices {
		vertices[i] = randomInCube(rng, extent)
	}
	return &Points{
		Object3D: NewObject3D(),
		Vertices: vertices,
		Material: PointsMaterial{Color: draw.Hex(config.StarColor), Size: config.StarSize},
	}
}

// randomInCube returns a point uniformly distributed in [-half, half]^3.
func randomInCube(rng *rand.Rand, half float64) geom.Vec3 {
	return geom.V3(
		(rng.Float64()-0.5)*2*half,
		(rng.Float64()-0.5)*2*half,
		(rng.Float64()-0.5)*2*half,
	)
}
