package scene

import (
	"math/rand/v2"

	"github.com/tomz197/birthday/internal/draw"
	"github.com/tomz197/birthday/internal/geom"
	"github.com/tomz197/birthday/internal/loop/config"
)

// ShootingStar is a single bright point drifting in a straight line.
type ShootingStar struct {
	Object3D
	Velocity geom.Vec3
	Material PointsMaterial
}

// NewShootingStars creates n stars at random positions with random velocities.
func NewShootingStars(rng *rand.Rand, n int) []*ShootingStar {
	stars := make([]*ShootingStar, n)
	for i := range stars {
		s := &ShootingStar{
			Object3D: NewObject3D(),
			Material: PointsMaterial{Color: draw.Hex(config.ShootingStarColor), Size: config.ShootingStarSize},
		}
		s.respawn(rng)
		stars[i] = s
	}
	return stars
}

// Advance moves the star by one velocity step. A star that ends up more than
// ShootingStarBound from the origin is respawned near the centre with a new
// velocity. Reports whether a respawn happened.
func (s *ShootingStar) Advance(rng *rand.Rand) bool {
	s.Position = s.Position.Add(s.Velocity)
	if s.Position.LengthSq() > config.ShootingStarBound*config.ShootingStarBound {
		s.respawn(rng)
		return true
	}
	return false
}

func (s *ShootingStar) respawn(rng *rand.Rand) {
	s.Position = randomInCube(rng, config.ShootingStarSpawn)
	s.Velocity = randomInCube(rng, config.ShootingStarSpeed)
}
