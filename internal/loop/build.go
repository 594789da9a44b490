package loop

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	settings "github.com/tomz197/birthday/internal/config"
	"github.com/tomz197/birthday/internal/draw"
	"github.com/tomz197/birthday/internal/scene"
)

// Stage is a populated scene graph and the loads still filling it.
type Stage struct {
	Graph     *scene.Graph
	Stars     []*scene.ShootingStar
	Assembler *scene.Assembler
}

// Build creates a graph for sc and starts loading its paintings with
// textures. Loads stop when ctx is cancelled; call Assembler.Wait after
// that to join them.
func Build(ctx context.Context, sc settings.Scene, textures scene.TextureSource, logger *log.Logger, rng *rand.Rand) Stage {
	if textures == nil {
		textures = scene.NewLoader(scene.LoaderOptions{})
	}
	a := &scene.Assembler{
		Source: textures,
		Logger: logger,
		Rand:   rng,
		Radius: sc.Radius,
	}
	g := scene.NewGraph(draw.Black)
	stars := a.Assemble(ctx, g, sc.Paintings)
	return Stage{Graph: g, Stars: stars, Assembler: a}
}
