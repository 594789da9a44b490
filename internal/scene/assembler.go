package scene

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/birthday/internal/draw"
	"github.com/tomz197/birthday/internal/loop/config"
)

// Assembler populates a graph: lights and stars immediately, paintings as
// their textures arrive.
type Assembler struct {
	Source TextureSource
	Logger *log.Logger
	Rand   *rand.Rand
	Radius float64

	loads errgroup.Group
}

// Assemble adds the ambient light, starfield and shooting stars to g, then
// starts one texture load per painting. Each successful load inserts that
// painting's frame, box and spotlight; a failed load inserts nothing and
// does not affect the others. Returns the shooting stars so the frame loop
// can advance them.
func (a *Assembler) Assemble(ctx context.Context, g *Graph, paintings []string) []*ShootingStar {
	rng := a.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	radius := a.Radius
	if radius <= 0 {
		radius = config.RingRadius
	}

	g.Add(NewAmbientLight(draw.Hex(config.AmbientLightColor), config.AmbientLightAmount))
	g.Add(NewStarfield(rng, config.StarCount, config.StarExtent))

	stars := NewShootingStars(rng, config.ShootingStarCount)
	for _, s := range stars {
		g.Add(s)
	}

	for i, url := range paintings {
		a.loads.Go(func() error {
			a.loadPanel(ctx, g, url, i, len(paintings), radius)
			return nil
		})
	}

	return stars
}

// Wait blocks until every texture load started by Assemble has finished.
func (a *Assembler) Wait() {
	_ = a.loads.Wait()
}

func (a *Assembler) loadPanel(ctx context.Context, g *Graph, url string, index, count int, radius float64) {
	tex, err := a.Source.Load(ctx, url)
	if err != nil {
		a.logger().Debug("painting skipped", "url", url, "err", err)
		return
	}
	panel := NewPanel(tex, index, count, radius)
	g.Add(panel.Nodes()...)
	a.logger().Debug("painting hung", "url", url, "slot", index)
}

func (a *Assembler) logger() *log.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return log.Default()
}
