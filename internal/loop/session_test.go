package loop

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/birthday/internal/draw"
	"github.com/tomz197/birthday/internal/geom"
	"github.com/tomz197/birthday/internal/render"
	"github.com/tomz197/birthday/internal/scene"
)

// recorder collects the calls a tick makes, in order.
type recorder struct {
	calls []string
	cams  []geom.Vec3 // Camera position at each call
	cam   *render.Camera
}

func (r *recorder) note(name string) {
	r.calls = append(r.calls, name)
	if r.cam != nil {
		r.cams = append(r.cams, r.cam.Position)
	}
}

type fakeScheduler struct{ rec *recorder }

func (f fakeScheduler) RequestFrame() { f.rec.note("request") }

type fakeOverlay struct {
	rec     *recorder
	opacity float64
}

func (f *fakeOverlay) SetOpacity(o float64) {
	f.opacity = o
	f.rec.note("overlay")
}

type fakeRenderer struct {
	rec           *recorder
	width, height int
	nodes         int
	starPos       []geom.Vec3
}

func (f *fakeRenderer) SetSize(w, h int) {
	f.width, f.height = w, h
}

func (f *fakeRenderer) Render(nodes []scene.Node, cam *render.Camera) {
	f.nodes = len(nodes)
	f.starPos = f.starPos[:0]
	for _, n := range nodes {
		if s, ok := n.(*scene.ShootingStar); ok {
			f.starPos = append(f.starPos, s.Position)
		}
	}
	f.rec.note("render")
}

func newTestSession(t *testing.T) (*Session, *recorder, *fakeRenderer, *fakeOverlay) {
	t.Helper()
	rng := rand.New(rand.NewPCG(1, 2))
	rec := &recorder{}
	renderer := &fakeRenderer{rec: rec}
	overlay := &fakeOverlay{rec: rec}

	graph := scene.NewGraph(draw.Black)
	stars := scene.NewShootingStars(rng, 5)
	for _, s := range stars {
		graph.Add(s)
	}

	s := NewSession(SessionOptions{
		Graph:     graph,
		Stars:     stars,
		Renderer:  renderer,
		Overlay:   overlay,
		Scheduler: fakeScheduler{rec: rec},
		Rand:      rng,
		Width:     200,
		Height:    100,
	})
	rec.cam = s.Camera
	return s, rec, renderer, overlay
}

func TestTickOrder(t *testing.T) {
	s, rec, renderer, _ := newTestSession(t)
	before := make([]geom.Vec3, len(s.Stars))
	for i, star := range s.Stars {
		before[i] = star.Position
	}

	s.Tick(time.Unix(0, 0))

	require.Equal(t, []string{"request", "overlay", "render"}, rec.calls)
	assert.Equal(t, geom.V3(0, 0, 5), rec.cams[0], "frame is requested before the controls move the camera")
	assert.NotEqual(t, rec.cams[0], rec.cams[1], "controls update before the message is evaluated")
	assert.Equal(t, rec.cams[1], rec.cams[2])

	require.Len(t, renderer.starPos, len(s.Stars))
	for i, star := range s.Stars {
		assert.Equal(t, star.Position, renderer.starPos[i], "stars advance before the render")
		assert.NotEqual(t, before[i], star.Position)
	}
}

func TestTickDrivesOverlayFromPolarAngle(t *testing.T) {
	s, _, _, overlay := newTestSession(t)
	now := time.Unix(0, 0)

	s.Tick(now)
	assert.Equal(t, 0.0, overlay.opacity, "camera starts level with the target")

	// Drag up until the camera looks straight down.
	s.Controls.Rotate(0, -200, 200)
	for i := 0; i < 200 && s.Controls.PolarAngle() >= 0.5; i++ {
		now = now.Add(time.Second / 60)
		s.Tick(now)
	}
	require.Less(t, s.Controls.PolarAngle(), 0.5)
	assert.Equal(t, 1.0, overlay.opacity)
	assert.True(t, s.Message.Visible())
}

func TestResizeUpdatesCameraAndRenderer(t *testing.T) {
	s, _, renderer, _ := newTestSession(t)
	assert.InDelta(t, 2.0, s.Camera.Aspect, 1e-9)

	s.Resize(300, 100)
	assert.InDelta(t, 3.0, s.Camera.Aspect, 1e-9)
	assert.Equal(t, 300, renderer.width)
	assert.Equal(t, 100, renderer.height)

	pos := s.Camera.Position
	s.Resize(0, 100)
	assert.InDelta(t, 3.0, s.Camera.Aspect, 1e-9, "degenerate sizes are ignored")
	assert.Equal(t, pos, s.Camera.Position)
}

func TestTickRendersGraphAddedLater(t *testing.T) {
	s, _, renderer, _ := newTestSession(t)
	s.Tick(time.Unix(0, 0))
	assert.Equal(t, 5, renderer.nodes)

	s.Graph.Add(scene.NewAmbientLight(draw.Hex(0xffffff), 0.6))
	s.Tick(time.Unix(1, 0))
	assert.Equal(t, 6, renderer.nodes)
}
