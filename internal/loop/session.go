package loop

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/birthday/internal/geom"
	"github.com/tomz197/birthday/internal/loop/config"
	"github.com/tomz197/birthday/internal/orbit"
	"github.com/tomz197/birthday/internal/render"
	"github.com/tomz197/birthday/internal/scene"
)

// Renderer draws a snapshot of the scene graph as seen by a camera.
type Renderer interface {
	SetSize(width, height int)
	Render(nodes []scene.Node, cam *render.Camera)
}

// Overlay shows the birthday message at a given opacity.
type Overlay interface {
	SetOpacity(opacity float64)
}

// Scheduler arranges for the next tick to happen.
type Scheduler interface {
	RequestFrame()
}

// Compile-time check that the software renderer can drive a session.
var _ Renderer = (*render.Renderer)(nil)

// SessionOptions configures a Session.
type SessionOptions struct {
	Graph     *scene.Graph
	Stars     []*scene.ShootingStar
	Renderer  Renderer
	Overlay   Overlay
	Scheduler Scheduler
	Rand      *rand.Rand
	Width     int // Output size in pixels
	Height    int
}

// Session is one viewer's scene: camera, controls, message state and the
// shared graph it renders. All methods must be called from one goroutine.
type Session struct {
	Graph    *scene.Graph
	Stars    []*scene.ShootingStar
	Camera   *render.Camera
	Controls *orbit.Controls
	Message  *Message

	renderer  Renderer
	overlay   Overlay
	scheduler Scheduler
	rng       *rand.Rand
}

// NewSession creates a session with the camera at its starting position.
func NewSession(opts SessionOptions) *Session {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	cam := render.NewCamera(config.CameraFOV, 1, config.CameraNear, config.CameraFar)
	cam.Position = geom.V3(0, 0, config.CameraZ)
	cam.LookAt(geom.Vec3{})

	s := &Session{
		Graph:     opts.Graph,
		Stars:     opts.Stars,
		Camera:    cam,
		Controls:  orbit.New(cam),
		Message:   NewMessage(config.MessagePolarThreshold, config.MessageHideAfter),
		renderer:  opts.Renderer,
		overlay:   opts.Overlay,
		scheduler: opts.Scheduler,
		rng:       rng,
	}
	if opts.Width > 0 && opts.Height > 0 {
		s.Resize(opts.Width, opts.Height)
	}
	return s
}

// Tick runs one frame: request the next one, update the controls, evaluate
// the message, advance the shooting stars and render.
func (s *Session) Tick(now time.Time) {
	if s.scheduler != nil {
		s.scheduler.RequestFrame()
	}

	s.Controls.Update()

	s.Message.Evaluate(s.Controls.PolarAngle(), now)
	if s.overlay != nil {
		s.overlay.SetOpacity(s.Message.Opacity())
	}

	for _, star := range s.Stars {
		star.Advance(s.rng)
	}

	s.renderer.Render(s.Graph.Snapshot(), s.Camera)
}

// Resize matches the camera aspect and the renderer output to a new size.
func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.Camera.Aspect = float64(width) / float64(height)
	s.Camera.UpdateProjection()
	s.renderer.SetSize(width, height)
}
