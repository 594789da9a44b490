// Package loop runs the birthday scene: the per-frame tick, the hidden
// message and the terminal front-end that drives them.
package loop

import (
	"bufio"
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	settings "github.com/tomz197/birthday/internal/config"
	"github.com/tomz197/birthday/internal/draw"
	"github.com/tomz197/birthday/internal/input"
	"github.com/tomz197/birthday/internal/loop/config"
	"github.com/tomz197/birthday/internal/orbit"
	"github.com/tomz197/birthday/internal/render"
	"github.com/tomz197/birthday/internal/scene"
)

// Options configures a terminal session.
type Options struct {
	Reader       *bufio.Reader
	Writer       io.Writer
	TermSizeFunc draw.TermSizeFunc // Defaults to the local terminal
	Scene        settings.Scene
	Textures     scene.TextureSource
	Logger       *log.Logger
	Profile      termenv.Profile
	Rand         *rand.Rand
}

// Run shows the scene in a terminal until ctx is cancelled, input ends or
// the user quits with q or Ctrl-C. Input → tick → present, once per frame.
func Run(ctx context.Context, opts Options) error {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	w := opts.Writer
	draw.EnterAltScreen(w)
	draw.HideCursor(w)
	draw.EnableMouse(w)
	draw.ClearScreen(w)
	defer func() {
		draw.DisableMouse(w)
		draw.ShowCursor(w)
		draw.ExitAltScreen(w)
	}()

	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewTerminalCanvas(renderWidth, renderHeight, opts.Profile)
	canvas.SetOffset(offsetCol, offsetRow)
	presenter := NewPresenter(canvas, w, opts.Profile, opts.Scene.Message.Title, opts.Scene.Message.Subtitle)

	loadCtx, cancelLoads := context.WithCancel(ctx)
	stage := Build(loadCtx, opts.Scene, opts.Textures, logger, rng)
	defer stage.Assembler.Wait()
	defer cancelLoads()

	renderer := render.NewRenderer(canvas)
	renderer.Background = stage.Graph.Background

	clock := NewFrameClock(config.TargetFrameTime)
	session := NewSession(SessionOptions{
		Graph:     stage.Graph,
		Stars:     stage.Stars,
		Renderer:  renderer,
		Overlay:   presenter,
		Scheduler: clock,
		Rand:      rng,
		Width:     canvas.Width(),
		Height:    canvas.Height(),
	})

	t := &terminal{
		session:      session,
		presenter:    presenter,
		canvas:       canvas,
		stream:       input.StartStream(opts.Reader),
		termSizeFunc: termSizeFunc,
		logger:       logger,
	}
	logger.Debug("session started", "cols", termWidth, "rows", termHeight)

	now := time.Now()
	for {
		if t.processInput() {
			return nil
		}
		t.updateScreen()

		session.Tick(now)

		if err := presenter.Present(); err != nil {
			return err
		}

		var err error
		now, err = clock.Wait(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// terminal owns the per-session input and screen state of Run.
type terminal struct {
	session      *Session
	presenter    *Presenter
	canvas       *draw.Canvas
	stream       *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	pointer      Pointer
}

// processInput applies pending input to the controls. Returns true on quit.
func (t *terminal) processInput() bool {
	inp := input.ReadInput(t.stream)
	if inp.Quit {
		return true
	}
	applyInput(t.session.Controls, inp, float64(t.canvas.Height()), &t.pointer)
	return false
}

// updateScreen handles terminal resize, clamping to the max render
// resolution and centring the render area.
func (t *terminal) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(t.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	t.presenter.SetOffset(offsetCol, offsetRow)
	if renderWidth != t.canvas.TerminalWidth() || renderHeight != t.canvas.TerminalHeight() {
		t.presenter.Clear()
		t.session.Resize(renderWidth, renderHeight*2)
		t.logger.Debug("terminal resized", "cols", renderWidth, "rows", renderHeight,
			"width", t.canvas.Width(), "height", t.canvas.Height(), "aspect", t.session.Camera.Aspect)
	}
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(max(termWidth, 1), config.MaxTermWidth)
	renderHeight = min(max(termHeight, 1), config.MaxTermHeight)
	offsetCol = max(0, (termWidth-renderWidth)/2)
	offsetRow = max(0, (termHeight-renderHeight)/2)
	return renderWidth, renderHeight, offsetCol, offsetRow
}

// applyInput turns one frame of terminal input into orbit control calls.
// Left drag rotates, right or middle drag pans, the wheel and +/- zoom and
// held arrow or WASD keys rotate. height is the output height in pixels;
// a terminal row is two pixels tall.
func applyInput(c *orbit.Controls, inp input.Input, height float64, ptr *Pointer) {
	for _, ev := range inp.Mouse {
		x, y := float64(ev.X), float64(ev.Y*2)
		switch {
		case ev.Button == input.MouseBtnWheelUp:
			c.Dolly(1)
		case ev.Button == input.MouseBtnWheelDown:
			c.Dolly(-1)
		case ev.Action == input.MouseActionRelease:
			ptr.Release(c)
		case ev.Action == input.MouseActionPress, !c.Dragging():
			mode := DragRotate
			if ev.Button != input.MouseBtnLeft {
				mode = DragPan
			}
			ptr.Press(c, mode, x, y)
		default:
			ptr.Move(c, x, y, height)
		}
	}

	RotateKeys(c, inp.Left, inp.Right, inp.Up, inp.Down, height)

	if inp.ZoomIn {
		c.Dolly(1)
	}
	if inp.ZoomOut {
		c.Dolly(-1)
	}
}
