//go:build cgo

package window

import (
	"context"
	"image"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/birthday/internal/draw"
	"github.com/tomz197/birthday/internal/loop"
	"github.com/tomz197/birthday/internal/loop/config"
	"github.com/tomz197/birthday/internal/render"
)

// Debug font cell size used by ebitenutil.DebugPrintAt.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// Run opens the window and blocks until it is closed, q or Escape is
// pressed or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	opts.setDefaults()
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	loadCtx, cancelLoads := context.WithCancel(ctx)
	stage := loop.Build(loadCtx, opts.Scene, opts.Textures, opts.Logger, rng)
	defer stage.Assembler.Wait()
	defer cancelLoads()

	w, h := opts.Width/opts.PixelScale, opts.Height/opts.PixelScale
	canvas := draw.NewCanvas(w, h)
	renderer := render.NewRenderer(canvas)
	renderer.Background = stage.Graph.Background

	g := &game{
		ctx:       ctx,
		canvas:    canvas,
		scale:     opts.PixelScale,
		requested: true,
		title:     opts.Scene.Message.Title,
		subtitle:  opts.Scene.Message.Subtitle,
	}
	g.session = loop.NewSession(loop.SessionOptions{
		Graph:     stage.Graph,
		Stars:     stage.Stars,
		Renderer:  renderer,
		Overlay:   g,
		Scheduler: g,
		Rand:      rng,
		Width:     w,
		Height:    h,
	})

	ebiten.SetWindowTitle(opts.Scene.Message.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TargetFPS)
	opts.Logger.Debug("window opened", "width", opts.Width, "height", opts.Height)
	return ebiten.RunGame(g)
}

// game adapts a loop.Session to ebiten. It is also the session's frame
// scheduler and message overlay.
type game struct {
	ctx     context.Context
	session *loop.Session
	canvas  *draw.Canvas
	scale   int
	pointer loop.Pointer

	requested bool
	opacity   float64

	title, subtitle string

	frame *image.RGBA
	img   *ebiten.Image
	text  *ebiten.Image
}

// RequestFrame implements loop.Scheduler.
func (g *game) RequestFrame() {
	g.requested = true
}

// SetOpacity implements loop.Overlay.
func (g *game) SetOpacity(opacity float64) {
	g.opacity = max(0, min(1, opacity))
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || !g.requested ||
		ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.requested = false

	g.processInput()
	g.session.Tick(time.Now())
	return nil
}

// processInput maps mouse and keyboard state onto the orbit controls.
func (g *game) processInput() {
	c := g.session.Controls
	height := float64(g.canvas.Height())
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)

	leftDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	rightDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.pointer.Press(c, loop.DragRotate, x, y)
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle):
		g.pointer.Press(c, loop.DragPan, x, y)
	case c.Dragging() && !leftDown && !rightDown:
		g.pointer.Release(c)
	default:
		g.pointer.Move(c, x, y, height)
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		c.Dolly(wy)
	}

	loop.RotateKeys(c,
		ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		height,
	)
	if ebiten.IsKeyPressed(ebiten.KeyEqual) || ebiten.IsKeyPressed(ebiten.KeyKPAdd) {
		c.Dolly(1)
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) || ebiten.IsKeyPressed(ebiten.KeyKPSubtract) {
		c.Dolly(-1)
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	w, h := g.canvas.Width(), g.canvas.Height()
	if w == 0 || h == 0 {
		return
	}
	if g.frame == nil || g.frame.Bounds().Dx() != w || g.frame.Bounds().Dy() != h {
		g.frame = image.NewRGBA(image.Rect(0, 0, w, h))
		if g.img != nil {
			g.img.Deallocate()
			g.text.Deallocate()
		}
		g.img = ebiten.NewImage(w, h)
		g.text = ebiten.NewImage(w, h)
	}

	g.canvas.CopyTo(g.frame)
	g.img.WritePixels(g.frame.Pix)
	screen.DrawImage(g.img, nil)

	if g.opacity > 0 {
		g.drawMessage(screen, w, h)
	}
}

// drawMessage prints the title and subtitle centred, tinted and faded by
// the overlay opacity.
func (g *game) drawMessage(screen *ebiten.Image, w, h int) {
	g.text.Clear()
	lines := []string{g.title, "", g.subtitle}
	top := (h - len(lines)*glyphHeight) / 2
	for i, line := range lines {
		x := (w - len(line)*glyphWidth) / 2
		ebitenutil.DebugPrintAt(g.text, line, x, top+i*glyphHeight)
	}

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleWithColor(loop.MessageColor)
	op.ColorScale.ScaleAlpha(float32(g.opacity))
	screen.DrawImage(g.text, op)
}

// Layout renders at a fraction of the window size and resizes the session
// when the window changes.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := max(1, outsideWidth/g.scale)
	h := max(1, outsideHeight/g.scale)
	if w != g.canvas.Width() || h != g.canvas.Height() {
		g.session.Resize(w, h)
	}
	return w, h
}
