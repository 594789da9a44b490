// Package web serves the landing page that points visitors at the SSH
// server, plus still snapshots of the scene.
package web

import (
	_ "embed"
	"html/template"
	"image"
	"image/png"
	"io/fs"
	"math"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/tomz197/birthday/internal/draw"
	"github.com/tomz197/birthday/internal/geom"
	"github.com/tomz197/birthday/internal/loop/config"
	"github.com/tomz197/birthday/internal/orbit"
	"github.com/tomz197/birthday/internal/render"
	"github.com/tomz197/birthday/internal/scene"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// Snapshot size limits in pixels.
const (
	defaultSnapshotWidth  = 320
	defaultSnapshotHeight = 180
	maxSnapshotWidth      = 1280
	maxSnapshotHeight     = 800
)

// Options configures a Handler.
type Options struct {
	Title    string
	Subtitle string
	SSHHost  string
	SSHPort  string       // Omitted from the connect hint when empty or "22"
	Graph    *scene.Graph // Scene rendered by /snapshot.png
	Assets   fs.FS        // Served under /paintings/ when set
	Logger   *log.Logger
}

// Handler serves the web front-end.
type Handler struct {
	opts Options
}

// NewHandler creates a handler.
func NewHandler(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.SSHPort == "22" {
		opts.SSHPort = ""
	}
	return &Handler{opts: opts}
}

// RegisterRoutes mounts the handler's routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.index)
	r.Get("/healthz", h.health)
	if h.opts.Graph != nil {
		r.Get("/snapshot.png", h.snapshot)
	}
	if h.opts.Assets != nil {
		r.Handle("/paintings/*", http.StripPrefix("/paintings/", http.FileServer(http.FS(h.opts.Assets))))
	}
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, h.opts); err != nil {
		h.opts.Logger.Error("render index", "err", err)
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// snapshot renders one frame of the scene as a PNG. Query parameters:
// w, h (pixels), polar and azimuth (degrees) and distance.
func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width := clampInt(queryInt(q.Get("w"), defaultSnapshotWidth), 1, maxSnapshotWidth)
	height := clampInt(queryInt(q.Get("h"), defaultSnapshotHeight), 1, maxSnapshotHeight)
	polar := queryFloat(q.Get("polar"), 90) * math.Pi / 180
	azimuth := queryFloat(q.Get("azimuth"), 0) * math.Pi / 180
	distance := math.Max(config.MinDistance, math.Min(config.MaxDistance, queryFloat(q.Get("distance"), config.CameraZ)))

	img := Snapshot(h.opts.Graph, width, height, polar, azimuth, distance)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := png.Encode(w, img); err != nil {
		h.opts.Logger.Debug("write snapshot", "err", err)
	}
}

// Snapshot renders g from a camera orbiting the origin.
func Snapshot(g *scene.Graph, width, height int, polar, azimuth, distance float64) *image.RGBA {
	polar = math.Max(1e-6, math.Min(math.Pi-1e-6, polar))
	cam := render.NewCamera(config.CameraFOV, float64(width)/float64(height), config.CameraNear, config.CameraFar)
	cam.Position = orbit.Orbit(geom.Vec3{}, distance, polar, azimuth)
	cam.LookAt(geom.Vec3{})

	canvas := draw.NewCanvas(width, height)
	renderer := render.NewRenderer(canvas)
	renderer.Background = g.Background
	renderer.Render(g.Snapshot(), cam)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	canvas.CopyTo(img)
	return img
}

func queryInt(s string, fallback int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return fallback
}

func queryFloat(s string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return v
	}
	return fallback
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
