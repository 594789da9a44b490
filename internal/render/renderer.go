package render

import (
	"image"
	"math"

	"github.com/tomz197/birthday/internal/draw"
	"github.com/tomz197/birthday/internal/geom"
	"github.com/tomz197/birthday/internal/loop/config"
	"github.com/tomz197/birthday/internal/scene"
)

// Renderer rasterizes scene snapshots into a canvas.
type Renderer struct {
	Background draw.RGB

	canvas  *draw.Canvas
	ambient light
	spots   []*scene.SpotLight
	verts   []vertex // Reusable clip buffer
	clipped []vertex
}

// light is an RGB light amount; 1 is full white.
type light struct {
	r, g, b float64
}

func (l light) add(o light) light {
	return light{l.r + o.r, l.g + o.g, l.b + o.b}
}

func (l light) scale(s float64) light {
	return light{l.r * s, l.g * s, l.b * s}
}

func lightOf(c draw.RGB, intensity float64) light {
	cf := c.Colorful()
	return light{cf.R * intensity, cf.G * intensity, cf.B * intensity}
}

// vertex is a polygon corner in camera space with its interpolated attributes.
type vertex struct {
	view  geom.Vec3
	u, v  float64
	light light
}

func (a vertex) lerp(b vertex, t float64) vertex {
	return vertex{
		view:  a.view.Lerp(b.view, t),
		u:     a.u + (b.u-a.u)*t,
		v:     a.v + (b.v-a.v)*t,
		light: a.light.add(b.light.add(a.light.scale(-1)).scale(t)),
	}
}

// NewRenderer creates a renderer drawing into canvas.
func NewRenderer(canvas *draw.Canvas) *Renderer {
	return &Renderer{canvas: canvas}
}

// Canvas returns the target canvas.
func (r *Renderer) Canvas() *draw.Canvas {
	return r.canvas
}

// SetSize sets the output size in pixels.
func (r *Renderer) SetSize(width, height int) {
	r.canvas.Resize(width, height)
}

// Render draws one frame of nodes as seen by cam.
func (r *Renderer) Render(nodes []scene.Node, cam *Camera) {
	r.canvas.Clear(r.Background)
	r.collectLights(nodes)

	for _, n := range nodes {
		switch n := n.(type) {
		case *scene.Points:
			r.drawPoints(n, cam)
		case *scene.ShootingStar:
			r.drawShootingStar(n, cam)
		case *scene.Mesh:
			r.drawMesh(n, cam)
		}
	}
}

func (r *Renderer) collectLights(nodes []scene.Node) {
	r.ambient = light{}
	r.spots = r.spots[:0]
	for _, n := range nodes {
		switch n := n.(type) {
		case *scene.AmbientLight:
			r.ambient = r.ambient.add(lightOf(n.Color, n.Intensity))
		case *scene.SpotLight:
			r.spots = append(r.spots, n)
		}
	}
}

// lightAt returns the diffuse light reaching a surface point with the given normal.
func (r *Renderer) lightAt(p, normal geom.Vec3) light {
	total := r.ambient
	for _, s := range r.spots {
		toLight := s.Position.Sub(p)
		dist := toLight.Length()
		if dist == 0 {
			continue
		}
		dir := toLight.Scale(1 / dist)

		// Outside the cone: no contribution.
		if dir.Scale(-1).Dot(s.Direction()) < math.Cos(s.Angle) {
			continue
		}
		atten := 1.0
		if s.Distance > 0 {
			atten = math.Max(0, 1-dist/s.Distance)
		}
		lambert := math.Max(0, normal.Dot(dir))
		total = total.add(lightOf(s.Color, s.Intensity*atten*lambert))
	}
	return total
}

func (r *Renderer) drawPoints(p *scene.Points, cam *Camera) {
	w, h := r.canvas.Width(), r.canvas.Height()
	for _, v := range p.Vertices {
		x, y, depth, ok := cam.Project(p.LocalToWorld(v), w, h)
		if !ok {
			continue
		}
		r.plot(x, y, depth, r.pointRadius(p.Material.Size, depth, cam), p.Material.Color)
	}
}

func (r *Renderer) drawShootingStar(s *scene.ShootingStar, cam *Camera) {
	w, h := r.canvas.Width(), r.canvas.Height()
	x, y, depth, ok := cam.Project(s.Position, w, h)
	if !ok {
		return
	}
	tail := s.Position.Sub(s.Velocity.Scale(config.ShootingStarTrail))
	if tx, ty, _, ok := cam.Project(tail, w, h); ok {
		r.canvas.DrawLine(draw.Point{X: tx, Y: ty}, draw.Point{X: x, Y: y}, depth, s.Material.Color.Blend(draw.Black, 0.5))
	}
	r.plot(x, y, depth, r.pointRadius(s.Material.Size, depth, cam), s.Material.Color)
}

// pointRadius returns the on-screen radius in pixels of a point of world size at depth.
func (r *Renderer) pointRadius(size, depth float64, cam *Camera) float64 {
	return size / 2 * cam.focal * float64(r.canvas.Height()) / 2 / depth
}

func (r *Renderer) plot(x, y, depth, radius float64, col draw.RGB) {
	if radius < 1 {
		r.canvas.SetDepth(int(math.Floor(x)), int(math.Floor(y)), depth, col)
		return
	}
	ir := int(math.Ceil(radius))
	cx, cy := int(math.Floor(x)), int(math.Floor(y))
	for dy := -ir; dy <= ir; dy++ {
		for dx := -ir; dx <= ir; dx++ {
			if float64(dx*dx+dy*dy) <= radius*radius {
				r.canvas.SetDepth(cx+dx, cy+dy, depth, col)
			}
		}
	}
}

func (r *Renderer) drawMesh(m *scene.Mesh, cam *Camera) {
	for _, f := range m.Geometry.Faces() {
		mat := m.MaterialFor(f.Group)
		normal := m.Rotation.Apply(f.Normal)

		var corners [4]geom.Vec3
		center := geom.Vec3{}
		for i, c := range f.Corners {
			corners[i] = m.LocalToWorld(c)
			center = center.Add(corners[i])
		}
		center = center.Scale(0.25)

		if normal.Dot(cam.Position.Sub(center)) <= 0 {
			if !mat.DoubleSide {
				continue
			}
			normal = normal.Scale(-1)
		}

		r.verts = r.verts[:0]
		for i, c := range corners {
			r.verts = append(r.verts, vertex{
				view:  cam.ToView(c),
				u:     f.UV[i][0],
				v:     f.UV[i][1],
				light: r.lightAt(c, normal),
			})
		}
		r.clipped = clipNear(r.verts, cam.Near, r.clipped[:0])
		for i := 1; i+1 < len(r.clipped); i++ {
			r.drawTriangle(r.clipped[0], r.clipped[i], r.clipped[i+1], mat, cam)
		}
	}
}

// clipNear clips a convex polygon against the camera's near plane (z = -near).
func clipNear(in []vertex, near float64, out []vertex) []vertex {
	inside := func(v vertex) bool { return -v.view.Z >= near }
	for i := range in {
		a := in[i]
		b := in[(i+1)%len(in)]
		aIn, bIn := inside(a), inside(b)
		if aIn {
			out = append(out, a)
		}
		if aIn != bIn {
			t := (-near - a.view.Z) / (b.view.Z - a.view.Z)
			out = append(out, a.lerp(b, t))
		}
	}
	return out
}

func (r *Renderer) drawTriangle(a, b, c vertex, mat scene.Material, cam *Camera) {
	w, h := r.canvas.Width(), r.canvas.Height()
	ax, ay, ad := cam.ViewToScreen(a.view, w, h)
	bx, by, bd := cam.ViewToScreen(b.view, w, h)
	cx, cy, cd := cam.ViewToScreen(c.view, w, h)

	area := edge(ax, ay, bx, by, cx, cy)
	if area == 0 {
		return
	}

	minX := max(0, int(math.Floor(math.Min(ax, math.Min(bx, cx)))))
	maxX := min(w-1, int(math.Ceil(math.Max(ax, math.Max(bx, cx)))))
	minY := max(0, int(math.Floor(math.Min(ay, math.Min(by, cy)))))
	maxY := min(h-1, int(math.Ceil(math.Max(ay, math.Max(by, cy)))))

	ia, ib, ic := 1/ad, 1/bd, 1/cd

	for py := minY; py <= maxY; py++ {
		sy := float64(py) + 0.5
		for px := minX; px <= maxX; px++ {
			sx := float64(px) + 0.5
			w0 := edge(bx, by, cx, cy, sx, sy) / area
			w1 := edge(cx, cy, ax, ay, sx, sy) / area
			w2 := edge(ax, ay, bx, by, sx, sy) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			// Perspective-correct interpolation.
			inv := w0*ia + w1*ib + w2*ic
			depth := 1 / inv
			if depth > cam.Far {
				continue
			}
			k0, k1, k2 := w0*ia*depth, w1*ib*depth, w2*ic*depth

			l := a.light.scale(k0).add(b.light.scale(k1)).add(c.light.scale(k2))
			base := mat.Color
			if mat.Map != nil {
				u := a.u*k0 + b.u*k1 + c.u*k2
				v := a.v*k0 + b.v*k1 + c.v*k2
				base = sample(mat.Map, u, v)
			}
			r.canvas.SetDepth(px, py, depth, base.Scale(l.r, l.g, l.b))
		}
	}
}

// edge is twice the signed area of triangle (a, b, p).
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// sample reads the nearest texel; v = 1 is the top row of the image.
func sample(tex *image.RGBA, u, v float64) draw.RGB {
	b := tex.Bounds()
	if b.Empty() {
		return draw.Black
	}
	x := b.Min.X + int(math.Round(clamp01(u)*float64(b.Dx()-1)))
	y := b.Min.Y + int(math.Round((1-clamp01(v))*float64(b.Dy()-1)))
	c := tex.RGBAAt(x, y)
	return draw.RGB{R: c.R, G: c.G, B: c.B}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
