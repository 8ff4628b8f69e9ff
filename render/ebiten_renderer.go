package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenLightmap is a baked lightmap uploaded to an ebiten image
type EbitenLightmap struct {
	Image *ebiten.Image
}

// Size implements Lightmap
func (l *EbitenLightmap) Size() (int, int) {
	if l.Image == nil {
		return 0, 0
	}
	b := l.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Release implements Lightmap
func (l *EbitenLightmap) Release() {
	if l.Image != nil {
		l.Image.Deallocate()
		l.Image = nil
	}
}

// Viewport maps the floor plane onto the screen: Center is the world
// position shown in the middle of a Width x Height pixel area, Scale the
// size of one world cell in pixels
type Viewport struct {
	Center mgl32.Vec3
	Width  float32
	Height float32
	Scale  float32
}

// WorldToScreen converts a floor-plane position to pixels
func (v Viewport) WorldToScreen(x, y float32) (float32, float32) {
	return (x-v.Center.X())*v.Scale + v.Width/2, (y-v.Center.Y())*v.Scale + v.Height/2
}

// ScreenToWorld converts pixels to a floor-plane position
func (v Viewport) ScreenToWorld(sx, sy float32) (float32, float32) {
	return (sx-v.Width/2)/v.Scale + v.Center.X(), (sy-v.Height/2)/v.Scale + v.Center.Y()
}

// Overlaps reports whether the footprint of cube is at least partly on screen
func (v Viewport) Overlaps(cube Cube) bool {
	lo, hi := cube.Min(), cube.Max()
	x0, y0 := v.WorldToScreen(lo.X(), lo.Y())
	x1, y1 := v.WorldToScreen(hi.X(), hi.Y())
	return x1 > 0 && y1 > 0 && x0 < v.Width && y0 < v.Height
}

type viewportQuery struct {
	cube    Cube
	ready   bool
	visible bool
}

func (q *viewportQuery) Ready() bool   { return q.ready }
func (q *viewportQuery) Visible() bool { return q.visible }

// EbitenRenderer draws rooms top-down onto an ebiten image. Flat surfaces
// show their lightmap, everything else is drawn as its tinted footprint.
// Occlusion queries test the footprint against the viewport and resolve
// when the frame ends.
type EbitenRenderer struct {
	View         Viewport
	ViewDistance float32

	target  *ebiten.Image
	stats   FrameStats
	pending []*viewportQuery
}

// NewEbitenRenderer creates a renderer drawing scale pixels per cell
func NewEbitenRenderer(scale, viewDistance float32) *EbitenRenderer {
	return &EbitenRenderer{
		View:         Viewport{Scale: scale},
		ViewDistance: viewDistance,
	}
}

// BeginFrame sets the draw target and centres the view on center
func (r *EbitenRenderer) BeginFrame(target *ebiten.Image, center mgl32.Vec3) {
	r.target = target
	b := target.Bounds()
	r.View.Center = center
	r.View.Width = float32(b.Dx())
	r.View.Height = float32(b.Dy())
}

// FillMesh implements Renderer
func (r *EbitenRenderer) FillMesh(transform mgl32.Mat4, mesh *Mesh, lightmap Lightmap, shader *Shader, tint color.Color) {
	if r.target == nil || mesh == nil {
		return
	}
	r.stats.MeshesDrawn++
	lo, hi := mesh.Bounds(transform)
	x0, y0 := r.View.WorldToScreen(lo.X(), lo.Y())
	w := (hi.X() - lo.X()) * r.View.Scale
	h := (hi.Y() - lo.Y()) * r.View.Scale

	flat := hi.Z()-lo.Z() <= min(hi.X()-lo.X(), hi.Y()-lo.Y())
	if lm, ok := lightmap.(*EbitenLightmap); ok && flat && lm.Image != nil {
		sw, sh := lm.Size()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(w)/float64(sw), float64(h)/float64(sh))
		op.GeoM.Translate(float64(x0), float64(y0))
		op.ColorScale.ScaleWithColor(tint)
		r.target.DrawImage(lm.Image, op)
		return
	}
	vector.DrawFilledRect(r.target, x0, y0, w, h, tint, false)
}

// FillCube implements Renderer
func (r *EbitenRenderer) FillCube(cube Cube, tint color.Color) {
	if r.target == nil {
		return
	}
	r.stats.CubesDrawn++
	lo, hi := cube.Min(), cube.Max()
	x0, y0 := r.View.WorldToScreen(lo.X(), lo.Y())
	vector.DrawFilledRect(r.target, x0, y0, (hi.X()-lo.X())*r.View.Scale, (hi.Y()-lo.Y())*r.View.Scale, tint, false)
}

// BakeLights implements Renderer
func (r *EbitenRenderer) BakeLights(transform mgl32.Mat4, mesh *Mesh, shader *Shader, resolution int, lights []PointLight) Lightmap {
	r.stats.Bakes++
	img := BakeLightmap(transform, mesh, shader, resolution, lights)
	return &EbitenLightmap{Image: ebiten.NewImageFromImage(img)}
}

// QueryCubeVisible implements Renderer
func (r *EbitenRenderer) QueryCubeVisible(cube Cube) OcclusionQuery {
	r.stats.Queries++
	q := &viewportQuery{cube: cube}
	r.pending = append(r.pending, q)
	return q
}

// EndFrame resolves the frame's queries and returns its statistics
func (r *EbitenRenderer) EndFrame() FrameStats {
	for _, q := range r.pending {
		q.visible = r.inView(q.cube)
		q.ready = true
	}
	r.pending = nil
	r.target = nil

	frame := r.stats
	r.stats = FrameStats{}
	return frame
}

func (r *EbitenRenderer) inView(cube Cube) bool {
	if !r.View.Overlaps(cube) {
		return false
	}
	if r.ViewDistance <= 0 {
		return true
	}
	lo, hi := cube.Min(), cube.Max()
	var closest mgl32.Vec3
	for i := 0; i < 2; i++ {
		closest[i] = max(lo[i], min(r.View.Center[i], hi[i]))
	}
	d := closest.Sub(r.View.Center)
	d[2] = 0
	return d.Len() <= r.ViewDistance
}
