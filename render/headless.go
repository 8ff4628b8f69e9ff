package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// FrameStats counts the work submitted to a renderer during one frame
type FrameStats struct {
	MeshesDrawn int
	CubesDrawn  int
	Bakes       int
	Queries     int
}

// headlessQuery resolves when the frame it was issued in ends
type headlessQuery struct {
	cube    Cube
	ready   bool
	visible bool
}

func (q *headlessQuery) Ready() bool   { return q.ready }
func (q *headlessQuery) Visible() bool { return q.visible }

// HeadlessRenderer implements Renderer without a GPU. Lightmaps are baked on
// the CPU, draw calls are only counted, and occlusion queries are answered
// by a view-distance test when the frame they were issued in ends, so they
// are readable during the next frame.
type HeadlessRenderer struct {
	Camera       mgl32.Vec3
	ViewDistance float32

	// VisibilityFunc overrides the distance test when set
	VisibilityFunc func(cube Cube) bool

	stats   FrameStats
	total   FrameStats
	pending []*headlessQuery
}

// NewHeadlessRenderer creates a headless renderer with the given view distance
func NewHeadlessRenderer(viewDistance float32) *HeadlessRenderer {
	return &HeadlessRenderer{ViewDistance: viewDistance}
}

// FillMesh implements Renderer
func (r *HeadlessRenderer) FillMesh(transform mgl32.Mat4, mesh *Mesh, lightmap Lightmap, shader *Shader, tint color.Color) {
	r.stats.MeshesDrawn++
}

// FillCube implements Renderer
func (r *HeadlessRenderer) FillCube(cube Cube, tint color.Color) {
	r.stats.CubesDrawn++
}

// BakeLights implements Renderer
func (r *HeadlessRenderer) BakeLights(transform mgl32.Mat4, mesh *Mesh, shader *Shader, resolution int, lights []PointLight) Lightmap {
	r.stats.Bakes++
	return &ImageLightmap{Image: BakeLightmap(transform, mesh, shader, resolution, lights)}
}

// QueryCubeVisible implements Renderer
func (r *HeadlessRenderer) QueryCubeVisible(cube Cube) OcclusionQuery {
	r.stats.Queries++
	q := &headlessQuery{cube: cube}
	r.pending = append(r.pending, q)
	return q
}

// EndFrame resolves the queries issued during the frame and starts a new one
func (r *HeadlessRenderer) EndFrame() FrameStats {
	for _, q := range r.pending {
		q.visible = r.isVisible(q.cube)
		q.ready = true
	}
	r.pending = nil

	frame := r.stats
	r.total.MeshesDrawn += frame.MeshesDrawn
	r.total.CubesDrawn += frame.CubesDrawn
	r.total.Bakes += frame.Bakes
	r.total.Queries += frame.Queries
	r.stats = FrameStats{}
	return frame
}

// Frame returns the counters of the frame in progress
func (r *HeadlessRenderer) Frame() FrameStats {
	return r.stats
}

// Total returns the counters of all completed frames
func (r *HeadlessRenderer) Total() FrameStats {
	return r.total
}

func (r *HeadlessRenderer) isVisible(cube Cube) bool {
	if r.VisibilityFunc != nil {
		return r.VisibilityFunc(cube)
	}
	// distance from the camera to the closest point of the cube
	lo, hi := cube.Min(), cube.Max()
	var closest mgl32.Vec3
	for i := 0; i < 3; i++ {
		closest[i] = max(lo[i], min(r.Camera[i], hi[i]))
	}
	return closest.Sub(r.Camera).Len() <= r.ViewDistance
}
