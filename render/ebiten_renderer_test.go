package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{Center: mgl32.Vec3{10, -4, 0}, Width: 640, Height: 480, Scale: 8}
	sx, sy := v.WorldToScreen(10, -4)
	if sx != 320 || sy != 240 {
		t.Errorf("Expected centre at (320, 240), got (%v, %v)", sx, sy)
	}
	wx, wy := v.ScreenToWorld(sx+16, sy-8)
	if wx != 12 || wy != -5 {
		t.Errorf("Expected (12, -5), got (%v, %v)", wx, wy)
	}
}

func TestViewportQueries(t *testing.T) {
	r := NewEbitenRenderer(8, 0)
	r.View = Viewport{Center: mgl32.Vec3{0, 0, 0}, Width: 160, Height: 160, Scale: 8}

	near := r.QueryCubeVisible(Cube{Center: mgl32.Vec3{3, 3, 1}, Dim: mgl32.Vec3{2, 2, 2}})
	edge := r.QueryCubeVisible(Cube{Center: mgl32.Vec3{10.5, 0, 1}, Dim: mgl32.Vec3{2, 2, 2}})
	far := r.QueryCubeVisible(Cube{Center: mgl32.Vec3{40, 0, 1}, Dim: mgl32.Vec3{2, 2, 2}})
	if near.Ready() {
		t.Fatal("Expected query to be pending until the frame ends")
	}

	stats := r.EndFrame()
	if stats.Queries != 3 {
		t.Errorf("Expected 3 queries, got %d", stats.Queries)
	}
	if !near.Visible() || !edge.Visible() || far.Visible() {
		t.Errorf("Expected near and edge visible and far hidden, got %v %v %v", near.Visible(), edge.Visible(), far.Visible())
	}

	r.ViewDistance = 5
	edge = r.QueryCubeVisible(Cube{Center: mgl32.Vec3{10.5, 0, 1}, Dim: mgl32.Vec3{2, 2, 2}})
	r.EndFrame()
	if edge.Visible() {
		t.Error("Expected cube beyond the view distance to be hidden")
	}
}
