package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"ebiten-backrooms/config"
	"ebiten-backrooms/render"
)

func TestWalkHeadless(t *testing.T) {
	cfg := config.Default()
	cfg.Generator.Seed = 2
	cfg.Baking.LightmapSize = 8
	renderer := render.NewHeadlessRenderer(40)

	report, err := WalkHeadless(cfg, renderer, 600)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if report.Frames != 600 {
		t.Errorf("Expected 600 frames, got %d", report.Frames)
	}
	if report.Position.Sub(mgl32.Vec3{0.5, 0.5, 1.7}).Len() < 1 {
		t.Fatalf("Expected the camera to move, got %v", report.Position)
	}
	if renderer.Camera != report.Position {
		t.Errorf("Expected renderer camera at %v, got %v", report.Position, renderer.Camera)
	}
	if report.Entered == 0 {
		t.Error("Expected the walk to enter another room")
	}
	if report.Total.MeshesDrawn == 0 || report.Total.Bakes == 0 {
		t.Errorf("Expected baked rooms to be drawn, got %+v", report.Total)
	}
	if report.Last.Visited == 0 || report.Last.Drawn+report.Last.Placeholders == 0 {
		t.Errorf("Expected the last frame to draw the origin room, got %+v", report.Last)
	}
}
