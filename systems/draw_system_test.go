package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"ebiten-backrooms/generation"
	"ebiten-backrooms/geom"
	"ebiten-backrooms/render"
)

func TestViewpointCell(t *testing.T) {
	tests := []struct {
		pos  mgl32.Vec3
		want geom.Point
	}{
		{mgl32.Vec3{0.5, 0.5, 1}, geom.Point{X: 0, Y: 0}},
		{mgl32.Vec3{-0.5, -1, 1}, geom.Point{X: -1, Y: -1}},
		{mgl32.Vec3{-1.5, 2.3, 1}, geom.Point{X: -2, Y: 2}},
	}
	for _, tt := range tests {
		if got := ViewpointCell(tt.pos); got != tt.want {
			t.Errorf("ViewpointCell(%v): expected %v, got %v", tt.pos, tt.want, got)
		}
	}
}

func TestDrawAtFirstFrame(t *testing.T) {
	rig := newTestRig(2)
	if err := rig.draw.DrawAt(mgl32.Vec3{0.5, 0.5, 1.7}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	stats := rig.draw.Stats()
	if stats.Visited != 1 || stats.Placeholders != 1 || stats.Drawn != 0 {
		t.Errorf("Expected one placeholder visit, got %+v", stats)
	}
	if !stats.BakeStepped {
		t.Error("Expected the origin room to get a bake step")
	}
	if frame := rig.renderer.EndFrame(); frame.Bakes != 1 || frame.CubesDrawn != 1 {
		t.Errorf("Expected 1 bake and 1 cube, got %+v", frame)
	}
	origin := rig.rooms.Room(stats.Origin)
	if origin.State != generation.StateBaking {
		t.Errorf("Expected origin %v, got %v", generation.StateBaking, origin.State)
	}
}

func TestDrawAtBakesAtMostOncePerCall(t *testing.T) {
	rig := newTestRig(6)
	pos := mgl32.Vec3{2.5, 2.5, 1.7}
	id, err := rig.rooms.GenerateAtPoint(ViewpointCell(pos))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	room := rig.rooms.Room(id)
	steps := 2 + len(room.Walls) + len(room.SkirtingBoards)

	frames := 0
	for frames < 1000 {
		if err := rig.draw.DrawAt(pos); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		frames++
		if frame := rig.renderer.EndFrame(); frame.Bakes > 1 {
			t.Fatalf("frame %d: expected at most one bake, got %d", frames, frame.Bakes)
		}
		if rig.draw.Stats().Drawn > 0 {
			break
		}
	}
	if frames != steps+1 {
		t.Errorf("Expected origin drawn after %d frames, got %d", steps+1, frames)
	}

	// keep drawing: neighbours get baked one step per frame
	for i := 0; i < 2000; i++ {
		if err := rig.draw.DrawAt(pos); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if frame := rig.renderer.EndFrame(); frame.Bakes > 1 {
			t.Fatalf("expected at most one bake, got %d", frame.Bakes)
		}
	}
	if rig.draw.Stats().Drawn < 2 {
		t.Errorf("Expected neighbours to be drawn, got %+v", rig.draw.Stats())
	}
}

func TestOcclusionStopsTraversal(t *testing.T) {
	rig := newTestRig(7)
	visible := false
	rig.renderer.VisibilityFunc = func(render.Cube) bool { return visible }

	pos := mgl32.Vec3{0.5, 0.5, 1.7}
	origin, err := rig.rooms.GenerateAtPoint(ViewpointCell(pos))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := rig.bake.BakeFully(origin); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	neighbors := rig.rooms.Room(origin).Neighbors
	for _, n := range neighbors {
		if err := rig.bake.BakeFully(n.ID); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	frame := func() {
		t.Helper()
		if err := rig.draw.DrawAt(pos); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		rig.renderer.EndFrame()
	}

	frame()
	if rig.draw.Stats().Visited <= 1 {
		t.Fatalf("Expected neighbours visited before any query resolved, got %+v", rig.draw.Stats())
	}
	frame()
	frame()
	stats := rig.draw.Stats()
	if stats.Visited != 1 {
		t.Errorf("Expected hidden neighbours to be skipped, got %+v", stats)
	}
	if stats.ForceDrawn != len(neighbors) {
		t.Errorf("Expected %d force drawn neighbours, got %d", len(neighbors), stats.ForceDrawn)
	}
	if stats.Queried < len(neighbors) {
		t.Errorf("Expected queries for every neighbour, got %d", stats.Queried)
	}

	visible = true
	frame()
	frame()
	frame()
	if rig.draw.Stats().Visited <= 1 {
		t.Errorf("Expected neighbours visited again once visible, got %+v", rig.draw.Stats())
	}
}

func TestPrefetchWhenNothingToBake(t *testing.T) {
	rig := newTestRig(8)
	pos := mgl32.Vec3{0.5, 0.5, 1.7}
	origin, err := rig.rooms.GenerateAtPoint(ViewpointCell(pos))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := rig.bake.BakeFully(origin); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	rig.renderer.EndFrame()
	rig.rooms.Each(func(r *generation.Room) { r.Visible = false })

	if err := rig.draw.DrawAt(pos); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	stats := rig.draw.Stats()
	if stats.BakeStepped {
		t.Error("Expected traversal to find nothing to bake")
	}
	if got := rig.renderer.Frame().Bakes; got != 1 {
		t.Errorf("Expected prefetch to bake once, got %d", got)
	}
	first := rig.rooms.Room(origin).Neighbors[0].ID
	if rig.rooms.Room(first).State != generation.StateBaking {
		t.Errorf("Expected first neighbour %d to start baking, got %v", first, rig.rooms.Room(first).State)
	}
}

func TestDrawOptions(t *testing.T) {
	rig := newTestRig(9)
	pos := mgl32.Vec3{0.5, 0.5, 1.7}
	origin, err := rig.rooms.GenerateAtPoint(ViewpointCell(pos))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := rig.bake.BakeFully(origin); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	rig.rooms.Each(func(r *generation.Room) { r.Visible = false })
	rig.renderer.EndFrame()

	rig.draw.Options = DrawOptions{Floor: true}
	if err := rig.draw.DrawAt(pos); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := rig.renderer.Frame().MeshesDrawn; got != 1 {
		t.Errorf("Expected only the floor mesh, got %d meshes", got)
	}
}

func TestForceDrawSkipsVisitedNeighbors(t *testing.T) {
	rig := newTestRig(7)
	rig.renderer.VisibilityFunc = func(render.Cube) bool { return true }

	pos := mgl32.Vec3{0.5, 0.5, 1.7}
	origin, err := rig.rooms.GenerateAtPoint(ViewpointCell(pos))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := rig.bake.BakeFully(origin); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, n := range rig.rooms.Room(origin).Neighbors {
		if err := rig.bake.BakeFully(n.ID); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	for i := 0; i < 3; i++ {
		if err := rig.draw.DrawAt(pos); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		rig.renderer.EndFrame()
	}

	stats := rig.draw.Stats()
	if stats.ForceDrawn != 0 {
		t.Errorf("Expected visited neighbours not to be force drawn, got %d", stats.ForceDrawn)
	}
	if stats.Drawn+stats.Placeholders != stats.Visited+stats.ForceDrawn {
		t.Errorf("Expected each room drawn once, got %+v", stats)
	}
	seen := map[generation.RoomID]bool{}
	for _, id := range rig.draw.Visited() {
		if seen[id] {
			t.Errorf("Expected room %d visited once", id)
		}
		seen[id] = true
	}
}
