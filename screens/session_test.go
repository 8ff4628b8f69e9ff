package screens

import (
	"testing"

	"ebiten-backrooms/config"
	"ebiten-backrooms/generation"
	"ebiten-backrooms/systems"
)

func newTestSession(t *testing.T, roomCap int) *Session {
	t.Helper()
	cfg := config.Default()
	cfg.Baking.LightmapSize = 8
	if roomCap > 0 {
		cfg.Viewer.RoomCap = roomCap
	}
	return NewSession(cfg, systems.NewMessageLog(0))
}

func TestSessionStartsExpanded(t *testing.T) {
	s := newTestSession(t, 0)

	if s.ExpandCursor() != initialExpansion {
		t.Errorf("Expected cursor %d, got %d", initialExpansion, s.ExpandCursor())
	}
	if s.Rooms.Len() <= initialExpansion {
		t.Errorf("Expected more than %d rooms, got %d", initialExpansion, s.Rooms.Len())
	}
	for id := generation.RoomID(0); id < initialExpansion; id++ {
		if s.Rooms.Room(id).State < generation.StateGatesConnected {
			t.Errorf("Expected room %d connected, got %s", id, s.Rooms.Room(id).State)
		}
	}
	if got := s.Rooms.RoomAt(s.Camera.Cell(), generation.NoRoom); got != 0 {
		t.Errorf("Expected camera in the origin room, got room %d", got)
	}
}

func TestSessionNewWorldResets(t *testing.T) {
	s := newTestSession(t, 0)
	s.Camera.Yaw = 1
	s.NewWorld(7)

	if s.Rooms.Seed() != 7 {
		t.Errorf("Expected seed 7, got %d", s.Rooms.Seed())
	}
	if s.ExpandCursor() != initialExpansion {
		t.Errorf("Expected cursor %d, got %d", initialExpansion, s.ExpandCursor())
	}
	if s.Camera.Yaw != 0 {
		t.Errorf("Expected yaw reset, got %v", s.Camera.Yaw)
	}
	if s.Sight.VisibleCount() != 0 {
		t.Errorf("Expected sight reset, got %d visible cells", s.Sight.VisibleCount())
	}
	if len(s.Bake.BakedRooms()) != 0 {
		t.Errorf("Expected no baked rooms, got %d", len(s.Bake.BakedRooms()))
	}
}

func TestSessionRoomCap(t *testing.T) {
	s := newTestSession(t, 1)

	// connecting the origin already creates its neighbors, so the cap is hit at once
	if s.ExpandCursor() != 0 {
		t.Fatalf("Expected no expansion, cursor at %d", s.ExpandCursor())
	}
	if s.ExpandNext() {
		t.Errorf("Expected expansion to stop at the room cap")
	}
}

func TestMapScreenCoordinates(t *testing.T) {
	s := newTestSession(t, 0)
	m := NewMapScreen(s)
	m.CenterOn(10, 20)

	w, h := config.GetScreenDimensions()
	x, y := m.worldToScreen(10, 20)
	if x != float32(w)/2 || y != float32(h)/2 {
		t.Errorf("Expected view centre at (%d, %d), got (%v, %v)", w/2, h/2, x, y)
	}
	wx, wy := m.screenToWorld(float64(w)/2+40, float64(h)/2)
	if wx != 20 || wy != 20 {
		t.Errorf("Expected (20, 20), got (%v, %v)", wx, wy)
	}

	cx, cy := s.Rooms.Room(0).BoundingBox.Center()
	m.CenterOn(cx, cy)
	if got := m.roomAtScreen(float64(w)/2, float64(h)/2); got != 0 {
		t.Errorf("Expected origin room under the centre, got %d", got)
	}
}

func TestMapScreenAutoExpandStopsAtCap(t *testing.T) {
	s := newTestSession(t, 60)
	m := NewMapScreen(s)
	m.autoExpand = true

	done := m.expandBatch(mapAutoExpandBatch)
	if done >= mapAutoExpandBatch {
		t.Errorf("Expected fewer than %d expansions, got %d", mapAutoExpandBatch, done)
	}
	if m.autoExpand {
		t.Errorf("Expected auto expansion to switch off")
	}
	if s.ExpandNext() {
		t.Errorf("Expected no further expansion")
	}
}

func TestMapScreenHoverFollowsCursor(t *testing.T) {
	s := newTestSession(t, 0)
	m := NewMapScreen(s)
	w, h := config.GetScreenDimensions()

	cx, cy := s.Rooms.Room(0).BoundingBox.Center()
	m.CenterOn(cx, cy)
	m.hovered = m.roomAtScreen(float64(w)/2, float64(h)/2)
	if m.Hovered() != 0 {
		t.Fatalf("Expected origin room hovered, got %d", m.Hovered())
	}

	neighbor := s.Rooms.Room(0).Neighbors[0].ID
	nx, ny := s.Rooms.Room(neighbor).BoundingBox.Center()
	m.CenterOn(nx, ny)
	if got := m.roomAtScreen(float64(w)/2, float64(h)/2); got != neighbor {
		t.Errorf("Expected neighbor %d under the centre, got %d", neighbor, got)
	}
}
