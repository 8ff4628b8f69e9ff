package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"ebiten-backrooms/config"
	"ebiten-backrooms/generation"
	"ebiten-backrooms/geom"
)

func newTestView(t *testing.T) (*MapView, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(60, 25)

	rooms := generation.NewRooms(config.Default().Generator, nil)
	return NewMapView(screen, rooms, 1), screen
}

func TestMapViewDrawsViewpoint(t *testing.T) {
	view, screen := newTestView(t)
	if err := view.Prepare(); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	view.Draw()

	w, h := screen.Size()
	mainc, _, _, _ := screen.GetContent(w/2, 1+(h-1)/2)
	if mainc != glyphViewpoint {
		t.Errorf("Expected viewpoint glyph in the centre, got %q", mainc)
	}
	if p := view.ScreenToWorld(w/2, 1+(h-1)/2); p != view.Center {
		t.Errorf("Expected centre cell %v, got %v", view.Center, p)
	}
	status, _, _, _ := screen.GetContent(1, 0)
	if status != 's' {
		t.Errorf("Expected status line to start with seed, got %q", status)
	}
}

func TestMapViewGlyphsFollowWalkable(t *testing.T) {
	view, _ := newTestView(t)
	if err := view.Prepare(); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	room := view.rooms.Room(0)
	box := room.BoundingBox
	for y := box.Top(); y < box.Bottom(); y++ {
		for x := box.Left(); x < box.Right(); x++ {
			p := geom.Point{X: x, Y: y}
			if p == view.Center {
				continue
			}
			glyph, _ := view.CellAt(p)
			switch {
			case isGate(room, p):
				if glyph != glyphGate {
					t.Errorf("Expected gate at %v, got %q", p, glyph)
				}
			case room.IsWalkable(p):
				if glyph != glyphFloor {
					t.Errorf("Expected floor at %v, got %q", p, glyph)
				}
			default:
				if glyph != glyphWall {
					t.Errorf("Expected wall at %v, got %q", p, glyph)
				}
			}
		}
	}
}

func TestMapViewHandleKey(t *testing.T) {
	view, _ := newTestView(t)

	view.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	view.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'S', tcell.ModNone))
	if view.Center != (geom.Point{X: 1, Y: 10}) {
		t.Errorf("Expected centre (1, 10), got %v", view.Center)
	}
	if view.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Errorf("Expected q to stop the view")
	}
	if view.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Errorf("Expected Esc to stop the view")
	}
}

func TestMapViewSight(t *testing.T) {
	view, _ := newTestView(t)
	if err := view.Prepare(); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	if !view.InSight(view.Center) {
		t.Errorf("Expected the viewpoint to be in sight")
	}
	far := view.Center.Add(geom.Point{X: 10 * sightRadius})
	if view.InSight(far) {
		t.Errorf("Expected %v to be out of sight", far)
	}
}
