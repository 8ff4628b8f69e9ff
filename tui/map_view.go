// Package tui renders the generated rooms as text in a terminal
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"ebiten-backrooms/generation"
	"ebiten-backrooms/geom"
	"ebiten-backrooms/systems"
)

// sightRadius is how far the viewpoint sees, in cells
const sightRadius = 40

// Glyphs used for world cells
const (
	glyphEmpty     = ' '
	glyphWall      = '#'
	glyphFloor     = '.'
	glyphGate      = '+'
	glyphUnlaid    = ':'
	glyphViewpoint = '@'
)

// MapView draws the walkable maps of the rooms around Center, one world
// cell per terminal cell. Cells out of sight of Center are dimmed. The top
// row is a status line.
type MapView struct {
	screen tcell.Screen
	rooms  *generation.Rooms
	sight  *systems.SightSystem
	Center geom.Point
	Depth  int // Neighbor hops connected around Center before drawing

	status     string
	statusLine tcell.Style
	viewpoint  tcell.Style
}

// NewMapView creates a view drawing rooms on screen
func NewMapView(screen tcell.Screen, rooms *generation.Rooms, depth int) *MapView {
	return &MapView{
		screen:     screen,
		rooms:      rooms,
		sight:      systems.NewSightSystem(nil, sightRadius),
		Depth:      depth,
		statusLine: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow),
		viewpoint:  tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	}
}

// Prepare connects the rooms around Center so their walkable maps exist
func (v *MapView) Prepare() error {
	ids, err := v.rooms.GenerateAtPointMulti(v.Center, v.Depth)
	if err != nil {
		v.status = err.Error()
		return fmt.Errorf("failed to generate around %v: %w", v.Center, err)
	}
	v.sight.Compute(v.rooms, v.Center)
	v.status = fmt.Sprintf("%d rooms connected nearby, %d cells in sight", len(ids), v.sight.VisibleCount())
	return nil
}

// CellAt returns the glyph and style for world cell p
func (v *MapView) CellAt(p geom.Point) (rune, tcell.Style) {
	if p == v.Center {
		return glyphViewpoint, v.viewpoint
	}
	id := v.rooms.RoomAt(p, generation.NoRoom)
	if id == generation.NoRoom {
		return glyphEmpty, tcell.StyleDefault
	}
	room := v.rooms.Room(id)
	r, g, b := room.Color().RGB255()
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	if !v.sight.Visible(p) {
		style = style.Dim(true)
	}

	switch {
	case room.Walkable == nil:
		return glyphUnlaid, style.Dim(true)
	case isGate(room, p):
		return glyphGate, style.Bold(true)
	case room.IsWalkable(p):
		return glyphFloor, style
	default:
		return glyphWall, style
	}
}

func isGate(room *generation.Room, p geom.Point) bool {
	for _, n := range room.Neighbors {
		for _, g := range n.Gates {
			if g.Own == p {
				return true
			}
		}
	}
	return false
}

// InSight reports whether p is visible from Center
func (v *MapView) InSight(p geom.Point) bool {
	return v.sight.Visible(p)
}

// ScreenToWorld returns the world cell shown at terminal cell (x, y)
func (v *MapView) ScreenToWorld(x, y int) geom.Point {
	w, h := v.screen.Size()
	return geom.Point{
		X: v.Center.X + x - w/2,
		Y: v.Center.Y + (y - 1) - (h-1)/2,
	}
}

// Draw renders the view and shows it
func (v *MapView) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	for y := 1; y < h; y++ {
		for x := 0; x < w; x++ {
			glyph, style := v.CellAt(v.ScreenToWorld(x, y))
			v.screen.SetContent(x, y, glyph, nil, style)
		}
	}

	line := fmt.Sprintf(" seed:%d rooms:%d at (%d, %d)  %s", v.rooms.Seed(), v.rooms.Len(), v.Center.X, v.Center.Y, v.status)
	for x := 0; x < w; x++ {
		ch := ' '
		if x < len(line) {
			ch = rune(line[x])
		}
		v.screen.SetContent(x, 0, ch, nil, v.statusLine)
	}
	v.screen.Show()
}

// Move shifts the view by (dx, dy) cells
func (v *MapView) Move(dx, dy int) {
	v.Center = v.Center.Add(geom.Point{X: dx, Y: dy})
}

// HandleKey applies a key press and reports whether the view should keep
// running
func (v *MapView) HandleKey(ev *tcell.EventKey) bool {
	step := 1
	if ev.Modifiers()&tcell.ModShift != 0 {
		step = 10
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.Move(0, -step)
	case tcell.KeyDown:
		v.Move(0, step)
	case tcell.KeyLeft:
		v.Move(-step, 0)
	case tcell.KeyRight:
		v.Move(step, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'w', 'k':
			v.Move(0, -1)
		case 's', 'j':
			v.Move(0, 1)
		case 'a', 'h':
			v.Move(-1, 0)
		case 'd', 'l':
			v.Move(1, 0)
		case 'W', 'K':
			v.Move(0, -10)
		case 'S', 'J':
			v.Move(0, 10)
		case 'A', 'H':
			v.Move(-10, 0)
		case 'D', 'L':
			v.Move(10, 0)
		}
	}
	return true
}

// Run takes over the terminal until the user quits
func Run(rooms *generation.Rooms, start geom.Point, depth int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	defer screen.Fini()

	view := NewMapView(screen, rooms, depth)
	view.Center = start
	return view.Loop()
}

// Loop redraws after every event until a quit key is pressed
func (v *MapView) Loop() error {
	for {
		// generation failures are shown in the status line
		_ = v.Prepare()
		v.Draw()

		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if !v.HandleKey(ev) {
				return nil
			}
		}
	}
}
