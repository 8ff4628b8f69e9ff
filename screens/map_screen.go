package screens

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ebiten-backrooms/config"
	"ebiten-backrooms/generation"
	"ebiten-backrooms/geom"
)

// Map view tuning
const (
	mapPanSpeed        = 300 // Pixels per second
	mapFastMultiplier  = 10
	mapAutoExpandBatch = 1024 // Rooms connected per frame while auto expanding
	mapMinZoom         = 0.25
	mapMaxZoom         = 32
	mapDetailZoom      = 3 // Walkable cells are drawn from this zoom on
)

// MapScreen is a 2D overview of every generated room
type MapScreen struct {
	*BaseScreen
	session    *Session
	centerX    float64
	centerY    float64
	zoom       float64
	autoExpand bool
	hovered    generation.RoomID

	gateColor    color.Color
	walkColor    color.Color
	hoverColor   color.Color
	statusColor  color.Color
	cameraColor  color.Color
	roomAlpha    uint8
	outlineAlpha uint8
}

// NewMapScreen creates a map view centred on the world origin
func NewMapScreen(session *Session) *MapScreen {
	return &MapScreen{
		BaseScreen:   NewBaseScreen(),
		session:      session,
		zoom:         4,
		hovered:      generation.NoRoom,
		gateColor:    color.RGBA{255, 40, 40, 255},
		walkColor:    color.NRGBA{255, 255, 255, 128},
		hoverColor:   color.White,
		statusColor:  color.RGBA{230, 220, 120, 255},
		cameraColor:  color.RGBA{0, 255, 255, 255},
		roomAlpha:    160,
		outlineAlpha: 255,
	}
}

// Update handles input for the map view
func (s *MapScreen) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	speed := mapPanSpeed * dt / s.zoom
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		speed *= mapFastMultiplier
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		s.centerY -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		s.centerY += speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		s.centerX -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		s.centerX += speed
	}

	if _, wheel := ebiten.Wheel(); wheel != 0 {
		s.zoom = math.Min(math.Max(s.zoom*math.Pow(1.25, wheel), mapMinZoom), mapMaxZoom)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		s.autoExpand = !s.autoExpand
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.session.ExpandNext()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		s.session.NewWorld(s.session.Rooms.Seed() + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) && s.session.Rooms.Valid(s.hovered) {
		s.session.Bake.Unbake(s.hovered)
	}
	if s.autoExpand {
		s.expandBatch(mapAutoExpandBatch)
	}

	mx, my := ebiten.CursorPosition()
	s.hovered = s.roomAtScreen(float64(mx), float64(my))
	return nil
}

// expandBatch connects up to n rooms and stops auto expansion once nothing is
// left to connect
func (s *MapScreen) expandBatch(n int) int {
	done := 0
	for done < n && s.session.ExpandNext() {
		done++
	}
	if done < n {
		s.autoExpand = false
	}
	return done
}

// CenterOn moves the view to a world position
func (s *MapScreen) CenterOn(x, y float64) {
	s.centerX, s.centerY = x, y
}

// Hovered returns the room under the mouse, or NoRoom
func (s *MapScreen) Hovered() generation.RoomID {
	return s.hovered
}

func (s *MapScreen) worldToScreen(x, y float64) (float32, float32) {
	w, h := s.size()
	return float32((x-s.centerX)*s.zoom + w/2), float32((y-s.centerY)*s.zoom + h/2)
}

func (s *MapScreen) screenToWorld(sx, sy float64) (float64, float64) {
	w, h := s.size()
	return (sx-w/2)/s.zoom + s.centerX, (sy-h/2)/s.zoom + s.centerY
}

func (s *MapScreen) size() (float64, float64) {
	w, h := s.GetWidth(), s.GetHeight()
	if w == 0 || h == 0 {
		w, h = config.GetScreenDimensions()
	}
	return float64(w), float64(h)
}

func (s *MapScreen) roomAtScreen(sx, sy float64) generation.RoomID {
	x, y := s.screenToWorld(sx, sy)
	rooms := s.session.Rooms
	if rooms.Valid(s.hovered) && rooms.Room(s.hovered).ContainsWorld(float32(x), float32(y)) {
		return s.hovered
	}
	cell := geom.Point{X: int(math.Floor(x)), Y: int(math.Floor(y))}
	return rooms.RoomAt(cell, generation.NoRoom)
}

// visibleRect returns the world cells covered by the screen
func (s *MapScreen) visibleRect() geom.Rect {
	w, h := s.size()
	x0, y0 := s.screenToWorld(0, 0)
	x1, y1 := s.screenToWorld(w, h)
	left, top := int(math.Floor(x0)), int(math.Floor(y0))
	return geom.NewRect(left, top, int(math.Ceil(x1))-left+1, int(math.Ceil(y1))-top+1)
}

// Draw renders the map view
func (s *MapScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	rooms := s.session.Rooms
	cell := float32(s.zoom)

	rooms.Index().Overlapping(s.visibleRect(), func(id generation.RoomID, box geom.Rect) {
		room := rooms.Room(id)
		x, y := s.worldToScreen(float64(box.X), float64(box.Y))
		w, h := float32(box.Width)*cell, float32(box.Height)*cell

		r, g, b := room.Color().RGB255()
		vector.DrawFilledRect(screen, x, y, w, h, color.NRGBA{r, g, b, s.roomAlpha}, false)
		if s.zoom >= 1 {
			vector.StrokeRect(screen, x, y, w, h, 1, color.NRGBA{r / 2, g / 2, b / 2, s.outlineAlpha}, false)
		}

		if s.zoom >= mapDetailZoom && room.Walkable != nil {
			for ly := 0; ly < box.Height; ly++ {
				for lx := 0; lx < box.Width; lx++ {
					if room.Walkable.Get(lx, ly) {
						vector.DrawFilledRect(screen, x+float32(lx)*cell+1, y+float32(ly)*cell+1, cell-2, cell-2, s.walkColor, false)
					}
				}
			}
		}

		for _, gate := range room.GatePositions() {
			gx, gy := s.worldToScreen(float64(gate.X), float64(gate.Y))
			vector.DrawFilledRect(screen, gx, gy, max(cell, 1), max(cell, 1), s.gateColor, false)
		}
	})

	if rooms.Valid(s.hovered) {
		s.drawHovered(screen, rooms.Room(s.hovered))
	}

	cx, cy := s.worldToScreen(float64(s.session.Camera.Position.X()), float64(s.session.Camera.Position.Y()))
	vector.DrawFilledCircle(screen, cx, cy, 4, s.cameraColor, true)

	s.drawStatus(screen)
}

// drawHovered outlines the hovered room and links it to its neighbors
func (s *MapScreen) drawHovered(screen *ebiten.Image, room *generation.Room) {
	rooms := s.session.Rooms
	box := room.BoundingBox
	x, y := s.worldToScreen(float64(box.X), float64(box.Y))
	vector.StrokeRect(screen, x, y, float32(box.Width)*float32(s.zoom), float32(box.Height)*float32(s.zoom), 2, s.hoverColor, false)

	fromX, fromY := box.Center()
	sx, sy := s.worldToScreen(fromX, fromY)
	for _, n := range room.Neighbors {
		if !rooms.Valid(n.ID) {
			continue
		}
		toX, toY := rooms.Room(n.ID).BoundingBox.Center()
		tx, ty := s.worldToScreen(toX, toY)
		vector.StrokeLine(screen, sx, sy, tx, ty, 1, s.hoverColor, true)
	}

	drawText(screen, roomSummary(room), 8, config.StatusBarHeight+4, s.hoverColor)
}

func (s *MapScreen) drawStatus(screen *ebiten.Image) {
	w, _ := s.size()
	vector.DrawFilledRect(screen, 0, 0, float32(w), config.StatusBarHeight, color.RGBA{0, 0, 0, 200}, false)
	auto := "off"
	if s.autoExpand {
		auto = "on"
	}
	status := fmt.Sprintf("MAP  seed:%d  rooms:%d  next:%d  auto:%s  zoom:%.2f  (%.0f, %.0f)",
		s.session.Rooms.Seed(), s.session.Rooms.Len(), s.session.ExpandCursor(), auto, s.zoom, s.centerX, s.centerY)
	drawText(screen, status, 8, 2, s.statusColor)
}

// Layout implements the Screen interface
func (s *MapScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.BaseScreen.Layout(outsideWidth, outsideHeight)
}
