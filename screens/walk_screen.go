package screens

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ebiten-backrooms/config"
	"ebiten-backrooms/render"
)

// walkFastMultiplier scales the camera speed while Shift is held
const walkFastMultiplier = 3

// WalkScreen follows the camera through the rooms and draws what the draw
// system reaches from it, seen from above
type WalkScreen struct {
	*BaseScreen
	session   *Session
	baseSpeed float32
	lastFrame render.FrameStats
	lastErr   error

	floorColor  color.Color
	statusColor color.Color
	cameraColor color.Color
}

// NewWalkScreen creates the walk view
func NewWalkScreen(session *Session) *WalkScreen {
	return &WalkScreen{
		BaseScreen:  NewBaseScreen(),
		session:     session,
		baseSpeed:   session.Camera.Speed,
		floorColor:  color.RGBA{20, 18, 6, 255},
		statusColor: color.RGBA{230, 220, 120, 255},
		cameraColor: color.RGBA{0, 255, 255, 255},
	}
}

// Update turns held keys into camera input. The world update applies it.
func (s *WalkScreen) Update() error {
	var forward, strafe, turn float32
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		forward++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		forward--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		strafe++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		strafe--
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		turn++
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		turn--
	}

	camera := s.session.Camera
	camera.Speed = s.baseSpeed
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		camera.Speed *= walkFastMultiplier
	}
	camera.SetInput(forward, strafe, turn)

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		camera.Noclip = !camera.Noclip
		s.session.Log.Addf("Noclip %v", camera.Noclip)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		s.session.NewWorld(s.session.Rooms.Seed() + 1)
	}
	return nil
}

// Draw renders the rooms around the camera
func (s *WalkScreen) Draw(screen *ebiten.Image) {
	screen.Fill(s.floorColor)
	camera := s.session.Camera

	s.session.Renderer.BeginFrame(screen, camera.Position)
	s.lastErr = s.session.Draw.DrawAt(camera.Position)
	s.lastFrame = s.session.Renderer.EndFrame()

	// the camera always sits in the middle of the view
	b := screen.Bounds()
	cx, cy := float32(b.Dx())/2, float32(b.Dy())/2
	vector.DrawFilledCircle(screen, cx, cy, 5, s.cameraColor, true)
	dir := camera.Direction().Mul(2 * config.WalkCellSize)
	vector.StrokeLine(screen, cx, cy, cx+dir.X(), cy+dir.Y(), 2, s.cameraColor, true)

	s.drawStatus(screen)
}

func (s *WalkScreen) drawStatus(screen *ebiten.Image) {
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), config.StatusBarHeight, color.RGBA{0, 0, 0, 200}, false)

	stats := s.session.Draw.Stats()
	cell := s.session.Camera.Cell()
	status := fmt.Sprintf("WALK  seed:%d  cell:(%d, %d)  room:%d  visited:%d  drawn:%d  pending:%d  baked:%d  meshes:%d  sight:%d  rooms:%d",
		s.session.Rooms.Seed(), cell.X, cell.Y, stats.Origin, stats.Visited, stats.Drawn, stats.Placeholders,
		len(s.session.Bake.BakedRooms()), s.lastFrame.MeshesDrawn, s.session.Sight.VisibleCount(), s.session.Rooms.Len())
	if s.session.Camera.Noclip {
		status += "  NOCLIP"
	}
	if s.lastErr != nil {
		status += "  " + s.lastErr.Error()
	}
	drawText(screen, status, 8, 2, s.statusColor)
}

// Layout implements the Screen interface
func (s *WalkScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.BaseScreen.Layout(outsideWidth, outsideHeight)
}
