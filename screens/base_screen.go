package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Debug font metrics of ebitenutil.DebugPrint
const (
	charWidth  = 6
	lineHeight = 16
)

// BaseScreen provides common functionality for all screens
type BaseScreen struct {
	// Screen dimensions
	width  int
	height int
}

// NewBaseScreen creates a new base screen
func NewBaseScreen() *BaseScreen {
	return &BaseScreen{}
}

// Update implements the Screen interface
func (s *BaseScreen) Update() error {
	return nil
}

// Draw implements the Screen interface
func (s *BaseScreen) Draw(screen *ebiten.Image) {
}

// Layout implements the Screen interface
func (s *BaseScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.width = outsideWidth
	s.height = outsideHeight
	return outsideWidth, outsideHeight
}

// GetWidth returns the screen width
func (s *BaseScreen) GetWidth() int {
	return s.width
}

// GetHeight returns the screen height
func (s *BaseScreen) GetHeight() int {
	return s.height
}

// drawText prints msg at (x, y) in the given colour
func drawText(dst *ebiten.Image, msg string, x, y int, clr color.Color) {
	if msg == "" {
		return
	}
	img := ebiten.NewImage(len(msg)*charWidth+2, lineHeight)
	ebitenutil.DebugPrintAt(img, msg, 0, 0)

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleWithColor(clr)
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(img, op)
	img.Deallocate()
}

// drawFrame outlines a w x h box at (x, y)
func drawFrame(dst *ebiten.Image, x, y, w, h, thickness float32, clr color.Color) {
	vector.DrawFilledRect(dst, x, y, thickness, h, clr, false)
	vector.DrawFilledRect(dst, x+w-thickness, y, thickness, h, clr, false)
	vector.DrawFilledRect(dst, x, y, w, thickness, clr, false)
	vector.DrawFilledRect(dst, x, y+h-thickness, w, thickness, clr, false)
}
