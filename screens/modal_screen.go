package screens

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ModalScreen is a popup text window that closes on Esc
type ModalScreen struct {
	*BaseScreen
	title      string
	lines      []string
	width      int
	height     int
	background color.Color
	textColor  color.Color
}

// NewModalScreen creates a popup sized to its content
func NewModalScreen(title, content string) *ModalScreen {
	lines := strings.Split(content, "\n")
	width := len(title) * charWidth
	for _, l := range lines {
		width = max(width, len(l)*charWidth)
	}
	return &ModalScreen{
		BaseScreen: NewBaseScreen(),
		title:      title,
		lines:      lines,
		width:      width + 40,
		height:     len(lines)*lineHeight + 60,
		background: color.RGBA{0, 0, 0, 200},
		textColor:  color.White,
	}
}

// NewHelpScreen lists the viewer's key bindings
func NewHelpScreen() *ModalScreen {
	return NewModalScreen("CONTROLS", strings.Join([]string{
		"Tab        switch between map and walk view",
		"W/A/S/D    move (Shift: faster)",
		"Q/E        turn (walk view)",
		"Mouse      hover a room (map view)",
		"Wheel      zoom (map view)",
		"X          toggle auto expand (map view)",
		"Space      connect the next room (map view)",
		"U          drop the hovered room's lightmaps (map view)",
		"N          new seed",
		"C          toggle noclip (walk view)",
		"H          this help",
		"F1         message log",
		"Esc        close window",
	}, "\n"))
}

// Draw implements the Screen interface
func (s *ModalScreen) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	x := float32(b.Dx()-s.width) / 2
	y := float32(b.Dy()-s.height) / 2

	vector.DrawFilledRect(screen, x, y, float32(s.width), float32(s.height), s.background, false)
	drawFrame(screen, x, y, float32(s.width), float32(s.height), 1, color.White)

	drawText(screen, s.title, int(x)+(s.width-len(s.title)*charWidth)/2, int(y)+10, s.textColor)
	for i, l := range s.lines {
		drawText(screen, l, int(x)+20, int(y)+36+i*lineHeight, s.textColor)
	}
}

// Update implements the Screen interface
func (s *ModalScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrCloseScreen
	}
	return nil
}

// Layout implements the Screen interface
func (s *ModalScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
