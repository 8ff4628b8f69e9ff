package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ebiten-backrooms/systems"
)

// DebugScreen shows the message log in a modal window
type DebugScreen struct {
	*BaseScreen
	log          *systems.MessageLog
	scrollOffset int
	width        int
	height       int
	background   color.Color
	textColor    color.Color
}

// NewDebugScreen creates a debug screen over log
func NewDebugScreen(log *systems.MessageLog) *DebugScreen {
	return &DebugScreen{
		BaseScreen: NewBaseScreen(),
		log:        log,
		width:      760,
		height:     440,
		background: color.RGBA{0, 0, 0, 230},
		textColor:  color.White,
	}
}

// Update handles input for the debug screen
func (s *DebugScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && s.scrollOffset > 0 {
		s.scrollOffset--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && s.scrollOffset < len(s.log.Messages)-1 {
		s.scrollOffset++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		return ErrCloseScreen
	}
	return nil
}

// Draw renders the debug screen
func (s *DebugScreen) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	x := float32(b.Dx()-s.width) / 2
	y := float32(b.Dy()-s.height) / 2
	w, h := float32(s.width), float32(s.height)

	vector.DrawFilledRect(screen, x, y, w, h, s.background, false)
	drawFrame(screen, x, y, w, h, 2, color.White)

	title := "MESSAGE LOG"
	drawText(screen, title, int(x)+(s.width-len(title)*charWidth)/2, int(y)+6, s.textColor)

	messages := s.log.Messages
	startY := 30
	maxLines := (s.height - startY - 24) / lineHeight

	// Clamp so the last page stays full
	startIdx := s.scrollOffset
	if startIdx > len(messages)-maxLines {
		startIdx = max(len(messages)-maxLines, 0)
	}

	for i := 0; i < maxLines && startIdx+i < len(messages); i++ {
		msg := messages[startIdx+i]
		drawText(screen, msg.Text, int(x)+10, int(y)+startY+i*lineHeight, msg.GetColor())
	}

	if len(messages) > maxLines {
		trackHeight := float32(s.height - startY - 24)
		barHeight := float32(maxLines) / float32(len(messages)) * trackHeight
		barY := y + float32(startY) + float32(startIdx)/float32(len(messages))*trackHeight
		vector.DrawFilledRect(screen, x+w-10, barY, 5, barHeight, color.White, false)
	}

	drawText(screen, "Up/Down: Scroll  Esc/F1: Close", int(x)+10, int(y)+s.height-20, s.textColor)
}

// Layout implements the Screen interface
func (s *DebugScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
