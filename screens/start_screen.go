package screens

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Errors returned by the start menu to request a transition
var (
	ErrOpenWalk = errors.New("open walk view")
	ErrOpenMap  = errors.New("open map view")
	ErrNewSeed  = errors.New("new seed")
	ErrQuit     = errors.New("quit")
)

// StartScreen is the viewer's entry menu
type StartScreen struct {
	*BaseScreen
	selectedOption int
	options        []string
	choices        []error
	subtitle       string
	titleColor     color.Color
	optionColor    color.Color
	selectedColor  color.Color
}

// NewStartScreen creates the menu. subtitle is shown under the title.
func NewStartScreen(subtitle string) *StartScreen {
	return &StartScreen{
		BaseScreen: NewBaseScreen(),
		options: []string{
			"Walk",
			"Map",
			"New Seed",
			"Quit",
		},
		choices:       []error{ErrOpenWalk, ErrOpenMap, ErrNewSeed, ErrQuit},
		subtitle:      subtitle,
		titleColor:    color.RGBA{230, 220, 120, 255}, // Fluorescent yellow
		optionColor:   color.RGBA{200, 200, 200, 255},
		selectedColor: color.White,
	}
}

// SetSubtitle replaces the line under the title
func (s *StartScreen) SetSubtitle(subtitle string) {
	s.subtitle = subtitle
}

// Selected returns the highlighted option
func (s *StartScreen) Selected() string {
	return s.options[s.selectedOption]
}

// Update handles input for the start screen
func (s *StartScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		s.move(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		s.move(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return s.choices[s.selectedOption]
	}
	return nil
}

func (s *StartScreen) move(delta int) {
	s.selectedOption = (s.selectedOption + delta + len(s.options)) % len(s.options)
}

// Draw renders the start screen
func (s *StartScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{40, 36, 12, 255})
	b := screen.Bounds()
	centerX := b.Dx() / 2
	centerY := b.Dy() / 2

	title := "THE BACKROOMS"
	drawText(screen, title, centerX-len(title)*charWidth/2, centerY-100, s.titleColor)
	drawText(screen, s.subtitle, centerX-len(s.subtitle)*charWidth/2, centerY-80, s.optionColor)

	optionSpacing := 30
	startY := centerY - (len(s.options)*optionSpacing)/2
	for i, option := range s.options {
		textColor := s.optionColor
		if i == s.selectedOption {
			textColor = s.selectedColor
			option = "> " + option + " <"
		}
		drawText(screen, option, centerX-len(option)*charWidth/2, startY+i*optionSpacing, textColor)
	}
}

// Layout implements the Screen interface
func (s *StartScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
