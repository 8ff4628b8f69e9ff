package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ebiten-backrooms/config"
	"ebiten-backrooms/screens"
	"ebiten-backrooms/systems"
)

// Game implements ebiten.Game interface.
type Game struct {
	session *screens.Session
	stack   *screens.ScreenStack
	start   *screens.StartScreen
	mapView *screens.MapScreen
	walk    *screens.WalkScreen
	audio   *audio.Context
}

// NewGame creates the viewer and opens the view named by cfg.Viewer.Mode
func NewGame(cfg *config.Config) *Game {
	log := systems.NewMessageLog(cfg.Viewer.MaxLog)
	session := screens.NewSession(cfg, log)

	g := &Game{
		session: session,
		stack:   screens.NewScreenStack(),
		start:   screens.NewStartScreen(seedSubtitle(session)),
		mapView: screens.NewMapScreen(session),
		walk:    screens.NewWalkScreen(session),
	}

	if session.WantsAudio() {
		g.audio = audio.NewContext(int(systems.HumSampleRate))
		session.StartAudio(g.audio)
	}

	g.stack.Push(g.start)
	if cfg.Viewer.Mode == "map" {
		g.stack.Push(g.mapView)
	} else {
		g.stack.Push(g.walk)
	}

	log.Add("Press H for help, F1 for the message log.")
	return g
}

func seedSubtitle(s *screens.Session) string {
	return fmt.Sprintf("seed %d", s.Rooms.Seed())
}

// Update updates the viewer state.
func (g *Game) Update() error {
	top := g.stack.Peek()
	inView := top == screens.Screen(g.walk) || top == screens.Screen(g.mapView)

	if inView {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyF1):
			g.stack.Push(screens.NewDebugScreen(g.session.Log))
			return nil
		case inpututil.IsKeyJustPressed(ebiten.KeyH):
			g.stack.Push(screens.NewHelpScreen())
			return nil
		case inpututil.IsKeyJustPressed(ebiten.KeyTab):
			g.toggleView()
			return nil
		case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			g.start.SetSubtitle(seedSubtitle(g.session))
			g.stack.Pop()
			return nil
		}
	}

	if err := g.stack.Update(); err != nil {
		if err := g.handleTransition(err); err != nil {
			return err
		}
	}

	// the world only runs while a view is on screen
	if inView {
		g.session.World.Update(1.0 / float64(ebiten.TPS()))
	}
	return nil
}

func (g *Game) toggleView() {
	if g.stack.Peek() == screens.Screen(g.walk) {
		cam := g.session.Camera.Position
		g.mapView.CenterOn(float64(cam.X()), float64(cam.Y()))
		g.stack.Replace(g.mapView)
		return
	}
	g.session.Camera.SetInput(0, 0, 0)
	g.stack.Replace(g.walk)
}

// handleTransition acts on a start menu choice
func (g *Game) handleTransition(err error) error {
	switch {
	case errors.Is(err, screens.ErrOpenWalk):
		g.stack.Push(g.walk)
	case errors.Is(err, screens.ErrOpenMap):
		g.stack.Push(g.mapView)
	case errors.Is(err, screens.ErrNewSeed):
		g.session.NewWorld(g.session.Rooms.Seed() + 1)
		g.start.SetSubtitle(seedSubtitle(g.session))
	case errors.Is(err, screens.ErrQuit):
		g.session.StopAudio()
		return ebiten.Termination
	default:
		return err
	}
	return nil
}

// Draw draws the viewer screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.stack.Draw(screen)

	w, h := config.GetScreenDimensions()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS()), w-80, h-lineHeight)
}

// lineHeight is the height of one line of debug text
const lineHeight = 16

// Layout implements ebiten.Game's Layout.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := config.GetScreenDimensions()
	g.stack.Layout(w, h)
	return w, h
}
