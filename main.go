package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"ebiten-backrooms/config"
	"ebiten-backrooms/generation"
	"ebiten-backrooms/geom"
	"ebiten-backrooms/render"
	"ebiten-backrooms/systems"
	"ebiten-backrooms/tui"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	seed := flag.Int64("seed", 0, "world seed (overrides the configuration)")
	mode := flag.String("mode", "", "initial view: map or walk")
	useTUI := flag.Bool("tui", false, "show the walkable map in the terminal")
	headless := flag.Int("headless", 0, "walk for N frames without a window and print statistics")
	debug := flag.Bool("debug", false, "panic on generator invariant violations")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Generator.Seed = *seed
	}
	if *mode != "" {
		cfg.Viewer.Mode = *mode
	}
	if *debug {
		cfg.Viewer.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	switch {
	case *useTUI:
		rooms := generation.NewRooms(cfg.Generator, nil)
		if err := tui.Run(rooms, geom.Point{}, cfg.Viewer.Depth); err != nil {
			log.Fatal(err)
		}
	case *headless > 0:
		runHeadless(cfg, *headless)
	default:
		game := NewGame(cfg)
		windowWidth, windowHeight := config.GetWindowSize()
		ebiten.SetWindowSize(windowWidth, windowHeight)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		ebiten.SetWindowTitle("Backrooms")
		if err := ebiten.RunGame(game); err != nil {
			log.Fatal(err)
		}
	}
}

// runHeadless walks the camera for the given number of frames without a
// window and prints what happened
func runHeadless(cfg *config.Config, frames int) {
	report, err := systems.WalkHeadless(cfg, render.NewHeadlessRenderer(40), frames)
	if err != nil {
		log.Fatal(err)
	}

	last, total := report.Last, report.Total
	fmt.Printf("seed %d: %d frames, %.1fs simulated\n", report.Seed, report.Frames, report.Elapsed)
	fmt.Printf("rooms generated: %d, rooms entered: %d, baked now: %d\n", report.Rooms, report.Entered, report.Baked)
	fmt.Printf("last frame: visited %d, drawn %d, placeholders %d, force drawn %d, queried %d\n", last.Visited, last.Drawn, last.Placeholders, last.ForceDrawn, last.Queried)
	fmt.Printf("total: %d meshes, %d cubes, %d bakes, %d queries\n", total.MeshesDrawn, total.CubesDrawn, total.Bakes, total.Queries)
	for _, msg := range report.Messages {
		fmt.Println("  " + msg)
	}
}
