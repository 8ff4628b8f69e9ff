package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"ebiten-backrooms/config"
	"ebiten-backrooms/ecs"
	"ebiten-backrooms/generation"
	"ebiten-backrooms/render"
)

// WalkReport summarises a headless walk
type WalkReport struct {
	Seed     int64
	Position mgl32.Vec3
	Frames   int
	Elapsed  float64
	Rooms    int
	Entered  int
	Baked    int
	Last     DrawStats
	Total    render.FrameStats
	Messages []string
}

// WalkHeadless moves a noclip camera in a slow spiral for the given number
// of frames and draws every frame with renderer. The renderer's camera
// follows the viewpoint so occlusion queries are answered from where the
// walker stands.
func WalkHeadless(cfg *config.Config, renderer *render.HeadlessRenderer, frames int) (WalkReport, error) {
	messages := NewMessageLog(cfg.Viewer.MaxLog)
	rooms := generation.NewRooms(cfg.Generator, messages.Logger())
	world := ecs.NewWorld(rooms)
	shaders := render.DefaultShaders()

	bake := NewBakeSystem(rooms, renderer, shaders, cfg.Baking, messages, world.GetEventManager(), cfg.Viewer.Debug)
	draw := NewDrawSystem(rooms, bake, renderer, shaders, messages, world.GetEventManager(), cfg.Viewer.Debug)
	camera := NewCameraSystem(0.5, 0.5)
	camera.Noclip = true
	world.AddSystem(camera)
	world.AddSystem(bake)

	report := WalkReport{Seed: rooms.Seed()}
	world.GetEventManager().Subscribe(EventRoomEntered, func(ecs.Event) {
		report.Entered++
	})

	const dt = 1.0 / 60.0
	for frame := 0; frame < frames; frame++ {
		camera.SetInput(1, 0, 0.1)
		world.Update(dt)
		renderer.Camera = camera.Position
		if err := draw.DrawAt(camera.Position); err != nil {
			return report, fmt.Errorf("frame %d: %w", frame, err)
		}
		renderer.EndFrame()
		report.Frames++
	}

	report.Position = camera.Position
	report.Elapsed = world.Elapsed()
	report.Rooms = rooms.Len()
	report.Baked = len(bake.BakedRooms())
	report.Last = draw.Stats()
	report.Total = renderer.Total()
	report.Messages = messages.RecentMessages(5)
	return report, nil
}
