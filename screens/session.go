package screens

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"ebiten-backrooms/config"
	"ebiten-backrooms/ecs"
	"ebiten-backrooms/generation"
	"ebiten-backrooms/geom"
	"ebiten-backrooms/render"
	"ebiten-backrooms/systems"
)

const (
	// initialExpansion is the number of rooms connected when a world is created
	initialExpansion = 13
	sightRadius      = 40
)

// Session is the viewer state shared by every screen: one world, the systems
// advancing it and the renderer drawing it
type Session struct {
	Config   *config.Config
	Log      *systems.MessageLog
	Rooms    *generation.Rooms
	World    *ecs.World
	Renderer *render.EbitenRenderer
	Bake     *systems.BakeSystem
	Draw     *systems.DrawSystem
	Camera   *systems.CameraSystem
	Hum      *systems.HumSystem
	Sight    *systems.SightSystem
	Ambience *systems.Ambience

	// next room auto expansion connects, in id order
	expandCursor generation.RoomID
}

// NewSession wires the systems for cfg and generates the first world
func NewSession(cfg *config.Config, log *systems.MessageLog) *Session {
	rooms := generation.NewRooms(cfg.Generator, log.Logger())
	world := ecs.NewWorld(rooms)
	events := world.GetEventManager()
	renderer := render.NewEbitenRenderer(config.WalkCellSize, 60)
	shaders := render.DefaultShaders()

	bake := systems.NewBakeSystem(rooms, renderer, shaders, cfg.Baking, log, events, cfg.Viewer.Debug)
	draw := systems.NewDrawSystem(rooms, bake, renderer, shaders, log, events, cfg.Viewer.Debug)
	// the ceiling would hide everything from above
	draw.Options.Ceiling = false
	camera := systems.NewCameraSystem(0.5, 0.5)
	hum := systems.NewHumSystem(cfg.Viewer.HumVolume, camera)
	sight := systems.NewSightSystem(camera, sightRadius)

	world.AddSystem(camera)
	world.AddSystem(bake)
	world.AddSystem(hum)
	world.AddSystem(sight)

	events.Subscribe(systems.EventRoomEntered, func(e ecs.Event) {
		entered := e.(systems.RoomEnteredEvent)
		log.AddTyped(roomEnteredMessage(entered.To, rooms.Room(entered.To)), systems.MessageTypeGeneration)
	})

	s := &Session{
		Config:   cfg,
		Log:      log,
		Rooms:    rooms,
		World:    world,
		Renderer: renderer,
		Bake:     bake,
		Draw:     draw,
		Camera:   camera,
		Hum:      hum,
		Sight:    sight,
		Ambience: systems.NewAmbience(cfg.Viewer.AmbienceVolume),
	}
	s.NewWorld(cfg.Generator.Seed)
	return s
}

// WantsAudio reports whether any sound is configured
func (s *Session) WantsAudio() bool {
	return s.Config.Viewer.HumVolume > 0 || s.Config.Viewer.Ambience != ""
}

// StartAudio starts the hum and the ambience track when they are enabled
func (s *Session) StartAudio(ctx *audio.Context) {
	if ctx == nil {
		return
	}
	if s.Config.Viewer.HumVolume > 0 {
		if err := s.Hum.Start(ctx); err != nil {
			s.Log.Addf("WARNING: no ambient hum: %v", err)
		}
	}
	if path := s.Config.Viewer.Ambience; path != "" {
		if err := s.Ambience.Play(ctx, path); err != nil {
			s.Log.Addf("WARNING: no ambience: %v", err)
		}
	}
}

// StopAudio stops every sound source
func (s *Session) StopAudio() {
	s.Hum.Close()
	s.Ambience.Stop()
}

// NewWorld throws the current world away and generates a new one from seed
func (s *Session) NewWorld(seed int64) {
	s.Bake.ReleaseAll()
	s.Rooms.Clear()
	s.Rooms.SetSeed(seed)
	s.Bake.Reset()
	s.Draw.Reset()
	s.Sight.Reset()
	s.expandCursor = 0

	origin, err := s.Rooms.GenerateAtPoint(geom.Point{})
	if err != nil {
		s.Log.Addf("WARNING: seed %d: %v", seed, err)
		return
	}
	for i := 0; i < initialExpansion; i++ {
		s.ExpandNext()
	}

	cx, cy := s.Rooms.Room(origin).BoundingBox.Center()
	s.Camera.Position = mgl32.Vec3{float32(cx), float32(cy), s.Camera.Position.Z()}
	s.Camera.Yaw = 0
	s.Log.AddTyped(seedMessage(seed, s.Rooms.Len()), systems.MessageTypeGeneration)
}

// ExpandNext connects the next room in id order. It reports false once every
// room is connected or the room cap is reached.
func (s *Session) ExpandNext() bool {
	if !s.Rooms.Valid(s.expandCursor) || s.Rooms.Len() >= s.Config.Viewer.RoomCap {
		return false
	}
	id := s.expandCursor
	s.expandCursor++
	if err := s.Rooms.Ensure(id, generation.StateGatesConnected); err != nil {
		if generation.IsInvariant(err) && s.Config.Viewer.Debug {
			panic(err)
		}
		s.Log.Addf("WARNING: expanding room %d: %v", id, err)
	}
	return true
}

// ExpandCursor returns the next room auto expansion will connect
func (s *Session) ExpandCursor() generation.RoomID {
	return s.expandCursor
}
