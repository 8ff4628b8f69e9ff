package systems

import (
	"github.com/zyedidia/generic/mapset"

	"ebiten-backrooms/config"
	"ebiten-backrooms/ecs"
	"ebiten-backrooms/generation"
	"ebiten-backrooms/render"
)

// BakeSystem bakes room lightmaps one surface at a time and releases them
// again once a room has not been touched for a while
type BakeSystem struct {
	rooms    *generation.Rooms
	renderer render.Renderer
	shaders  render.Shaders
	cfg      config.BakingConfig
	log      *MessageLog
	failures failureReporter

	// rooms holding lightmaps, in the order they started baking
	baked    []generation.RoomID
	bakedSet mapset.Set[generation.RoomID]
}

// NewBakeSystem creates a bake system. events may be nil.
func NewBakeSystem(rooms *generation.Rooms, renderer render.Renderer, shaders render.Shaders, cfg config.BakingConfig, log *MessageLog, events *ecs.EventManager, debug bool) *BakeSystem {
	if log == nil {
		log = NewMessageLog(0)
	}
	return &BakeSystem{
		rooms:    rooms,
		renderer: renderer,
		shaders:  shaders,
		cfg:      cfg,
		log:      log,
		failures: failureReporter{log: log, events: events, debug: debug},
		bakedSet: mapset.New[generation.RoomID](),
	}
}

// Update advances eviction timers
func (s *BakeSystem) Update(world *ecs.World, dt float64) {
	s.Tick(dt)
}

// Touch marks the room as in use so it is not evicted
func (s *BakeSystem) Touch(id generation.RoomID) {
	s.rooms.Room(id).TimeSinceLastTouch = 0
}

// BakeStep performs one unit of baking work on the room: the ceiling, then
// the floor, then each wall, then each skirting board. It reports whether
// work remains; the call after the last surface marks the room LightsBaked
// and returns false. Rooms that cannot be generated are reported and
// return false.
func (s *BakeSystem) BakeStep(id generation.RoomID) (bool, error) {
	if err := s.rooms.Ensure(id, generation.StateGatesConnected); err != nil {
		s.failures.report(id, err)
		return false, err
	}
	room := s.rooms.Room(id)
	room.TimeSinceLastTouch = 0
	if room.State == generation.StateLightsBaked {
		return false, nil
	}

	room.State = generation.StateBaking
	if !s.bakedSet.Has(id) {
		s.bakedSet.Put(id)
		s.baked = append(s.baked, id)
	}

	lights, err := s.collectLights(id)
	if err != nil {
		s.failures.report(id, err)
		return false, err
	}
	// generation above may have grown the store
	room = s.rooms.Room(id)
	size := s.cfg.LightmapSize

	switch {
	case room.BakedCeiling == nil:
		room.BakedCeiling = s.renderer.BakeLights(room.CeilingTransform(), room.Ceiling, s.shaders.Ceiling, size, lights)
		return true, nil
	case room.BakedFloor == nil:
		room.BakedFloor = s.renderer.BakeLights(room.FloorTransform(), room.Floor, s.shaders.Floor, size, lights)
		return true, nil
	case len(room.BakedWalls) < len(room.Walls):
		wall := room.Walls[len(room.BakedWalls)]
		room.BakedWalls = append(room.BakedWalls, s.renderer.BakeLights(wall.Transform(), wall.Mesh, s.shaders.Wall, size, lights))
		return true, nil
	case len(room.BakedSkirtingBoards) < len(room.SkirtingBoards):
		board := room.SkirtingBoards[len(room.BakedSkirtingBoards)]
		room.BakedSkirtingBoards = append(room.BakedSkirtingBoards, s.renderer.BakeLights(board.Transform(), board.Mesh, s.shaders.SkirtingBoard, size, lights))
		return true, nil
	}

	room.State = generation.StateLightsBaked
	s.log.Addf("Baked room %d with %d lights", id, len(lights))
	if s.failures.events != nil {
		s.failures.events.Emit(RoomBakedEvent{Room: id, Lights: len(lights)})
	}
	return false, nil
}

// BakeFully runs BakeStep until the room is baked
func (s *BakeSystem) BakeFully(id generation.RoomID) error {
	for {
		more, err := s.BakeStep(id)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// collectLights gathers the lights of every room within the configured
// number of hops so light spills through open gates
func (s *BakeSystem) collectLights(id generation.RoomID) ([]render.PointLight, error) {
	ids, err := s.rooms.GenerateMulti(id, s.cfg.LightDepth)
	if err != nil {
		return nil, err
	}
	var lights []render.PointLight
	for _, source := range ids {
		lights = append(lights, s.rooms.Room(source).Lights...)
	}
	return lights, nil
}

// PrefetchStep spends one bake step on the first unbaked room of ids, or if
// all of them are baked, on the first unbaked neighbor of one of them.
// Baked rooms passed on the way are touched.
func (s *BakeSystem) PrefetchStep(ids []generation.RoomID) {
	for _, id := range ids {
		if _, err := s.BakeStep(id); err != nil {
			return
		}
		if s.rooms.Room(id).State < generation.StateLightsBaked {
			return
		}
	}
	for _, id := range ids {
		for _, n := range s.rooms.Room(id).Neighbors {
			if _, err := s.BakeStep(n.ID); err != nil {
				return
			}
			if s.rooms.Room(n.ID).State < generation.StateLightsBaked {
				return
			}
		}
	}
}

// Tick ages every baked room and evicts those untouched for longer than the
// eviction threshold
func (s *BakeSystem) Tick(dt float64) {
	kept := s.baked[:0]
	for _, id := range s.baked {
		room := s.rooms.Room(id)
		room.TimeSinceLastTouch += dt
		if room.TimeSinceLastTouch > s.cfg.EvictAfter {
			s.release(id)
			continue
		}
		kept = append(kept, id)
	}
	s.baked = kept
}

// Unbake releases the room's lightmaps and returns it to GatesConnected
func (s *BakeSystem) Unbake(id generation.RoomID) {
	if !s.bakedSet.Has(id) {
		return
	}
	s.release(id)
	kept := s.baked[:0]
	for _, other := range s.baked {
		if other != id {
			kept = append(kept, other)
		}
	}
	s.baked = kept
}

func (s *BakeSystem) release(id generation.RoomID) {
	room := s.rooms.Room(id)
	room.ReleaseBaked()
	room.State = generation.StateGatesConnected
	room.TimeSinceLastTouch = 0
	s.bakedSet.Remove(id)

	s.log.Addf("Evicted room %d", id)
	if s.failures.events != nil {
		s.failures.events.Emit(RoomEvictedEvent{Room: id})
	}
}

// ReleaseAll evicts every baked room, used before the world is cleared
func (s *BakeSystem) ReleaseAll() {
	for _, id := range s.baked {
		s.release(id)
	}
	s.baked = nil
}

// Reset forgets every baked room without touching the store, used after the
// store was cleared
func (s *BakeSystem) Reset() {
	s.baked = nil
	s.bakedSet = mapset.New[generation.RoomID]()
}

// BakedRooms returns the rooms currently holding lightmaps
func (s *BakeSystem) BakedRooms() []generation.RoomID {
	return append([]generation.RoomID(nil), s.baked...)
}
