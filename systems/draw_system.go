package systems

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/zyedidia/generic/mapset"

	"ebiten-backrooms/ecs"
	"ebiten-backrooms/generation"
	"ebiten-backrooms/geom"
	"ebiten-backrooms/render"
)

// DrawOptions selects which parts of a baked room are drawn
type DrawOptions struct {
	Floor   bool
	Walls   bool
	Ceiling bool
	Lights  bool
}

// DefaultDrawOptions draws everything
func DefaultDrawOptions() DrawOptions {
	return DrawOptions{Floor: true, Walls: true, Ceiling: true, Lights: true}
}

// DrawStats describes the last DrawAt call
type DrawStats struct {
	Origin       generation.RoomID
	Visited      int
	Drawn        int
	Placeholders int
	ForceDrawn   int
	Queried      int
	BakeStepped  bool
}

var (
	lightColor    = color.RGBA{255, 255, 255, 255}
	skirtingColor = color.RGBA{255, 255, 255, 255}
)

// DrawSystem walks the neighbor graph from the room under the viewpoint,
// drawing baked rooms and placeholders, and spends at most one bake step
// per call. Traversal into a neighbor depends on the occlusion result of
// an earlier frame.
type DrawSystem struct {
	rooms    *generation.Rooms
	bake     *BakeSystem
	renderer render.Renderer
	shaders  render.Shaders
	failures failureReporter
	Options  DrawOptions

	visited      mapset.Set[generation.RoomID]
	order        []generation.RoomID
	queried      mapset.Set[generation.RoomID]
	queryOrder   []generation.RoomID
	bakeStepped  bool
	stats        DrawStats
	hasPrevious  bool
	previousRoom generation.RoomID
}

// NewDrawSystem creates a draw system sharing the bake system's renderer
func NewDrawSystem(rooms *generation.Rooms, bake *BakeSystem, renderer render.Renderer, shaders render.Shaders, log *MessageLog, events *ecs.EventManager, debug bool) *DrawSystem {
	if log == nil {
		log = NewMessageLog(0)
	}
	return &DrawSystem{
		rooms:    rooms,
		bake:     bake,
		renderer: renderer,
		shaders:  shaders,
		failures: failureReporter{log: log, events: events, debug: debug},
		Options:  DefaultDrawOptions(),
	}
}

// ViewpointCell returns the world cell under a viewpoint. Negative
// coordinates round down so the cell left of zero is -1.
func ViewpointCell(pos mgl32.Vec3) geom.Point {
	return geom.Point{
		X: int(math.Floor(float64(pos.X()))),
		Y: int(math.Floor(float64(pos.Y()))),
	}
}

// DrawAt draws the world as seen from pos
func (s *DrawSystem) DrawAt(pos mgl32.Vec3) error {
	origin, err := s.rooms.GenerateAtPoint(ViewpointCell(pos))
	if err != nil {
		s.failures.report(origin, err)
		return err
	}
	s.trackOrigin(origin)

	s.visited = mapset.New[generation.RoomID]()
	s.order = s.order[:0]
	s.queried = mapset.New[generation.RoomID]()
	s.queryOrder = s.queryOrder[:0]
	s.bakeStepped = false
	s.stats = DrawStats{Origin: origin}

	s.visit(origin)

	for _, id := range s.queryOrder {
		s.updateOcclusionQueries(id)
	}
	s.stats.Queried = len(s.queryOrder)

	if !s.bakeStepped {
		s.bake.PrefetchStep(s.order)
	}

	// neighbors of the origin are drawn even when their visibility is stale
	// so they do not pop in when the view turns quickly or a gate is crossed.
	// Rooms the traversal already drew are skipped.
	for _, n := range s.rooms.Room(origin).Neighbors {
		if s.visited.Has(n.ID) || s.rooms.Room(n.ID).State < generation.StateLightsBaked {
			continue
		}
		s.visited.Put(n.ID)
		s.drawRoom(n.ID)
		s.stats.ForceDrawn++
	}

	s.stats.Visited = len(s.order)
	return nil
}

// Stats returns the statistics of the last DrawAt call
func (s *DrawSystem) Stats() DrawStats {
	return s.stats
}

// Visited returns the rooms visited by the last DrawAt call in visiting order
func (s *DrawSystem) Visited() []generation.RoomID {
	return append([]generation.RoomID(nil), s.order...)
}

// Reset forgets traversal state, used after the world was cleared
func (s *DrawSystem) Reset() {
	s.hasPrevious = false
	s.order = nil
	s.queryOrder = nil
}

func (s *DrawSystem) trackOrigin(origin generation.RoomID) {
	if s.hasPrevious && s.previousRoom != origin && s.failures.events != nil {
		s.failures.events.Emit(RoomEnteredEvent{From: s.previousRoom, To: origin})
	}
	s.previousRoom = origin
	s.hasPrevious = true
}

func (s *DrawSystem) visit(id generation.RoomID) {
	if s.visited.Has(id) {
		return
	}
	s.visited.Put(id)
	s.order = append(s.order, id)

	if s.rooms.Room(id).State < generation.StateLightsBaked && !s.bakeStepped {
		s.bakeStepped = true
		s.stats.BakeStepped = true
		if _, err := s.bake.BakeStep(id); err != nil {
			return
		}
	}

	s.drawRoom(id)
	if s.rooms.Room(id).State < generation.StateLightsBaked {
		return
	}

	for _, n := range s.rooms.Room(id).Neighbors {
		if !s.queried.Has(n.ID) {
			s.queried.Put(n.ID)
			s.queryOrder = append(s.queryOrder, n.ID)
		}
		if s.rooms.Room(n.ID).Visible {
			s.visit(n.ID)
		}
	}
}

// drawRoom draws a baked room, or its inner bounding cube when it is not
// baked yet so it still hides what lies behind it
func (s *DrawSystem) drawRoom(id generation.RoomID) {
	room := s.rooms.Room(id)
	if room.State < generation.StateLightsBaked {
		s.renderer.FillCube(room.BoundingCubeInner(), room.Color())
		s.stats.Placeholders++
		return
	}
	if len(room.Walls) != len(room.BakedWalls) || len(room.SkirtingBoards) != len(room.BakedSkirtingBoards) {
		s.failures.report(id, &generation.InvariantError{
			Room:   id,
			Reason: "baked segment count does not match wall segment count",
		})
		return
	}
	room.TimeSinceLastTouch = 0

	if s.Options.Lights {
		for _, light := range room.Lights {
			s.renderer.FillCube(render.Cube{
				Center: light.Pos.Add(mgl32.Vec3{0, 0, 0.5}),
				Dim:    mgl32.Vec3{0.9, 0.9, 0.01},
			}, lightColor)
		}
	}

	tint := room.Color()
	if s.Options.Floor {
		s.renderer.FillMesh(room.FloorTransform(), room.Floor, room.BakedFloor, s.shaders.Floor, tint)
	}
	if s.Options.Ceiling {
		s.renderer.FillMesh(room.CeilingTransform(), room.Ceiling, room.BakedCeiling, s.shaders.Ceiling, tint)
	}
	if s.Options.Walls {
		for i, wall := range room.Walls {
			s.renderer.FillMesh(wall.Transform(), wall.Mesh, room.BakedWalls[i], s.shaders.Wall, tint)
		}
		for i, board := range room.SkirtingBoards {
			s.renderer.FillMesh(board.Transform(), board.Mesh, room.BakedSkirtingBoards[i], s.shaders.SkirtingBoard, skirtingColor)
		}
	}
	s.stats.Drawn++
}

// updateOcclusionQueries queues this frame's query pair and consumes every
// finished pair at the front of the queue. Visibility only changes once a
// result is in; until then the last known value stands.
func (s *DrawSystem) updateOcclusionQueries(id generation.RoomID) {
	room := s.rooms.Room(id)
	room.OcclusionQueries = append(room.OcclusionQueries, generation.OcclusionQueryPair{
		Inner: s.renderer.QueryCubeVisible(room.BoundingCubeInner()),
		Outer: s.renderer.QueryCubeVisible(room.BoundingCubeOuter()),
	})
	for len(room.OcclusionQueries) > 0 && room.OcclusionQueries[0].Ready() {
		pair := room.OcclusionQueries[0]
		room.OcclusionQueries = room.OcclusionQueries[1:]
		room.Visible = pair.Inner.Visible() || pair.Outer.Visible()
	}
}
