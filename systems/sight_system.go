package systems

import (
	"math"

	"github.com/zyedidia/generic/mapset"

	"ebiten-backrooms/ecs"
	"ebiten-backrooms/generation"
	"ebiten-backrooms/geom"
)

// SightSystem tracks which world cells can be seen from the camera. Cells
// that were ever visible stay explored until Reset.
type SightSystem struct {
	camera   *CameraSystem
	Radius   int
	visible  mapset.Set[geom.Point]
	explored mapset.Set[geom.Point]
	lastCell geom.Point
	computed bool
}

// NewSightSystem creates a sight system following camera. camera may be nil
// when the origin is passed to Compute directly.
func NewSightSystem(camera *CameraSystem, radius int) *SightSystem {
	return &SightSystem{
		camera:   camera,
		Radius:   radius,
		visible:  mapset.New[geom.Point](),
		explored: mapset.New[geom.Point](),
	}
}

// Update recomputes sight when the camera has moved to another cell
func (s *SightSystem) Update(world *ecs.World, dt float64) {
	if s.camera == nil {
		return
	}
	cell := s.camera.Cell()
	if s.computed && cell == s.lastCell {
		return
	}
	s.Compute(world.Rooms(), cell)
}

// Compute casts rays from origin over the walkable cells of rooms
func (s *SightSystem) Compute(rooms *generation.Rooms, origin geom.Point) {
	s.visible.Clear()
	s.lastCell = origin
	s.computed = true
	s.mark(origin)

	for angle := 0; angle < 360; angle++ {
		s.castRay(rooms, origin, float64(angle)*(math.Pi/180.0))
	}
}

// castRay marks cells along one ray and stops at the first blocking cell
func (s *SightSystem) castRay(rooms *generation.Rooms, origin geom.Point, angle float64) {
	dx := math.Cos(angle)
	dy := math.Sin(angle)

	// start from the cell centre
	x := float64(origin.X) + 0.5
	y := float64(origin.Y) + 0.5

	for i := 0; i < s.Radius; i++ {
		x += dx
		y += dy
		p := geom.Point{X: int(math.Floor(x)), Y: int(math.Floor(y))}
		s.mark(p)
		if blocksSight(rooms, p) {
			break
		}
	}
}

func (s *SightSystem) mark(p geom.Point) {
	s.visible.Put(p)
	s.explored.Put(p)
}

// blocksSight reports whether p stops a ray. Rooms without a walkable map
// are not laid out yet and block like walls.
func blocksSight(rooms *generation.Rooms, p geom.Point) bool {
	id := rooms.RoomAt(p, generation.NoRoom)
	if id == generation.NoRoom {
		return true
	}
	return !rooms.Room(id).IsWalkable(p)
}

// Visible reports whether p was in sight at the last computation
func (s *SightSystem) Visible(p geom.Point) bool {
	return s.visible.Has(p)
}

// Explored reports whether p was ever in sight
func (s *SightSystem) Explored(p geom.Point) bool {
	return s.explored.Has(p)
}

// VisibleCount returns the number of cells currently in sight
func (s *SightSystem) VisibleCount() int {
	return s.visible.Size()
}

// Reset forgets everything seen, for a new world
func (s *SightSystem) Reset() {
	s.visible.Clear()
	s.explored.Clear()
	s.computed = false
}
