package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"ebiten-backrooms/ecs"
	"ebiten-backrooms/generation"
	"ebiten-backrooms/geom"
)

// CameraSystem moves the viewpoint through the generated world. Movement is
// blocked by walls of connected rooms unless Noclip is set.
type CameraSystem struct {
	Position mgl32.Vec3
	Yaw      float32 // Radians, 0 looks along +X
	Speed    float32 // Cells per second
	TurnRate float32 // Radians per second
	Noclip   bool

	forward, strafe, turn float32
}

// NewCameraSystem creates a camera at eye height above pos
func NewCameraSystem(x, y float32) *CameraSystem {
	return &CameraSystem{
		Position: mgl32.Vec3{x, y, 1.7},
		Speed:    4,
		TurnRate: 2.5,
	}
}

// SetInput sets the movement intent for the next update, each in [-1, 1]
func (s *CameraSystem) SetInput(forward, strafe, turn float32) {
	s.forward, s.strafe, s.turn = forward, strafe, turn
}

// Direction returns the unit view direction on the floor plane
func (s *CameraSystem) Direction() mgl32.Vec3 {
	return mgl32.Vec3{float32(math.Cos(float64(s.Yaw))), float32(math.Sin(float64(s.Yaw))), 0}
}

// Update applies the pending input
func (s *CameraSystem) Update(world *ecs.World, dt float64) {
	if s.forward == 0 && s.strafe == 0 && s.turn == 0 {
		return
	}

	s.Yaw += s.turn * s.TurnRate * float32(dt)
	dir := s.Direction()
	right := mgl32.Vec3{-dir.Y(), dir.X(), 0}
	step := dir.Mul(s.forward).Add(right.Mul(s.strafe))
	if step.Len() > 1 {
		step = step.Normalize()
	}
	step = step.Mul(s.Speed * float32(dt))

	// slide along walls by trying each axis on its own
	next := s.Position
	if s.canEnter(world.Rooms(), next.Add(mgl32.Vec3{step.X(), 0, 0})) {
		next[0] += step.X()
	}
	if s.canEnter(world.Rooms(), next.Add(mgl32.Vec3{0, step.Y(), 0})) {
		next[1] += step.Y()
	}
	s.Position = next

	world.EmitEvent(CameraUpdateEvent{Position: s.Position, Yaw: s.Yaw})
}

// canEnter reports whether pos lies on walkable floor. Cells of rooms whose
// interior is not laid out yet are treated as open.
func (s *CameraSystem) canEnter(rooms *generation.Rooms, pos mgl32.Vec3) bool {
	if s.Noclip || rooms == nil {
		return true
	}
	cell := ViewpointCell(pos)
	id := rooms.RoomAt(cell, generation.NoRoom)
	if id == generation.NoRoom {
		return true
	}
	room := rooms.Room(id)
	if room.Walkable == nil {
		return true
	}
	return room.IsWalkable(cell)
}

// Cell returns the world cell under the camera
func (s *CameraSystem) Cell() geom.Point {
	return ViewpointCell(s.Position)
}
