package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"ebiten-backrooms/ecs"
	"ebiten-backrooms/generation"
)

// Event type constants
const (
	EventRoomBaked        ecs.EventType = "room_baked"
	EventRoomEvicted      ecs.EventType = "room_evicted"
	EventGenerationFailed ecs.EventType = "generation_failed"
	EventCameraUpdate     ecs.EventType = "camera_update"
	EventRoomEntered      ecs.EventType = "room_entered"
)

// RoomBakedEvent is emitted when the last surface of a room has been baked
type RoomBakedEvent struct {
	Room   generation.RoomID
	Lights int // Lights that contributed to the bake
}

// Type returns the event type
func (e RoomBakedEvent) Type() ecs.EventType {
	return EventRoomBaked
}

// RoomEvictedEvent is emitted when a room's lightmaps are released
type RoomEvictedEvent struct {
	Room generation.RoomID
}

// Type returns the event type
func (e RoomEvictedEvent) Type() ecs.EventType {
	return EventRoomEvicted
}

// GenerationFailedEvent is emitted when a generation or bake request is abandoned
type GenerationFailedEvent struct {
	Room generation.RoomID // NoRoom when no room could be placed
	Err  error
}

// Type returns the event type
func (e GenerationFailedEvent) Type() ecs.EventType {
	return EventGenerationFailed
}

// CameraUpdateEvent is emitted when the viewpoint moves
type CameraUpdateEvent struct {
	Position mgl32.Vec3
	Yaw      float32
}

// Type returns the event type
func (e CameraUpdateEvent) Type() ecs.EventType {
	return EventCameraUpdate
}

// RoomEnteredEvent is emitted when the viewpoint crosses into another room
type RoomEnteredEvent struct {
	From generation.RoomID
	To   generation.RoomID
}

// Type returns the event type
func (e RoomEnteredEvent) Type() ecs.EventType {
	return EventRoomEntered
}
