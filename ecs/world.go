package ecs

import (
	"ebiten-backrooms/generation"
)

// World ties the room store to the systems that advance it every frame and
// the event manager they talk through
type World struct {
	rooms *generation.Rooms
	// Systems run in registration order
	systems      []System
	eventManager *EventManager
	elapsed      float64
}

// NewWorld creates a world around an existing room store
func NewWorld(rooms *generation.Rooms) *World {
	return &World{
		rooms:        rooms,
		systems:      make([]System, 0),
		eventManager: NewEventManager(),
	}
}

// Rooms returns the room store
func (w *World) Rooms() *generation.Rooms {
	return w.rooms
}

// AddSystem adds a system to the world
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)
}

// Update updates all systems in the world
func (w *World) Update(dt float64) {
	w.elapsed += dt
	for _, system := range w.systems {
		system.Update(w, dt)
	}
}

// Elapsed returns the simulated time in seconds since the world was created
func (w *World) Elapsed() float64 {
	return w.elapsed
}

// GetSystems returns all systems registered in the world
func (w *World) GetSystems() []System {
	return w.systems
}

// GetEventManager returns the world's event manager
func (w *World) GetEventManager() *EventManager {
	return w.eventManager
}

// EmitEvent is a convenience method to emit an event
func (w *World) EmitEvent(event Event) {
	w.eventManager.Emit(event)
}
