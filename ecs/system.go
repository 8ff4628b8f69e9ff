package ecs

// System is advanced once per frame by the world
type System interface {
	// Update is called each frame with the elapsed time in seconds
	Update(world *World, dt float64)
}
