package screens

import (
	"fmt"

	"ebiten-backrooms/generation"
)

func seedMessage(seed int64, rooms int) string {
	return fmt.Sprintf("Seed %d: %d rooms around the origin", seed, rooms)
}

func roomEnteredMessage(id generation.RoomID, room *generation.Room) string {
	b := room.BoundingBox
	return fmt.Sprintf("Entered room %d (%dx%d, %d lights, %d neighbors)", id, b.Width, b.Height, len(room.Lights), len(room.Neighbors))
}

func roomSummary(room *generation.Room) string {
	return fmt.Sprintf("Room %d %v %s neighbors:%d lights:%d", room.ID, room.BoundingBox, room.State, len(room.Neighbors), len(room.Lights))
}
