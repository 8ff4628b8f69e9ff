package generation

import "fmt"

// Ensure advances the room to at least target, running every missing earlier
// stage first. Targets past StateGatesConnected belong to the bake scheduler
// and are treated as StateGatesConnected here.
func (rs *Rooms) Ensure(id RoomID, target RoomState) error {
	if !rs.Valid(id) {
		return fmt.Errorf("ensure %v: unknown room %d", target, id)
	}
	switch {
	case target <= StateOutline:
		return nil
	case target == StateExpanded:
		return rs.Expand(id)
	case target == StateNeighborsDetermined:
		return rs.DetermineNeighbors(id)
	case target == StateGatesCollapsed:
		return rs.CollapseGates(id)
	default:
		return rs.ConnectGates(id)
	}
}
