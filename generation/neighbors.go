package generation

import (
	"ebiten-backrooms/geom"
)

// DetermineNeighbors walks every cell along the inside of the room's border,
// finds the room on the other side and records a gate candidate for each
// pair of touching cells. Neighbor records are created on both rooms at once.
func (rs *Rooms) DetermineNeighbors(id RoomID) error {
	room := rs.rooms[id]
	if room.State >= StateNeighborsDetermined {
		return nil
	}
	if err := rs.Expand(id); err != nil {
		return err
	}

	r := room.BoundingBox
	for x := r.Left(); x < r.Right(); x++ {
		if err := rs.link(id, geom.Point{X: x, Y: r.Top()}, geom.Point{X: x, Y: r.Top() - 1}); err != nil {
			return err
		}
	}
	for x := r.Left(); x < r.Right(); x++ {
		if err := rs.link(id, geom.Point{X: x, Y: r.Bottom() - 1}, geom.Point{X: x, Y: r.Bottom()}); err != nil {
			return err
		}
	}
	for y := r.Top(); y < r.Bottom(); y++ {
		if err := rs.link(id, geom.Point{X: r.Left(), Y: y}, geom.Point{X: r.Left() - 1, Y: y}); err != nil {
			return err
		}
	}
	for y := r.Top(); y < r.Bottom(); y++ {
		if err := rs.link(id, geom.Point{X: r.Right() - 1, Y: y}, geom.Point{X: r.Right(), Y: y}); err != nil {
			return err
		}
	}

	room.State = StateNeighborsDetermined
	return nil
}

// link records the gate candidate own -> across between id and the room
// covering across
func (rs *Rooms) link(id RoomID, own, across geom.Point) error {
	neighborID := rs.RoomAt(across, NoRoom)
	if neighborID == id {
		return invariant(id, "room borders itself at %v", across)
	}
	if neighborID == NoRoom {
		return invariant(id, "no room covers border cell %v", across)
	}

	neighbor := rs.rooms[neighborID]
	if neighbor.State == StateOutline {
		if err := rs.Expand(neighborID); err != nil {
			return err
		}
	}

	room := rs.rooms[id]
	if !room.HasNeighbor(neighborID) {
		room.Neighbors = append(room.Neighbors, Neighbor{ID: neighborID})
		neighbor.Neighbors = append(neighbor.Neighbors, Neighbor{ID: id})
	}

	gate := Gate{Own: own, Neighbor: across}
	room.Neighbor(neighborID).addGate(gate)
	mirror := neighbor.Neighbor(id)
	if mirror == nil {
		return invariant(neighborID, "missing mirrored neighbor record for room %d", id)
	}
	mirror.addGate(gate.Flipped())
	return nil
}
