package generation

import (
	"github.com/zyedidia/generic/mapset"

	"ebiten-backrooms/geom"
)

// GenerateAtPoint returns the room covering p, connected and ready to bake
func (rs *Rooms) GenerateAtPoint(p geom.Point) (RoomID, error) {
	id, err := rs.LookupRoom(p)
	if err != nil {
		return NoRoom, err
	}
	if err := rs.ConnectGates(id); err != nil {
		return id, err
	}
	return id, nil
}

// GenerateAtPointMulti connects the room covering p and every room within
// depth neighbor hops of it
func (rs *Rooms) GenerateAtPointMulti(p geom.Point, depth int) ([]RoomID, error) {
	id, err := rs.LookupRoom(p)
	if err != nil {
		return nil, err
	}
	return rs.GenerateMulti(id, depth)
}

// GenerateMulti connects id and every room within depth neighbor hops of it.
// The result lists each room once, nearest first. On error the rooms
// connected so far are returned with it.
func (rs *Rooms) GenerateMulti(id RoomID, depth int) ([]RoomID, error) {
	type hop struct {
		id    RoomID
		depth int
	}

	visited := mapset.New[RoomID]()
	visited.Put(id)
	queue := []hop{{id: id, depth: 0}}
	var result []RoomID

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if err := rs.ConnectGates(current.id); err != nil {
			return result, err
		}
		result = append(result, current.id)

		if current.depth >= depth {
			continue
		}
		for _, n := range rs.rooms[current.id].Neighbors {
			if visited.Has(n.ID) {
				continue
			}
			visited.Put(n.ID)
			queue = append(queue, hop{id: n.ID, depth: current.depth + 1})
		}
	}
	return result, nil
}
