package generation

import (
	"fmt"

	"ebiten-backrooms/geom"
)

// Expand surrounds the room with outline rooms until no cell bordering its
// bounding box is left uncovered. Each uncovered border cell, picked in random
// order, seeds a randomly sized candidate placed flush against the room's
// edge and packed against the rooms it overlaps.
//
// Every packed candidate contains the cell that seeded it, so each attempt
// covers at least one pending cell. The attempt budget is a safety net: when
// it runs out ErrIterationCap is returned and the room stays an outline so a
// later request retries it. Rooms committed before the failure remain.
func (rs *Rooms) Expand(id RoomID) error {
	room := rs.rooms[id]
	if room.State >= StateExpanded {
		return nil
	}
	b := room.BoundingBox

	pending := make([]geom.Point, 0, 2*b.Width+2*b.Height)
	for i := 0; i < b.Width; i++ {
		pending = append(pending,
			geom.Point{X: b.X + i, Y: b.Y - 1},
			geom.Point{X: b.X + i, Y: b.Bottom()},
		)
	}
	for i := 0; i < b.Height; i++ {
		pending = append(pending,
			geom.Point{X: b.X - 1, Y: b.Y + i},
			geom.Point{X: b.Right(), Y: b.Y + i},
		)
	}
	pending = keepPoints(pending, func(p geom.Point) bool {
		return rs.RoomAt(p, id) == NoRoom
	})

	budget := rs.cfg.ExpandAttemptFactor*len(pending) + 1
	for attempt := 0; len(pending) > 0; attempt++ {
		if attempt >= budget {
			rs.logMessage(fmt.Sprintf("WARNING: expanding room %d gave up with %d border cells uncovered", id, len(pending)))
			return fmt.Errorf("expand room %d after %d attempts: %w", id, attempt, ErrIterationCap)
		}

		pos := pending[rs.rand.Int(len(pending))]
		candidate := rs.newBoundingAt(pos)
		candidate.X -= rs.rand.Int(candidate.Width)
		candidate.Y -= rs.rand.Int(candidate.Height)

		// align flush with the edge the seed cell borders
		switch {
		case pos.X == b.X-1:
			candidate.X = pos.X - candidate.Width + 1
		case pos.X == b.Right():
			candidate.X = b.Right()
		case pos.Y == b.Y-1:
			candidate.Y = pos.Y - candidate.Height + 1
		case pos.Y == b.Bottom():
			candidate.Y = b.Bottom()
		default:
			return invariant(id, "border cell %v is not adjacent to %v", pos, b)
		}

		packed, err := rs.shrinkToFree(candidate, pos)
		if err != nil {
			rs.logMessage(fmt.Sprintf("WARNING: expanding room %d: %v", id, err))
			return fmt.Errorf("expand room %d: %w", id, err)
		}

		pending = keepPoints(pending, func(p geom.Point) bool {
			return !packed.Contains(p)
		})
		rs.addRoom(packed)
	}

	room.State = StateExpanded
	return nil
}

// keepPoints filters points in place, preserving order
func keepPoints(points []geom.Point, keep func(geom.Point) bool) []geom.Point {
	kept := points[:0]
	for _, p := range points {
		if keep(p) {
			kept = append(kept, p)
		}
	}
	return kept
}
