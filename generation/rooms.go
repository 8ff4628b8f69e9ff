package generation

import (
	"fmt"

	"ebiten-backrooms/config"
	"ebiten-backrooms/geom"
)

// Rooms owns every generated room together with the spatial index that
// locates them. Rooms are only ever appended; ids stay valid for the life of
// the store and the *Room behind an id never moves.
type Rooms struct {
	cfg        config.GeneratorConfig
	rooms      []*Room
	index      *SpatialIndex
	rand       *Random
	logMessage func(string)
}

// NewRooms creates an empty store seeded from cfg.Seed. logMessage receives
// diagnostics and may be nil.
func NewRooms(cfg config.GeneratorConfig, logMessage func(string)) *Rooms {
	if logMessage == nil {
		logMessage = func(string) {}
	}
	return &Rooms{
		cfg:        cfg,
		index:      NewSpatialIndex(cfg.HashCellSize),
		rand:       NewRandom(cfg.Seed),
		logMessage: logMessage,
	}
}

// SetSeed reseeds the generator. Combined with Clear it restarts the world.
func (rs *Rooms) SetSeed(seed int64) {
	rs.cfg.Seed = seed
	rs.rand.SetSeed(seed)
}

// Seed returns the current seed
func (rs *Rooms) Seed() int64 {
	return rs.cfg.Seed
}

// Clear forgets every room. Baked lightmaps are not released; callers owning
// them must do so first.
func (rs *Rooms) Clear() {
	rs.rooms = nil
	rs.index.Clear()
}

// Len returns the number of rooms generated so far
func (rs *Rooms) Len() int {
	return len(rs.rooms)
}

// Room returns the room with the given id
func (rs *Rooms) Room(id RoomID) *Room {
	return rs.rooms[id]
}

// Valid reports whether id refers to a generated room
func (rs *Rooms) Valid(id RoomID) bool {
	return id >= 0 && int(id) < len(rs.rooms)
}

// Each calls fn for every room in id order
func (rs *Rooms) Each(fn func(r *Room)) {
	for _, r := range rs.rooms {
		fn(r)
	}
}

// Index returns the spatial index
func (rs *Rooms) Index() *SpatialIndex {
	return rs.index
}

// RoomAt returns the room covering p other than ignore, or NoRoom
func (rs *Rooms) RoomAt(p geom.Point, ignore RoomID) RoomID {
	return rs.index.Lookup(p, ignore)
}

// LookupRoom returns the room covering p, creating an outline room there when
// the position is still empty
func (rs *Rooms) LookupRoom(p geom.Point) (RoomID, error) {
	if id := rs.RoomAt(p, NoRoom); id != NoRoom {
		return id, nil
	}

	bounding, err := rs.shrinkToFree(rs.newBoundingAt(p), p)
	if err != nil {
		rs.logMessage(fmt.Sprintf("WARNING: no room fits at %v", p))
		return NoRoom, fmt.Errorf("lookup room at %v: %w", p, err)
	}
	return rs.addRoom(bounding), nil
}

// newBoundingAt draws a random room size anchored at position. Sizes grow by
// repeated coin-flip trials; a small fraction of rooms use a much larger
// growth step.
func (rs *Rooms) newBoundingAt(position geom.Point) geom.Rect {
	width := rs.cfg.BaseRoomSize
	height := rs.cfg.BaseRoomSize
	growth := rs.cfg.Growth
	if rs.rand.Float() > 1-rs.cfg.BigRoomChance {
		growth = rs.cfg.BigRoomGrowth
	}
	for {
		width += rs.rand.Int(growth)
		height += rs.rand.Int(growth)
		if !rs.rand.Bool() {
			break
		}
	}
	return geom.Rect{X: position.X, Y: position.Y, Width: width, Height: height}
}

// shrinkToFree packs candidate against every existing room it overlaps
func (rs *Rooms) shrinkToFree(candidate geom.Rect, anchor geom.Point) (geom.Rect, error) {
	var overlaps []geom.Rect
	rs.index.Overlapping(candidate, func(_ RoomID, box geom.Rect) {
		overlaps = append(overlaps, box)
	})
	return Shrink(candidate, anchor, overlaps)
}

// addRoom commits a packed bounding box as a new outline room
func (rs *Rooms) addRoom(bounding geom.Rect) RoomID {
	id := RoomID(len(rs.rooms))
	room := &Room{
		ID:          id,
		BoundingBox: bounding,
		State:       StateOutline,
		Visible:     true,
		wallHeight:  rs.cfg.WallHeight,
	}
	room.Hue = rs.rand.Float() * 360
	room.Value = rs.rand.Float()/2 + 0.5
	room.Saturation = rs.rand.Float()/2 + 0.5

	rs.rooms = append(rs.rooms, room)
	rs.index.Register(id, bounding)
	return id
}
