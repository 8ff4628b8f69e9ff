package generation

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"ebiten-backrooms/config"
	"ebiten-backrooms/geom"
)

func newTestRooms(seed int64) *Rooms {
	cfg := config.Default().Generator
	cfg.Seed = seed
	return NewRooms(cfg, nil)
}

type roomSnapshot struct {
	Box       geom.Rect
	State     RoomState
	Neighbors []Neighbor
	Walkable  int
	Walls     int
	Lights    int
}

func snapshot(rs *Rooms) []roomSnapshot {
	var out []roomSnapshot
	rs.Each(func(r *Room) {
		s := roomSnapshot{
			Box:       r.BoundingBox,
			State:     r.State,
			Neighbors: r.Neighbors,
			Walls:     len(r.Walls),
			Lights:    len(r.Lights),
		}
		if r.Walkable != nil {
			s.Walkable = r.Walkable.Count(true)
		}
		out = append(out, s)
	})
	return out
}

func TestOriginRoomSeedTwo(t *testing.T) {
	rs := newTestRooms(2)
	id, err := rs.GenerateAtPoint(geom.Point{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id != 0 {
		t.Fatalf("Expected first room id 0, got %d", id)
	}

	room := rs.Room(id)
	if room.BoundingBox.Width < 10 || room.BoundingBox.Height < 10 {
		t.Errorf("Expected at least 10x10, got %v", room.BoundingBox)
	}
	if !room.BoundingBox.Contains(geom.Point{}) {
		t.Errorf("Expected %v to contain the origin", room.BoundingBox)
	}
	if room.State != StateGatesConnected {
		t.Errorf("Expected %v, got %v", StateGatesConnected, room.State)
	}

	for _, cell := range rs.Index().CellsCovering(room.BoundingBox) {
		found := false
		for _, other := range rs.Index().RoomsInCell(cell) {
			if other == id {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected room %d registered in cell %v", id, cell)
		}
	}
}

func TestRoomsNeverOverlap(t *testing.T) {
	for seed := int64(1); seed <= 6; seed++ {
		rs := newTestRooms(seed)
		if _, err := rs.GenerateAtPointMulti(geom.Point{X: 3, Y: -7}, 2); err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}

		var boxes []geom.Rect
		rs.Each(func(r *Room) {
			if r.BoundingBox.Empty() {
				t.Errorf("seed %d: room %d has empty box %v", seed, r.ID, r.BoundingBox)
			}
			boxes = append(boxes, r.BoundingBox)
		})
		for i := range boxes {
			for j := i + 1; j < len(boxes); j++ {
				if boxes[i].Intersects(boxes[j]) {
					t.Fatalf("seed %d: rooms %d %v and %d %v overlap", seed, i, boxes[i], j, boxes[j])
				}
			}
		}
	}
}

func TestExpandCoversBorder(t *testing.T) {
	rs := newTestRooms(7)
	id, err := rs.LookupRoom(geom.Point{X: 100, Y: 100})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := rs.Ensure(id, StateExpanded); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	b := rs.Room(id).BoundingBox
	var border []geom.Point
	for x := b.Left() - 1; x <= b.Right(); x++ {
		border = append(border, geom.Point{X: x, Y: b.Top() - 1}, geom.Point{X: x, Y: b.Bottom()})
	}
	for y := b.Top(); y < b.Bottom(); y++ {
		border = append(border, geom.Point{X: b.Left() - 1, Y: y}, geom.Point{X: b.Right(), Y: y})
	}
	for _, p := range border {
		// corners are not required to be covered
		if (p.X == b.Left()-1 || p.X == b.Right()) && (p.Y == b.Top()-1 || p.Y == b.Bottom()) {
			continue
		}
		if rs.RoomAt(p, id) == NoRoom {
			t.Errorf("Expected border cell %v to be covered", p)
		}
	}
	if rs.Room(id).State != StateExpanded {
		t.Errorf("Expected %v, got %v", StateExpanded, rs.Room(id).State)
	}
	if rs.Len() < 2 {
		t.Errorf("Expected expansion to create rooms, got %d", rs.Len())
	}
}

func TestEnsureRunsEarlierStages(t *testing.T) {
	rs := newTestRooms(11)
	id, err := rs.LookupRoom(geom.Point{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := rs.Ensure(id, StateNeighborsDetermined); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	room := rs.Room(id)
	if room.State != StateNeighborsDetermined {
		t.Errorf("Expected %v, got %v", StateNeighborsDetermined, room.State)
	}
	if len(room.Neighbors) < 2 {
		t.Errorf("Expected at least 2 neighbors, got %d", len(room.Neighbors))
	}
	for _, n := range room.Neighbors {
		if rs.Room(n.ID).State < StateExpanded {
			t.Errorf("Expected neighbor %d expanded, got %v", n.ID, rs.Room(n.ID).State)
		}
		if !rs.Room(n.ID).HasNeighbor(id) {
			t.Errorf("Expected neighbor %d to link back to %d", n.ID, id)
		}
	}

	if err := rs.Ensure(RoomID(rs.Len()), StateExpanded); err == nil {
		t.Error("Expected error for unknown room")
	}
}

func TestCollapsedGatesMirror(t *testing.T) {
	rs := newTestRooms(5)
	if _, err := rs.GenerateAtPointMulti(geom.Point{}, 2); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	checked := 0
	rs.Each(func(r *Room) {
		if r.State < StateGatesCollapsed {
			return
		}
		checked++
		for _, n := range r.Neighbors {
			if len(n.Gates) != 1 {
				t.Errorf("room %d: expected 1 gate to %d, got %d", r.ID, n.ID, len(n.Gates))
				continue
			}
			mirror := rs.Room(n.ID).Neighbor(r.ID)
			if mirror == nil || len(mirror.Gates) != 1 {
				t.Errorf("room %d: expected single mirrored gate on %d", r.ID, n.ID)
				continue
			}
			if mirror.Gates[0] != n.Gates[0].Flipped() {
				t.Errorf("room %d: gate %v not mirrored by %v", r.ID, n.Gates[0], mirror.Gates[0])
			}

			g := n.Gates[0]
			if !r.BoundingBox.Contains(g.Own) || !rs.Room(n.ID).BoundingBox.Contains(g.Neighbor) {
				t.Errorf("room %d: gate %v does not straddle the shared edge", r.ID, g)
			}
			dx, dy := g.Own.X-g.Neighbor.X, g.Own.Y-g.Neighbor.Y
			if dx*dx+dy*dy != 1 {
				t.Errorf("room %d: gate cells %v are not adjacent", r.ID, g)
			}
		}
	})
	if checked == 0 {
		t.Fatal("Expected collapsed rooms")
	}
}

func TestConnectedRoomInterior(t *testing.T) {
	rs := newTestRooms(9)
	if _, err := rs.GenerateAtPointMulti(geom.Point{}, 1); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	rs.Each(func(r *Room) {
		if r.State < StateGatesConnected {
			return
		}
		b := r.BoundingBox
		if r.Walkable.Width != b.Width || r.Walkable.Height != b.Height {
			t.Errorf("room %d: walkable grid %dx%d does not match %v", r.ID, r.Walkable.Width, r.Walkable.Height, b)
		}
		for _, gate := range r.GatePositions() {
			if !r.IsWalkable(gate) {
				t.Errorf("room %d: gate %v is blocked", r.ID, gate)
			}
		}
		if want := len(r.Walkable.AllBiggestRects(false)); len(r.Walls) != want {
			t.Errorf("room %d: expected %d walls, got %d", r.ID, want, len(r.Walls))
		}
		if len(r.SkirtingBoards) != len(r.Walls) {
			t.Errorf("room %d: expected one skirting board per wall", r.ID)
		}
		if r.Floor == nil || r.Ceiling == nil {
			t.Errorf("room %d: missing floor or ceiling mesh", r.ID)
		}
		for _, l := range r.Lights {
			x, y := int(math.Floor(float64(l.Pos.X()))), int(math.Floor(float64(l.Pos.Y())))
			if x < b.X+2 || x >= b.Right()-2 || y < b.Y+2 || y >= b.Bottom()-2 {
				t.Errorf("room %d: light %v too close to the border", r.ID, l.Pos)
			}
			if !r.IsWalkable(geom.Point{X: x, Y: y}) {
				t.Errorf("room %d: light %v over a wall", r.ID, l.Pos)
			}
		}
	})
}

func TestGenerationIsDeterministic(t *testing.T) {
	a := newTestRooms(42)
	b := newTestRooms(42)
	for _, rs := range []*Rooms{a, b} {
		if _, err := rs.GenerateAtPointMulti(geom.Point{X: -20, Y: 15}, 2); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if !reflect.DeepEqual(snapshot(a), snapshot(b)) {
		t.Error("Expected identical worlds for identical seeds")
	}

	first := snapshot(a)
	a.Clear()
	a.SetSeed(42)
	if a.Len() != 0 {
		t.Fatalf("Expected empty store after clear, got %d", a.Len())
	}
	if _, err := a.GenerateAtPointMulti(geom.Point{X: -20, Y: 15}, 2); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, snapshot(a)) {
		t.Error("Expected reseeding to reproduce the world")
	}
}

func TestGenerateMultiDepth(t *testing.T) {
	rs := newTestRooms(3)
	ids, err := rs.GenerateAtPointMulti(geom.Point{}, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	origin := rs.RoomAt(geom.Point{}, NoRoom)
	if len(ids) == 0 || ids[0] != origin {
		t.Fatalf("Expected result to start with origin room %d, got %v", origin, ids)
	}

	seen := make(map[RoomID]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("Room %d listed twice", id)
		}
		seen[id] = true
		if rs.Room(id).State != StateGatesConnected {
			t.Errorf("Expected room %d connected, got %v", id, rs.Room(id).State)
		}
	}

	hops := map[RoomID]int{origin: 0}
	frontier := []RoomID{origin}
	for depth := 1; depth <= 2; depth++ {
		var next []RoomID
		for _, id := range frontier {
			for _, n := range rs.Room(id).Neighbors {
				if _, ok := hops[n.ID]; !ok {
					hops[n.ID] = depth
					next = append(next, n.ID)
				}
			}
		}
		frontier = next
	}
	if len(hops) != len(ids) {
		t.Errorf("Expected %d rooms within 2 hops, got %d", len(hops), len(ids))
	}
	for id := range hops {
		if !seen[id] {
			t.Errorf("Room %d within 2 hops missing from result", id)
		}
	}
}

func TestMissingNeighborIsInvariant(t *testing.T) {
	rs := newTestRooms(1)
	id := rs.addRoom(geom.NewRect(0, 0, 5, 5))
	rs.Room(id).State = StateExpanded

	err := rs.DetermineNeighbors(id)
	if !IsInvariant(err) {
		t.Fatalf("Expected invariant error, got %v", err)
	}
	var ie *InvariantError
	if errors.As(err, &ie) && ie.Room != id {
		t.Errorf("Expected invariant on room %d, got %d", id, ie.Room)
	}
	if rs.Room(id).State != StateExpanded {
		t.Errorf("Expected failed stage to leave %v, got %v", StateExpanded, rs.Room(id).State)
	}
}

func TestSingleNeighborIsInvariant(t *testing.T) {
	rs := newTestRooms(1)
	a := rs.addRoom(geom.NewRect(0, 0, 5, 5))
	b := rs.addRoom(geom.NewRect(5, 0, 5, 5))
	gate := Gate{Own: geom.Point{X: 4, Y: 2}, Neighbor: geom.Point{X: 5, Y: 2}}
	rs.Room(a).Neighbors = []Neighbor{{ID: b, Gates: []Gate{gate}}}
	rs.Room(b).Neighbors = []Neighbor{{ID: a, Gates: []Gate{gate.Flipped()}}}
	rs.Room(a).State = StateGatesCollapsed

	if err := rs.ConnectGates(a); !IsInvariant(err) {
		t.Errorf("Expected invariant error, got %v", err)
	}
	if errors.Is(ErrNoFit, ErrIterationCap) {
		t.Error("Expected distinct sentinel errors")
	}
}

func TestLookupRoomReturnsExisting(t *testing.T) {
	rs := newTestRooms(4)
	first, err := rs.LookupRoom(geom.Point{X: 2, Y: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	again, err := rs.LookupRoom(geom.Point{X: 3, Y: 3})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if first != again || rs.Len() != 1 {
		t.Errorf("Expected lookup inside room %d to reuse it, got %d with %d rooms", first, again, rs.Len())
	}
	if rs.Room(first).State != StateOutline {
		t.Errorf("Expected new room to be an outline, got %v", rs.Room(first).State)
	}
}

func near(got float32, want int) bool {
	return math.Abs(float64(got)-float64(want)) < 1e-4
}

func TestFloorAndCeilingPlacedOnce(t *testing.T) {
	rs := newTestRooms(9)
	if _, err := rs.GenerateAtPointMulti(geom.Point{X: 12, Y: -5}, 1); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	checked := 0
	rs.Each(func(r *Room) {
		if r.State < StateGatesConnected {
			return
		}
		checked++
		b := r.BoundingBox
		lo, hi := r.Floor.Bounds(r.FloorTransform())
		if !near(lo.X(), b.X) || !near(lo.Y(), b.Y) || !near(hi.X(), b.Right()) || !near(hi.Y(), b.Bottom()) {
			t.Errorf("room %d: expected floor over %v, got %v-%v", r.ID, b, lo, hi)
		}
		if lo.Z() != 0 || hi.Z() != 0 {
			t.Errorf("room %d: expected floor at z=0, got %v-%v", r.ID, lo.Z(), hi.Z())
		}

		lo, hi = r.Ceiling.Bounds(r.CeilingTransform())
		if !near(lo.X(), b.X) || !near(lo.Y(), b.Y) || !near(hi.X(), b.Right()) || !near(hi.Y(), b.Bottom()) {
			t.Errorf("room %d: expected ceiling over %v, got %v-%v", r.ID, b, lo, hi)
		}
		want := rs.cfg.WallHeight
		if math.Abs(float64(lo.Z()-want)) > 1e-4 || math.Abs(float64(hi.Z()-want)) > 1e-4 {
			t.Errorf("room %d: expected ceiling at z=%v, got %v-%v", r.ID, want, lo.Z(), hi.Z())
		}
	})
	if checked == 0 {
		t.Fatal("Expected connected rooms")
	}
}

func TestExpandIterationCap(t *testing.T) {
	rs := newTestRooms(3)
	rs.cfg.ExpandAttemptFactor = 0
	id, err := rs.LookupRoom(geom.Point{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err = rs.Expand(id)
	if !errors.Is(err, ErrIterationCap) {
		t.Fatalf("Expected ErrIterationCap, got %v", err)
	}
	if rs.Room(id).State != StateOutline {
		t.Errorf("Expected room to stay an outline, got %v", rs.Room(id).State)
	}
	if rs.Len() < 2 {
		t.Errorf("Expected the committed neighbor to remain, got %d rooms", rs.Len())
	}

	rs.cfg.ExpandAttemptFactor = 4
	if err := rs.Expand(id); err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if rs.Room(id).State != StateExpanded {
		t.Errorf("Expected room to be expanded after retry, got %v", rs.Room(id).State)
	}
}

func TestRoomContainsWorld(t *testing.T) {
	r := &Room{BoundingBox: geom.NewRect(-3, 2, 4, 5)}
	tests := []struct {
		x, y float32
		want bool
	}{
		{-3, 2, true},
		{0.9, 6.9, true},
		{-3.1, 3, false},
		{1, 3, false},
		{0, 7, false},
	}
	for _, tt := range tests {
		if got := r.ContainsWorld(tt.x, tt.y); got != tt.want {
			t.Errorf("ContainsWorld(%v, %v): expected %v, got %v", tt.x, tt.y, tt.want, got)
		}
	}
}
