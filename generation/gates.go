package generation

import (
	"github.com/go-gl/mathgl/mgl32"

	"ebiten-backrooms/geom"
	"ebiten-backrooms/render"
)

// CollapseGates keeps one random gate per neighbor and mirrors the choice on
// the neighbor's side. Every neighbor must have determined its own neighbors
// first so that no gate list changes after the pick.
func (rs *Rooms) CollapseGates(id RoomID) error {
	room := rs.rooms[id]
	if room.State >= StateGatesCollapsed {
		return nil
	}
	if err := rs.DetermineNeighbors(id); err != nil {
		return err
	}

	for i := range room.Neighbors {
		if err := rs.DetermineNeighbors(room.Neighbors[i].ID); err != nil {
			return err
		}
	}

	for i := range room.Neighbors {
		n := &room.Neighbors[i]
		if len(n.Gates) == 0 {
			return invariant(id, "neighbor %d has no gate candidates", n.ID)
		}
		keeper := n.Gates[rs.rand.Int(len(n.Gates))]
		n.Gates = []Gate{keeper}

		mirror := rs.rooms[n.ID].Neighbor(id)
		if mirror == nil {
			return invariant(n.ID, "missing mirrored neighbor record for room %d", id)
		}
		mirror.Gates = []Gate{keeper.Flipped()}
	}

	room.State = StateGatesCollapsed
	return nil
}

// ConnectGates lays out the room interior: the walkable grid with its gates
// opened, scattered inner walls, the floor, ceiling, wall and skirting board
// meshes, and the ceiling lights.
func (rs *Rooms) ConnectGates(id RoomID) error {
	room := rs.rooms[id]
	if room.State >= StateGatesConnected {
		return nil
	}
	if err := rs.CollapseGates(id); err != nil {
		return err
	}
	if len(room.Neighbors) < 2 {
		return invariant(id, "only %d neighbors, at least 2 are needed to connect gates", len(room.Neighbors))
	}

	b := room.BoundingBox
	walkable := geom.NewBoolGrid(b.Width, b.Height)
	walkable.Fill(geom.Rect{X: 1, Y: 1, Width: b.Width - 2, Height: b.Height - 2}, true)
	for _, gate := range room.GatePositions() {
		walkable.SetAt(gate.Sub(b.Pos()), true)
	}

	// drawn once so the wall density is consistent across the room
	innerWallProbability := rs.rand.Float() * rs.rand.Float() * rs.rand.Float()
	for x := 1; x < b.Width-1; x++ {
		for y := 1; y < b.Height-1; y++ {
			if rs.rand.Float() < innerWallProbability {
				walkable.Set(x, y, false)
			}
		}
	}
	room.Walkable = walkable

	room.Floor = render.NewMeshBuilder().AddRectangle(room.floorLocal()).Mesh()
	room.Ceiling = render.NewMeshBuilder().AddRectangle(room.ceilingLocal()).Mesh()
	rs.buildWalls(room)
	rs.placeLights(room)

	room.State = StateGatesConnected
	return nil
}

// buildWalls turns the blocked cells into as few boxes as possible, each with
// a skirting board around its foot
func (rs *Rooms) buildWalls(room *Room) {
	b := room.BoundingBox
	height := rs.cfg.WallHeight
	room.Walls = nil
	room.SkirtingBoards = nil
	for _, rect := range room.Walkable.AllBiggestRects(false) {
		cx := float32(b.X) + float32(rect.X) + float32(rect.Width)*0.5
		cy := float32(b.Y) + float32(rect.Y) + float32(rect.Height)*0.5
		w, h := float32(rect.Width), float32(rect.Height)

		wall := render.NewMeshBuilder().AddCube(render.Cube{Dim: mgl32.Vec3{w, h, height}}).Mesh()
		room.Walls = append(room.Walls, render.MeshOffset{Offset: mgl32.Vec3{cx, cy, height / 2}, Mesh: wall})

		skirting := render.NewMeshBuilder().AddCube(render.Cube{Dim: mgl32.Vec3{w + 0.03, h + 0.03, 0.15}}).Mesh()
		room.SkirtingBoards = append(room.SkirtingBoards, render.MeshOffset{Offset: mgl32.Vec3{cx, cy, 0.075}, Mesh: skirting})
	}
}

// placeLights scatters ceiling lights over walkable cells at least two cells
// away from the border
func (rs *Rooms) placeLights(room *Room) {
	b := room.BoundingBox
	room.Lights = nil
	probability := 0.0001 + rs.rand.Float()*0.2
	for x := 2; x < b.Width-2; x++ {
		for y := 2; y < b.Height-2; y++ {
			if room.Walkable.Get(x, y) && rs.rand.Float() < probability {
				room.Lights = append(room.Lights, render.PointLight{
					Pos:      mgl32.Vec3{float32(b.X+x) + 0.5, float32(b.Y+y) + 0.5, rs.cfg.WallHeight - 0.5},
					Strength: rs.cfg.LightStrength,
				})
			}
		}
	}
}
