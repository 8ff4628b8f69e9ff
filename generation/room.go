package generation

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"ebiten-backrooms/geom"
	"ebiten-backrooms/render"
)

// RoomID is a stable index into the room store. Ids are never reused.
type RoomID int

// NoRoom is returned by lookups that find nothing
const NoRoom RoomID = -1

// RoomState is a generation stage. States only advance, except that eviction
// takes a baked room back to StateGatesConnected.
type RoomState int

const (
	StateOutline RoomState = iota
	StateExpanded
	StateNeighborsDetermined
	StateGatesCollapsed
	StateGatesConnected
	StateBaking
	StateLightsBaked
)

func (s RoomState) String() string {
	switch s {
	case StateOutline:
		return "outline"
	case StateExpanded:
		return "expanded"
	case StateNeighborsDetermined:
		return "neighbors-determined"
	case StateGatesCollapsed:
		return "gates-collapsed"
	case StateGatesConnected:
		return "gates-connected"
	case StateBaking:
		return "baking"
	case StateLightsBaked:
		return "lights-baked"
	}
	return "unknown"
}

// Gate is a doorway candidate: Own lies on this room's border, Neighbor is the
// adjacent cell in the other room
type Gate struct {
	Own      geom.Point
	Neighbor geom.Point
}

// Flipped returns the same gate seen from the other room
func (g Gate) Flipped() Gate {
	return Gate{Own: g.Neighbor, Neighbor: g.Own}
}

// Neighbor links a room to an adjacent room. Records always exist in pairs.
type Neighbor struct {
	ID    RoomID
	Gates []Gate
}

func (n *Neighbor) addGate(g Gate) {
	for _, existing := range n.Gates {
		if existing == g {
			return
		}
	}
	n.Gates = append(n.Gates, g)
}

// OcclusionQueryPair holds the inner and outer bounding-cube queries issued
// for a room in one frame
type OcclusionQueryPair struct {
	Inner render.OcclusionQuery
	Outer render.OcclusionQuery
}

// Ready reports whether both queries have results
func (p OcclusionQueryPair) Ready() bool {
	return p.Inner.Ready() && p.Outer.Ready()
}

// Room is a rectangular cell of the dungeon
type Room struct {
	ID          RoomID
	BoundingBox geom.Rect
	State       RoomState
	Neighbors   []Neighbor

	// Walkable is sized to the bounding box and exists from StateGatesConnected
	Walkable *geom.BoolGrid

	// Debug colour, fixed at creation
	Hue        float64
	Saturation float64
	Value      float64

	Floor          *render.Mesh
	Ceiling        *render.Mesh
	Walls          []render.MeshOffset
	SkirtingBoards []render.MeshOffset
	Lights         []render.PointLight

	BakedFloor          render.Lightmap
	BakedCeiling        render.Lightmap
	BakedWalls          []render.Lightmap
	BakedSkirtingBoards []render.Lightmap

	TimeSinceLastTouch float64
	OcclusionQueries   []OcclusionQueryPair
	Visible            bool

	wallHeight float32
}

// Neighbor returns the neighbor record for id, or nil
func (r *Room) Neighbor(id RoomID) *Neighbor {
	for i := range r.Neighbors {
		if r.Neighbors[i].ID == id {
			return &r.Neighbors[i]
		}
	}
	return nil
}

// HasNeighbor reports whether id is adjacent to the room
func (r *Room) HasNeighbor(id RoomID) bool {
	return r.Neighbor(id) != nil
}

// Color returns the room's debug colour
func (r *Room) Color() colorful.Color {
	return colorful.Hsv(r.Hue, r.Saturation, r.Value)
}

// ContainsWorld reports whether the world position lies over the room
func (r *Room) ContainsWorld(x, y float32) bool {
	p := geom.Point{X: int(math.Floor(float64(x))), Y: int(math.Floor(float64(y)))}
	return r.BoundingBox.Contains(p)
}

// FloorTransform places the floor mesh, built around the origin, at the room
func (r *Room) FloorTransform() mgl32.Mat4 {
	cx, cy := r.BoundingBox.Center()
	return mgl32.Translate3D(float32(cx), float32(cy), 0)
}

// CeilingTransform places the ceiling mesh at wall height above the room
func (r *Room) CeilingTransform() mgl32.Mat4 {
	cx, cy := r.BoundingBox.Center()
	return mgl32.Translate3D(float32(cx), float32(cy), r.wallHeight)
}

// floorLocal scales the unit quad to the room footprint
func (r *Room) floorLocal() mgl32.Mat4 {
	return mgl32.Scale3D(float32(r.BoundingBox.Width), float32(r.BoundingBox.Height), 1)
}

// ceilingLocal is floorLocal flipped to face down
func (r *Room) ceilingLocal() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(math.Pi).Mul4(r.floorLocal())
}

// BoundingCubeInner is the room volume shrunk slightly so it does not touch
// the neighbors' volumes
func (r *Room) BoundingCubeInner() render.Cube {
	return r.boundingCube(-0.1)
}

// BoundingCubeOuter is the room volume grown slightly into its neighbors
func (r *Room) BoundingCubeOuter() render.Cube {
	return r.boundingCube(0.1)
}

func (r *Room) boundingCube(margin float32) render.Cube {
	cx, cy := r.BoundingBox.Center()
	h := r.wallHeight
	if h == 0 {
		h = 2.5
	}
	return render.Cube{
		Center: mgl32.Vec3{float32(cx), float32(cy), h / 2},
		Dim: mgl32.Vec3{
			float32(r.BoundingBox.Width) + 2*margin,
			float32(r.BoundingBox.Height) + 2*margin,
			h + 2*margin,
		},
	}
}

// HasBakedArtifacts reports whether any lightmap is attached
func (r *Room) HasBakedArtifacts() bool {
	return r.BakedFloor != nil || r.BakedCeiling != nil || len(r.BakedWalls) > 0 || len(r.BakedSkirtingBoards) > 0
}

// ReleaseBaked frees every lightmap and detaches them from the room
func (r *Room) ReleaseBaked() {
	if r.BakedFloor != nil {
		r.BakedFloor.Release()
		r.BakedFloor = nil
	}
	if r.BakedCeiling != nil {
		r.BakedCeiling.Release()
		r.BakedCeiling = nil
	}
	for _, lm := range r.BakedWalls {
		lm.Release()
	}
	r.BakedWalls = nil
	for _, lm := range r.BakedSkirtingBoards {
		lm.Release()
	}
	r.BakedSkirtingBoards = nil
}

// GatePositions returns the room-side cell of every gate
func (r *Room) GatePositions() []geom.Point {
	var gates []geom.Point
	for _, n := range r.Neighbors {
		for _, g := range n.Gates {
			gates = append(gates, g.Own)
		}
	}
	return gates
}

// IsWalkable reports whether the world cell p is open floor of this room
func (r *Room) IsWalkable(p geom.Point) bool {
	if r.Walkable == nil || !r.BoundingBox.Contains(p) {
		return false
	}
	return r.Walkable.At(p.Sub(r.BoundingBox.Pos()))
}
