package generation

import (
	"github.com/zyedidia/generic/mapset"

	"ebiten-backrooms/geom"
)

// indexEntry caches the bounding box next to the id so lookups never touch
// the room store. Boxes are immutable once a room is committed.
type indexEntry struct {
	id  RoomID
	box geom.Rect
}

// SpatialIndex maps coarse grid cells to the rooms overlapping them. Rooms
// are registered once and never removed.
type SpatialIndex struct {
	cellSize int
	cells    map[geom.Point][]indexEntry
}

// NewSpatialIndex creates an index with square cells of cellSize world cells
func NewSpatialIndex(cellSize int) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = 32
	}
	return &SpatialIndex{
		cellSize: cellSize,
		cells:    make(map[geom.Point][]indexEntry),
	}
}

// CellSize returns the edge length of an index cell
func (idx *SpatialIndex) CellSize() int {
	return idx.cellSize
}

// CellOf returns the index cell containing world position p
func (idx *SpatialIndex) CellOf(p geom.Point) geom.Point {
	return geom.Point{X: floorDiv(p.X, idx.cellSize), Y: floorDiv(p.Y, idx.cellSize)}
}

// CellsCovering returns every index cell r overlaps, row by row
func (idx *SpatialIndex) CellsCovering(r geom.Rect) []geom.Point {
	if r.Empty() {
		return nil
	}
	lo := idx.CellOf(r.Pos())
	hi := idx.CellOf(geom.Point{X: r.Right() - 1, Y: r.Bottom() - 1})
	cells := make([]geom.Point, 0, (hi.X-lo.X+1)*(hi.Y-lo.Y+1))
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			cells = append(cells, geom.Point{X: x, Y: y})
		}
	}
	return cells
}

// Register inserts id into every cell box overlaps
func (idx *SpatialIndex) Register(id RoomID, box geom.Rect) {
	for _, cell := range idx.CellsCovering(box) {
		idx.cells[cell] = append(idx.cells[cell], indexEntry{id: id, box: box})
	}
}

// Lookup returns a room containing p other than ignore, or NoRoom
func (idx *SpatialIndex) Lookup(p geom.Point, ignore RoomID) RoomID {
	for _, e := range idx.cells[idx.CellOf(p)] {
		if e.id != ignore && e.box.Contains(p) {
			return e.id
		}
	}
	return NoRoom
}

// RoomsInCell returns the ids registered in an index cell
func (idx *SpatialIndex) RoomsInCell(cell geom.Point) []RoomID {
	entries := idx.cells[cell]
	ids := make([]RoomID, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}
	return ids
}

// Overlapping calls fn once per distinct room whose box intersects r, in
// registration order within each cell and cell order across cells
func (idx *SpatialIndex) Overlapping(r geom.Rect, fn func(id RoomID, box geom.Rect)) {
	seen := mapset.New[RoomID]()
	for _, cell := range idx.CellsCovering(r) {
		for _, e := range idx.cells[cell] {
			if seen.Has(e.id) {
				continue
			}
			seen.Put(e.id)
			if e.box.Intersects(r) {
				fn(e.id, e.box)
			}
		}
	}
}

// Len returns the number of populated index cells
func (idx *SpatialIndex) Len() int {
	return len(idx.cells)
}

// Clear drops every registration
func (idx *SpatialIndex) Clear() {
	idx.cells = make(map[geom.Point][]indexEntry)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
