package geom

// BoolGrid is a dense width x height grid of flags addressed by local cell
// coordinates. It backs both the packer's occupancy raster and a room's
// walkable map.
type BoolGrid struct {
	Width  int
	Height int
	cells  []bool
}

// NewBoolGrid creates a grid with every cell false
func NewBoolGrid(width, height int) *BoolGrid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &BoolGrid{
		Width:  width,
		Height: height,
		cells:  make([]bool, width*height),
	}
}

// InBounds reports whether (x, y) addresses a cell of the grid
func (g *BoolGrid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// Get returns the flag at (x, y); out of bounds cells read as false
func (g *BoolGrid) Get(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.cells[y*g.Width+x]
}

// Set stores the flag at (x, y); out of bounds writes are ignored
func (g *BoolGrid) Set(x, y int, value bool) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.Width+x] = value
}

// At returns the flag at p
func (g *BoolGrid) At(p Point) bool {
	return g.Get(p.X, p.Y)
}

// SetAt stores the flag at p
func (g *BoolGrid) SetAt(p Point, value bool) {
	g.Set(p.X, p.Y, value)
}

// Fill sets every cell inside r (clipped to the grid) to value
func (g *BoolGrid) Fill(r Rect, value bool) {
	for y := max(r.Y, 0); y < min(r.Bottom(), g.Height); y++ {
		for x := max(r.X, 0); x < min(r.Right(), g.Width); x++ {
			g.cells[y*g.Width+x] = value
		}
	}
}

// Count returns how many cells hold value
func (g *BoolGrid) Count(value bool) int {
	n := 0
	for _, c := range g.cells {
		if c == value {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the grid
func (g *BoolGrid) Clone() *BoolGrid {
	clone := &BoolGrid{Width: g.Width, Height: g.Height, cells: make([]bool, len(g.cells))}
	copy(clone.cells, g.cells)
	return clone
}

// BiggestRect returns the largest axis-aligned rectangle whose cells all hold
// value. The scan builds a histogram of run lengths per row and resolves each
// row with a monotonic stack. Ties keep the first rectangle found scanning
// top to bottom, left to right. An empty Rect means no cell holds value.
func (g *BoolGrid) BiggestRect(value bool) Rect {
	var best Rect
	heights := make([]int, g.Width)
	stack := make([]int, 0, g.Width+1)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.cells[y*g.Width+x] == value {
				heights[x]++
			} else {
				heights[x] = 0
			}
		}

		stack = stack[:0]
		for x := 0; x <= g.Width; x++ {
			h := 0
			if x < g.Width {
				h = heights[x]
			}
			for len(stack) > 0 && heights[stack[len(stack)-1]] >= h {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				height := heights[top]
				left := 0
				if len(stack) > 0 {
					left = stack[len(stack)-1] + 1
				}
				width := x - left
				if height*width > best.Area() {
					best = Rect{X: left, Y: y - height + 1, Width: width, Height: height}
				}
			}
			stack = append(stack, x)
		}
	}

	return best
}

// BiggestRectContaining returns the largest rectangle of value cells that
// contains p. The boolean is false when p itself does not hold value.
func (g *BoolGrid) BiggestRectContaining(value bool, p Point) (Rect, bool) {
	if !g.InBounds(p.X, p.Y) || g.At(p) != value {
		return Rect{}, false
	}

	// prefix[x][y] counts matching cells in column x above row y
	prefix := make([][]int, g.Width)
	for x := 0; x < g.Width; x++ {
		prefix[x] = make([]int, g.Height+1)
		for y := 0; y < g.Height; y++ {
			prefix[x][y+1] = prefix[x][y]
			if g.cells[y*g.Width+x] == value {
				prefix[x][y+1]++
			}
		}
	}
	columnMatches := func(x, top, bottom int) bool {
		return prefix[x][bottom+1]-prefix[x][top] == bottom-top+1
	}

	best := Rect{X: p.X, Y: p.Y, Width: 1, Height: 1}
	for top := p.Y; top >= 0 && g.Get(p.X, top) == value; top-- {
		for bottom := p.Y; bottom < g.Height && columnMatches(p.X, top, bottom); bottom++ {
			left := p.X
			for left > 0 && columnMatches(left-1, top, bottom) {
				left--
			}
			right := p.X
			for right < g.Width-1 && columnMatches(right+1, top, bottom) {
				right++
			}
			candidate := Rect{X: left, Y: top, Width: right - left + 1, Height: bottom - top + 1}
			if candidate.Area() > best.Area() {
				best = candidate
			}
		}
	}
	return best, true
}

// AllBiggestRects partitions every value cell into rectangles by repeatedly
// taking the biggest remaining rectangle. The union of the result equals the
// set of value cells and no two rectangles overlap.
func (g *BoolGrid) AllBiggestRects(value bool) []Rect {
	work := g.Clone()
	var rects []Rect
	for {
		r := work.BiggestRect(value)
		if r.Empty() {
			return rects
		}
		rects = append(rects, r)
		work.Fill(r, !value)
	}
}
