package geom

import "fmt"

// Point is an integer grid position
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of two points
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference of two points
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Rect is an axis-aligned integer rectangle. A cell (x, y) lies inside the
// rectangle when X <= x < X+Width and Y <= y < Y+Height.
type Rect struct {
	X, Y, Width, Height int
}

// NewRect creates a rectangle from position and size
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Left returns the first column covered by the rectangle
func (r Rect) Left() int { return r.X }

// Right returns the first column past the rectangle
func (r Rect) Right() int { return r.X + r.Width }

// Top returns the first row covered by the rectangle
func (r Rect) Top() int { return r.Y }

// Bottom returns the first row past the rectangle
func (r Rect) Bottom() int { return r.Y + r.Height }

// Pos returns the top-left corner
func (r Rect) Pos() Point { return Point{X: r.X, Y: r.Y} }

// Area returns the number of cells covered, zero for degenerate rectangles
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether the rectangle covers no cells
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the cell p lies inside the rectangle
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersects reports whether the two rectangles share at least one cell
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// ContainsRect reports whether o lies completely inside r
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Right() <= r.Right() && o.Y >= r.Y && o.Bottom() <= r.Bottom()
}

// Translate moves the rectangle by the given offset
func (r Rect) Translate(offset Point) Rect {
	return Rect{X: r.X + offset.X, Y: r.Y + offset.Y, Width: r.Width, Height: r.Height}
}

// Center returns the centre of the rectangle in continuous coordinates
func (r Rect) Center() (float64, float64) {
	return float64(r.X) + float64(r.Width)/2, float64(r.Y) + float64(r.Height)/2
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}
