package generation

import (
	"fmt"

	"ebiten-backrooms/geom"
)

// rasterThreshold is the overlap count from which the packer switches from
// branch-and-bound trimming to the occupancy raster scan
const rasterThreshold = 4

// Shrink returns the largest sub-rectangle of candidate that is disjoint from
// every rectangle in overlaps. When anchor lies inside candidate and outside
// all overlaps, the result is the largest such rectangle that still contains
// anchor. ErrNoFit is returned when no positive-area rectangle remains.
func Shrink(candidate geom.Rect, anchor geom.Point, overlaps []geom.Rect) (geom.Rect, error) {
	var relevant []geom.Rect
	for _, o := range overlaps {
		if o.Intersects(candidate) {
			relevant = append(relevant, o)
		}
	}
	if len(relevant) == 0 {
		if candidate.Empty() {
			return geom.Rect{}, fmt.Errorf("shrink %v: %w", candidate, ErrNoFit)
		}
		return candidate, nil
	}

	anchored := candidate.Contains(anchor)
	for _, o := range relevant {
		if o.Contains(anchor) {
			anchored = false
			break
		}
	}

	var result geom.Rect
	if len(relevant) < rasterThreshold {
		result = shrinkByTrimming(candidate, anchor, anchored, relevant)
	} else {
		result = shrinkByRaster(candidate, anchor, anchored, relevant)
	}

	if result.Empty() {
		return geom.Rect{}, fmt.Errorf("shrink %v against %d rooms: %w", candidate, len(relevant), ErrNoFit)
	}
	return result, nil
}

// trimmer runs the branch-and-bound search. bestArea only grows, so any
// branch whose rectangle is already no larger can be pruned.
type trimmer struct {
	overlaps []geom.Rect
	anchor   geom.Point
	anchored bool
	bestArea int
}

func shrinkByTrimming(candidate geom.Rect, anchor geom.Point, anchored bool, overlaps []geom.Rect) geom.Rect {
	if anchored {
		t := &trimmer{overlaps: overlaps, anchor: anchor, anchored: true}
		if r := t.trim(candidate, 0); !r.Empty() {
			return r
		}
	}
	t := &trimmer{overlaps: overlaps}
	return t.trim(candidate, 0)
}

func (t *trimmer) trim(r geom.Rect, index int) geom.Rect {
	if index == len(t.overlaps) {
		return r
	}
	o := t.overlaps[index]
	if !o.Intersects(r) {
		return t.trim(r, index+1)
	}

	var best geom.Rect
	for _, c := range trimsAgainst(r, o) {
		if t.anchored && !c.Contains(t.anchor) {
			continue
		}
		if c.Area() <= t.bestArea {
			continue
		}
		if res := t.trim(c, index+1); res.Area() > best.Area() {
			best = res
		}
	}

	if best.Area() > t.bestArea {
		t.bestArea = best.Area()
	}
	return best
}

// trimsAgainst returns the rectangles obtained by pulling one edge of r in
// just far enough to clear o: keep the top part, the bottom part, the left
// part or the right part.
func trimsAgainst(r, o geom.Rect) []geom.Rect {
	trims := make([]geom.Rect, 0, 4)
	if r.Bottom() > o.Top() {
		if sub := r.Bottom() - o.Top(); sub < r.Height {
			trims = append(trims, geom.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height - sub})
		}
	}
	if o.Bottom() > r.Top() {
		if sub := o.Bottom() - r.Top(); sub < r.Height {
			trims = append(trims, geom.Rect{X: r.X, Y: r.Y + sub, Width: r.Width, Height: r.Height - sub})
		}
	}
	if r.Right() > o.Left() {
		if sub := r.Right() - o.Left(); sub < r.Width {
			trims = append(trims, geom.Rect{X: r.X, Y: r.Y, Width: r.Width - sub, Height: r.Height})
		}
	}
	if o.Right() > r.Left() {
		if sub := o.Right() - r.Left(); sub < r.Width {
			trims = append(trims, geom.Rect{X: r.X + sub, Y: r.Y, Width: r.Width - sub, Height: r.Height})
		}
	}
	return trims
}

func shrinkByRaster(candidate geom.Rect, anchor geom.Point, anchored bool, overlaps []geom.Rect) geom.Rect {
	occupied := geom.NewBoolGrid(candidate.Width, candidate.Height)
	origin := candidate.Pos()
	for _, o := range overlaps {
		occupied.Fill(o.Translate(geom.Point{X: -origin.X, Y: -origin.Y}), true)
	}

	if anchored {
		if r, ok := occupied.BiggestRectContaining(false, anchor.Sub(origin)); ok {
			return r.Translate(origin)
		}
	}
	r := occupied.BiggestRect(false)
	if r.Empty() {
		return r
	}
	return r.Translate(origin)
}
