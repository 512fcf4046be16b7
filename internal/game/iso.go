package game

import "math"

// Projection is the isometric diamond projection for one tile size.
// HalfW and HalfH are half the diamond's width and height in pixels.
type Projection struct {
	HalfW float64
	HalfH float64
}

// NewProjection builds a projection from full tile dimensions.
func NewProjection(tileW, tileH float64) Projection {
	return Projection{HalfW: tileW / 2, HalfH: tileH / 2}
}

// View is the pan offset and zoom applied to the grid container.
type View struct {
	OffsetX float64
	OffsetY float64
	Zoom    float64
}

// TileToLocal returns the centre of (col, row) in unpanned, unscaled space.
func (p Projection) TileToLocal(col, row int) (float64, float64) {
	return float64(col-row) * p.HalfW, float64(col+row) * p.HalfH
}

// TileToScreen projects the centre of (col, row) through the view.
func (p Projection) TileToScreen(col, row int, v View) (float64, float64) {
	lx, ly := p.TileToLocal(col, row)
	return v.LocalToScreen(lx, ly)
}

// LocalToScreen applies zoom then pan.
func (v View) LocalToScreen(lx, ly float64) (float64, float64) {
	return v.OffsetX + v.Zoom*lx, v.OffsetY + v.Zoom*ly
}

// ScreenToLocal removes pan then zoom.
func (v View) ScreenToLocal(sx, sy float64) (float64, float64) {
	z := v.Zoom
	if z == 0 {
		z = 1
	}
	return (sx - v.OffsetX) / z, (sy - v.OffsetY) / z
}

// containsLocal is the diamond hit test |dx|/w + |dy|/h <= 1.
func (p Projection) containsLocal(col, row int, lx, ly float64) bool {
	cx, cy := p.TileToLocal(col, row)
	return math.Abs(lx-cx)/p.HalfW+math.Abs(ly-cy)/p.HalfH <= 1
}

// TileAtLocal scans every tile of an n×n grid in row-major order and returns
// the first whose diamond contains the point. It is the reference picker.
func (p Projection) TileAtLocal(lx, ly float64, n int) (col, row int, ok bool) {
	for row = 0; row < n; row++ {
		for col = 0; col < n; col++ {
			if p.containsLocal(col, row, lx, ly) {
				return col, row, true
			}
		}
	}
	return 0, 0, false
}

// boundaryEps absorbs float noise when deciding a point sits on an edge.
const boundaryEps = 1e-9

// TileAtLocalFast inverts the projection directly. Points on a shared edge
// resolve the same way as TileAtLocal: lowest row first, then lowest col.
func (p Projection) TileAtLocalFast(lx, ly float64, n int) (col, row int, ok bool) {
	u := lx / p.HalfW
	v := ly / p.HalfH
	a := (u + v) / 2 // fractional col
	b := (v - u) / 2 // fractional row

	cols := roundCandidates(a)
	rows := roundCandidates(b)
	for _, r := range rows {
		if r < 0 || r >= n {
			continue
		}
		for _, c := range cols {
			if c < 0 || c >= n {
				continue
			}
			if p.containsLocal(c, r, lx, ly) {
				return c, r, true
			}
		}
	}
	return 0, 0, false
}

// roundCandidates returns the nearest integer to x, or both neighbours in
// ascending order when x sits halfway between them.
func roundCandidates(x float64) []int {
	f := math.Floor(x)
	frac := x - f
	if math.Abs(frac-0.5) <= boundaryEps {
		return []int{int(f), int(f) + 1}
	}
	if frac < 0.5 {
		return []int{int(f)}
	}
	return []int{int(f) + 1}
}

// Corners returns the four diamond corners of (col, row) in local space,
// clockwise from the top.
func (p Projection) Corners(col, row int) [4][2]float64 {
	cx, cy := p.TileToLocal(col, row)
	return [4][2]float64{
		{cx, cy - p.HalfH},
		{cx + p.HalfW, cy},
		{cx, cy + p.HalfH},
		{cx - p.HalfW, cy},
	}
}
