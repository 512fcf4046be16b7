package game

// Polygon is a closed outline in grid-local space.
type Polygon [][2]float64

// FootprintDiamond returns the ground outline of a w×h block of cells with
// its origin at (col, row): top, right, bottom, left.
func (p Projection) FootprintDiamond(col, row int, fp Footprint) [4][2]float64 {
	top := p.Corners(col, row)[0]
	right := p.Corners(col+fp.Width-1, row)[1]
	bottom := p.Corners(col+fp.Width-1, row+fp.Height-1)[2]
	left := p.Corners(col, row+fp.Height-1)[3]
	return [4][2]float64{top, right, bottom, left}
}

// BlockFaces returns the visible faces of a block standing on a footprint,
// back to front: left wall, right wall, roof. A zero height yields only the
// roof, which then lies flat on the ground.
func (p Projection) BlockFaces(col, row int, fp Footprint, height float64) []Polygon {
	d := p.FootprintDiamond(col, row, fp)
	up := func(pt [2]float64) [2]float64 { return [2]float64{pt[0], pt[1] - height} }
	top, right, bottom, left := d[0], d[1], d[2], d[3]

	roof := Polygon{up(top), up(right), up(bottom), up(left)}
	if height <= 0 {
		return []Polygon{roof}
	}
	return []Polygon{
		{left, bottom, up(bottom), up(left)},
		{bottom, right, up(right), up(bottom)},
		roof,
	}
}

// shade scales a colour channel for wall lighting.
func shade(c uint8, f float64) uint8 {
	v := float64(c) * f
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// faceShades are the brightness factors for left wall, right wall, roof.
var faceShades = [3]float64{0.62, 0.8, 1.0}
