package game

import "testing"

func TestTileToLocal_DiamondLayout(t *testing.T) {
	p := NewProjection(130, 80)
	cases := []struct {
		col, row int
		x, y     float64
	}{
		{0, 0, 0, 0},
		{1, 0, 65, 40},
		{0, 1, -65, 40},
		{3, 3, 0, 240},
	}
	for _, c := range cases {
		x, y := p.TileToLocal(c.col, c.row)
		if x != c.x || y != c.y {
			t.Fatalf("TileToLocal(%d,%d)=(%v,%v), want (%v,%v)", c.col, c.row, x, y, c.x, c.y)
		}
	}
}

func TestTileToScreen_AppliesZoomThenPan(t *testing.T) {
	p := NewProjection(130, 80)
	v := View{OffsetX: 100, OffsetY: 50, Zoom: 2}
	x, y := p.TileToScreen(1, 0, v)
	if x != 230 || y != 130 {
		t.Fatalf("expected (230,130), got (%v,%v)", x, y)
	}
}

func TestScreenToTile_RoundTripEveryTile(t *testing.T) {
	p := NewProjection(130, 80)
	const n = 8
	views := []View{
		{OffsetX: 640, OffsetY: 120, Zoom: 1},
		{OffsetX: 300.5, OffsetY: -40, Zoom: 1.7},
		{OffsetX: 900, OffsetY: 400, Zoom: 0.5},
	}
	for _, v := range views {
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				sx, sy := p.TileToScreen(col, row, v)
				lx, ly := v.ScreenToLocal(sx, sy)
				c, r, ok := p.TileAtLocalFast(lx, ly, n)
				if !ok || c != col || r != row {
					t.Fatalf("view %+v: tile (%d,%d) resolved to (%d,%d) ok=%v", v, col, row, c, r, ok)
				}
			}
		}
	}
}

func TestScreenToLocal_ZeroZoomActsAsOne(t *testing.T) {
	v := View{OffsetX: 10, OffsetY: 20}
	lx, ly := v.ScreenToLocal(15, 30)
	if lx != 5 || ly != 10 {
		t.Fatalf("expected (5,10), got (%v,%v)", lx, ly)
	}
}

// The direct inversion must agree with the brute-force scan everywhere,
// including on shared edges and corners where the scan's row-major order
// decides the winner.
func TestTileAtLocalFast_MatchesScan(t *testing.T) {
	p := NewProjection(130, 80)
	const n = 8
	stepX, stepY := p.HalfW/4, p.HalfH/4
	checked, hits := 0, 0
	for i := -40; i <= 40; i++ {
		for j := -8; j <= 72; j++ {
			lx, ly := float64(i)*stepX, float64(j)*stepY
			c1, r1, ok1 := p.TileAtLocal(lx, ly, n)
			c2, r2, ok2 := p.TileAtLocalFast(lx, ly, n)
			if ok1 != ok2 || c1 != c2 || r1 != r2 {
				t.Fatalf("(%v,%v): scan=(%d,%d,%v) fast=(%d,%d,%v)", lx, ly, c1, r1, ok1, c2, r2, ok2)
			}
			checked++
			if ok1 {
				hits++
			}
		}
	}
	if hits == 0 || hits == checked {
		t.Fatalf("sample grid should straddle the map edge, hits=%d checked=%d", hits, checked)
	}
}

func TestTileAtLocal_SharedEdgePrefersLowerRow(t *testing.T) {
	p := NewProjection(130, 80)
	// Midpoint of the edge between (1,0) and (1,1).
	x0, y0 := p.TileToLocal(1, 0)
	x1, y1 := p.TileToLocal(1, 1)
	lx, ly := (x0+x1)/2, (y0+y1)/2
	c, r, ok := p.TileAtLocalFast(lx, ly, 4)
	if !ok || c != 1 || r != 0 {
		t.Fatalf("expected (1,0), got (%d,%d) ok=%v", c, r, ok)
	}
}

func TestTileAtLocal_OutsideGrid(t *testing.T) {
	p := NewProjection(130, 80)
	if _, _, ok := p.TileAtLocalFast(0, -100, 8); ok {
		t.Fatal("point above the grid should not resolve")
	}
	if _, _, ok := p.TileAtLocalFast(1e6, 0, 8); ok {
		t.Fatal("far point should not resolve")
	}
}

func TestCorners_Clockwise(t *testing.T) {
	p := NewProjection(130, 80)
	c := p.Corners(0, 0)
	want := [4][2]float64{{0, -40}, {65, 0}, {0, 40}, {-65, 0}}
	if c != want {
		t.Fatalf("corners=%v, want %v", c, want)
	}
}
