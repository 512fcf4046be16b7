package game

import "strings"

// GroundKey identifies a tile's walkable surface: grass or a road/path
// variant. Variant keys double as asset ids.
type GroundKey string

// GroundGrass is the surface every tile starts with.
const GroundGrass GroundKey = "grass"

// ground-cover key prefixes. Anything carrying one of these is a road or path.
var roadPrefixes = []string{"road_", "grass_road_", "sidewalk_"}

// IsRoad reports whether g is a road/path variant (anything but grass).
func (g GroundKey) IsRoad() bool {
	for _, p := range roadPrefixes {
		if strings.HasPrefix(string(g), p) {
			return true
		}
	}
	return false
}

// StructureID identifies a placed structure. Zero means none.
type StructureID uint32

// Tile is one grid cell.
type Tile struct {
	Col      int
	Row      int
	Occupied bool        // covered by some structure's footprint
	Ground   GroundKey   // grass or a road/path variant
	Owner    StructureID // structure covering this tile, 0 if none
	Origin   *Structure  // set only on the structure's origin tile
}

// TileMap is the fixed N×N grid. It never resizes after creation.
type TileMap struct {
	Size  int
	Tiles []Tile // row-major: index = row*Size + col
}

// NewTileMap creates an n×n map of unoccupied grass.
func NewTileMap(n int) *TileMap {
	tiles := make([]Tile, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			tiles[row*n+col] = Tile{Col: col, Row: row, Ground: GroundGrass}
		}
	}
	return &TileMap{Size: n, Tiles: tiles}
}

// InBounds returns true if (col, row) is within the map.
func (tm *TileMap) InBounds(col, row int) bool {
	return col >= 0 && col < tm.Size && row >= 0 && row < tm.Size
}

// At returns a pointer to the tile at (col, row), or nil if out of bounds.
func (tm *TileMap) At(col, row int) *Tile {
	if !tm.InBounds(col, row) {
		return nil
	}
	return &tm.Tiles[row*tm.Size+col]
}

// Ground returns the ground at (col, row); out of bounds reads as grass.
func (tm *TileMap) Ground(col, row int) GroundKey {
	if !tm.InBounds(col, row) {
		return GroundGrass
	}
	return tm.Tiles[row*tm.Size+col].Ground
}

// SetGround sets the ground for a tile. Out of bounds is ignored.
func (tm *TileMap) SetGround(col, row int, g GroundKey) {
	if !tm.InBounds(col, row) {
		return
	}
	tm.Tiles[row*tm.Size+col].Ground = g
}

// IsOccupied returns true if a structure covers (col, row).
func (tm *TileMap) IsOccupied(col, row int) bool {
	if !tm.InBounds(col, row) {
		return false
	}
	return tm.Tiles[row*tm.Size+col].Occupied
}

// tileOnRoad returns true if the given tile is a road or path tile.
func tileOnRoad(tm *TileMap, col, row int) bool {
	return tm.Ground(col, row).IsRoad()
}

// OccupiedCells returns the coordinates of every occupied tile, row-major.
func (tm *TileMap) OccupiedCells() [][2]int {
	var out [][2]int
	for i := range tm.Tiles {
		if tm.Tiles[i].Occupied {
			out = append(out, [2]int{tm.Tiles[i].Col, tm.Tiles[i].Row})
		}
	}
	return out
}
