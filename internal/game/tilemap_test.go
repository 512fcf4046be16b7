package game

import "testing"

func TestNewTileMap_DefaultGrass(t *testing.T) {
	tm := NewTileMap(8)
	if tm.Size != 8 || len(tm.Tiles) != 64 {
		t.Fatalf("expected 8x8 with 64 tiles, got size=%d tiles=%d", tm.Size, len(tm.Tiles))
	}
	for row := 0; row < tm.Size; row++ {
		for col := 0; col < tm.Size; col++ {
			tile := tm.At(col, row)
			if tile.Col != col || tile.Row != row {
				t.Fatalf("tile at (%d,%d) reports (%d,%d)", col, row, tile.Col, tile.Row)
			}
			if tile.Ground != GroundGrass || tile.Occupied || tile.Owner != 0 || tile.Origin != nil {
				t.Fatalf("tile (%d,%d) should start as empty grass, got %+v", col, row, *tile)
			}
		}
	}
}

func TestTileMap_OutOfBounds(t *testing.T) {
	tm := NewTileMap(4)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		if tm.At(c[0], c[1]) != nil {
			t.Fatalf("At(%d,%d) should be nil", c[0], c[1])
		}
		if tm.IsOccupied(c[0], c[1]) {
			t.Fatalf("out-of-bounds tile (%d,%d) should read unoccupied", c[0], c[1])
		}
		if tm.Ground(c[0], c[1]) != GroundGrass {
			t.Fatalf("out-of-bounds ground should read as grass")
		}
	}
	tm.SetGround(9, 9, "road_1") // ignored
}

func TestGroundKey_IsRoad(t *testing.T) {
	cases := map[GroundKey]bool{
		"grass":        false,
		"road_1":       true,
		"road_9":       true,
		"grass_road_4": true,
		"sidewalk_2":   true,
		"apartment_x":  false,
	}
	for g, want := range cases {
		if got := g.IsRoad(); got != want {
			t.Fatalf("%q.IsRoad()=%v, want %v", g, got, want)
		}
	}
}

func TestTileMap_SetGroundAndRoadLookup(t *testing.T) {
	tm := NewTileMap(4)
	tm.SetGround(2, 1, "grass_road_3")
	if !tileOnRoad(tm, 2, 1) {
		t.Fatal("path tile should count as road")
	}
	if tileOnRoad(tm, 1, 1) {
		t.Fatal("grass tile should not count as road")
	}
}

func TestTileMap_OccupiedCellsRowMajor(t *testing.T) {
	tm := NewTileMap(3)
	tm.At(2, 0).Occupied = true
	tm.At(0, 2).Occupied = true
	tm.At(1, 0).Occupied = true
	got := tm.OccupiedCells()
	want := [][2]int{{1, 0}, {2, 0}, {0, 2}}
	if len(got) != len(want) {
		t.Fatalf("expected %d cells, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d = %v, want %v", i, got[i], want[i])
		}
	}
}
