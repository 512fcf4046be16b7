package game

import (
	"errors"
	"testing"
)

// checkGridInvariants verifies that occupancy and structures agree exactly.
func checkGridInvariants(t *testing.T, c *City) {
	t.Helper()
	covered := map[[2]int]StructureID{}
	for _, s := range c.Structures() {
		for _, cell := range s.Cells() {
			if prev, dup := covered[cell]; dup {
				t.Fatalf("cell %v covered by both #%d and #%d", cell, prev, s.ID)
			}
			covered[cell] = s.ID
		}
		if origin := c.Tiles().At(s.OriginCol, s.OriginRow); origin.Origin != s {
			t.Fatalf("origin tile of #%d does not point back at it", s.ID)
		}
	}
	tm := c.Tiles()
	for i := range tm.Tiles {
		tile := &tm.Tiles[i]
		id, want := covered[[2]int{tile.Col, tile.Row}]
		if tile.Occupied != want {
			t.Fatalf("tile (%d,%d) occupied=%v, covered=%v", tile.Col, tile.Row, tile.Occupied, want)
		}
		if tile.Owner != id {
			t.Fatalf("tile (%d,%d) owner=%d, want %d", tile.Col, tile.Row, tile.Owner, id)
		}
		if o := tile.Origin; o != nil && (o.OriginCol != tile.Col || o.OriginRow != tile.Row) {
			t.Fatalf("tile (%d,%d) holds a back-reference to #%d whose origin is (%d,%d)", tile.Col, tile.Row, o.ID, o.OriginCol, o.OriginRow)
		}
	}
	if got, want := c.RenderList().Len(), tm.Size*tm.Size+len(c.Structures()); got != want {
		t.Fatalf("render list has %d entries, want %d", got, want)
	}
}

func TestPlace_OnlyOriginHoldsBackReference(t *testing.T) {
	sb := NewSandbox()
	c := sb.City
	s, err := c.Place(3, 3, "apartment_Blue_2x2_1")
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	checkGridInvariants(t, c)
	refs := 0
	for _, tile := range c.Tiles().Tiles {
		if tile.Origin != nil {
			refs++
		}
	}
	if refs != 1 || c.Tiles().At(3, 3).Origin != s {
		t.Fatalf("want one back-reference at (3,3), got %d", refs)
	}
	for _, cell := range [][2]int{{4, 3}, {3, 4}, {4, 4}} {
		if c.Tiles().At(cell[0], cell[1]).Origin != nil {
			t.Fatalf("covered tile %v should not hold a back-reference", cell)
		}
	}

	if _, err := c.Delete(4, 4); err != nil {
		t.Fatalf("delete: %v", err)
	}
	checkGridInvariants(t, c)
	if c.Tiles().At(3, 3).Origin != nil {
		t.Fatal("origin back-reference should be cleared on delete")
	}
}

func TestPlace_OverlapRejected(t *testing.T) {
	sb := NewSandbox()
	c := sb.City
	if _, err := c.Place(0, 0, "apartment_Blue_2x2_1"); err != nil {
		t.Fatalf("2x2 at (0,0): %v", err)
	}
	s, err := c.Place(1, 1, "apartment_Red_1x1_1")
	if !errors.Is(err, ErrOccupied) || s != nil {
		t.Fatalf("expected ErrOccupied, got s=%v err=%v", s, err)
	}
	if len(c.Structures()) != 1 || len(c.Tiles().OccupiedCells()) != 4 {
		t.Fatalf("expected 1 structure over 4 tiles, got %d over %d", len(c.Structures()), len(c.Tiles().OccupiedCells()))
	}
	checkGridInvariants(t, c)
}

func TestPlace_OutOfBoundsChangesNothing(t *testing.T) {
	sb := NewSandbox()
	c := sb.City
	if c.CanPlace(7, 7, Footprint{Width: 2, Height: 2}) {
		t.Fatal("2x2 at the last cell should not fit")
	}
	_, err := c.Place(7, 7, "apartment_Blue_2x2_1")
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if len(c.Tiles().OccupiedCells()) != 0 {
		t.Fatal("rejected placement must not touch any tile")
	}
	checkGridInvariants(t, c)
}

func TestPlace_PartialOverlapIsAtomic(t *testing.T) {
	sb := NewSandbox()
	c := sb.City
	if _, err := c.Place(3, 4, "apartment_Red_1x1_1"); err != nil {
		t.Fatal(err)
	}
	// Three of the four cells are free; the fourth is taken.
	if _, err := c.Place(2, 3, "apartment_Blue_2x2_1"); !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied, got %v", err)
	}
	for _, cell := range [][2]int{{2, 3}, {3, 3}, {2, 4}} {
		if c.Tiles().IsOccupied(cell[0], cell[1]) {
			t.Fatalf("cell %v flipped by a rejected placement", cell)
		}
	}
	checkGridInvariants(t, c)
}

func TestDelete_FromAnyCoveredTile(t *testing.T) {
	for _, hit := range [][2]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}} {
		sb := NewSandbox()
		c := sb.City
		placed, err := c.Place(2, 2, "apartment_Blue_2x2_1")
		if err != nil {
			t.Fatal(err)
		}
		removed, err := c.Delete(hit[0], hit[1])
		if err != nil {
			t.Fatalf("delete via %v: %v", hit, err)
		}
		if removed != placed || !removed.Released() {
			t.Fatalf("delete via %v removed the wrong structure", hit)
		}
		if len(c.Tiles().OccupiedCells()) != 0 || len(c.Structures()) != 0 {
			t.Fatalf("delete via %v left state behind", hit)
		}
		checkGridInvariants(t, c)
	}
}

func TestDelete_EmptyTile(t *testing.T) {
	c := NewSandbox().City
	if _, err := c.Delete(1, 1); !errors.Is(err, ErrNothingToDelete) {
		t.Fatalf("expected ErrNothingToDelete, got %v", err)
	}
	if _, err := c.Delete(-1, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestStructureAt_FallsBackToOriginScan(t *testing.T) {
	c := NewSandbox().City
	s, err := c.Place(4, 4, "apartment_Green_2x2_1")
	if err != nil {
		t.Fatal(err)
	}
	// Drop the owner index on the far cell; the scan must still find it.
	c.Tiles().At(5, 5).Owner = 0
	if got := c.StructureAt(5, 5); got != s {
		t.Fatalf("scan fallback found %v, want #%d", got, s.ID)
	}
	if got := c.findOriginByScan(6, 6); got != nil {
		t.Fatalf("uncovered cell resolved to #%d", got.ID)
	}
}

func TestPlaceGroundCover_Rules(t *testing.T) {
	c := NewSandbox().City
	if err := c.PlaceGroundCover(0, 0, "road_1"); err != nil {
		t.Fatal(err)
	}
	if err := c.PlaceGroundCover(0, 0, "road_1"); !errors.Is(err, ErrSameGround) {
		t.Fatalf("re-applying the same ground should be a rejected no-op, got %v", err)
	}
	if err := c.PlaceGroundCover(0, 0, "road_2"); err != nil {
		t.Fatalf("switching variant: %v", err)
	}
	if _, err := c.Place(3, 3, "apartment_Red_1x1_1"); err != nil {
		t.Fatal(err)
	}
	if err := c.PlaceGroundCover(3, 3, "road_1"); !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied under a structure, got %v", err)
	}
	if err := c.PlaceGroundCover(8, 0, "road_1"); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	// Place routes ground keys to ground cover and returns no structure.
	s, err := c.Place(1, 1, "grass_road_2")
	if err != nil || s != nil {
		t.Fatalf("ground via Place: s=%v err=%v", s, err)
	}
	if c.Tiles().Ground(1, 1) != "grass_road_2" || c.Tiles().IsOccupied(1, 1) {
		t.Fatal("ground cover must change the surface without occupying")
	}
	if _, err := c.Place(1, 1, "grass"); err != nil {
		t.Fatalf("revert to grass: %v", err)
	}
	if c.Tiles().Ground(1, 1) != GroundGrass {
		t.Fatal("tile should be grass again")
	}
	checkGridInvariants(t, c)
}

func TestPlace_UniqueTypeOnce(t *testing.T) {
	c := NewSandbox().City
	if _, err := c.Place(0, 0, "signature_university"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Place(4, 4, "signature_university"); !errors.Is(err, ErrAlreadyPlaced) {
		t.Fatalf("expected ErrAlreadyPlaced, got %v", err)
	}
	if !c.PlacedUniqueTypes()["signature_university"] {
		t.Fatal("university should be listed as placed")
	}
	if _, err := c.Delete(1, 1); err != nil {
		t.Fatal(err)
	}
	if c.PlacedUniqueTypes()["signature_university"] {
		t.Fatal("deleted unique type should be available again")
	}
	if _, err := c.Place(4, 4, "signature_university"); err != nil {
		t.Fatalf("re-place after delete: %v", err)
	}
}

func TestPlace_LockedType(t *testing.T) {
	cw := CompletedWorkshops{}
	c := NewSandbox(WithProgress(cw)).City
	if _, err := c.Place(0, 0, "signature_library"); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	cw.Complete("A1")
	if _, err := c.Place(0, 0, "signature_library"); err != nil {
		t.Fatalf("after unlock: %v", err)
	}
}

func TestNewCity_StartingLayoutPlacesHub(t *testing.T) {
	sb := NewSandbox(WithStartingLayout(true))
	s := sb.City.StructureAt(4, 4)
	if s == nil || s.TypeKey != "signature_university" || s.OriginCol != 3 || s.OriginRow != 3 {
		t.Fatalf("expected university at (3,3), got %+v", s)
	}
	checkGridInvariants(t, sb.City)
}

func TestPlace_ManyOperationsKeepInvariants(t *testing.T) {
	c := NewSandbox(WithGridSize(6)).City
	ops := []struct {
		del      bool
		col, row int
		key      string
	}{
		{false, 0, 0, "apartment_Blue_2x2_1"},
		{false, 2, 0, "apartment_Red_1x1_2"},
		{false, 1, 1, "apartment_Red_1x1_1"},
		{false, 4, 4, "signature_townhall"},
		{true, 1, 0, ""},
		{false, 1, 1, "apartment_Pink_2x2_1"},
		{true, 5, 5, ""},
		{false, 5, 5, "apartment_Grey_1x1_3"},
		{true, 3, 3, ""},
	}
	for _, op := range ops {
		if op.del {
			_, _ = c.Delete(op.col, op.row)
		} else {
			_, _ = c.Place(op.col, op.row, op.key)
		}
		checkGridInvariants(t, c)
	}
	if len(c.Activity().Recent()) == 0 {
		t.Fatal("operations should be recorded in the activity log")
	}
}
