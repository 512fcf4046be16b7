package game

import (
	"cmp"
	"slices"
)

// DepthKey orders isometric draws: lower keys draw first (further back).
type DepthKey int

// depthCol must exceed depthOnGround: with a stride of 1 a structure's key
// would tie with the ground five cells further along the same diagonal.
const (
	depthDiagonal = 1000 // weight of col+row; dominates the col term
	depthCol      = 8    // tie-break along a diagonal
	depthOnGround = 5    // lifts a structure above the ground of its own cell
)

// TileDepth is the key of the ground tile at (col, row).
func TileDepth(col, row int) DepthKey {
	return DepthKey((col+row)*depthDiagonal + col*depthCol)
}

// StructureDepth is the key of a structure, taken from its farthest
// (bottom-right-most) covered cell rather than its origin.
func StructureDepth(originCol, originRow int, fp Footprint) DepthKey {
	col := originCol + fp.Width - 1
	row := originRow + fp.Height - 1
	return TileDepth(col, row) + depthOnGround
}

// RenderKind distinguishes render entries that share a key.
type RenderKind uint8

const (
	RenderGround RenderKind = iota
	RenderStructure
)

// RenderEntry is one drawable in the sorted render list.
type RenderEntry struct {
	Depth     DepthKey
	Kind      RenderKind
	Col       int // cell the key was computed from
	Row       int
	Structure *Structure // nil for ground
}

func compareEntries(a, b RenderEntry) int {
	return cmp.Or(
		cmp.Compare(a.Depth, b.Depth),
		cmp.Compare(a.Kind, b.Kind),
		cmp.Compare(a.Row, b.Row),
		cmp.Compare(a.Col, b.Col),
	)
}

// RenderList keeps entries sorted ascending by depth. Every comparison field
// derives from grid coordinates, so the order never depends on the order in
// which things were placed.
type RenderList struct {
	entries []RenderEntry
	resorts int
}

// NewRenderList seeds the list with one ground entry per tile.
func NewRenderList(n int) *RenderList {
	rl := &RenderList{entries: make([]RenderEntry, 0, n*n+16)}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			rl.entries = append(rl.entries, RenderEntry{
				Depth: TileDepth(col, row),
				Kind:  RenderGround,
				Col:   col,
				Row:   row,
			})
		}
	}
	rl.Resort()
	return rl
}

// Insert adds a structure at its sorted position.
func (rl *RenderList) Insert(s *Structure) {
	e := structureEntry(s)
	i, _ := slices.BinarySearchFunc(rl.entries, e, compareEntries)
	rl.entries = slices.Insert(rl.entries, i, e)
}

// Remove drops a structure's entry. It returns false if it was not present.
func (rl *RenderList) Remove(s *Structure) bool {
	i := slices.IndexFunc(rl.entries, func(e RenderEntry) bool { return e.Structure == s })
	if i < 0 {
		return false
	}
	rl.entries = slices.Delete(rl.entries, i, i+1)
	return true
}

// Resort re-sorts the whole list. Insert keeps it sorted already; this is
// the safety net run after every depth-relevant interaction.
func (rl *RenderList) Resort() {
	slices.SortStableFunc(rl.entries, compareEntries)
	rl.resorts++
}

// Entries returns the list in draw order. Callers must not modify it.
func (rl *RenderList) Entries() []RenderEntry {
	return rl.entries
}

// Len returns the number of entries.
func (rl *RenderList) Len() int { return len(rl.entries) }

func structureEntry(s *Structure) RenderEntry {
	return RenderEntry{
		Depth:     s.Depth,
		Kind:      RenderStructure,
		Col:       s.OriginCol + s.Footprint.Width - 1,
		Row:       s.OriginRow + s.Footprint.Height - 1,
		Structure: s,
	}
}
