package game

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/Garsondee/Iso-City/internal/logger"
	"github.com/Garsondee/Iso-City/internal/tuning"
	"github.com/sirupsen/logrus"
)

// Placement and deletion failures. Every rejection leaves the city unchanged.
var (
	ErrOutOfBounds     = errors.New("outside the grid")
	ErrOccupied        = errors.New("tile occupied")
	ErrSameGround      = errors.New("ground already of that type")
	ErrNothingToDelete = errors.New("no structure on tile")
	ErrLocked          = errors.New("type is locked")
	ErrAlreadyPlaced   = errors.New("unique type already placed")
	ErrNoSelection     = errors.New("no type selected")
)

// Structure is a placed building.
type Structure struct {
	ID        StructureID
	TypeKey   string
	Footprint Footprint
	OriginCol int
	OriginRow int
	Depth     DepthKey

	released bool // visual torn down after deletion
}

// Covers reports whether the structure's footprint includes (col, row).
func (s *Structure) Covers(col, row int) bool {
	return col >= s.OriginCol && col < s.OriginCol+s.Footprint.Width &&
		row >= s.OriginRow && row < s.OriginRow+s.Footprint.Height
}

// Cells returns every covered cell, row-major.
func (s *Structure) Cells() [][2]int {
	out := make([][2]int, 0, s.Footprint.Width*s.Footprint.Height)
	for dy := 0; dy < s.Footprint.Height; dy++ {
		for dx := 0; dx < s.Footprint.Width; dx++ {
			out = append(out, [2]int{s.OriginCol + dx, s.OriginRow + dy})
		}
	}
	return out
}

// Released reports whether the structure has been deleted.
func (s *Structure) Released() bool { return s.released }

// City is the grid, its structures, their draw order and the road network.
// All methods run on the single update goroutine.
type City struct {
	tiles      *TileMap
	proj       Projection
	structures []*Structure
	byID       map[StructureID]*Structure
	nextID     StructureID
	render     *RenderList
	roads      *RoadNetwork
	progress   Progress
	hubType    string
	log        *ActivityLog
	tick       int
}

// NewCity builds an empty city from the tuning. A nil progress unlocks all.
func NewCity(tu tuning.Tuning, progress Progress) *City {
	if progress == nil {
		progress = OpenProgress{}
	}
	seed := tu.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- cosmetic randomness only
	proj := NewProjection(tu.TileWidth, tu.TileHeight)
	tiles := NewTileMap(tu.GridSize)
	c := &City{
		tiles:    tiles,
		proj:     proj,
		byID:     make(map[StructureID]*Structure),
		nextID:   1,
		render:   NewRenderList(tu.GridSize),
		progress: progress,
		hubType:  tu.HubType,
		log:      NewActivityLog(),
	}
	c.roads = NewRoadNetwork(tiles, proj, rng, tu.Agent)
	if tu.StartingLayout {
		c.placeStartingLayout()
	}
	return c
}

// placeStartingLayout puts the hub structure in the middle of the grid.
func (c *City) placeStartingLayout() {
	if c.hubType == "" {
		return
	}
	fp := FootprintOf(c.hubType)
	col := (c.tiles.Size - fp.Width) / 2
	row := (c.tiles.Size - fp.Height) / 2
	if _, err := c.Place(col, row, c.hubType); err != nil {
		logger.Log.WithError(err).Warn("starting layout skipped")
	}
}

// Tiles exposes the grid for reading.
func (c *City) Tiles() *TileMap { return c.tiles }

// Projection returns the tile projection.
func (c *City) Projection() Projection { return c.proj }

// Structures returns the active structures in placement order.
func (c *City) Structures() []*Structure { return c.structures }

// RenderList returns the depth-sorted draw list.
func (c *City) RenderList() *RenderList { return c.render }

// Roads returns the road network and its agent.
func (c *City) Roads() *RoadNetwork { return c.roads }

// Activity returns the recent-actions log.
func (c *City) Activity() *ActivityLog { return c.log }

// HubType is the structure type whose click opens the detail view.
func (c *City) HubType() string { return c.hubType }

// StructureAt resolves the structure covering (col, row) through the
// per-tile owner index, or nil.
func (c *City) StructureAt(col, row int) *Structure {
	t := c.tiles.At(col, row)
	if t == nil || !t.Occupied {
		return nil
	}
	if s, ok := c.byID[t.Owner]; ok {
		return s
	}
	return c.findOriginByScan(col, row)
}

// findOriginByScan searches up and to the left, within the largest known
// footprint, for the origin tile whose structure covers (col, row).
func (c *City) findOriginByScan(col, row int) *Structure {
	for dy := 0; dy < maxFootprintSide; dy++ {
		for dx := 0; dx < maxFootprintSide; dx++ {
			t := c.tiles.At(col-dx, row-dy)
			if t != nil && t.Origin != nil && t.Origin.Covers(col, row) {
				return t.Origin
			}
		}
	}
	return nil
}

// IsTypeUnlocked forwards to the progress collaborator.
func (c *City) IsTypeUnlocked(typeKey string) bool {
	return c.progress.IsTypeUnlocked(typeKey)
}

// PlacedUniqueTypes returns the unique types currently on the grid.
func (c *City) PlacedUniqueTypes() map[string]bool {
	out := make(map[string]bool)
	for _, s := range c.structures {
		if IsUnique(s.TypeKey) {
			out[s.TypeKey] = true
		}
	}
	return out
}

// CanSelect reports why a type may not be armed, or nil if it may.
func (c *City) CanSelect(typeKey string) error {
	if typeKey == "" {
		return ErrNoSelection
	}
	if !c.progress.IsTypeUnlocked(typeKey) {
		return ErrLocked
	}
	if IsUnique(typeKey) && c.PlacedUniqueTypes()[typeKey] {
		return ErrAlreadyPlaced
	}
	return nil
}

// checkFootprint returns nil if every covered cell is in bounds and free.
func (c *City) checkFootprint(col, row int, fp Footprint) error {
	for dy := 0; dy < fp.Height; dy++ {
		for dx := 0; dx < fp.Width; dx++ {
			t := c.tiles.At(col+dx, row+dy)
			if t == nil {
				return ErrOutOfBounds
			}
			if t.Occupied {
				return ErrOccupied
			}
		}
	}
	return nil
}

// CanPlace reports whether a footprint fits with its origin at (col, row).
func (c *City) CanPlace(col, row int, fp Footprint) bool {
	return c.checkFootprint(col, row, fp) == nil
}

// Place puts typeKey with its origin at (col, row). Ground-cover keys change
// the tile surface instead and return a nil structure.
func (c *City) Place(col, row int, typeKey string) (*Structure, error) {
	if IsGroundCover(typeKey) {
		return nil, c.PlaceGroundCover(col, row, GroundKey(typeKey))
	}
	fields := logrus.Fields{"col": col, "row": row, "type": typeKey}

	if err := c.CanSelect(typeKey); err != nil {
		logger.Log.WithFields(fields).WithError(err).Debug("placement rejected")
		return nil, fmt.Errorf("place %s at (%d,%d): %w", typeKey, col, row, err)
	}
	fp := FootprintOf(typeKey)
	if err := c.checkFootprint(col, row, fp); err != nil {
		logger.Log.WithFields(fields).WithError(err).Debug("placement rejected")
		c.log.Add(c.tick, ActivityRejected, fmt.Sprintf("cannot place %s at %d,%d: %v", typeKey, col, row, err))
		return nil, fmt.Errorf("place %s at (%d,%d): %w", typeKey, col, row, err)
	}

	s := &Structure{
		ID:        c.nextID,
		TypeKey:   typeKey,
		Footprint: fp,
		OriginCol: col,
		OriginRow: row,
		Depth:     StructureDepth(col, row, fp),
	}
	c.nextID++

	// Flip the whole footprint together.
	for _, cell := range s.Cells() {
		t := c.tiles.At(cell[0], cell[1])
		t.Occupied = true
		t.Owner = s.ID
	}
	c.tiles.At(col, row).Origin = s

	c.structures = append(c.structures, s)
	c.byID[s.ID] = s
	c.render.Insert(s)
	c.render.Resort()

	logger.Log.WithFields(fields).WithField("depth", s.Depth).Debug("structure placed")
	c.log.Add(c.tick, ActivityPlaced, fmt.Sprintf("placed %s at %d,%d", typeKey, col, row))
	return s, nil
}

// PlaceGroundCover changes the surface of one unoccupied tile. Applying the
// ground it already has is rejected as a no-op.
func (c *City) PlaceGroundCover(col, row int, g GroundKey) error {
	fields := logrus.Fields{"col": col, "row": row, "ground": g}
	t := c.tiles.At(col, row)
	var err error
	switch {
	case t == nil:
		err = ErrOutOfBounds
	case t.Occupied:
		err = ErrOccupied
	case t.Ground == g:
		err = ErrSameGround
	}
	if err != nil {
		logger.Log.WithFields(fields).WithError(err).Debug("ground cover rejected")
		return fmt.Errorf("ground %s at (%d,%d): %w", g, col, row, err)
	}

	t.Ground = g
	c.roads.Recompute()

	logger.Log.WithFields(fields).Debug("ground cover placed")
	c.log.Add(c.tick, ActivityGround, fmt.Sprintf("%s at %d,%d", g, col, row))
	return nil
}

// Delete removes the structure covering (col, row), whichever of its tiles
// was clicked.
func (c *City) Delete(col, row int) (*Structure, error) {
	fields := logrus.Fields{"col": col, "row": row}
	t := c.tiles.At(col, row)
	if t == nil {
		return nil, fmt.Errorf("delete at (%d,%d): %w", col, row, ErrOutOfBounds)
	}
	if !t.Occupied {
		logger.Log.WithFields(fields).Debug("delete on empty tile")
		return nil, fmt.Errorf("delete at (%d,%d): %w", col, row, ErrNothingToDelete)
	}
	s := c.StructureAt(col, row)
	if s == nil {
		// Occupied without an owner would break the grid invariant.
		logger.Log.WithFields(fields).Error("occupied tile has no owning structure")
		return nil, fmt.Errorf("delete at (%d,%d): %w", col, row, ErrNothingToDelete)
	}

	for _, cell := range s.Cells() {
		ct := c.tiles.At(cell[0], cell[1])
		if ct == nil {
			continue
		}
		ct.Occupied = false
		ct.Owner = 0
		ct.Origin = nil
	}
	c.structures = slices.DeleteFunc(c.structures, func(o *Structure) bool { return o == s })
	delete(c.byID, s.ID)
	c.render.Remove(s)
	c.render.Resort()
	s.released = true

	logger.Log.WithFields(fields).WithField("type", s.TypeKey).Debug("structure deleted")
	c.log.Add(c.tick, ActivityDeleted, fmt.Sprintf("removed %s at %d,%d", s.TypeKey, s.OriginCol, s.OriginRow))
	return s, nil
}

// Update advances the agent by dt seconds.
func (c *City) Update(dt float64) {
	c.tick++
	c.roads.Update(dt)
}

// Tick returns how many updates have run.
func (c *City) Tick() int { return c.tick }
