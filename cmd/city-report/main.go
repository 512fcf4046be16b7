package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Garsondee/Iso-City/internal/game"
	"github.com/Garsondee/Iso-City/internal/logger"
)

// scenarioResult is the outcome of one scripted run.
type scenarioResult struct {
	name   string
	passed bool
	notes  []string
	sb     *game.Sandbox
}

func (r *scenarioResult) check(ok bool, format string, args ...any) {
	mark := "ok  "
	if !ok {
		mark = "FAIL"
		r.passed = false
	}
	r.notes = append(r.notes, mark+" "+fmt.Sprintf(format, args...))
}

var scenarios = map[string]func(seed int64) scenarioResult{
	"A": scenarioFootprint,
	"B": scenarioOccupiedRejected,
	"C": scenarioRoadAgent,
	"D": scenarioRoadSplit,
	"E": scenarioZoomClamp,
	"F": scenarioOverlap,
	"G": scenarioOutOfBounds,
	"H": scenarioDragPans,
}

var scenarioOrder = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

func main() {
	var which string
	var seed int64
	var pngPath string
	var verbose bool

	flag.StringVar(&which, "scenario", "all", "scenario to run: A-H or all")
	flag.Int64Var(&seed, "seed", 42, "RNG seed")
	flag.StringVar(&pngPath, "png", "", "write a snapshot of the last scenario to this PNG file")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger.Init(level, "text", os.Stderr)

	names, err := selectScenarios(which)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(2)
	}

	fmt.Printf("=== Iso City scenario report ===\n")
	fmt.Printf("scenarios=%s seed=%d\n\n", strings.Join(names, ","), seed)

	failed := 0
	var last scenarioResult
	for _, n := range names {
		r := scenarios[n](seed)
		printResult(r)
		if !r.passed {
			failed++
		}
		last = r
	}

	if pngPath != "" && last.sb != nil {
		snap := game.NewSnapshot(last.sb.City, game.NewAssetCache(nil))
		snap.Render(last.sb.City)
		if err := snap.SavePNG(pngPath); err != nil {
			fmt.Println("error: write png:", err)
			os.Exit(1)
		}
		fmt.Printf("snapshot written to %s\n", pngPath)
	}

	fmt.Printf("\n%d/%d scenarios passed\n", len(names)-failed, len(names))
	if failed > 0 {
		os.Exit(1)
	}
}

// selectScenarios expands "all" or validates a single name.
func selectScenarios(which string) ([]string, error) {
	which = strings.ToUpper(strings.TrimSpace(which))
	if which == "ALL" || which == "" {
		return scenarioOrder, nil
	}
	if _, ok := scenarios[which]; !ok {
		return nil, fmt.Errorf("unsupported scenario %q (supported: %s, all)", which, strings.Join(scenarioOrder, ","))
	}
	return []string{which}, nil
}

func printResult(r scenarioResult) {
	status := "PASS"
	if !r.passed {
		status = "FAIL"
	}
	fmt.Printf("--- Scenario %s: %s ---\n", r.name, status)
	for _, n := range r.notes {
		fmt.Printf("  %s\n", n)
	}
	fmt.Println()
}

// scenarioFootprint: a 2x2 at (3,3) covers four tiles and only its origin
// holds the back-reference.
func scenarioFootprint(seed int64) scenarioResult {
	r := scenarioResult{name: "A 2x2 footprint", passed: true}
	r.sb = game.NewSandbox(game.WithSeed(seed))
	c := r.sb.City

	_, err := c.Place(3, 3, "apartment_Blue_2x2_1")
	r.check(err == nil, "2x2 at (3,3) placed: err=%v", err)
	cells := c.Tiles().OccupiedCells()
	want := [][2]int{{3, 3}, {4, 3}, {3, 4}, {4, 4}}
	r.check(fmt.Sprint(cells) == fmt.Sprint(want), "occupied=%v, want %v", cells, want)
	var refs [][2]int
	for _, t := range c.Tiles().Tiles {
		if t.Origin != nil {
			refs = append(refs, [2]int{t.Col, t.Row})
		}
	}
	r.check(len(refs) == 1 && refs[0] == [2]int{3, 3}, "back-references at %v", refs)
	return r
}

// scenarioOccupiedRejected: after A, a 1x1 at (3,3) is rejected and
// occupancy is unchanged.
func scenarioOccupiedRejected(seed int64) scenarioResult {
	r := scenarioFootprint(seed)
	r.name = "B occupied tile rejected"
	r.notes = nil
	r.passed = true
	c := r.sb.City

	before := fmt.Sprint(c.Tiles().OccupiedCells())
	_, err := c.Place(3, 3, "apartment_Red_1x1_1")
	r.check(errors.Is(err, game.ErrOccupied), "1x1 at (3,3) rejected as occupied: err=%v", err)
	after := fmt.Sprint(c.Tiles().OccupiedCells())
	r.check(before == after, "occupancy unchanged: %s", after)
	r.check(len(c.Structures()) == 1, "structures=%d", len(c.Structures()))
	return r
}

// scenarioRoadAgent: an L of three road tiles spawns a walking agent.
func scenarioRoadAgent(seed int64) scenarioResult {
	r := scenarioResult{name: "C road agent", passed: true}
	r.sb = game.NewSandbox(game.WithSeed(seed), game.WithRootPicker(func(int) int { return 0 }))
	c := r.sb.City
	for _, cell := range [][2]int{{0, 0}, {1, 0}, {1, 1}} {
		if err := c.PlaceGroundCover(cell[0], cell[1], "road_1"); err != nil {
			r.check(false, "road at %v: %v", cell, err)
		}
	}
	a := c.Roads().Agent()
	r.check(a != nil, "agent exists")
	if a == nil {
		return r
	}
	r.check(len(c.Roads().PathTiles()) == 3, "path tiles=%d", len(c.Roads().PathTiles()))
	r.check(a.Moving(), "agent moving")
	start := a.Position()
	r.sb.Advance(0.5)
	moved := a.Position()
	r.check(start != moved, "agent advanced from (%.1f,%.1f) to (%.1f,%.1f)", start.X, start.Y, moved.X, moved.Y)
	return r
}

// scenarioRoadSplit: reverting the corner of the L leaves two lone tiles.
func scenarioRoadSplit(seed int64) scenarioResult {
	r := scenarioRoadAgent(seed)
	r.name = "D road split"
	r.notes = nil
	r.passed = true
	c := r.sb.City

	err := c.PlaceGroundCover(1, 0, game.GroundGrass)
	r.check(err == nil, "revert (1,0) to grass: err=%v", err)
	r.check(len(c.Roads().Components()) == 2, "components=%d", len(c.Roads().Components()))
	r.check(c.Roads().Agent() == nil, "agent removed")
	return r
}

// scenarioZoomClamp: a wheel from zoom 1.0 asking for 0.3 stops at the
// minimum.
func scenarioZoomClamp(seed int64) scenarioResult {
	r := scenarioResult{name: "E zoom clamp", passed: true}
	r.sb = game.NewSandbox(game.WithSeed(seed))
	ctl := r.sb.Controller
	tu := r.sb.Tuning.Input

	start := ctl.View().Zoom
	r.check(start == 1, "starting zoom=%.2f", start)
	ctl.Wheel((0.3 - start) / tu.ZoomStep)
	z := ctl.View().Zoom
	r.check(z == tu.ZoomMin, "zoom=%.2f, want %.2f", z, tu.ZoomMin)
	return r
}

// scenarioOverlap: a 2x2 at (0,0) blocks a 1x1 at (1,1).
func scenarioOverlap(seed int64) scenarioResult {
	r := scenarioResult{name: "F overlapping placement", passed: true}
	r.sb = game.NewSandbox(game.WithSeed(seed))
	c := r.sb.City

	_, err := c.Place(0, 0, "apartment_Blue_2x2_1")
	r.check(err == nil, "2x2 at (0,0) placed: err=%v", err)
	_, err = c.Place(1, 1, "apartment_Red_1x1_1")
	r.check(errors.Is(err, game.ErrOccupied), "1x1 at (1,1) rejected as occupied: err=%v", err)
	r.check(len(c.Structures()) == 1, "structures=%d", len(c.Structures()))
	r.check(len(c.Tiles().OccupiedCells()) == 4, "occupied tiles=%d", len(c.Tiles().OccupiedCells()))
	return r
}

// scenarioOutOfBounds: a 2x2 anchored on the last cell does not fit.
func scenarioOutOfBounds(seed int64) scenarioResult {
	r := scenarioResult{name: "G out of bounds", passed: true}
	r.sb = game.NewSandbox(game.WithSeed(seed))
	c := r.sb.City
	n := c.Tiles().Size

	ok := c.CanPlace(n-1, n-1, game.Footprint{Width: 2, Height: 2})
	r.check(!ok, "CanPlace 2x2 at (%d,%d)=%v", n-1, n-1, ok)
	_, err := c.Place(n-1, n-1, "apartment_Blue_2x2_1")
	r.check(errors.Is(err, game.ErrOutOfBounds), "place rejected: err=%v", err)
	r.check(len(c.Tiles().OccupiedCells()) == 0, "no tile changed")
	return r
}

// scenarioDragPans: a drag past the threshold pans instead of placing.
func scenarioDragPans(seed int64) scenarioResult {
	r := scenarioResult{name: "H drag pans", passed: true}
	r.sb = game.NewSandbox(game.WithSeed(seed))
	ctl := r.sb.Controller
	if err := ctl.SelectStructureType("apartment_Green_1x1_1"); err != nil {
		r.check(false, "select: %v", err)
		return r
	}
	before := ctl.View()
	x, y := r.sb.ScreenOf(3, 3)
	res := r.sb.Drag(x, y, x+40, y, 8)
	after := ctl.View()

	r.check(res.Action == game.ClickNone, "release after drag is not a click: %s", res.Action)
	r.check(len(r.sb.City.Structures()) == 0, "nothing placed")
	r.check(after.OffsetX-before.OffsetX == 40 && after.OffsetY == before.OffsetY,
		"view moved by (%.0f,%.0f)", after.OffsetX-before.OffsetX, after.OffsetY-before.OffsetY)
	r.check(ctl.Session().PendingPlacement(), "selection still armed")
	return r
}
