package game

import (
	"math/rand"
	"testing"

	"github.com/Garsondee/Iso-City/internal/tuning"
)

func layRoads(tm *TileMap, cells ...[2]int) {
	for _, c := range cells {
		tm.SetGround(c[0], c[1], "road_1")
	}
}

func TestRoadComponents_RowMajorDiscovery(t *testing.T) {
	tm := NewTileMap(6)
	layRoads(tm, [2]int{4, 0}, [2]int{5, 0}, [2]int{0, 2}, [2]int{0, 3}, [2]int{0, 4})
	comps := roadComponents(tm)
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %d", len(comps))
	}
	if comps[0][0] != [2]int{4, 0} || len(comps[0]) != 2 {
		t.Fatalf("first component should start at (4,0) with 2 tiles, got %v", comps[0])
	}
	if len(largestComponent(comps)) != 3 {
		t.Fatal("largest component should have 3 tiles")
	}
}

func TestLargestComponent_TieGoesToFirstDiscovered(t *testing.T) {
	tm := NewTileMap(6)
	layRoads(tm, [2]int{3, 0}, [2]int{4, 0}, [2]int{0, 3}, [2]int{1, 3})
	best := largestComponent(roadComponents(tm))
	if best[0] != [2]int{3, 0} {
		t.Fatalf("tie should go to the component found first, got %v", best)
	}
}

func TestRoadComponents_DiagonalsDoNotConnect(t *testing.T) {
	tm := NewTileMap(3)
	layRoads(tm, [2]int{0, 0}, [2]int{1, 1})
	if n := len(roadComponents(tm)); n != 2 {
		t.Fatalf("diagonal neighbours must be separate components, got %d", n)
	}
}

func TestFarthestPath_LShape(t *testing.T) {
	tm := NewTileMap(4)
	layRoads(tm, [2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1})
	path := farthestPath(tm, [2]int{0, 0})
	want := [][2]int{{0, 0}, {1, 0}, {1, 1}}
	if len(path) != len(want) {
		t.Fatalf("path=%v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path=%v, want %v", path, want)
		}
	}
}

func TestFarthestPath_EqualDistanceKeepsFirstFound(t *testing.T) {
	tm := NewTileMap(4)
	// A plus: every arm is one step from the centre.
	layRoads(tm, [2]int{1, 1}, [2]int{2, 1}, [2]int{1, 2}, [2]int{0, 1}, [2]int{1, 0})
	path := farthestPath(tm, [2]int{1, 1})
	if len(path) != 2 || path[1] != [2]int{2, 1} {
		t.Fatalf("expected the first expanded neighbour (2,1), got %v", path)
	}
}

func TestRoadNetwork_AgentLifecycle(t *testing.T) {
	sb := NewSandbox(WithRootPicker(func(int) int { return 0 }))
	c := sb.City
	if c.Roads().Agent() != nil {
		t.Fatal("no agent without roads")
	}
	if err := c.PlaceGroundCover(0, 0, "road_1"); err != nil {
		t.Fatal(err)
	}
	if c.Roads().Agent() != nil {
		t.Fatal("a single road tile must not spawn an agent")
	}
	_ = c.PlaceGroundCover(1, 0, "road_1")
	_ = c.PlaceGroundCover(1, 1, "road_1")
	a := c.Roads().Agent()
	if a == nil || !a.Moving() {
		t.Fatal("three connected road tiles should give a walking agent")
	}
	if n := len(c.Roads().PathTiles()); n != 3 {
		t.Fatalf("expected a 3-tile path, got %d", n)
	}

	// Breaking the L leaves two isolated tiles.
	if err := c.PlaceGroundCover(1, 0, GroundGrass); err != nil {
		t.Fatal(err)
	}
	if c.Roads().Agent() != nil {
		t.Fatal("agent should be torn down when no component has two tiles")
	}
	if a.Moving() {
		t.Fatal("torn-down agent must stop moving")
	}
}

func TestRoadNetwork_RetargetRestartsMotion(t *testing.T) {
	sb := NewSandbox(WithRootPicker(func(int) int { return 0 }), WithGround("road_1", [2]int{0, 0}, [2]int{1, 0}))
	c := sb.City
	a := c.Roads().Agent()
	if a == nil {
		t.Fatal("expected an agent")
	}
	sb.Advance(0.5)
	if a.Distance() == 0 {
		t.Fatal("agent should have moved")
	}
	_ = c.PlaceGroundCover(2, 0, "road_1")
	if c.Roads().Agent() != a {
		t.Fatal("the same agent should be retargeted, not replaced")
	}
	if a.Distance() != 0 || a.Retargets() != 2 {
		t.Fatalf("retarget should restart motion: distance=%v retargets=%d", a.Distance(), a.Retargets())
	}
	if n := len(a.Path()); n != 3 {
		t.Fatalf("expected 3 path points, got %d", n)
	}
}

func TestRoadNetwork_PathPointsAreLifted(t *testing.T) {
	cfg := tuning.Default().Agent
	tm := NewTileMap(4)
	layRoads(tm, [2]int{0, 0}, [2]int{0, 1})
	proj := NewProjection(130, 80)
	rn := NewRoadNetwork(tm, proj, rand.New(rand.NewSource(3)), cfg)
	rn.pickRoot = func(int) int { return 0 }
	rn.Recompute()
	pts := rn.Agent().Path()
	x, y := proj.TileToLocal(0, 1)
	if pts[1].X != x || pts[1].Y != y-cfg.Lift {
		t.Fatalf("second point=%+v, want (%v,%v)", pts[1], x, y-cfg.Lift)
	}
}

func TestRoadNetwork_RandomRootStaysInLargestComponent(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		sb := NewSandbox(WithSeed(seed), WithGround("road_1",
			[2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{2, 1},
			[2]int{5, 5}, [2]int{6, 5}))
		path := sb.City.Roads().PathTiles()
		if len(path) < 2 {
			t.Fatalf("seed %d: path too short: %v", seed, path)
		}
		for _, p := range path {
			if p[1] > 1 {
				t.Fatalf("seed %d: path left the largest component: %v", seed, path)
			}
		}
	}
}
