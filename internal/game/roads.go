package game

import (
	"math/rand"

	"github.com/Garsondee/Iso-City/internal/logger"
	"github.com/Garsondee/Iso-City/internal/tuning"
	"github.com/sirupsen/logrus"
)

// cell is a (col, row) grid coordinate.
type cell = [2]int

// neighbour offsets in the fixed order BFS expands them.
var roadDirs = [4]cell{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// roadComponents groups road tiles into 4-connected components. Components
// are discovered in row-major order; tiles within one are in BFS order.
func roadComponents(tm *TileMap) [][]cell {
	seen := make([]bool, len(tm.Tiles))
	var comps [][]cell
	for row := 0; row < tm.Size; row++ {
		for col := 0; col < tm.Size; col++ {
			i := row*tm.Size + col
			if seen[i] || !tileOnRoad(tm, col, row) {
				continue
			}
			seen[i] = true
			comp := []cell{{col, row}}
			for head := 0; head < len(comp); head++ {
				cur := comp[head]
				for _, d := range roadDirs {
					nc, nr := cur[0]+d[0], cur[1]+d[1]
					if !tileOnRoad(tm, nc, nr) {
						continue
					}
					ni := nr*tm.Size + nc
					if seen[ni] {
						continue
					}
					seen[ni] = true
					comp = append(comp, cell{nc, nr})
				}
			}
			comps = append(comps, comp)
		}
	}
	return comps
}

// largestComponent returns the biggest component. Ties go to the one
// discovered first.
func largestComponent(comps [][]cell) []cell {
	var best []cell
	for _, c := range comps {
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}

// farthestPath runs one BFS from root over road tiles and returns the path
// from root to the first tile found at maximum distance.
func farthestPath(tm *TileMap, root cell) []cell {
	prev := map[cell]cell{root: root}
	dist := map[cell]int{root: 0}
	far := root
	queue := []cell{root}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if dist[cur] > dist[far] {
			far = cur
		}
		for _, d := range roadDirs {
			n := cell{cur[0] + d[0], cur[1] + d[1]}
			if !tileOnRoad(tm, n[0], n[1]) {
				continue
			}
			if _, ok := dist[n]; ok {
				continue
			}
			dist[n] = dist[cur] + 1
			prev[n] = cur
			queue = append(queue, n)
		}
	}
	return reconstructPath(prev, root, far)
}

// reconstructPath walks the predecessor map back from end and reverses it.
func reconstructPath(prev map[cell]cell, root, end cell) []cell {
	var path []cell
	for cur := end; ; cur = prev[cur] {
		path = append(path, cur)
		if cur == root {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// RoadNetwork owns the single walking agent and keeps it on the largest
// connected stretch of road.
type RoadNetwork struct {
	tiles *TileMap
	proj  Projection
	rng   *rand.Rand
	cfg   tuning.Agent

	agent      *Agent
	pathTiles  []cell
	recomputes int

	// pickRoot chooses the BFS root index within the largest component.
	pickRoot func(n int) int
}

// NewRoadNetwork creates a network with no agent.
func NewRoadNetwork(tm *TileMap, proj Projection, rng *rand.Rand, cfg tuning.Agent) *RoadNetwork {
	rn := &RoadNetwork{tiles: tm, proj: proj, rng: rng, cfg: cfg}
	rn.pickRoot = rng.Intn
	return rn
}

// Agent returns the live agent, or nil when there is none.
func (rn *RoadNetwork) Agent() *Agent { return rn.agent }

// PathTiles returns the grid cells of the agent's current path.
func (rn *RoadNetwork) PathTiles() []cell { return rn.pathTiles }

// Components returns the current road components.
func (rn *RoadNetwork) Components() [][]cell { return roadComponents(rn.tiles) }

// Recompute re-derives the agent's path after any ground change. Fewer than
// two connected road tiles tears the agent down; otherwise it is created or
// retargeted, cancelling any motion in flight.
func (rn *RoadNetwork) Recompute() {
	rn.recomputes++
	best := largestComponent(roadComponents(rn.tiles))
	if len(best) < 2 {
		if rn.agent != nil {
			logger.Log.Debug("road network too small, agent removed")
			rn.agent.stop()
		}
		rn.agent = nil
		rn.pathTiles = nil
		return
	}

	root := best[rn.pickRoot(len(best))]
	rn.pathTiles = farthestPath(rn.tiles, root)

	points := make([]Point, len(rn.pathTiles))
	for i, c := range rn.pathTiles {
		x, y := rn.proj.TileToLocal(c[0], c[1])
		points[i] = Point{X: x, Y: y - rn.cfg.Lift}
	}

	if rn.agent == nil {
		rn.agent = NewAgent(rn.cfg, rn.rng)
		logger.Log.WithField("variant", rn.agent.Variant).Debug("agent created")
	}
	rn.agent.SetPath(points)

	logger.Log.WithFields(logrus.Fields{
		"component": len(best),
		"root":      root,
		"path":      len(rn.pathTiles),
	}).Debug("agent path recomputed")
}

// Update advances the agent, if any.
func (rn *RoadNetwork) Update(dt float64) {
	if rn.agent != nil {
		rn.agent.Update(dt)
	}
}
