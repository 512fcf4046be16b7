package game

import (
	"math"
	"math/rand"
	"slices"
	"sort"

	"github.com/Garsondee/Iso-City/internal/tuning"
)

// Point is a position in grid-local space.
type Point struct {
	X, Y float64
}

// Agent walks its path end to end and back, forever, and says something
// every few seconds.
type Agent struct {
	Variant int

	path  []Point
	cum   []float64 // cumulative arc length at each path point
	total float64

	phase  float64 // distance travelled within one out-and-back cycle
	speed  float64
	moving bool

	speech    string
	speechIn  float64
	speechMin float64
	speechMax float64
	phrases   []string
	rng       *rand.Rand

	retargets int
}

// NewAgent creates an idle agent with a random sprite variant.
func NewAgent(cfg tuning.Agent, rng *rand.Rand) *Agent {
	a := &Agent{
		speed:     cfg.Speed,
		speechMin: cfg.SpeechMin,
		speechMax: cfg.SpeechMax,
		phrases:   cfg.Phrases,
		rng:       rng,
	}
	if cfg.Variants > 0 {
		a.Variant = rng.Intn(cfg.Variants)
	}
	a.rollSpeech()
	return a
}

// SetPath replaces the path. Motion restarts from the first point.
func (a *Agent) SetPath(points []Point) {
	a.stop()
	a.path = slices.Clone(points)
	a.cum = a.cum[:0]
	a.total = 0
	for i := range a.path {
		if i > 0 {
			a.total += math.Hypot(a.path[i].X-a.path[i-1].X, a.path[i].Y-a.path[i-1].Y)
		}
		a.cum = append(a.cum, a.total)
	}
	a.moving = len(a.path) >= 2 && a.total > 0 && a.speed > 0
	a.retargets++
}

// stop cancels motion in flight.
func (a *Agent) stop() {
	a.moving = false
	a.phase = 0
}

// Moving reports whether the agent is walking.
func (a *Agent) Moving() bool { return a.moving }

// Path returns the current path points.
func (a *Agent) Path() []Point { return a.path }

// Retargets counts how many paths the agent has been given.
func (a *Agent) Retargets() int { return a.retargets }

// LegDuration is the time in seconds to walk the path one way.
func (a *Agent) LegDuration() float64 {
	if a.speed <= 0 {
		return 0
	}
	return a.total / a.speed
}

// Speech returns the current speech line.
func (a *Agent) Speech() string { return a.speech }

// Update advances motion and the speech timer by dt seconds.
func (a *Agent) Update(dt float64) {
	if a.moving {
		a.phase = math.Mod(a.phase+a.speed*dt, 2*a.total)
	}
	a.speechIn -= dt
	if a.speechIn <= 0 {
		a.rollSpeech()
	}
}

// Distance returns how far along the path the agent currently is.
func (a *Agent) Distance() float64 {
	if a.phase <= a.total {
		return a.phase
	}
	return 2*a.total - a.phase
}

// Outbound reports whether the agent is walking from first to last point.
func (a *Agent) Outbound() bool { return a.phase < a.total }

// Position interpolates the agent's location along the path.
func (a *Agent) Position() Point {
	switch len(a.path) {
	case 0:
		return Point{}
	case 1:
		return a.path[0]
	}
	d := a.Distance()
	i := sort.SearchFloat64s(a.cum, d)
	if i <= 0 {
		return a.path[0]
	}
	if i >= len(a.path) {
		return a.path[len(a.path)-1]
	}
	seg := a.cum[i] - a.cum[i-1]
	if seg <= 0 {
		return a.path[i]
	}
	t := (d - a.cum[i-1]) / seg
	p0, p1 := a.path[i-1], a.path[i]
	return Point{X: p0.X + (p1.X-p0.X)*t, Y: p0.Y + (p1.Y-p0.Y)*t}
}

// rollSpeech picks a new line and the delay until the next one.
func (a *Agent) rollSpeech() {
	if len(a.phrases) > 0 {
		a.speech = a.phrases[a.rng.Intn(len(a.phrases))]
	}
	a.speechIn = a.speechMin + a.rng.Float64()*(a.speechMax-a.speechMin)
}
