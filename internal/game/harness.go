package game

import (
	"github.com/Garsondee/Iso-City/internal/tuning"
)

// Sandbox is a headless city plus controller. It mirrors Game without any
// ebiten dependency at run time and is shared by tests and the report tool.
type Sandbox struct {
	Tuning     tuning.Tuning
	City       *City
	Controller *Controller
	HubOpened  []*Structure

	progress Progress
	screenW  float64
	screenH  float64
	roots    func(n int) int
	setup    []func(*Sandbox)
}

// SandboxOption configures a Sandbox in two passes: tuning first, then
// city contents once the city exists.
type SandboxOption struct {
	tuning bool
	fn     func(*Sandbox)
}

// WithGridSize sets the grid edge length.
func WithGridSize(n int) SandboxOption {
	return SandboxOption{true, func(sb *Sandbox) { sb.Tuning.GridSize = n }}
}

// WithSeed fixes the random source.
func WithSeed(seed int64) SandboxOption {
	return SandboxOption{true, func(sb *Sandbox) { sb.Tuning.Seed = seed }}
}

// WithStartingLayout toggles the hub placed at start.
func WithStartingLayout(on bool) SandboxOption {
	return SandboxOption{true, func(sb *Sandbox) { sb.Tuning.StartingLayout = on }}
}

// WithPersistentPlacement keeps a type armed after each placement.
func WithPersistentPlacement(on bool) SandboxOption {
	return SandboxOption{true, func(sb *Sandbox) { sb.Tuning.PersistentPlacement = on }}
}

// WithProgress supplies the unlock collaborator.
func WithProgress(p Progress) SandboxOption {
	return SandboxOption{true, func(sb *Sandbox) { sb.progress = p }}
}

// WithScreen sets the viewport size.
func WithScreen(w, h float64) SandboxOption {
	return SandboxOption{true, func(sb *Sandbox) { sb.screenW, sb.screenH = w, h }}
}

// WithRootPicker overrides the agent's random BFS root choice.
func WithRootPicker(pick func(n int) int) SandboxOption {
	return SandboxOption{true, func(sb *Sandbox) { sb.roots = pick }}
}

// WithTuning replaces the whole tuning.
func WithTuning(tu tuning.Tuning) SandboxOption {
	return SandboxOption{true, func(sb *Sandbox) { sb.Tuning = tu }}
}

// WithStructure places typeKey at (col, row) once the city exists.
func WithStructure(typeKey string, col, row int) SandboxOption {
	return SandboxOption{false, func(sb *Sandbox) { _, _ = sb.City.Place(col, row, typeKey) }}
}

// WithGround lays ground cover on each cell once the city exists.
func WithGround(g GroundKey, cells ...[2]int) SandboxOption {
	return SandboxOption{false, func(sb *Sandbox) {
		for _, c := range cells {
			_ = sb.City.PlaceGroundCover(c[0], c[1], g)
		}
	}}
}

// NewSandbox builds a sandbox. Defaults: stock tuning, seed 1, no starting
// layout, 1280x800 screen.
func NewSandbox(opts ...SandboxOption) *Sandbox {
	sb := &Sandbox{
		Tuning:  tuning.Default(),
		screenW: 1280,
		screenH: 800,
	}
	sb.Tuning.Seed = 1
	sb.Tuning.StartingLayout = false
	for _, o := range opts {
		if o.tuning {
			o.fn(sb)
		}
	}

	sb.City = NewCity(sb.Tuning, sb.progress)
	if sb.roots != nil {
		sb.City.Roads().pickRoot = sb.roots
	}
	sb.Controller = NewController(sb.City, sb.Tuning.Input, sb.Tuning.PersistentPlacement)
	sb.Controller.OnHubClicked = func(s *Structure) { sb.HubOpened = append(sb.HubOpened, s) }
	sb.Controller.SetScreenSize(sb.screenW, sb.screenH)

	for _, o := range opts {
		if !o.tuning {
			o.fn(sb)
		}
	}
	return sb
}

// ScreenOf returns the screen position of the centre of (col, row).
func (sb *Sandbox) ScreenOf(col, row int) (float64, float64) {
	return sb.City.Projection().TileToScreen(col, row, sb.Controller.View())
}

// Click presses and releases on the centre of (col, row) without moving.
func (sb *Sandbox) Click(col, row int) ClickResult {
	x, y := sb.ScreenOf(col, row)
	sb.Controller.PointerDown(x, y)
	sb.Controller.PointerMove(x, y)
	return sb.Controller.PointerUp(x, y)
}

// Drag presses at (x0, y0), moves in steps to (x1, y1) and releases there.
func (sb *Sandbox) Drag(x0, y0, x1, y1 float64, steps int) ClickResult {
	sb.Controller.PointerDown(x0, y0)
	steps = max(steps, 1)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		sb.Controller.PointerMove(x0+(x1-x0)*t, y0+(y1-y0)*t)
	}
	return sb.Controller.PointerUp(x1, y1)
}

// Hover moves the pointer over (col, row) with no button down.
func (sb *Sandbox) Hover(col, row int) HoverPreview {
	x, y := sb.ScreenOf(col, row)
	sb.Controller.PointerMove(x, y)
	return sb.Controller.Hover()
}

// Advance runs the city for the given number of seconds at 60 updates/s.
func (sb *Sandbox) Advance(seconds float64) {
	const dt = 1.0 / 60
	for t := 0.0; t < seconds; t += dt {
		sb.City.Update(dt)
	}
}
