package game

import (
	"fmt"
	"math"

	"github.com/Garsondee/Iso-City/internal/logger"
	"github.com/Garsondee/Iso-City/internal/tuning"
	"github.com/sirupsen/logrus"
)

// Mode is the pointer state of the controller.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModePanning
)

func (m Mode) String() string {
	if m == ModePanning {
		return "panning"
	}
	return "idle"
}

// Session is the interaction state shared with the menus.
type Session struct {
	SelectedType   string // armed type key, empty when nothing is pending
	ActiveCategory string
	DeleteMode     bool
	DialogOpen     bool
}

// PendingPlacement reports whether a type is armed.
func (s Session) PendingPlacement() bool { return s.SelectedType != "" }

// dragState tracks one press from down to up.
type dragState struct {
	down     bool
	panning  bool
	startX   float64
	startY   float64
	offStart [2]float64 // view offset when the press began
}

// HoverKind says what the highlight previews.
type HoverKind uint8

const (
	HoverNone HoverKind = iota
	HoverPlace
	HoverGround
	HoverDelete
)

// HoverPreview is the highlight under the pointer.
type HoverPreview struct {
	Kind  HoverKind
	Cells [][2]int // in-bounds cells only
	Valid bool     // green when true, red otherwise
}

// ClickAction is what a click resolved to.
type ClickAction uint8

const (
	ClickNone ClickAction = iota
	ClickPlaced
	ClickGround
	ClickDeleted
	ClickHub
	ClickRejected
)

func (a ClickAction) String() string {
	switch a {
	case ClickPlaced:
		return "placed"
	case ClickGround:
		return "ground"
	case ClickDeleted:
		return "deleted"
	case ClickHub:
		return "hub"
	case ClickRejected:
		return "rejected"
	}
	return "none"
}

// ClickResult reports the outcome of a pointer release.
type ClickResult struct {
	Action    ClickAction
	Col, Row  int
	Structure *Structure
	Err       error
}

// Controller turns pointer input into pan, zoom, placement and deletion.
type Controller struct {
	city       *City
	cfg        tuning.Input
	persistent bool

	view    View
	session Session
	drag    dragState
	hover   HoverPreview

	screenW, screenH float64

	// OnHubClicked opens the external detail view for the hub structure.
	OnHubClicked func(*Structure)
}

// NewController creates a controller over city using the input tuning.
func NewController(city *City, cfg tuning.Input, persistent bool) *Controller {
	return &Controller{
		city:       city,
		cfg:        cfg,
		persistent: persistent,
		view:       View{Zoom: 1},
	}
}

// View returns the current pan and zoom.
func (ctl *Controller) View() View { return ctl.view }

// Session returns a copy of the interaction state.
func (ctl *Controller) Session() Session { return ctl.session }

// Mode returns idle or panning.
func (ctl *Controller) Mode() Mode {
	if ctl.drag.panning {
		return ModePanning
	}
	return ModeIdle
}

// Hover returns the current highlight.
func (ctl *Controller) Hover() HoverPreview { return ctl.hover }

// SetScreenSize records the viewport. The grid is re-centred whenever the
// size changes and no drag is in progress.
func (ctl *Controller) SetScreenSize(w, h float64) {
	if w == ctl.screenW && h == ctl.screenH {
		return
	}
	ctl.screenW, ctl.screenH = w, h
	if !ctl.drag.down {
		ctl.Center()
	}
}

// Center places the middle of the grid at the middle of the screen.
func (ctl *Controller) Center() {
	n := ctl.city.Tiles().Size
	mid := float64(n-1) * ctl.city.Projection().HalfH
	ctl.view.OffsetX = ctl.screenW / 2
	ctl.view.OffsetY = ctl.screenH/2 - mid*ctl.view.Zoom
}

// inChrome reports whether y falls in the bottom UI band.
func (ctl *Controller) inChrome(y float64) bool {
	return ctl.screenH > 0 && y > ctl.screenH-ctl.cfg.UIChromeHeight
}

// tileAt resolves a screen point to a grid cell.
func (ctl *Controller) tileAt(x, y float64) (int, int, bool) {
	lx, ly := ctl.view.ScreenToLocal(x, y)
	return ctl.city.Projection().TileAtLocalFast(lx, ly, ctl.city.Tiles().Size)
}

// PointerDown starts a press. Presses in the UI band or while a dialog is
// open are ignored.
func (ctl *Controller) PointerDown(x, y float64) {
	if ctl.session.DialogOpen || ctl.inChrome(y) {
		return
	}
	ctl.drag = dragState{
		down:     true,
		startX:   x,
		startY:   y,
		offStart: [2]float64{ctl.view.OffsetX, ctl.view.OffsetY},
	}
}

// PointerMove pans once the press has travelled past the drag threshold;
// otherwise it refreshes the hover highlight.
func (ctl *Controller) PointerMove(x, y float64) {
	if ctl.session.DialogOpen {
		return
	}
	if ctl.drag.down {
		dx, dy := x-ctl.drag.startX, y-ctl.drag.startY
		if !ctl.drag.panning && math.Hypot(dx, dy) > ctl.cfg.DragThreshold {
			ctl.drag.panning = true
			ctl.hover = HoverPreview{}
		}
		if ctl.drag.panning {
			ctl.view.OffsetX = ctl.drag.offStart[0] + dx
			ctl.view.OffsetY = ctl.drag.offStart[1] + dy
			return
		}
	}
	ctl.refreshHover(x, y)
}

// PointerUp ends a press. A press that never became a pan is a click.
func (ctl *Controller) PointerUp(x, y float64) ClickResult {
	if ctl.session.DialogOpen {
		return ClickResult{}
	}
	d := ctl.drag
	ctl.drag = dragState{}
	defer ctl.city.RenderList().Resort()

	if !d.down || d.panning {
		return ClickResult{}
	}
	col, row, ok := ctl.tileAt(x, y)
	if !ok {
		return ClickResult{}
	}
	res := ctl.click(col, row)
	if res.Action != ClickNone {
		logger.Log.WithFields(logrus.Fields{
			"col": col, "row": row, "action": res.Action.String(),
		}).Debug("click")
	}
	ctl.refreshHover(x, y)
	return res
}

func (ctl *Controller) click(col, row int) ClickResult {
	res := ClickResult{Col: col, Row: row}
	t := ctl.city.Tiles().At(col, row)

	switch {
	case ctl.session.DeleteMode && t.Occupied:
		s, err := ctl.city.Delete(col, row)
		res.Structure, res.Err = s, err
		res.Action = ClickDeleted
		if err != nil {
			res.Action = ClickRejected
		}

	case t.Occupied && ctl.isHub(col, row):
		s := ctl.city.StructureAt(col, row)
		res.Action, res.Structure = ClickHub, s
		ctl.city.Activity().Add(ctl.city.Tick(), ActivityHub, "opened "+s.TypeKey)
		if ctl.OnHubClicked != nil {
			ctl.OnHubClicked(s)
		}

	case ctl.session.PendingPlacement() && !t.Occupied:
		key := ctl.session.SelectedType
		s, err := ctl.city.Place(col, row, key)
		res.Structure, res.Err = s, err
		switch {
		case err != nil:
			res.Action = ClickRejected
		case IsGroundCover(key):
			res.Action = ClickGround
		default:
			res.Action = ClickPlaced
		}
		if err == nil && !ctl.persistent {
			ctl.CancelPlacement()
		}

	case ctl.session.PendingPlacement():
		res.Action = ClickRejected
		res.Err = fmt.Errorf("place %s at (%d,%d): %w", ctl.session.SelectedType, col, row, ErrOccupied)
	}
	return res
}

func (ctl *Controller) isHub(col, row int) bool {
	s := ctl.city.StructureAt(col, row)
	return s != nil && s.TypeKey == ctl.city.HubType()
}

// Wheel zooms by the wheel delta. Positive dy zooms in.
func (ctl *Controller) Wheel(dy float64) {
	if ctl.session.DialogOpen || dy == 0 {
		return
	}
	z := ctl.view.Zoom + dy*ctl.cfg.ZoomStep
	ctl.view.Zoom = min(max(z, ctl.cfg.ZoomMin), ctl.cfg.ZoomMax)
	ctl.city.RenderList().Resort()
}

// SelectStructureType arms a type for placement, replacing any previous
// selection and leaving delete mode.
func (ctl *Controller) SelectStructureType(key string) error {
	if err := ctl.city.CanSelect(key); err != nil {
		return fmt.Errorf("select %s: %w", key, err)
	}
	ctl.CancelPlacement()
	ctl.session.DeleteMode = false
	ctl.session.SelectedType = key
	if c := CategoryOf(key); c != "" {
		ctl.session.ActiveCategory = c
	}
	return nil
}

// SetActiveCategory switches the menu category and drops any pending
// selection. The delete category turns on delete mode.
func (ctl *Controller) SetActiveCategory(name string) {
	ctl.CancelPlacement()
	ctl.session.ActiveCategory = name
	ctl.session.DeleteMode = name == CategoryDelete
}

// EnterDeleteMode is SetActiveCategory(CategoryDelete).
func (ctl *Controller) EnterDeleteMode() {
	ctl.SetActiveCategory(CategoryDelete)
}

// CancelPlacement clears the armed type and its highlight.
func (ctl *Controller) CancelPlacement() {
	ctl.session.SelectedType = ""
	ctl.hover = HoverPreview{}
}

// OpenDialog suspends grid input until CloseDialog.
func (ctl *Controller) OpenDialog() {
	ctl.session.DialogOpen = true
	ctl.drag = dragState{}
	ctl.hover = HoverPreview{}
}

// CloseDialog resumes grid input.
func (ctl *Controller) CloseDialog() {
	ctl.session.DialogOpen = false
}

// refreshHover rebuilds the highlight for the cell under (x, y).
func (ctl *Controller) refreshHover(x, y float64) {
	ctl.hover = HoverPreview{}
	if ctl.inChrome(y) {
		return
	}
	col, row, ok := ctl.tileAt(x, y)
	if !ok {
		return
	}
	ctl.hover = ctl.previewAt(col, row)
}

// previewAt computes the highlight for a cell without touching state.
func (ctl *Controller) previewAt(col, row int) HoverPreview {
	tm := ctl.city.Tiles()
	switch {
	case ctl.session.DeleteMode:
		s := ctl.city.StructureAt(col, row)
		if s == nil {
			return HoverPreview{}
		}
		return HoverPreview{Kind: HoverDelete, Cells: s.Cells()}

	case ctl.session.PendingPlacement() && IsGroundCover(ctl.session.SelectedType):
		return HoverPreview{
			Kind:  HoverGround,
			Cells: [][2]int{{col, row}},
			Valid: true,
		}

	case ctl.session.PendingPlacement():
		fp := FootprintOf(ctl.session.SelectedType)
		hp := HoverPreview{Kind: HoverPlace, Valid: ctl.city.CanPlace(col, row, fp)}
		for dy := 0; dy < fp.Height; dy++ {
			for dx := 0; dx < fp.Width; dx++ {
				if tm.InBounds(col+dx, row+dy) {
					hp.Cells = append(hp.Cells, [2]int{col + dx, row + dy})
				}
			}
		}
		return hp
	}
	return HoverPreview{}
}
