package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// menuKeys open the building menus in bar order.
var menuKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// handleInput polls ebiten and feeds the controller. Menus and panels get
// first refusal on clicks; the controller ignores everything while one is up.
func (g *Game) handleInput() {
	g.handleKeys()

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	switch {
	case g.menu.detail != nil:
		if pressed {
			g.closeDetail()
		}
		return
	case g.menu.dialogCategory != "":
		if pressed {
			g.handleDialogClick(mx, my)
		}
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.ctl.CancelPlacement()
	}
	if pressed && g.handleBarClick(mx, my) {
		return
	}
	if pressed {
		g.ctl.PointerDown(x, y)
	}
	if mx != g.prevCursor[0] || my != g.prevCursor[1] {
		g.ctl.PointerMove(x, y)
		g.prevCursor = [2]int{mx, my}
	}
	if released {
		g.reportClick(g.ctl.PointerUp(x, y))
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.ctl.Wheel(wy)
	}
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		switch {
		case g.menu.detail != nil:
			g.closeDetail()
		case g.menu.dialogCategory != "":
			g.closeMenu()
		case g.ctl.Session().DeleteMode:
			g.ctl.SetActiveCategory("")
		default:
			g.ctl.CancelPlacement()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.showLog = !g.showLog
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.showRoads = !g.showRoads
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}
	if g.ctl.Session().DialogOpen {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.ctl.EnterDeleteMode()
	}
	for i, k := range menuKeys {
		if inpututil.IsKeyJustPressed(k) && i < len(Categories) {
			g.openMenu(Categories[i])
		}
	}
}

// reportClick turns click outcomes into status text.
func (g *Game) reportClick(res ClickResult) {
	switch res.Action {
	case ClickPlaced:
		g.setStatus("placed %s", res.Structure.TypeKey)
	case ClickDeleted:
		g.setStatus("removed %s", res.Structure.TypeKey)
	case ClickRejected:
		switch {
		case errors.Is(res.Err, ErrOccupied):
			g.setStatus("that spot is taken")
		case errors.Is(res.Err, ErrOutOfBounds):
			g.setStatus("does not fit on the grid there")
		case errors.Is(res.Err, ErrSameGround):
			g.setStatus("already that surface")
		default:
			g.setStatus("%v", res.Err)
		}
	}
}
