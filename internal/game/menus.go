package game

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// Menu layout in screen pixels.
const (
	barButtonW   = 150
	barButtonH   = 44
	barButtonGap = 12
	barMarginX   = 20

	dialogCols  = 4
	dialogItemW = 170
	dialogItemH = 44
	dialogGap   = 8
	dialogPad   = 16
	dialogTitle = 24

	detailW = 360
	detailH = 240
)

// menuState is which overlay, if any, owns the pointer.
type menuState struct {
	dialogCategory string     // open picker, "" when closed
	detail         *Structure // hub whose detail panel is showing
}

type barButton struct {
	rect     image.Rectangle
	category string
}

type dialogItem struct {
	rect    image.Rectangle
	entry   CatalogEntry
	enabled bool
}

// categoryButtons lays the category bar out inside the UI band.
func (g *Game) categoryButtons() []barButton {
	top := g.height - int(g.tu.Input.UIChromeHeight) + (int(g.tu.Input.UIChromeHeight)-barButtonH)/2
	out := make([]barButton, len(Categories))
	for i, c := range Categories {
		x := barMarginX + i*(barButtonW+barButtonGap)
		out[i] = barButton{rect: image.Rect(x, top, x+barButtonW, top+barButtonH), category: c}
	}
	return out
}

func (g *Game) drawCategoryBar(screen *ebiten.Image) {
	chrome := float32(g.tu.Input.UIChromeHeight)
	vector.FillRect(screen, 0, float32(g.height)-chrome, float32(g.width), chrome, color.RGBA{R: 18, G: 20, B: 28, A: 240}, false)
	vector.StrokeLine(screen, 0, float32(g.height)-chrome, float32(g.width), float32(g.height)-chrome, 1, colornames.Slategray, false)

	s := g.ctl.Session()
	for i, b := range g.categoryButtons() {
		fill := color.RGBA{R: 40, G: 46, B: 60, A: 255}
		if b.category == s.ActiveCategory {
			fill = color.RGBA{R: 70, G: 96, B: 140, A: 255}
		}
		if b.category == CategoryDelete && s.DeleteMode {
			fill = color.RGBA{R: 150, G: 40, B: 40, A: 255}
		}
		r := b.rect
		vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fill, false)
		vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, colornames.Lightslategray, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d %s", i+1, b.category), r.Min.X+10, r.Min.Y+14)
	}
	if s.PendingPlacement() {
		x := barMarginX + len(Categories)*(barButtonW+barButtonGap)
		ebitenutil.DebugPrintAt(screen, "armed: "+s.SelectedType, x, g.categoryButtons()[0].rect.Min.Y+14)
	}
}

// handleBarClick reports whether the click landed on the category bar.
func (g *Game) handleBarClick(mx, my int) bool {
	pt := image.Pt(mx, my)
	for _, b := range g.categoryButtons() {
		if pt.In(b.rect) {
			g.openMenu(b.category)
			return true
		}
	}
	return false
}

// openMenu switches category and opens the picker. Delete has no picker.
func (g *Game) openMenu(category string) {
	if category == CategoryDelete {
		g.ctl.EnterDeleteMode()
		return
	}
	g.ctl.SetActiveCategory(category)
	g.menu.dialogCategory = category
	g.ctl.OpenDialog()
}

func (g *Game) closeMenu() {
	g.menu.dialogCategory = ""
	g.ctl.CloseDialog()
}

// dialogRect centres the picker panel for the open category.
func (g *Game) dialogRect(n int) image.Rectangle {
	rows := (n + dialogCols - 1) / dialogCols
	w := dialogPad*2 + dialogCols*dialogItemW + (dialogCols-1)*dialogGap
	h := dialogPad*2 + dialogTitle + rows*dialogItemH + max(rows-1, 0)*dialogGap
	x := (g.width - w) / 2
	y := max((g.height-int(g.tu.Input.UIChromeHeight)-h)/2, 8)
	return image.Rect(x, y, x+w, y+h)
}

func (g *Game) dialogItems() (image.Rectangle, []dialogItem) {
	entries := CatalogFor(g.menu.dialogCategory)
	panel := g.dialogRect(len(entries))
	items := make([]dialogItem, len(entries))
	for i, e := range entries {
		col, row := i%dialogCols, i/dialogCols
		x := panel.Min.X + dialogPad + col*(dialogItemW+dialogGap)
		y := panel.Min.Y + dialogPad + dialogTitle + row*(dialogItemH+dialogGap)
		items[i] = dialogItem{
			rect:    image.Rect(x, y, x+dialogItemW, y+dialogItemH),
			entry:   e,
			enabled: g.city.CanSelect(e.Key) == nil,
		}
	}
	return panel, items
}

// handleDialogClick arms the clicked entry, or closes the picker when the
// click misses the panel.
func (g *Game) handleDialogClick(mx, my int) {
	pt := image.Pt(mx, my)
	panel, items := g.dialogItems()
	if !pt.In(panel) {
		g.closeMenu()
		return
	}
	for _, it := range items {
		if !pt.In(it.rect) {
			continue
		}
		if !it.enabled {
			g.setStatus("%s is not available", it.entry.Name)
			return
		}
		if err := g.ctl.SelectStructureType(it.entry.Key); err != nil {
			g.setStatus("%v", err)
			return
		}
		g.closeMenu()
		return
	}
}

func (g *Game) drawDialog(screen *ebiten.Image) {
	if g.menu.dialogCategory == "" {
		return
	}
	vector.FillRect(screen, 0, 0, float32(g.width), float32(g.height), color.RGBA{A: 120}, false)
	panel, items := g.dialogItems()
	vector.FillRect(screen, float32(panel.Min.X), float32(panel.Min.Y), float32(panel.Dx()), float32(panel.Dy()), color.RGBA{R: 24, G: 28, B: 38, A: 250}, false)
	vector.StrokeRect(screen, float32(panel.Min.X), float32(panel.Min.Y), float32(panel.Dx()), float32(panel.Dy()), 1, colornames.Lightslategray, false)
	ebitenutil.DebugPrintAt(screen, "Choose "+g.menu.dialogCategory+"  (Esc to close)", panel.Min.X+dialogPad, panel.Min.Y+dialogPad-4)

	for _, it := range items {
		r := it.rect
		sw := g.assets.Swatch(it.entry.Key)
		fill := color.RGBA{R: 44, G: 50, B: 66, A: 255}
		if !it.enabled {
			fill = color.RGBA{R: 30, G: 30, B: 34, A: 255}
		}
		vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fill, false)
		vector.FillRect(screen, float32(r.Min.X+4), float32(r.Min.Y+4), 10, float32(r.Dy()-8), sw.Fill, false)
		label := it.entry.Name
		if !it.enabled {
			label += " (locked)"
		}
		ebitenutil.DebugPrintAt(screen, label, r.Min.X+20, r.Min.Y+6)
		fp := FootprintOf(it.entry.Key)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%dx%d", fp.Width, fp.Height), r.Min.X+20, r.Min.Y+22)
	}
}

// openDetail shows the hub panel and suspends grid input.
func (g *Game) openDetail(s *Structure) {
	g.menu.detail = s
	g.ctl.OpenDialog()
}

func (g *Game) closeDetail() {
	g.menu.detail = nil
	g.ctl.CloseDialog()
}

func (g *Game) drawDetail(screen *ebiten.Image) {
	s := g.menu.detail
	if s == nil {
		return
	}
	x := (g.width - detailW) / 2
	y := (g.height - int(g.tu.Input.UIChromeHeight) - detailH) / 2
	vector.FillRect(screen, float32(x), float32(y), detailW, detailH, color.RGBA{R: 20, G: 24, B: 34, A: 250}, false)
	vector.StrokeRect(screen, float32(x), float32(y), detailW, detailH, 1, colornames.Gold, false)

	name := s.TypeKey
	if e, ok := LookupType(s.TypeKey); ok {
		name = e.Name
	}
	lines := []string{
		name,
		fmt.Sprintf("origin %d,%d  size %dx%d", s.OriginCol, s.OriginRow, s.Footprint.Width, s.Footprint.Height),
		"",
		"Buildings in the city:",
	}
	counts := make(map[string]int)
	for _, o := range g.city.Structures() {
		counts[CategoryOf(o.TypeKey)]++
	}
	cats := make([]string, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		lines = append(lines, fmt.Sprintf("  %-12s %d", c, counts[c]))
	}
	if a := g.city.Roads().Agent(); a != nil {
		lines = append(lines, "", fmt.Sprintf("A resident walks %d road tiles.", len(g.city.Roads().PathTiles())))
	}
	lines = append(lines, "", "click anywhere to close")
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, x+14, y+12+i*16)
	}
}
