package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Iso-City/internal/logger"
	"github.com/Garsondee/Iso-City/internal/tuning"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

var (
	backgroundColour = color.RGBA{R: 28, G: 34, B: 46, A: 255}
	hoverValid       = color.NRGBA{R: 60, G: 220, B: 90, A: 110}
	hoverInvalid     = color.NRGBA{R: 230, G: 50, B: 50, A: 110}
	tileOutline      = color.RGBA{A: 60}
)

// Game is the ebiten front end: it polls input into the controller and
// draws the city in depth order.
type Game struct {
	tu     tuning.Tuning
	city   *City
	ctl    *Controller
	assets *AssetCache

	width  int
	height int

	menu      menuState
	showHUD   bool
	showLog   bool
	showRoads bool

	status      string
	statusTicks int

	// copyText writes to the system clipboard.
	copyText func(string) error

	prevCursor [2]int

	bubbleText string
	bubbleImg  *ebiten.Image
}

// New builds the game from the tuning. A nil progress unlocks all types.
func New(tu tuning.Tuning, progress Progress) *Game {
	city := NewCity(tu, progress)
	g := &Game{
		tu:       tu,
		city:     city,
		ctl:      NewController(city, tu.Input, tu.PersistentPlacement),
		assets:   NewAssetCache(PaletteAssets{}),
		width:    tu.Window.Width,
		height:   tu.Window.Height,
		showHUD:  true,
		showLog:  true,
		copyText: clipboard.WriteAll,
	}
	g.ctl.OnHubClicked = g.openDetail
	g.ctl.SetScreenSize(float64(g.width), float64(g.height))
	logger.Log.WithField("grid", tu.GridSize).Info("city ready")
	return g
}

// City returns the model behind the canvas.
func (g *Game) City() *City { return g.city }

// Controller returns the interaction controller.
func (g *Game) Controller() *Controller { return g.ctl }

func (g *Game) Update() error {
	g.handleInput()
	g.city.Update(1 / float64(ebiten.TPS()))
	if g.statusTicks > 0 {
		g.statusTicks--
	}
	return nil
}

// setStatus shows a transient line at the top of the screen.
func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	g.statusTicks = 3 * ebiten.TPS()
}

// copyReport puts the city report on the clipboard.
func (g *Game) copyReport() {
	report := CityReport(g.city)
	if err := g.copyText(report); err != nil {
		logger.Log.WithError(err).Warn("clipboard copy failed")
		g.setStatus("clipboard unavailable: %v", err)
		return
	}
	g.setStatus("city report copied (%d bytes)", len(report))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColour)
	g.drawWorld(screen)
	g.drawHover(screen)
	if g.showRoads {
		g.drawRoadOverlay(screen)
	}
	g.drawAgent(screen)

	if g.showLog {
		g.city.Activity().Draw(screen, g.width-activityPanelWidth, g.height-int(g.tu.Input.UIChromeHeight))
	}
	g.drawCategoryBar(screen)
	if g.showHUD {
		g.drawHUD(screen)
	}
	g.drawDialog(screen)
	g.drawDetail(screen)
}

// drawWorld draws ground and structures in render-list order.
func (g *Game) drawWorld(screen *ebiten.Image) {
	p := g.city.Projection()
	tm := g.city.Tiles()
	v := g.ctl.View()
	for _, e := range g.city.RenderList().Entries() {
		switch e.Kind {
		case RenderGround:
			sw := g.assets.Swatch(string(tm.Ground(e.Col, e.Row)))
			d := p.FootprintDiamond(e.Col, e.Row, Footprint{Width: 1, Height: 1})
			poly := Polygon(d[:])
			fillPolygon(screen, v, poly, sw.Fill)
			strokePolygon(screen, v, poly, tileOutline)
		case RenderStructure:
			g.drawStructure(screen, e.Structure)
		}
	}
}

func (g *Game) drawStructure(screen *ebiten.Image, s *Structure) {
	p := g.city.Projection()
	v := g.ctl.View()
	sw := g.assets.Swatch(s.TypeKey)
	faces := p.BlockFaces(s.OriginCol, s.OriginRow, s.Footprint, sw.Height)
	for i, poly := range faces {
		f := faceShades[2]
		if len(faces) == 3 {
			f = faceShades[i]
		}
		c := color.RGBA{R: shade(sw.Fill.R, f), G: shade(sw.Fill.G, f), B: shade(sw.Fill.B, f), A: 255}
		fillPolygon(screen, v, poly, c)
		strokePolygon(screen, v, poly, color.RGBA{A: 90})
	}
}

// drawHover tints the preview cells green or red.
func (g *Game) drawHover(screen *ebiten.Image) {
	h := g.ctl.Hover()
	if h.Kind == HoverNone {
		return
	}
	c := hoverInvalid
	if h.Valid {
		c = hoverValid
	}
	p := g.city.Projection()
	v := g.ctl.View()
	for _, cl := range h.Cells {
		d := p.FootprintDiamond(cl[0], cl[1], Footprint{Width: 1, Height: 1})
		fillPolygon(screen, v, Polygon(d[:]), c)
	}
}

// fillPolygon fills a grid-local polygon through the view.
func fillPolygon(dst *ebiten.Image, v View, poly Polygon, c color.Color) {
	var path vector.Path
	for i, pt := range poly {
		x, y := v.LocalToScreen(pt[0], pt[1])
		if i == 0 {
			path.MoveTo(float32(x), float32(y))
		} else {
			path.LineTo(float32(x), float32(y))
		}
	}
	path.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.FillPath(dst, &path, &vector.FillOptions{}, op)
}

func strokePolygon(dst *ebiten.Image, v View, poly Polygon, c color.Color) {
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		x0, y0 := v.LocalToScreen(a[0], a[1])
		x1, y1 := v.LocalToScreen(b[0], b[1])
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, c, true)
	}
}

// drawHUD shows zoom, mode and key help in the top-left corner.
func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.ctl.Session()
	mode := "browse"
	switch {
	case s.DeleteMode:
		mode = "delete"
	case s.PendingPlacement():
		mode = "placing " + s.SelectedType
	}
	lines := []string{
		fmt.Sprintf("zoom %.1fx  %s  [%s]", g.ctl.View().Zoom, g.ctl.Mode(), mode),
		"drag=pan  wheel=zoom  1-4=menus  D=delete  Esc/right-click=cancel",
		"C=copy report  L=log  R=roads  H=hud",
	}
	if g.statusTicks > 0 {
		lines = append(lines, g.status)
	}
	const lineH = 16
	const padX = 6
	const padY = 4
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	w := float32(maxLen*6 + padX*2)
	h := float32(len(lines)*lineH + padY*2)
	vector.FillRect(screen, 8, 8, w, h, color.RGBA{R: 10, G: 12, B: 16, A: 200}, false)
	vector.StrokeRect(screen, 8, 8, w, h, 1, colornames.Slategray, false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, 8+padX, 8+padY+i*lineH)
	}
}

// Layout follows the window so the grid can be re-centred on resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	g.ctl.SetScreenSize(float64(g.width), float64(g.height))
	return g.width, g.height
}
