package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// componentTints cycle across road components in discovery order.
var componentTints = []color.NRGBA{
	{R: 255, G: 200, B: 40, A: 90},
	{R: 80, G: 180, B: 255, A: 90},
	{R: 230, G: 90, B: 200, A: 90},
	{R: 120, G: 230, B: 120, A: 90},
}

// drawRoadOverlay tints each road component and traces the agent's path.
func (g *Game) drawRoadOverlay(screen *ebiten.Image) {
	p := g.city.Projection()
	v := g.ctl.View()
	for i, comp := range g.city.Roads().Components() {
		tint := componentTints[i%len(componentTints)]
		for _, c := range comp {
			d := p.FootprintDiamond(c[0], c[1], Footprint{Width: 1, Height: 1})
			fillPolygon(screen, v, Polygon(d[:]), tint)
		}
		x, y := p.TileToScreen(comp[0][0], comp[0][1], v)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("#%d:%d", i, len(comp)), int(x)-14, int(y)-8)
	}

	a := g.city.Roads().Agent()
	if a == nil {
		return
	}
	path := a.Path()
	for i := 1; i < len(path); i++ {
		x0, y0 := v.LocalToScreen(path[i-1].X, path[i-1].Y)
		x1, y1 := v.LocalToScreen(path[i].X, path[i].Y)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, color.NRGBA{R: 255, G: 255, B: 255, A: 160}, true)
	}
	for _, pt := range [][2]float64{{path[0].X, path[0].Y}, {path[len(path)-1].X, path[len(path)-1].Y}} {
		x, y := v.LocalToScreen(pt[0], pt[1])
		vector.StrokeCircle(screen, float32(x), float32(y), 5, 1.5, color.NRGBA{R: 255, G: 255, B: 255, A: 200}, true)
	}
}
