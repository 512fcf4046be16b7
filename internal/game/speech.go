package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

const agentRadius = 6

// agentColours tints each sprite variant.
var agentColours = []color.RGBA{
	colornames.Tomato,
	colornames.Dodgerblue,
	colornames.Orchid,
	colornames.Darkorange,
}

// drawAgent renders the walker as a body and head at its current position.
func (g *Game) drawAgent(screen *ebiten.Image) {
	a := g.city.Roads().Agent()
	if a == nil {
		return
	}
	v := g.ctl.View()
	pos := a.Position()
	x, y := v.LocalToScreen(pos.X, pos.Y)
	r := float32(agentRadius * v.Zoom)
	body := agentColours[a.Variant%len(agentColours)]

	vector.FillCircle(screen, float32(x), float32(y)+r, r*0.8, color.RGBA{A: 80}, true)
	vector.FillRect(screen, float32(x)-r*0.6, float32(y)-r, r*1.2, r*1.6, body, true)
	vector.FillCircle(screen, float32(x), float32(y)-r*1.4, r*0.6, colornames.Peachpuff, true)

	g.drawSpeechBubble(screen, a.Speech(), float32(x), float32(y)-r*2.2)
}

// drawSpeechBubble renders text in a box whose tail points down at (x, y).
func (g *Game) drawSpeechBubble(screen *ebiten.Image, text string, x, y float32) {
	if text == "" {
		return
	}
	const charW = 6
	const lineH = 14
	const padX = 5
	const padY = 3

	bgW := float32(len(text)*charW + padX*2)
	bgH := float32(lineH + padY*2)
	bgX := x - bgW/2
	bgY := y - bgH - 6

	vector.FillRect(screen, bgX, bgY, bgW, bgH, color.NRGBA{R: 250, G: 250, B: 245, A: 230}, false)
	vector.StrokeRect(screen, bgX, bgY, bgW, bgH, 1, color.RGBA{R: 60, G: 60, B: 60, A: 200}, false)

	var tail vector.Path
	tail.MoveTo(x-4, bgY+bgH)
	tail.LineTo(x+4, bgY+bgH)
	tail.LineTo(x, y)
	tail.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(color.NRGBA{R: 250, G: 250, B: 245, A: 230})
	vector.FillPath(screen, &tail, &vector.FillOptions{}, op)

	// DebugPrint only draws white, so the line is rendered once per phrase
	// and tinted dark for the pale box.
	if g.bubbleText != text || g.bubbleImg == nil {
		if g.bubbleImg != nil {
			g.bubbleImg.Deallocate()
		}
		g.bubbleImg = ebiten.NewImage(len(text)*charW+2, lineH+2)
		ebitenutil.DebugPrintAt(g.bubbleImg, text, 0, 0)
		g.bubbleText = text
	}
	tOp := &ebiten.DrawImageOptions{}
	tOp.GeoM.Translate(float64(int(bgX)+padX), float64(int(bgY)+padY))
	tOp.ColorScale.ScaleWithColor(colornames.Darkslategray)
	screen.DrawImage(g.bubbleImg, tOp)
}
