package game

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"
)

const (
	snapshotMargin   = 16
	snapshotHeadroom = 90 // room above the back row for the tallest block
)

// Snapshot renders the city offscreen at zoom 1 in the same depth order as
// the live canvas. It needs no window.
type Snapshot struct {
	ctx    *gg.Context
	view   View
	assets *AssetCache
}

// NewSnapshot sizes a canvas to fit the whole grid.
func NewSnapshot(c *City, assets *AssetCache) *Snapshot {
	p := c.Projection()
	n := float64(c.Tiles().Size)
	w := int(n*2*p.HalfW) + 2*snapshotMargin
	h := int(n*2*p.HalfH) + 2*snapshotMargin + snapshotHeadroom
	ctx := gg.NewContextForRGBA(image.NewRGBA(image.Rect(0, 0, w, h)))
	ctx.SetColor(colornames.Midnightblue)
	ctx.Clear()
	return &Snapshot{
		ctx:    ctx,
		assets: assets,
		view: View{
			OffsetX: float64(w) / 2,
			OffsetY: snapshotMargin + snapshotHeadroom + p.HalfH,
			Zoom:    1,
		},
	}
}

// Render draws ground, structures and the agent path.
func (sn *Snapshot) Render(c *City) image.Image {
	p := c.Projection()
	tm := c.Tiles()
	for _, e := range c.RenderList().Entries() {
		switch e.Kind {
		case RenderGround:
			sw := sn.assets.Swatch(string(tm.Ground(e.Col, e.Row)))
			for _, poly := range p.BlockFaces(e.Col, e.Row, Footprint{Width: 1, Height: 1}, 0) {
				sn.fill(poly, sw.Fill)
			}
		case RenderStructure:
			s := e.Structure
			sw := sn.assets.Swatch(s.TypeKey)
			for i, poly := range p.BlockFaces(s.OriginCol, s.OriginRow, s.Footprint, sw.Height) {
				f := faceShades[2]
				if sw.Height > 0 {
					f = faceShades[i]
				}
				sn.fill(poly, color.RGBA{R: shade(sw.Fill.R, f), G: shade(sw.Fill.G, f), B: shade(sw.Fill.B, f), A: 255})
			}
		}
	}

	if a := c.Roads().Agent(); a != nil {
		path := a.Path()
		sn.ctx.SetColor(colornames.Gold)
		sn.ctx.SetLineWidth(2)
		for i := 1; i < len(path); i++ {
			x0, y0 := sn.view.LocalToScreen(path[i-1].X, path[i-1].Y)
			x1, y1 := sn.view.LocalToScreen(path[i].X, path[i].Y)
			sn.ctx.DrawLine(x0, y0, x1, y1)
		}
		sn.ctx.Stroke()
		pos := a.Position()
		x, y := sn.view.LocalToScreen(pos.X, pos.Y)
		sn.ctx.DrawCircle(x, y, 6)
		sn.ctx.Fill()
	}
	return sn.ctx.Image()
}

func (sn *Snapshot) fill(poly Polygon, c color.Color) {
	for i, pt := range poly {
		x, y := sn.view.LocalToScreen(pt[0], pt[1])
		if i == 0 {
			sn.ctx.MoveTo(x, y)
		} else {
			sn.ctx.LineTo(x, y)
		}
	}
	sn.ctx.ClosePath()
	sn.ctx.SetColor(c)
	sn.ctx.FillPreserve()
	sn.ctx.SetRGBA(0, 0, 0, 0.25)
	sn.ctx.SetLineWidth(1)
	sn.ctx.Stroke()
}

// SavePNG writes the rendered image to path.
func (sn *Snapshot) SavePNG(path string) error {
	return sn.ctx.SavePNG(path)
}

// EncodePNG writes the rendered image to w.
func (sn *Snapshot) EncodePNG(w io.Writer) error {
	return sn.ctx.EncodePNG(w)
}
