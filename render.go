package popover

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var whiteSubImage *ebiten.Image

// solidSource returns a 1x1 white source image for DrawTriangles. It is cut
// from the middle of a 3x3 image so sampling never bleeds past its edges.
func solidSource() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// Draw renders the scene tree onto screen in child order: overlay, card,
// handle grip.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.drawNode(screen, s.root, 0, 0, 1)
	s.root.ClearDirty()
	if s.debug {
		s.drawDebugHUD(screen)
	}
	s.flushScreenshots(screen)
}

func (s *Scene) drawNode(dst *ebiten.Image, n *Node, px, py, parentAlpha float64) {
	if !n.Visible {
		return
	}
	x, y := px+n.X, py+n.Y
	alpha := parentAlpha * n.Alpha
	if alpha <= 0 {
		return
	}
	if c := n.Color; c.A > 0 && n.Width > 0 && n.Height > 0 {
		c.A *= alpha
		s.fillRoundedRect(dst, float32(x), float32(y), float32(n.Width), float32(n.Height),
			float32(n.CornerRadius), c.toRGBA())
	}
	for _, child := range n.children {
		s.drawNode(dst, child, x, y, alpha)
	}
}

// fillRoundedRect fills a rectangle whose four corners are rounded by r.
func (s *Scene) fillRoundedRect(dst *ebiten.Image, x, y, w, h, r float32, clr color.RGBA) {
	r = min(r, w/2, h/2)
	if r <= 0.5 {
		vector.DrawFilledRect(dst, x, y, w, h, clr, false)
		return
	}

	var p vector.Path
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.ArcTo(x+w, y, x+w, y+r, r)
	p.LineTo(x+w, y+h-r)
	p.ArcTo(x+w, y+h, x+w-r, y+h, r)
	p.LineTo(x+r, y+h)
	p.ArcTo(x, y+h, x, y+h-r, r)
	p.LineTo(x, y+r)
	p.ArcTo(x, y, x+r, y, r)
	p.Close()

	s.vertices, s.indices = p.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	cr := float32(clr.R) / 0xff
	cg := float32(clr.G) / 0xff
	cb := float32(clr.B) / 0xff
	ca := float32(clr.A) / 0xff
	for i := range s.vertices {
		v := &s.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = cr, cg, cb, ca
	}
	dst.DrawTriangles(s.vertices, s.indices, solidSource(), &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		AntiAlias:      true,
	})
}
