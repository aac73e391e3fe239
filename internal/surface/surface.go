// Package surface holds the pixel buffer that committed strokes are rasterized into.
package surface

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyArea is returned when a surface would have no pixels.
var ErrEmptyArea = errors.New("surface: zero area")

// Paint is the ink a path is stroked with. Width is in pixels.
type Paint struct {
	Color color.Color
	Width float64
}

// Surface is a fixed-size RGBA buffer over a solid background.
// It is not safe for concurrent use.
type Surface struct {
	img        *image.RGBA
	background color.NRGBA
}

func New(width, height int, background color.Color) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyArea
	}
	s := &Surface{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: color.NRGBAModel.Convert(background).(color.NRGBA),
	}
	s.Reset()
	return s, nil
}

// Release drops the buffer. Drawing on a released surface does nothing.
func (s *Surface) Release() { s.img = nil }

// Reset paints the whole buffer with the background color.
func (s *Surface) Reset() {
	if s.img == nil {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
}

// Stroke rasterizes p into the buffer and returns the rectangle it touched.
func (s *Surface) Stroke(p *Path, paint Paint) image.Rectangle {
	if s.img == nil || p.Empty() {
		return image.Rectangle{}
	}
	rasterize(s.img, p, paint)
	return p.Bounds(paint.Width).Rect().Intersect(s.img.Bounds())
}

// Image returns a copy of the buffer.
func (s *Surface) Image() *image.RGBA {
	if s.img == nil {
		return nil
	}
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Overlay returns a copy of the buffer with p stroked on top, leaving the buffer as is.
func (s *Surface) Overlay(p *Path, paint Paint) *image.RGBA {
	out := s.Image()
	if out == nil || p.Empty() {
		return out
	}
	rasterize(out, p, paint)
	return out
}

func rasterize(dst *image.RGBA, p *Path, paint Paint) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	if at, ok := p.dot(); ok {
		filler := rasterx.NewFiller(w, h, scanner)
		filler.SetColor(paint.Color)
		rasterx.AddCircle(float64(at.X), float64(at.Y), paint.Width/2, filler)
		filler.Draw()
		return
	}
	stroker := rasterx.NewStroker(w, h, scanner)
	stroker.SetColor(paint.Color)
	stroker.SetStroke(
		fixed.Int26_6(paint.Width*64), fixed.Int26_6(4*64),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round,
	)
	p.addTo(stroker)
	stroker.Draw()
}
