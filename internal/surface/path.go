package surface

import (
	"DrawingBoard/internal/state"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

type verb uint8

const (
	verbMove verb = iota
	verbQuad
	verbLine
)

type segment struct {
	verb verb
	ctrl state.Point // only used by quads
	to   state.Point
}

// Path is a stroke outline built from moves, quadratic curves and lines.
type Path struct {
	segs []segment
}

func (p *Path) MoveTo(x, y float32) {
	p.segs = append(p.segs, segment{verb: verbMove, to: state.Point{X: x, Y: y}})
}

func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.ensureStart()
	p.segs = append(p.segs, segment{verb: verbQuad, ctrl: state.Point{X: cx, Y: cy}, to: state.Point{X: x, Y: y}})
}

func (p *Path) LineTo(x, y float32) {
	p.ensureStart()
	p.segs = append(p.segs, segment{verb: verbLine, to: state.Point{X: x, Y: y}})
}

// ensureStart opens the path at the origin when a curve is added without a move.
func (p *Path) ensureStart() {
	if len(p.segs) == 0 {
		p.MoveTo(0, 0)
	}
}

func (p *Path) Reset() { p.segs = p.segs[:0] }

func (p *Path) Empty() bool { return len(p.segs) == 0 }

// Points lists every end and control point, which bounds the drawn curve.
func (p *Path) Points() []state.Point {
	pts := make([]state.Point, 0, len(p.segs)*2)
	for _, s := range p.segs {
		if s.verb == verbQuad {
			pts = append(pts, s.ctrl)
		}
		pts = append(pts, s.to)
	}
	return pts
}

// Bounds is the region covered by the path when stroked at width.
func (p *Path) Bounds(width float64) state.Region {
	return state.RegionOf(float32(width/2)+1, p.Points()...)
}

// dot reports whether the path never leaves its first point.
func (p *Path) dot() (state.Point, bool) {
	if len(p.segs) == 0 {
		return state.Point{}, false
	}
	first := p.segs[0].to
	for _, s := range p.segs {
		if s.to != first || (s.verb == verbQuad && s.ctrl != first) {
			return state.Point{}, false
		}
	}
	return first, true
}

func (p *Path) addTo(a rasterx.Adder) {
	open := false
	for _, s := range p.segs {
		switch s.verb {
		case verbMove:
			if open {
				a.Stop(false)
			}
			a.Start(toFixed(s.to))
			open = true
		case verbQuad:
			a.QuadBezier(toFixed(s.ctrl), toFixed(s.to))
		case verbLine:
			a.Line(toFixed(s.to))
		}
	}
	if open {
		a.Stop(false)
	}
}

func toFixed(p state.Point) fixed.Point26_6 {
	return rasterx.ToFixedP(float64(p.X), float64(p.Y))
}
