package state

import (
	"image"
	"math"
)

// Region is the padded bounding box of some drawn points. The zero Region is empty.
type Region struct {
	MinX, MinY float32
	MaxX, MaxY float32
	set        bool
}

// RegionOf boxes points with pad added on every side.
func RegionOf(pad float32, points ...Point) Region {
	var r Region
	for _, p := range points {
		r = r.Add(p)
	}
	return r.Grow(pad)
}

// Add extends the region to cover p.
func (r Region) Add(p Point) Region {
	if !r.set {
		return Region{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y, set: true}
	}
	r.MinX = min(r.MinX, p.X)
	r.MinY = min(r.MinY, p.Y)
	r.MaxX = max(r.MaxX, p.X)
	r.MaxY = max(r.MaxY, p.Y)
	return r
}

func (r Region) Grow(pad float32) Region {
	if !r.set {
		return r
	}
	r.MinX -= pad
	r.MinY -= pad
	r.MaxX += pad
	r.MaxY += pad
	return r
}

// Rect converts the region to whole pixels, rounding outwards.
func (r Region) Rect() image.Rectangle {
	if !r.set {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(float64(r.MinX))), int(math.Floor(float64(r.MinY))),
		int(math.Ceil(float64(r.MaxX))), int(math.Ceil(float64(r.MaxY))),
	)
}
