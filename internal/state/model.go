package state

import (
	"fmt"
	"image/color"
)

type Point struct{ X, Y float32 }

// Kind is the pointer event a Node was recorded from.
type Kind uint8

const (
	KindDown Kind = iota + 1
	KindMove
	KindUp
	// KindClear marks a full-canvas clear so that it can be undone like a stroke.
	KindClear
)

func (k Kind) String() string {
	switch k {
	case KindDown:
		return "down"
	case KindMove:
		return "move"
	case KindUp:
		return "up"
	case KindClear:
		return "clear"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ClearCoord is the coordinate carried by clear markers.
const ClearCoord = -1

// Node is one sampled pointer event together with the tool state it was drawn with.
// Move nodes carry no tool state; they inherit it from the Down that opened the stroke.
type Node struct {
	X, Y   float32
	Color  color.NRGBA // pen color, zero for eraser strokes
	Width  int         // pen or eraser width in dp
	Pen    bool        // false means eraser
	Kind   Kind
	Time   int64  // milliseconds on the board clock
	Stroke string // shared by all nodes of one down..up run
}

func (n Node) Point() Point { return Point{X: n.X, Y: n.Y} }

func (n Node) String() string {
	return fmt.Sprintf("{%s (%.1f,%.1f) pen=%t width=%d color=%v t=%d}",
		n.Kind, n.X, n.Y, n.Pen, n.Width, n.Color, n.Time)
}

// ClearMarker builds the synthetic node recorded by a canvas clear.
func ClearMarker(t int64, stroke string) Node {
	return Node{X: ClearCoord, Y: ClearCoord, Kind: KindClear, Time: t, Stroke: stroke}
}

// Tools is the drawing tool configuration of a board.
type Tools struct {
	PenColor    color.NRGBA
	PenWidth    int
	EraserWidth int
	Painting    bool // pen when true, eraser otherwise
}

// Stamp copies the active tool state onto a Down or Up node.
func (t Tools) Stamp(n Node) Node {
	if n.Kind == KindMove || n.Kind == KindClear {
		return n
	}
	n.Pen = t.Painting
	if t.Painting {
		n.Color = t.PenColor
		n.Width = t.PenWidth
	} else {
		n.Width = t.EraserWidth
	}
	return n
}

// Adopt returns the tools with the stroke settings of a recorded Down or Up node applied.
func (t Tools) Adopt(n Node) Tools {
	t.Painting = n.Pen
	if n.Pen {
		t.PenColor = n.Color
		t.PenWidth = n.Width
	} else {
		t.EraserWidth = n.Width
	}
	return t
}
