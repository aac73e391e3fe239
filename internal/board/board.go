// Package board implements a freehand drawing board: pointer input becomes recorded
// nodes and rasterized strokes, whole strokes can be undone and redone, and a recording
// can be replayed as a timed animation.
//
// A Board belongs to one goroutine, the owner, and none of its methods may be called
// from anywhere else. Replay runs a worker goroutine that hands every step back to the
// owner through a Poster, so no locking is needed.
package board

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"time"

	"DrawingBoard/internal/config"
	"DrawingBoard/internal/state"
	"DrawingBoard/internal/surface"

	"github.com/google/uuid"
)

var (
	ErrPlaying   = errors.New("board: replay in progress")
	ErrNoSurface = errors.New("board: no drawing surface")
)

type Board struct {
	defaults   state.Tools
	tools      state.Tools
	background color.NRGBA
	density    float64
	tolerance  float32
	maxDelay   time.Duration

	history *state.History
	surface *surface.Surface
	width   int
	height  int

	// in-flight stroke
	path    surface.Path
	drawing bool
	last    state.Point
	stroke  string

	clock  state.Clock
	poster Poster
	newID  func() string

	playing bool
	cancel  context.CancelFunc
	done    chan struct{}

	// OnInvalidate is called after every visible change with the damaged rectangle.
	// An empty rectangle means the whole board.
	OnInvalidate func(image.Rectangle)
	// OnPlaying is called when a replay starts and when it ends.
	OnPlaying func(playing bool)
}

type Option func(*Board)

// WithClock sets the clock used to timestamp nodes.
func WithClock(c state.Clock) Option {
	return func(b *Board) { b.clock = c }
}

// WithNodes starts the board from an existing recording.
func WithNodes(nodes []state.Node) Option {
	return func(b *Board) { b.history = state.NewHistory(nodes) }
}

// WithIDs replaces the stroke id generator.
func WithIDs(next func() string) Option {
	return func(b *Board) { b.newID = next }
}

// New creates a board with no surface; call Resize once the size is known.
// Replay steps are delivered to the owner through poster.
func New(cfg config.Config, poster Poster, opts ...Option) *Board {
	tools := cfg.Tools()
	b := &Board{
		defaults:   tools,
		tools:      tools,
		background: cfg.Background(),
		density:    cfg.Surface.Density,
		tolerance:  float32(cfg.Input.Tolerance),
		maxDelay:   cfg.MaxDelay(),
		history:    &state.History{},
		clock:      state.NewMonotonicClock(),
		poster:     poster,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Resize reallocates the surface at the new size and redraws the recording onto it.
// A zero area leaves the board without a surface.
func (b *Board) Resize(width, height int) error {
	if b.surface != nil && b.width == width && b.height == height {
		return nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	b.width, b.height = width, height
	if width <= 0 || height <= 0 {
		return nil
	}
	s, err := surface.New(width, height, b.background)
	if err != nil {
		return err
	}
	b.surface = s
	b.drawNodes(b.history.Committed())
	Logger().Info("surface allocated", "width", width, "height", height)
	b.invalidate(image.Rectangle{})
	return nil
}

func (b *Board) Size() (width, height int) { return b.width, b.height }

// Detach stops any replay and releases the surface.
func (b *Board) Detach() {
	b.Stop()
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
}

// Tools

func (b *Board) SetPenWidth(width int)     { b.tools.PenWidth = max(width, 1) }
func (b *Board) SetEraserWidth(width int)  { b.tools.EraserWidth = max(width, 1) }
func (b *Board) SetPainting(painting bool) { b.tools.Painting = painting }

func (b *Board) SetPenColor(c color.Color) {
	b.tools.PenColor = color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (b *Board) PenWidth() int           { return b.tools.PenWidth }
func (b *Board) EraserWidth() int        { return b.tools.EraserWidth }
func (b *Board) PenColor() color.NRGBA   { return b.tools.PenColor }
func (b *Board) Painting() bool          { return b.tools.Painting }
func (b *Board) Tools() state.Tools      { return b.tools }
func (b *Board) Background() color.NRGBA { return b.background }

// ResetTools restores the configured pen, eraser and mode.
func (b *Board) ResetTools() { b.tools = b.defaults }

// Canvas operations

// Clear wipes the surface. It is recorded, so it can be undone like a stroke.
func (b *Board) Clear() {
	if b.playing {
		Logger().Warn("clear ignored during replay")
		return
	}
	b.clear()
}

func (b *Board) clear() {
	b.history.Record(state.ClearMarker(b.clock.Now(), b.newID()))
	if b.surface != nil {
		b.surface.Reset()
	}
	b.abortStroke()
	b.invalidate(image.Rectangle{})
}

// Undo takes back the last stroke or clear. It reports false if there is nothing to undo.
func (b *Board) Undo() bool {
	if b.playing {
		Logger().Warn("undo ignored during replay")
		return false
	}
	if !b.history.Undo() {
		return false
	}
	b.redraw()
	return true
}

// Redo re-applies the last undone stroke or clear. It reports false if there is none.
func (b *Board) Redo() bool {
	if b.playing {
		Logger().Warn("redo ignored during replay")
		return false
	}
	if !b.history.Redo() {
		return false
	}
	b.redraw()
	return true
}

func (b *Board) CanUndo() bool { return !b.playing && b.history.CanUndo() }
func (b *Board) CanRedo() bool { return !b.playing && b.history.CanRedo() }

// Strokes counts what Undo can take back: strokes plus clears.
func (b *Board) Strokes() int { return b.history.Strokes() }

// Nodes returns a copy of the committed recording.
func (b *Board) Nodes() []state.Node { return b.history.Committed() }

// Snapshot returns a copy of the committed strokes as a bitmap.
func (b *Board) Snapshot() (*image.RGBA, bool) {
	if b.surface == nil {
		return nil, false
	}
	return b.surface.Image(), true
}

// Frame is what a host should display: the surface with the in-flight stroke on top.
func (b *Board) Frame() *image.RGBA {
	if b.surface == nil {
		return nil
	}
	if b.drawing {
		return b.surface.Overlay(&b.path, b.activePaint())
	}
	return b.surface.Image()
}

// Pointer input. All of it is swallowed while a replay is running.

func (b *Board) Down(x, y float32) {
	if b.playing {
		return
	}
	b.down(x, y)
}

func (b *Board) Move(x, y float32) {
	if b.playing {
		return
	}
	b.move(x, y)
}

func (b *Board) Up(x, y float32) {
	if b.playing {
		return
	}
	b.up(x, y)
}

// Drawing reports whether a stroke is in flight.
func (b *Board) Drawing() bool { return b.drawing }

func (b *Board) down(x, y float32) {
	b.path.Reset()
	b.path.MoveTo(x, y)
	b.last = state.Point{X: x, Y: y}
	b.drawing = true
	b.stroke = b.newID()
	b.record(state.KindDown, x, y)
	b.invalidate(state.RegionOf(b.pad(), b.last).Rect())
}

// move samples the pointer once it has travelled at least the tolerance on either axis.
func (b *Board) move(x, y float32) {
	if !b.drawing {
		return
	}
	dx := float32(math.Abs(float64(x - b.last.X)))
	dy := float32(math.Abs(float64(y - b.last.Y)))
	if dx < b.tolerance && dy < b.tolerance {
		return
	}
	mid := state.Point{X: (x + b.last.X) / 2, Y: (y + b.last.Y) / 2}
	b.path.QuadTo(b.last.X, b.last.Y, mid.X, mid.Y)
	damage := state.RegionOf(b.pad(), b.last, mid, state.Point{X: x, Y: y})
	b.last = state.Point{X: x, Y: y}
	b.record(state.KindMove, x, y)
	b.invalidate(damage.Rect())
}

func (b *Board) up(x, y float32) {
	if !b.drawing {
		return
	}
	b.path.LineTo(x, y)
	var damage image.Rectangle
	if b.surface != nil {
		damage = b.surface.Stroke(&b.path, b.activePaint())
	}
	b.path.Reset()
	b.drawing = false
	b.record(state.KindUp, x, y)
	b.invalidate(damage)
}

// abortStroke drops the in-flight path without committing it.
func (b *Board) abortStroke() {
	b.path.Reset()
	b.drawing = false
}

func (b *Board) record(kind state.Kind, x, y float32) {
	n := state.Node{X: x, Y: y, Kind: kind, Time: b.clock.Now(), Stroke: b.stroke}
	b.history.Record(b.tools.Stamp(n))
}

func (b *Board) redraw() {
	b.abortStroke()
	b.drawNodes(b.history.Committed())
	b.invalidate(image.Rectangle{})
}

// drawNodes rebuilds the surface from a recording. Each stroke is committed with the
// tool state stored on its Up node; the board's own tools are left untouched.
// A Move or Up with no open stroke, as at the start of a recording taken mid-stroke,
// opens one at its own point.
func (b *Board) drawNodes(nodes []state.Node) {
	if b.surface == nil {
		return
	}
	b.surface.Reset()
	var path surface.Path
	open := false
	for i, n := range nodes {
		switch n.Kind {
		case state.KindClear:
			b.surface.Reset()
			path.Reset()
			open = false
		case state.KindDown:
			path.Reset()
			path.MoveTo(n.X, n.Y)
			open = true
		case state.KindMove:
			if !open {
				path.MoveTo(n.X, n.Y)
				open = true
				continue
			}
			prev := nodes[i-1]
			path.QuadTo(prev.X, prev.Y, (prev.X+n.X)/2, (prev.Y+n.Y)/2)
		case state.KindUp:
			if !open {
				path.MoveTo(n.X, n.Y)
			}
			path.LineTo(n.X, n.Y)
			b.surface.Stroke(&path, b.paintFor(n))
			path.Reset()
			open = false
		}
	}
}

// resume opens a stroke at n without recording a Down.
func (b *Board) resume(n state.Node) {
	b.path.Reset()
	b.path.MoveTo(n.X, n.Y)
	b.last = n.Point()
	b.drawing = true
	b.stroke = n.Stroke
	if b.stroke == "" {
		b.stroke = b.newID()
	}
}

func (b *Board) activePaint() surface.Paint {
	if b.tools.Painting {
		return surface.Paint{Color: b.tools.PenColor, Width: b.px(b.tools.PenWidth)}
	}
	return surface.Paint{Color: b.background, Width: b.px(b.tools.EraserWidth)}
}

func (b *Board) paintFor(n state.Node) surface.Paint {
	if n.Pen {
		return surface.Paint{Color: n.Color, Width: b.px(n.Width)}
	}
	return surface.Paint{Color: b.background, Width: b.px(n.Width)}
}

// px converts a width in dp to whole pixels.
func (b *Board) px(dp int) float64 {
	return float64(int(float64(dp)*b.density + 0.5))
}

func (b *Board) pad() float32 {
	return float32(b.activePaint().Width/2) + 1
}

func (b *Board) invalidate(r image.Rectangle) {
	if b.OnInvalidate != nil {
		b.OnInvalidate(r)
	}
}
