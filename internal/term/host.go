// Package term runs a drawing board inside a terminal.
//
// Every cell shows two board pixels stacked vertically, drawn with an upper half block:
// the foreground is the top pixel and the background the bottom one. The last row is a
// status line.
package term

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"

	"DrawingBoard/internal/board"
	"DrawingBoard/internal/config"

	"github.com/gdamore/tcell/v2"
)

const halfBlock = '▀'

// Host owns a board and drives it from terminal events. Run is the owner goroutine.
type Host struct {
	screen tcell.Screen
	board  *board.Board
	queue  *board.Queue

	pressed bool
	damage  image.Rectangle
	full    bool
	status  string
}

// NewHost attaches a board to an initialised screen.
func NewHost(screen tcell.Screen, cfg config.Config) *Host {
	h := &Host{
		screen: screen,
		queue:  board.NewQueue(cfg.Replay.QueueSize),
		status: "ready",
	}
	h.board = board.New(cfg, h.queue)
	h.board.OnInvalidate = h.invalidate
	h.board.OnPlaying = func(playing bool) {
		if playing {
			h.status = "playing"
		} else {
			h.status = "ready"
		}
		h.full = true
	}
	screen.EnableMouse()
	screen.HideCursor()
	h.resize()
	return h
}

func (h *Host) Board() *board.Board { return h.board }

// Run opens the terminal and draws until the user quits or ctx ends.
func Run(ctx context.Context, cfg config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("term: init screen: %w", err)
	}
	defer screen.Fini()

	h := NewHost(screen, cfg)
	defer h.Close()
	return h.Run(ctx)
}

// Run handles terminal events and posted replay steps until quit or ctx ends.
func (h *Host) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	h.flush()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !h.handle(ev) {
				return nil
			}
		case fn := <-h.queue.C():
			fn()
		}
		h.flush()
	}
}

// Close ends any replay, runs the steps it already posted so the board gets its tools
// back, and releases the board.
func (h *Host) Close() {
	h.board.Stop()
	if done := h.board.Done(); done != nil {
	wait:
		for {
			select {
			case <-done:
				break wait
			case fn := <-h.queue.C():
				fn()
			}
		}
	}
	h.queue.Drain()
	h.board.Detach()
	h.queue.Close()
}

// handle applies one event and reports false when the user asked to quit.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.resize()
		h.screen.Sync()
	case *tcell.EventMouse:
		h.mouse(ev)
	case *tcell.EventKey:
		return h.key(ev)
	}
	return true
}

func (h *Host) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	px, py := float32(x)+0.5, float32(2*y)+1
	if ev.Buttons()&tcell.Button1 != 0 {
		if h.pressed {
			h.board.Move(px, py)
		} else {
			h.pressed = true
			h.board.Down(px, py)
		}
		return
	}
	if h.pressed {
		h.pressed = false
		h.board.Up(px, py)
		h.full = true
	}
}

func (h *Host) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	b := h.board
	switch ev.Rune() {
	case 'q':
		return false
	case 'u':
		b.Undo()
	case 'r':
		b.Redo()
	case 'c':
		b.Clear()
	case 'e':
		b.SetPainting(!b.Painting())
	case 'x':
		b.ResetTools()
	case '+':
		h.widen(1)
	case '-':
		h.widen(-1)
	case 'p':
		if err := b.Play(b.Nodes(), false); err != nil {
			log.Printf("[TERM] Play failed: %v", err)
			h.status = err.Error()
		}
	case 's':
		b.Stop()
	}
	h.full = true
	return true
}

// widen changes the width of whichever tool is active.
func (h *Host) widen(delta int) {
	if h.board.Painting() {
		h.board.SetPenWidth(h.board.PenWidth() + delta)
	} else {
		h.board.SetEraserWidth(h.board.EraserWidth() + delta)
	}
}

func (h *Host) resize() {
	w, rows := h.screen.Size()
	if err := h.board.Resize(w, max(rows-1, 0)*2); err != nil {
		log.Printf("[TERM] Resize to %dx%d failed: %v", w, rows, err)
	}
	h.screen.Clear()
	h.full = true
}

func (h *Host) invalidate(r image.Rectangle) {
	if r.Empty() {
		h.full = true
		return
	}
	h.damage = h.damage.Union(r)
}

// flush repaints the damaged cells and the status line.
func (h *Host) flush() {
	if !h.full && h.damage.Empty() {
		return
	}
	if frame := h.board.Frame(); frame != nil {
		r := h.damage
		if h.full {
			r = frame.Bounds()
		}
		h.paint(frame, r.Intersect(frame.Bounds()))
	}
	h.drawStatus()
	h.damage = image.Rectangle{}
	h.full = false
	h.screen.Show()
}

func (h *Host) paint(frame *image.RGBA, r image.Rectangle) {
	for row := r.Min.Y / 2; row < (r.Max.Y+1)/2; row++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			top := frame.RGBAAt(x, 2*row)
			bottom := frame.RGBAAt(x, 2*row+1)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			h.screen.SetContent(x, row, halfBlock, nil, style)
		}
	}
}

func (h *Host) drawStatus() {
	w, rows := h.screen.Size()
	if rows == 0 {
		return
	}
	b := h.board
	mode := "drawing"
	if !b.Painting() {
		mode = "erasing"
	}
	line := fmt.Sprintf(" %s | %d nodes %d strokes | %s | pen w%d eraser w%d | u undo  r redo  c clear  e mode  p play  s stop  q quit",
		h.status, len(b.Nodes()), b.Strokes(), mode, b.PenWidth(), b.EraserWidth())
	style := tcell.StyleDefault.Reverse(true)
	runes := []rune(line)
	for x := 0; x < w; x++ {
		ch := ' '
		if x < len(runes) {
			ch = runes[x]
		}
		h.screen.SetContent(x, rows-1, ch, nil, style)
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
