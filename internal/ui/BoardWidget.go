package ui

import (
	"fmt"
	"image"
	"log"

	"DrawingBoard/internal/board"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// BoardWidget shows a board and turns mouse and touch input into strokes.
// Every callback runs on the fyne main goroutine, which owns the board.
type BoardWidget struct {
	widget.BaseWidget
	board     *board.Board
	pressed   bool
	lastPos   fyne.Position
	statusBar *widget.Label

	// OnChange is called after anything that affects undo, redo or the tool state.
	OnChange func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ mobile.Touchable = (*BoardWidget)(nil)

func NewBoardWidget(b *board.Board) *BoardWidget {
	w := &BoardWidget{
		board:     b,
		statusBar: widget.NewLabel("Ready"),
	}
	w.ExtendBaseWidget(w)
	b.OnInvalidate = func(image.Rectangle) { w.Refresh() }
	return w
}

func (w *BoardWidget) Board() *board.Board { return w.board }

func (w *BoardWidget) SetStatus(text string) {
	w.statusBar.SetText(text)
}

func (w *BoardWidget) changed() {
	w.SetStatus(fmt.Sprintf("%d nodes · %d strokes · pen %d · eraser %d",
		len(w.board.Nodes()), w.board.Strokes(), w.board.PenWidth(), w.board.EraserWidth()))
	if w.OnChange != nil {
		w.OnChange()
	}
}

func (w *BoardWidget) Undo() {
	if w.board.Undo() {
		w.changed()
	}
}

func (w *BoardWidget) Redo() {
	if w.board.Redo() {
		w.changed()
	}
}

func (w *BoardWidget) Clear() {
	w.board.Clear()
	w.changed()
}

// Play replays the current recording from a blank canvas.
func (w *BoardWidget) Play() {
	if err := w.board.Play(w.board.Nodes(), false); err != nil {
		log.Printf("[BOARD] Play failed: %v", err)
		w.SetStatus("Cannot play: " + err.Error())
	}
}

func (w *BoardWidget) press(pos fyne.Position) {
	w.pressed = true
	w.lastPos = pos
	w.board.Down(pos.X, pos.Y)
}

func (w *BoardWidget) drag(pos fyne.Position) {
	if !w.pressed {
		return
	}
	w.lastPos = pos
	w.board.Move(pos.X, pos.Y)
}

func (w *BoardWidget) release(pos fyne.Position) {
	if !w.pressed {
		return
	}
	w.pressed = false
	w.board.Up(pos.X, pos.Y)
	w.changed()
}

func (w *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.press(e.Position)
	}
}

func (w *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.release(e.Position)
	}
}

func (w *BoardWidget) Dragged(e *fyne.DragEvent) {
	w.drag(e.Position)
}

func (w *BoardWidget) DragEnd() {
	w.release(w.lastPos)
}

func (w *BoardWidget) TouchDown(e *mobile.TouchEvent)   { w.press(e.Position) }
func (w *BoardWidget) TouchUp(e *mobile.TouchEvent)     { w.release(e.Position) }
func (w *BoardWidget) TouchCancel(e *mobile.TouchEvent) { w.release(w.lastPos) }

func (w *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (w *BoardWidget) MouseOut()                      {}
func (w *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (w *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: w}
	r.background = canvas.NewRectangle(w.board.Background())
	r.image = canvas.NewImageFromImage(nil)
	r.image.FillMode = canvas.ImageFillStretch
	r.image.ScaleMode = canvas.ImageScalePixels
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	image      *canvas.Image
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.image}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.image.Resize(size)
	if err := r.board.board.Resize(int(size.Width), int(size.Height)); err != nil {
		log.Printf("[BOARD] Resize to %v failed: %v", size, err)
	}
}

func (r *boardWidgetRenderer) Refresh() {
	if frame := r.board.board.Frame(); frame != nil {
		r.image.Image = frame
	}
	r.image.Refresh()
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

// Destroy keeps the board: fyne may rebuild renderers, and the window releases it on close.
func (r *boardWidgetRenderer) Destroy() {}
