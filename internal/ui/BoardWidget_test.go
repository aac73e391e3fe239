package ui

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"DrawingBoard/internal/board"
	"DrawingBoard/internal/config"
	"DrawingBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWidget(t *testing.T) (*BoardWidget, fyne.Window) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	b := board.New(config.Default(), board.NewQueue(8))
	w := NewBoardWidget(b)
	win := test.NewWindow(w)
	t.Cleanup(win.Close)
	w.Resize(fyne.NewSize(200, 200))
	return w, win
}

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func kinds(nodes []state.Node) []state.Kind {
	out := make([]state.Kind, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind
	}
	return out
}

func TestMouseStroke(t *testing.T) {
	w, _ := newTestWidget(t)
	w.MouseDown(mouse(10, 10))
	w.Dragged(drag(50, 50))
	w.MouseUp(mouse(90, 90))

	nodes := w.Board().Nodes()
	assert.Equal(t, []state.Kind{state.KindDown, state.KindMove, state.KindUp}, kinds(nodes))
	assert.Equal(t, "3 nodes · 1 strokes · pen 6 · eraser 6", w.statusBar.Text)

	img, ok := w.Board().Snapshot()
	require.True(t, ok)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestDragEndFinishesStroke(t *testing.T) {
	w, _ := newTestWidget(t)
	w.MouseDown(mouse(10, 10))
	w.Dragged(drag(40, 10))
	w.DragEnd()
	w.MouseUp(mouse(40, 10)) // already released

	nodes := w.Board().Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, float32(40), nodes[2].X)
}

func TestSecondaryButtonIgnored(t *testing.T) {
	w, _ := newTestWidget(t)
	ev := mouse(10, 10)
	ev.Button = desktop.MouseButtonSecondary
	w.MouseDown(ev)
	w.Dragged(drag(40, 40))
	assert.Empty(t, w.Board().Nodes())
}

func TestTouchStroke(t *testing.T) {
	w, _ := newTestWidget(t)
	w.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(20, 20)}})
	w.Dragged(drag(60, 20))
	w.TouchUp(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(80, 20)}})

	assert.Len(t, w.Board().Nodes(), 3)
}

func TestToolbarFollowsHistory(t *testing.T) {
	w, win := newTestWidget(t)
	tb := NewToolbar(w, win)
	assert.True(t, tb.undo.Disabled())
	assert.True(t, tb.play.Disabled())

	w.MouseDown(mouse(10, 10))
	w.MouseUp(mouse(30, 30))
	assert.False(t, tb.undo.Disabled())
	assert.True(t, tb.redo.Disabled())

	test.Tap(tb.undo)
	assert.Empty(t, w.Board().Nodes())
	assert.False(t, tb.redo.Disabled())

	test.Tap(tb.redo)
	assert.Len(t, w.Board().Nodes(), 2)

	test.Tap(tb.clear)
	assert.Equal(t, state.KindClear, w.Board().Nodes()[2].Kind)
}

func TestToolbarModeAndSliders(t *testing.T) {
	w, win := newTestWidget(t)
	tb := NewToolbar(w, win)
	assert.Equal(t, "Pen", tb.mode.Text)

	test.Tap(tb.mode)
	assert.False(t, w.Board().Painting())
	assert.Equal(t, "Eraser", tb.mode.Text)

	tb.penSlider.SetValue(12)
	assert.Equal(t, 12, w.Board().PenWidth())
	tb.eraserSlider.SetValue(30)
	assert.Equal(t, 30, w.Board().EraserWidth())
}

func TestPlayTogglesControls(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)
	q := board.NewQueue(64)
	t.Cleanup(q.Close)
	w := NewBoardWidget(board.New(config.Default(), q))
	win := test.NewWindow(w)
	t.Cleanup(win.Close)
	w.Resize(fyne.NewSize(100, 100))
	tb := NewToolbar(w, win)

	w.MouseDown(mouse(10, 10))
	w.MouseUp(mouse(30, 30))
	test.Tap(tb.play)
	assert.True(t, w.Board().Playing())
	assert.False(t, tb.stop.Disabled())
	assert.True(t, tb.undo.Disabled())

	test.Tap(tb.stop)
	for w.Board().Playing() {
		(<-q.C())()
	}
	assert.True(t, tb.stop.Disabled())
	assert.Equal(t, "Pen", tb.mode.Text)
}

func TestSaveSnapshotPNG(t *testing.T) {
	w, _ := newTestWidget(t)
	w.MouseDown(mouse(10, 10))
	w.MouseUp(mouse(90, 90))

	path := filepath.Join(t.TempDir(), "board.png")
	writer, err := storage.Writer(storage.NewFileURI(path))
	require.NoError(t, err)
	w.SaveSnapshot(writer)
	assert.Contains(t, w.statusBar.Text, "Exported 200x200")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestSaveSnapshotUnknownFormat(t *testing.T) {
	w, _ := newTestWidget(t)
	writer, err := storage.Writer(storage.NewFileURI(filepath.Join(t.TempDir(), "board.gif")))
	require.NoError(t, err)
	w.SaveSnapshot(writer)
	assert.Equal(t, "Error exporting board.gif", w.statusBar.Text)
}

func TestToolbarKeepsWideConfiguredTools(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)
	cfg := config.Default()
	cfg.Pen.Width = 60
	cfg.Eraser.Width = 120

	win := test.NewWindow(widget.NewLabel(""))
	t.Cleanup(win.Close)
	w, _ := NewContent(cfg, win)
	b := w.Board()
	assert.Equal(t, 60, b.PenWidth())
	assert.Equal(t, 120, b.EraserWidth())

	tb := NewToolbar(w, win)
	assert.Equal(t, float64(60), tb.penSlider.Max)
	assert.Equal(t, float64(60), tb.penSlider.Value)

	tb.penSlider.SetValue(20)
	assert.Equal(t, 20, b.PenWidth())
	b.ResetTools()
	tb.Refresh()
	assert.Equal(t, 60, b.PenWidth())
	assert.Equal(t, 120, b.EraserWidth())
}

func TestRendererDestroyKeepsBoard(t *testing.T) {
	w, _ := newTestWidget(t)
	w.MouseDown(mouse(10, 10))
	w.MouseUp(mouse(40, 40))

	test.WidgetRenderer(w).Destroy()
	_, ok := w.Board().Snapshot()
	assert.True(t, ok)
	assert.Len(t, w.Board().Nodes(), 2)
}
