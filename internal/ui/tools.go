package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var palette = []color.NRGBA{
	{A: 255},                 // Black
	{R: 255, A: 255},         // Red
	{G: 255, A: 255},         // Green
	{B: 255, A: 255},         // Blue
	{R: 255, G: 255, A: 255}, // Yellow
}

// Slider ranges, raised to fit larger configured widths.
const (
	maxPenWidth    = 50
	maxEraserWidth = 80
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Toolbar holds the controls driving a board widget.
type Toolbar struct {
	fyne.CanvasObject
	board  *BoardWidget
	window fyne.Window

	mode         *widget.Button
	penSlider    *widget.Slider
	eraserSlider *widget.Slider
	undo, redo   *widget.Button
	play, stop   *widget.Button
	clear        *widget.Button

	syncing bool // Refresh is pushing board state into the controls
}

// --- The Main Toolbar ---
func NewToolbar(board *BoardWidget, window fyne.Window) *Toolbar {
	t := &Toolbar{board: board, window: window}
	b := board.Board()

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			b.SetPainting(true)
			t.Refresh()
		}), // Pen
		widget.NewToolbarAction(theme.ContentRemoveIcon(), func() {
			b.SetPainting(false)
			t.Refresh()
		}), // Eraser
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			b.ResetTools()
			t.Refresh()
		}), // Reset tools
	)
	t.mode = widget.NewButton("", func() {
		b.SetPainting(!b.Painting())
		t.Refresh()
	})

	// --- Color Palette ---
	onColorTapped := func(c color.Color) {
		b.SetPenColor(c)
		b.SetPainting(true)
		t.Refresh()
	}
	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}

	// --- Width Sliders ---
	t.penSlider = widget.NewSlider(1, float64(max(maxPenWidth, b.PenWidth())))
	t.penSlider.OnChanged = func(val float64) {
		if t.syncing {
			return
		}
		b.SetPenWidth(int(val))
		board.changed()
	}
	t.eraserSlider = widget.NewSlider(1, float64(max(maxEraserWidth, b.EraserWidth())))
	t.eraserSlider.OnChanged = func(val float64) {
		if t.syncing {
			return
		}
		b.SetEraserWidth(int(val))
		board.changed()
	}
	sliderSize := fyne.NewSize(120, 35)
	penBox := container.New(layout.NewGridWrapLayout(sliderSize), t.penSlider)
	eraserBox := container.New(layout.NewGridWrapLayout(sliderSize), t.eraserSlider)

	// --- History and playback ---
	t.undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), board.Undo)
	t.redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), board.Redo)
	t.clear = widget.NewButtonWithIcon("", theme.DeleteIcon(), board.Clear)
	t.play = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), board.Play)
	t.stop = widget.NewButtonWithIcon("", theme.MediaStopIcon(), b.Stop)
	snapshot := widget.NewButtonWithIcon("", theme.FileImageIcon(), t.showSnapshot)
	save := widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), t.exportSnapshot)

	board.OnChange = t.Refresh
	b.OnPlaying = func(playing bool) {
		if playing {
			board.SetStatus("Playing...")
		} else {
			board.changed()
		}
		t.Refresh()
	}

	// --- Assemble everything ---
	t.CanvasObject = container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		t.mode,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Pen:"),
		penBox,
		widget.NewLabel("Eraser:"),
		eraserBox,
		widget.NewSeparator(),
		t.undo, t.redo, t.clear,
		widget.NewSeparator(),
		t.play, t.stop,
		layout.NewSpacer(),
		snapshot, save,
	)
	t.Refresh()
	return t
}

// Refresh syncs every control with the board state.
func (t *Toolbar) Refresh() {
	b := t.board.Board()
	if b.Painting() {
		t.mode.SetText("Pen")
	} else {
		t.mode.SetText("Eraser")
	}
	t.syncing = true
	t.penSlider.SetValue(float64(b.PenWidth()))
	t.eraserSlider.SetValue(float64(b.EraserWidth()))
	t.syncing = false
	setEnabled(t.undo, b.CanUndo())
	setEnabled(t.redo, b.CanRedo())
	setEnabled(t.clear, !b.Playing())
	setEnabled(t.play, !b.Playing() && len(b.Nodes()) > 0)
	setEnabled(t.stop, b.Playing())
}

func setEnabled(w fyne.Disableable, on bool) {
	if on {
		w.Enable()
	} else {
		w.Disable()
	}
}

func (t *Toolbar) showSnapshot() {
	img, ok := t.board.Board().Snapshot()
	if !ok {
		t.board.SetStatus("Nothing to show")
		return
	}
	view := canvas.NewImageFromImage(img)
	view.FillMode = canvas.ImageFillContain
	view.SetMinSize(fyne.NewSize(float32(img.Bounds().Dx())/2, float32(img.Bounds().Dy())/2))
	dialog.ShowCustom("Snapshot", "Close", view, t.window)
}
