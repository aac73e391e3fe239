package ui

import (
	"DrawingBoard/internal/board"
	"DrawingBoard/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
)

// NewContent builds the board, its toolbar and status line for window.
// Replay steps reach the board through fyne.Do, so they run on the main goroutine in order.
func NewContent(cfg config.Config, window fyne.Window) (*BoardWidget, fyne.CanvasObject) {
	b := board.New(cfg, board.PostFunc(fyne.Do))
	boardWidget := NewBoardWidget(b)
	toolbar := NewToolbar(boardWidget, window)
	content := container.NewBorder(toolbar, boardWidget.statusBar, nil, nil, boardWidget)
	return boardWidget, content
}

func RunApp(cfg config.Config) {
	myApp := app.New()
	myWindow := myApp.NewWindow("Drawing Board")
	myWindow.Resize(fyne.NewSize(1024, 768))

	boardWidget, content := NewContent(cfg, myWindow)

	shortcuts := map[fyne.KeyName]func(){
		fyne.KeyZ: boardWidget.Undo,
		fyne.KeyY: boardWidget.Redo,
		fyne.KeyP: boardWidget.Play,
	}
	for key, action := range shortcuts {
		shortcut := &desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault}
		myWindow.Canvas().AddShortcut(shortcut, func(fyne.Shortcut) { action() })
	}
	myWindow.SetOnClosed(boardWidget.Board().Detach)

	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
