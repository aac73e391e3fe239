package ui

import (
	"fmt"
	"log"

	"DrawingBoard/internal/export"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// exportSnapshot asks for a .png or .pdf destination and writes the current bitmap to it.
func (t *Toolbar) exportSnapshot() {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			log.Printf("[EXPORT] Save dialog failed: %v", err)
			t.board.SetStatus("Export failed")
			return
		}
		if writer == nil {
			return // cancelled
		}
		t.board.SaveSnapshot(writer)
	}, t.window)
	save.SetFileName("board.png")
	save.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".pdf"}))
	save.Show()
}

// SaveSnapshot encodes the committed strokes into writer, picking the format from its name.
func (w *BoardWidget) SaveSnapshot(writer fyne.URIWriteCloser) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("[EXPORT] Error closing writer: %v", err)
		}
	}()

	img, ok := w.board.Snapshot()
	if !ok {
		w.SetStatus("Nothing to export")
		return
	}
	name := writer.URI().Name()
	if err := export.Write(writer, name, img); err != nil {
		log.Printf("[EXPORT] Writing %s: %v", name, err)
		w.SetStatus("Error exporting " + name)
		return
	}
	w.SetStatus(fmt.Sprintf("Exported %dx%d snapshot to %s", img.Bounds().Dx(), img.Bounds().Dy(), name))
	log.Printf("[EXPORT] Wrote %s", writer.URI())
}
