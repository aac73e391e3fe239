// Package export writes board snapshots out as images.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const pageMargin = 10.0 // mm

var ErrFormat = errors.New("export: unsupported format")

// PNG encodes img losslessly.
func PNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	return nil
}

// PDF places img on a single A4 page, scaled to fit inside the margins and centered.
// The page turns to landscape when the image is wider than it is tall.
func PDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}

	orientation := "P"
	b := img.Bounds()
	if b.Dx() > b.Dy() {
		orientation = "L"
	}
	p := gofpdf.New(orientation, "mm", "A4", "")
	p.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("board", opt, &buf)

	pageW, pageH := p.GetPageSize()
	x, y, width, height := fit(float64(b.Dx()), float64(b.Dy()), pageW-2*pageMargin, pageH-2*pageMargin)
	p.ImageOptions("board", pageMargin+x, pageMargin+y, width, height, false, opt, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}

// fit scales a w×h box into a boxW×boxH area keeping its aspect ratio.
func fit(w, h, boxW, boxH float64) (x, y, width, height float64) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0
	}
	scale := min(boxW/w, boxH/h)
	width, height = w*scale, h*scale
	return (boxW - width) / 2, (boxH - height) / 2, width, height
}

// Write picks the encoder from the file extension of name.
func Write(w io.Writer, name string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return PNG(w, img)
	case ".pdf":
		return PDF(w, img)
	}
	return fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(name))
}
