package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	tools := cfg.Tools()
	assert.Equal(t, color.NRGBA{A: 255}, tools.PenColor)
	assert.Equal(t, 6, tools.PenWidth)
	assert.Equal(t, 6, tools.EraserWidth)
	assert.True(t, tools.Painting)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, cfg.Background())
	assert.Equal(t, time.Second, cfg.MaxDelay())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[pen]
color = "#ff0000"
width = 3

[surface]
density = 2.0

[replay]
max_delay_ms = 250
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, cfg.Tools().PenColor)
	assert.Equal(t, 3, cfg.Pen.Width)
	assert.Equal(t, DefaultWidth, cfg.Eraser.Width)
	assert.Equal(t, 2.0, cfg.Surface.Density)
	assert.Equal(t, 250*time.Millisecond, cfg.MaxDelay())
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.toml")
	require.NoError(t, os.WriteFile(path, []byte("[pen]\nsize = 3\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "pen.size")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidateClamps(t *testing.T) {
	cfg, err := Decode(`
[pen]
width = -4
[eraser]
width = 0
[surface]
density = 0
[input]
tolerance = -1
`)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Pen.Width)
	assert.Equal(t, 1, cfg.Eraser.Width)
	assert.Equal(t, 1.0, cfg.Surface.Density)
	assert.Zero(t, cfg.Input.Tolerance)
}

func TestValidateRejectsBadColor(t *testing.T) {
	_, err := Decode("[pen]\ncolor = \"purple\"\n")
	assert.ErrorContains(t, err, "pen.color")
}

func TestParseHex(t *testing.T) {
	cases := map[string]color.NRGBA{
		"#000":      {A: 255},
		"#00ff00":   {G: 255, A: 255},
		"0000ff80":  {B: 255, A: 0x80},
		" #FFFFFF ": {R: 255, G: 255, B: 255, A: 255},
	}
	for in, want := range cases {
		got, err := ParseHex(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseHex("#12345")
	assert.Error(t, err)
	_, err = ParseHex("#gggggg")
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode("[replay]\nmax_delay = 10\n")
	assert.ErrorContains(t, err, "replay.max_delay")
}
