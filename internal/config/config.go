// Package config loads drawing board settings from TOML.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"DrawingBoard/internal/state"

	"github.com/BurntSushi/toml"
)

const (
	DefaultPenColor   = "#000000"
	DefaultWidth      = 6 // dp, shared by pen and eraser
	DefaultBackground = "#ffffff"
	DefaultTolerance  = 4
	DefaultMaxDelay   = 1000 // ms
	DefaultQueueSize  = 64
)

type Config struct {
	Pen     Pen     `toml:"pen"`
	Eraser  Eraser  `toml:"eraser"`
	Surface Surface `toml:"surface"`
	Input   Input   `toml:"input"`
	Replay  Replay  `toml:"replay"`
}

type Pen struct {
	Color string `toml:"color"`
	Width int    `toml:"width"`
}

type Eraser struct {
	Width int `toml:"width"`
}

type Surface struct {
	Background string  `toml:"background"`
	Density    float64 `toml:"density"` // pixels per dp
}

type Input struct {
	// Tolerance is the distance in pixels a pointer must travel before a move is sampled.
	Tolerance float64 `toml:"tolerance"`
}

type Replay struct {
	MaxDelayMS int `toml:"max_delay_ms"`
	QueueSize  int `toml:"queue_size"`
}

func Default() Config {
	return Config{
		Pen:     Pen{Color: DefaultPenColor, Width: DefaultWidth},
		Eraser:  Eraser{Width: DefaultWidth},
		Surface: Surface{Background: DefaultBackground, Density: 1},
		Input:   Input{Tolerance: DefaultTolerance},
		Replay:  Replay{MaxDelayMS: DefaultMaxDelay, QueueSize: DefaultQueueSize},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	cfg, err := Decode(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML text over the defaults. Keys it does not know are an error.
func Decode(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown keys %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects malformed colors and clamps sizes into range.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ParseHex(c.Pen.Color); err != nil {
		errs = append(errs, fmt.Errorf("pen.color: %w", err))
	}
	if _, err := ParseHex(c.Surface.Background); err != nil {
		errs = append(errs, fmt.Errorf("surface.background: %w", err))
	}
	c.Pen.Width = max(c.Pen.Width, 1)
	c.Eraser.Width = max(c.Eraser.Width, 1)
	if c.Surface.Density <= 0 {
		c.Surface.Density = 1
	}
	if c.Input.Tolerance < 0 {
		c.Input.Tolerance = 0
	}
	if c.Replay.MaxDelayMS < 0 {
		c.Replay.MaxDelayMS = 0
	}
	if c.Replay.QueueSize <= 0 {
		c.Replay.QueueSize = DefaultQueueSize
	}
	return errors.Join(errs...)
}

// Tools is the default tool state described by the config.
func (c Config) Tools() state.Tools {
	pen, err := ParseHex(c.Pen.Color)
	if err != nil {
		pen = color.NRGBA{A: 0xff}
	}
	return state.Tools{
		PenColor:    pen,
		PenWidth:    c.Pen.Width,
		EraserWidth: c.Eraser.Width,
		Painting:    true,
	}
}

func (c Config) Background() color.NRGBA {
	bg, err := ParseHex(c.Surface.Background)
	if err != nil {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return bg
}

func (c Config) MaxDelay() time.Duration {
	return time.Duration(c.Replay.MaxDelayMS) * time.Millisecond
}

// ParseHex parses #rgb, #rrggbb or #rrggbbaa.
func ParseHex(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
