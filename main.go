package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"DrawingBoard/internal/board"
	"DrawingBoard/internal/config"
	"DrawingBoard/internal/term"
	"DrawingBoard/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	terminal := flag.Bool("term", false, "draw in the terminal instead of a window")
	debug := flag.Bool("debug", false, "log board internals")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	out := os.Stderr
	if *terminal {
		// the screen owns the tty, so logs go to a file
		f, err := os.OpenFile(filepath.Join(os.TempDir(), "drawingboard.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		out = f
		log.SetOutput(f)
	}
	if *debug {
		board.SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *terminal {
		log.Println("Starting in TERMINAL mode")
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := term.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("Terminal host failed: %v", err)
		}
		return
	}

	log.Println("Starting in WINDOW mode")
	ui.RunApp(cfg)
}
