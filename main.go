package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/floating-lines/internal/config"
	"github.com/iburimskiy/floating-lines/internal/game"
)

var (
	// configPath points at an optional YAML file layered over the defaults.
	configPath = flag.String("config", "", "path to a YAML config file")

	debugFlag = flag.Bool("debug", false, "show clock, canvas size and FPS overlay")

	// soundtrackFlag overrides soundtrack.path from the config.
	soundtrackFlag = flag.String("soundtrack", "", "wav, mp3 or flac file to loop while the hero is visible")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Config] %v", err)
	}

	g, err := game.New(cfg, game.Options{
		Debug:      *debugFlag,
		Soundtrack: *soundtrackFlag,
	})
	if err != nil {
		log.Fatalf("[Game] %v", err)
	}
	defer g.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	log.Printf("[FloatingLines] %d lines on a %dx%d window", cfg.Lines.Count, cfg.Window.Width, cfg.Window.Height)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("[Game] %v", err)
	}
}
