//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"chunk-ca/internal/app"
	"chunk-ca/internal/config"
	"chunk-ca/internal/core"
	_ "chunk-ca/internal/sims/briansbrain"
	_ "chunk-ca/internal/sims/elementary"
	_ "chunk-ca/internal/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}

	sim := factory(cfg.SimOptions())
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Width, cfg.Height, cfg.Scale, cfg.Seed)

	ebiten.SetWindowTitle("chunk-ca: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale+app.HUDWidth, cfg.Height*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
