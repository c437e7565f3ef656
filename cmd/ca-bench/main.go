// Command ca-bench runs a simulation headless for a fixed number of
// generations and reports how long the ticks took.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"chunk-ca/internal/config"
	"chunk-ca/internal/core"
	_ "chunk-ca/internal/sims/briansbrain"
	_ "chunk-ca/internal/sims/elementary"
	_ "chunk-ca/internal/sims/life"
	"chunk-ca/pkg/grid"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (available: %v)", cfg.Sim, core.Names())
	}
	sim := factory(cfg.SimOptions())
	sim.Reset(cfg.Seed)
	g := sim.Grid()

	log.Printf("running %s for %d ticks (chunk %d, seed %d)", sim.Name(), cfg.Ticks, g.ChunkSize(), cfg.Seed)

	var total grid.TickStats
	start := time.Now()
	for i := 0; i < cfg.Ticks; i++ {
		st := sim.Step()
		total.Scanned += st.Scanned
		total.Cells += st.Cells
		total.Updates += st.Updates
		total.Allocated += st.Allocated
	}
	elapsed := time.Since(start)

	perTick := time.Duration(0)
	if cfg.Ticks > 0 {
		perTick = elapsed / time.Duration(cfg.Ticks)
	}
	fmt.Printf("%d ticks in %s (%s/tick)\n", cfg.Ticks, elapsed.Round(time.Millisecond), perTick)
	fmt.Printf("chunks=%d scanned=%d cells=%d updates=%d allocated=%d\n",
		g.Chunks(), total.Scanned, total.Cells, total.Updates, total.Allocated)

	if !cfg.Print {
		return
	}
	fmt.Print(g.Render(func(v uint8) bool { return v != 0 }))
	if min, max, ok := g.PointBounds(); ok {
		fmt.Printf("%d, %d\n", max.X-min.X, max.Z-min.Z)
	}
}
