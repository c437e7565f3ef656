// Command ca-sweep runs a batch of Life-like rules across several soup seeds
// in parallel and ranks the rules by how much activity they sustain.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"chunk-ca/internal/core"
	"chunk-ca/internal/sims/life"
)

type scenario struct {
	rule string
	seed int64
}

type scenarioResult struct {
	scenario
	population int
	peak       int
	chunks     int
	updates    int
	extinctAt  int
}

func main() {
	steps := flag.Int("steps", 300, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seeds := flag.Int("seeds", 4, "soup seeds per rule")
	chunk := flag.Int("chunk", 16, "chunk side length in cells")
	radius := flag.Int("radius", 10, "half-width of the random soup")
	count := flag.Int("count", 180, "number of random soup cells")
	rules := flag.String("rules", "B3/S23,B36/S23,B3678/S34678,B34/S34,B368/S245,B35678/S5678", "comma-separated rulestrings")
	top := flag.Int("top", 5, "results to print")
	flag.Parse()

	if err := validate(*workers, *seeds, *steps, *chunk, *radius, *count); err != nil {
		log.Fatal(err)
	}

	base := life.DefaultConfig()
	base.World.ChunkSize = *chunk
	base.World.SoupRadius = *radius
	base.World.SoupCount = *count

	var sets []scenario
	for _, r := range strings.Split(*rules, ",") {
		r = strings.TrimSpace(r)
		if _, err := life.ParseRule(r); err != nil {
			log.Printf("skipping rule %q: %v", r, err)
			continue
		}
		for s := 1; s <= *seeds; s++ {
			sets = append(sets, scenario{rule: r, seed: int64(s)})
		}
	}
	if len(sets) == 0 {
		log.Fatal("no valid rules to sweep")
	}

	fmt.Printf("Sweeping %d scenarios (%d workers, %d steps)\n", len(sets), *workers, *steps)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(base, sc, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	byRule := map[string][]scenarioResult{}
	for res := range results {
		byRule[res.rule] = append(byRule[res.rule], res)
	}
	elapsed := time.Since(start)

	type ruleSummary struct {
		rule       string
		meanPop    float64
		peak       int
		maxChunks  int
		extinct    int
		scenarios  int
		updatesSum int
	}
	var summaries []ruleSummary
	for rule, rs := range byRule {
		sum := ruleSummary{rule: rule, scenarios: len(rs)}
		for _, r := range rs {
			sum.meanPop += float64(r.population)
			sum.updatesSum += r.updates
			if r.peak > sum.peak {
				sum.peak = r.peak
			}
			if r.chunks > sum.maxChunks {
				sum.maxChunks = r.chunks
			}
			if r.extinctAt > 0 {
				sum.extinct++
			}
		}
		sum.meanPop /= float64(len(rs))
		summaries = append(summaries, sum)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].meanPop != summaries[j].meanPop {
			return summaries[i].meanPop > summaries[j].meanPop
		}
		return summaries[i].rule < summaries[j].rule
	})

	fmt.Printf("\nTop %d rules (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(summaries) && i < *top; i++ {
		s := summaries[i]
		fmt.Printf("%2d) %-14s meanPop=%.1f peak=%d maxChunks=%d extinct=%d/%d updates=%d\n",
			i+1, s.rule, s.meanPop, s.peak, s.maxChunks, s.extinct, s.scenarios, s.updatesSum)
	}
}

// validate rejects flag values the sweep cannot run with.
func validate(workers, seeds, steps, chunk, radius, count int) error {
	var errs []error
	if workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", workers))
	}
	if seeds <= 0 {
		errs = append(errs, fmt.Errorf("seeds must be positive, got %d", seeds))
	}
	if steps < 0 {
		errs = append(errs, fmt.Errorf("steps must not be negative, got %d", steps))
	}
	if chunk <= 0 {
		errs = append(errs, fmt.Errorf("chunk must be positive, got %d", chunk))
	}
	if radius < 0 || radius > core.MaxSoupRadius || count < 0 {
		errs = append(errs, fmt.Errorf("soup radius must be in [0, %d] and count non-negative, got %d and %d", core.MaxSoupRadius, radius, count))
	}
	return errors.Join(errs...)
}

// runScenario owns its grid; workers share nothing.
func runScenario(base life.Config, sc scenario, steps int) scenarioResult {
	cfg := base
	cfg.Rule = sc.rule
	cfg.World.Seed = sc.seed
	sim := life.NewWithConfig(cfg)
	sim.Reset(sc.seed)

	res := scenarioResult{scenario: sc}
	for step := 0; step < steps; step++ {
		st := sim.Step()
		res.updates += st.Updates
		pop := sim.Population()
		if pop > res.peak {
			res.peak = pop
		}
		if pop == 0 {
			res.extinctAt = step + 1
			break
		}
	}
	res.population = sim.Population()
	res.chunks = sim.Grid().Chunks()
	return res
}
