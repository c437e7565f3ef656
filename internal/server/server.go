// Package server exposes one simulation over HTTP for inspection and
// driving. All access to the simulation is serialised by a mutex.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"chunk-ca/internal/core"
	"chunk-ca/pkg/grid"
)

// MaxTicksPerRequest bounds POST /tick?n=.
const MaxTicksPerRequest = 10000

// MaxRenderCells bounds the area GET /render will draw.
const MaxRenderCells = 1 << 22

// Server owns a simulation and serves it over HTTP.
type Server struct {
	mu      sync.Mutex
	sim     core.Sim
	seed    int64
	playing bool
	last    grid.TickStats
	clock   *core.FixedStep
}

// New wraps sim. tps sets the autoplay rate used by Run.
func New(sim core.Sim, seed int64, tps int) *Server {
	return &Server{sim: sim, seed: seed, clock: core.NewFixedStep(tps)}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/sim", s.getSim)
	r.Get("/render", s.getRender)
	r.Get("/cells/{x}/{z}", s.getCell)
	r.Put("/cells/{x}/{z}", s.putCell)
	r.Post("/tick", s.postTick)
	r.Post("/reset", s.postReset)
	r.Post("/play", s.setPlaying(true))
	r.Post("/pause", s.setPlaying(false))
	return r
}

// Run advances the simulation at the configured rate while playing, until
// ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.clock.Step())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.mu.Lock()
			due := s.clock.Due(4)
			if s.playing {
				for i := 0; i < due; i++ {
					s.last = s.sim.Step()
				}
			}
			s.mu.Unlock()
		}
	}
}

// SimStatus is the body of GET /sim.
type SimStatus struct {
	Name       string                  `json:"name"`
	Generation int                     `json:"generation"`
	Chunks     int                     `json:"chunks"`
	Playing    bool                    `json:"playing"`
	Bounds     *Bounds                 `json:"bounds,omitempty"`
	LastTick   grid.TickStats          `json:"last_tick"`
	Parameters *core.ParameterSnapshot `json:"parameters,omitempty"`
}

// Bounds is the allocated region in cell coordinates; Max is exclusive.
type Bounds struct {
	Min grid.Point `json:"min"`
	Max grid.Point `json:"max"`
}

// CellValue is the body of GET and PUT /cells/{x}/{z}.
type CellValue struct {
	X       int  `json:"x"`
	Z       int  `json:"z"`
	Value   int  `json:"value"`
	Present bool `json:"present"`
}

func (s *Server) getSim(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.status())
}

func (s *Server) status() SimStatus {
	g := s.sim.Grid()
	st := SimStatus{
		Name:       s.sim.Name(),
		Generation: g.Generation(),
		Chunks:     g.Chunks(),
		Playing:    s.playing,
		LastTick:   s.last,
	}
	if min, max, ok := g.PointBounds(); ok {
		st.Bounds = &Bounds{Min: min, Max: max}
	}
	if p, ok := s.sim.(core.ParameterProvider); ok {
		snap := p.Parameters()
		st.Parameters = &snap
	}
	return st
}

func (s *Server) getRender(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	g := s.sim.Grid()
	if width, height, ok := g.Extent(); ok && !fitsRender(width, height) {
		s.mu.Unlock()
		respondError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Region %dx%d exceeds %d cells", width, height, MaxRenderCells))
		return
	}
	out := g.Render(func(v uint8) bool { return v != 0 })
	s.mu.Unlock()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

func (s *Server) getCell(w http.ResponseWriter, r *http.Request) {
	p, err := pointParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	v, ok := s.sim.Grid().Get(p)
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, CellValue{X: p.X, Z: p.Z, Value: int(v), Present: ok})
}

func (s *Server) putCell(w http.ResponseWriter, r *http.Request) {
	p, err := pointParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var body CellValue
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if body.Value < 0 || body.Value > 255 {
		respondError(w, http.StatusBadRequest, "Value must be in [0, 255]")
		return
	}
	s.mu.Lock()
	s.sim.Grid().Set(p, uint8(body.Value))
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, CellValue{X: p.X, Z: p.Z, Value: body.Value, Present: true})
}

func (s *Server) postTick(w http.ResponseWriter, r *http.Request) {
	n := 1
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > MaxTicksPerRequest {
			respondError(w, http.StatusBadRequest, "n must be an integer in [1, "+strconv.Itoa(MaxTicksPerRequest)+"]")
			return
		}
		n = parsed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.last = s.sim.Step()
	}
	respondJSON(w, http.StatusOK, s.status())
}

func (s *Server) postReset(w http.ResponseWriter, r *http.Request) {
	seed := s.seed
	if raw := r.URL.Query().Get("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid seed")
			return
		}
		seed = parsed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = seed
	s.sim.Reset(seed)
	s.last = grid.TickStats{}
	log.Printf("reset %s with seed %d", s.sim.Name(), seed)
	respondJSON(w, http.StatusOK, s.status())
}

func (s *Server) setPlaying(playing bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.playing = playing
		respondJSON(w, http.StatusOK, s.status())
	}
}

// fitsRender reports whether a width*height region is within MaxRenderCells.
func fitsRender(width, height int) bool {
	return width <= MaxRenderCells && height <= MaxRenderCells && width*height <= MaxRenderCells
}

func pointParam(r *http.Request) (grid.Point, error) {
	x, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		return grid.Point{}, errors.New("invalid x coordinate")
	}
	z, err := strconv.Atoi(chi.URLParam(r, "z"))
	if err != nil {
		return grid.Point{}, errors.New("invalid z coordinate")
	}
	return grid.Pt(x, z), nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
