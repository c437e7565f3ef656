package core

import "strconv"

// MaxSoupRadius bounds the soup half-width.
const MaxSoupRadius = 1 << 20

// World holds the settings every chunked sim shares: chunk geometry and the
// random soup used by Reset.
type World struct {
	ChunkSize  int
	Seed       int64
	SoupRadius int
	SoupCount  int
}

// DefaultWorld mirrors the benchmark setup: 32-cell chunks and 250 random
// cells within 7 of the origin on each axis.
func DefaultWorld() World {
	return World{ChunkSize: 32, Seed: 2, SoupRadius: 7, SoupCount: 250}
}

// WorldFromMap overlays flag-style key/value pairs on base.
func WorldFromMap(base World, cfg map[string]string) World {
	c := base
	if cfg == nil {
		return c
	}
	if v, ok := cfg["chunk"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ChunkSize = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= MaxSoupRadius {
			c.SoupRadius = parsed
		}
	}
	if v, ok := cfg["count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.SoupCount = parsed
		}
	}
	return c
}

// Group reports the world settings for a parameter snapshot.
func (w World) Group() ParameterGroup {
	return ParameterGroup{
		Name: "Soup",
		Params: []Parameter{
			Int64Param("seed", "Seed", w.Seed),
			IntParam("radius", "Soup radius", w.SoupRadius),
			IntParam("count", "Soup cells", w.SoupCount),
		},
	}
}

// Controls returns the HUD controls for the soup settings.
func (w World) Controls() []ParameterControl {
	return []ParameterControl{
		{Key: "radius", Label: "Soup radius", Step: 1, Min: 0, Max: 256},
		{Key: "count", Label: "Soup cells", Step: 25, Min: 0, Max: 100000},
	}
}

// SetInt updates radius or count, reporting whether key was recognised.
func (w *World) SetInt(key string, value int) bool {
	switch key {
	case "radius":
		if value < 0 || value > MaxSoupRadius {
			return false
		}
		w.SoupRadius = value
	case "count":
		if value < 0 {
			return false
		}
		w.SoupCount = value
	default:
		return false
	}
	return true
}
