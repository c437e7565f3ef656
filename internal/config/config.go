// Package config resolves run settings from defaults, an optional YAML file
// and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"chunk-ca/internal/core"
)

// Config represents the settings shared by the command-line tools.
type Config struct {
	File string `yaml:"-"`

	Sim    string `yaml:"sim"`
	Chunk  int    `yaml:"chunk"`
	Seed   int64  `yaml:"seed"`
	Radius int    `yaml:"radius"`
	Count  int    `yaml:"count"`

	Ticks int  `yaml:"ticks"`
	Print bool `yaml:"print"`

	Scale  int `yaml:"scale"`
	TPS    int `yaml:"tps"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Addr string `yaml:"addr"`

	// Options are passed verbatim to the sim factory, e.g. rule: B36/S23.
	Options Options `yaml:"options"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:     "life",
		Chunk:   32,
		Seed:    2,
		Radius:  7,
		Count:   250,
		Ticks:   2000,
		Scale:   4,
		TPS:     30,
		Width:   200,
		Height:  150,
		Addr:    ":8080",
		Options: Options{},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.File, "config", c.File, "YAML file with default settings")
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Chunk, "chunk", c.Chunk, "chunk side length in cells")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random soup")
	fs.IntVar(&c.Radius, "radius", c.Radius, "half-width of the random soup")
	fs.IntVar(&c.Count, "count", c.Count, "number of random soup cells")
	fs.IntVar(&c.Ticks, "ticks", c.Ticks, "generations to run")
	fs.BoolVar(&c.Print, "print", c.Print, "print the grid as ASCII when done")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Width, "width", c.Width, "viewport width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "viewport height in cells")
	fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP listen address")
	fs.Var(&c.Options, "set", "sim option in key=value form (repeatable)")
}

// Parse binds c to fs, parses args and, when -config names a file, loads
// it underneath the flags that were given explicitly.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	c := NewConfig()
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.File == "" {
		return c, c.Validate()
	}

	explicit := map[string]string{}
	fs.Visit(func(f *flag.Flag) {
		if f.Name != "config" && f.Name != "set" {
			explicit[f.Name] = f.Value.String()
		}
	})
	flagOpts := c.Options
	c.Options = Options{}

	if err := c.Load(c.File); err != nil {
		return nil, err
	}
	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return nil, fmt.Errorf("reapply -%s: %w", name, err)
		}
	}
	for k, v := range flagOpts {
		c.Options[k] = v
	}
	return c, c.Validate()
}

// Load reads YAML from path into c. Keys missing from the file keep their
// current values.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if c.Options == nil {
		c.Options = Options{}
	}
	return nil
}

// Validate rejects settings no tool can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Sim == "" {
		errs = append(errs, errors.New("sim must not be empty"))
	}
	if c.Chunk <= 0 {
		errs = append(errs, fmt.Errorf("chunk must be positive, got %d", c.Chunk))
	}
	if c.Radius < 0 || c.Count < 0 {
		errs = append(errs, fmt.Errorf("soup radius and count must not be negative, got %d and %d", c.Radius, c.Count))
	}
	if c.Radius > core.MaxSoupRadius {
		errs = append(errs, fmt.Errorf("soup radius must be at most %d, got %d", core.MaxSoupRadius, c.Radius))
	}
	if c.Ticks < 0 {
		errs = append(errs, fmt.Errorf("ticks must not be negative, got %d", c.Ticks))
	}
	if c.Scale <= 0 || c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, errors.New("scale, width and height must be positive"))
	}
	return errors.Join(errs...)
}

// SimOptions returns the key/value map handed to a sim factory: the world
// settings plus any extra options.
func (c *Config) SimOptions() map[string]string {
	m := map[string]string{
		"chunk":  strconv.Itoa(c.Chunk),
		"seed":   strconv.FormatInt(c.Seed, 10),
		"radius": strconv.Itoa(c.Radius),
		"count":  strconv.Itoa(c.Count),
	}
	for k, v := range c.Options {
		m[k] = v
	}
	return m
}

// Options collects repeatable key=value flags.
type Options map[string]string

// String implements flag.Value.
func (o *Options) String() string {
	if o == nil || len(*o) == 0 {
		return ""
	}
	parts := make([]string, 0, len(*o))
	for k, v := range *o {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value.
func (o *Options) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || key == "" {
		return fmt.Errorf("option %q: expected key=value", value)
	}
	if *o == nil {
		*o = Options{}
	}
	(*o)[key] = val
	return nil
}
