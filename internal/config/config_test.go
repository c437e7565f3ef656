package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Sim != "life" || c.Chunk != 32 || c.Ticks != 2000 {
		t.Fatalf("unexpected defaults %+v", c)
	}
}

func TestFileUnderFlags(t *testing.T) {
	path := writeFile(t, `
sim: briansbrain
chunk: 8
ticks: 50
options:
  rule: B36/S23
  extra: one
`)
	c, err := Parse(newFlagSet(), []string{"-config", path, "-ticks", "7", "-set", "extra=two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Sim != "briansbrain" || c.Chunk != 8 {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.Ticks != 7 {
		t.Fatalf("explicit flag must win over file, got ticks=%d", c.Ticks)
	}
	if c.Seed != 2 {
		t.Fatalf("keys missing from file must keep defaults, got seed=%d", c.Seed)
	}
	if c.Options["rule"] != "B36/S23" || c.Options["extra"] != "two" {
		t.Fatalf("unexpected options %v", c.Options)
	}
}

func TestParseRejectsBadFile(t *testing.T) {
	path := writeFile(t, "chunk: [not, a, number]\n")
	if _, err := Parse(newFlagSet(), []string{"-config", path}); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Parse(newFlagSet(), []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatal("expected missing file error")
	}
}

func TestValidate(t *testing.T) {
	c := NewConfig()
	c.Chunk = 0
	c.Count = -1
	err := c.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "chunk") || !strings.Contains(err.Error(), "count") {
		t.Fatalf("expected both problems reported, got %v", err)
	}
	if _, err := Parse(newFlagSet(), []string{"-chunk", "-4"}); err == nil {
		t.Fatal("expected negative chunk to be rejected")
	}
	if _, err := Parse(newFlagSet(), []string{"-radius", "9223372036854775807"}); err == nil {
		t.Fatal("expected an oversized radius to be rejected")
	}
	if _, err := Parse(newFlagSet(), []string{"-radius", "1048576"}); err != nil {
		t.Fatalf("radius at the limit must be accepted: %v", err)
	}
}

func TestSimOptions(t *testing.T) {
	c := NewConfig()
	c.Chunk = 16
	c.Options["rule"] = "B3/S23"
	c.Options["chunk"] = "4"
	m := c.SimOptions()
	if m["rule"] != "B3/S23" || m["seed"] != "2" {
		t.Fatalf("unexpected options %v", m)
	}
	if m["chunk"] != "4" {
		t.Fatalf("explicit option should override world setting, got %s", m["chunk"])
	}
}

func TestOptionsSet(t *testing.T) {
	var o Options
	if err := o.Set("rule=B3/S23"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := o.Set("novalue"); err == nil {
		t.Fatal("expected error for missing =")
	}
	if o["rule"] != "B3/S23" || o.String() != "rule=B3/S23" {
		t.Fatalf("unexpected options %v", o)
	}
}
