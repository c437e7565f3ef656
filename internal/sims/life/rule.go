package life

import (
	"fmt"
	"strings"

	"chunk-ca/pkg/grid"
)

const (
	dead  uint8 = 0
	alive uint8 = 1
)

var (
	born = grid.Const(alive)
	dies = grid.Const(dead)
)

// Rule is a Life-like outer-totalistic rule over the Moore neighborhood.
// Birth[n] and Survive[n] say what happens to a dead or live cell with n
// live neighbors.
type Rule struct {
	Birth   [9]bool
	Survive [9]bool
}

// Conway is B3/S23.
var Conway = MustParseRule("B3/S23")

// ParseRule parses a rulestring in B/S notation, e.g. "B36/S23". The S part
// may come first and either part may be empty.
func ParseRule(s string) (Rule, error) {
	var r Rule
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 {
		return r, fmt.Errorf("rule %q: expected B.../S...", s)
	}
	seen := map[byte]bool{}
	for _, part := range parts {
		if part == "" {
			return r, fmt.Errorf("rule %q: empty section", s)
		}
		kind := part[0]
		if kind != 'B' && kind != 'S' {
			return r, fmt.Errorf("rule %q: section %q must start with B or S", s, part)
		}
		if seen[kind] {
			return r, fmt.Errorf("rule %q: duplicate %c section", s, kind)
		}
		seen[kind] = true
		for _, c := range part[1:] {
			if c < '0' || c > '8' {
				return r, fmt.Errorf("rule %q: invalid neighbor count %q", s, c)
			}
			if kind == 'B' {
				r.Birth[c-'0'] = true
			} else {
				r.Survive[c-'0'] = true
			}
		}
	}
	if r.Birth[0] {
		return r, fmt.Errorf("rule %q: B0 would fill the unbounded plane", s)
	}
	return r, nil
}

// MustParseRule is like ParseRule but panics on error.
func MustParseRule(s string) Rule {
	r, err := ParseRule(s)
	if err != nil {
		panic(err)
	}
	return r
}

// String formats the rule in canonical B/S notation.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('B')
	for n, ok := range r.Birth {
		if ok {
			b.WriteByte(byte('0' + n))
		}
	}
	b.WriteString("/S")
	for n, ok := range r.Survive {
		if ok {
			b.WriteByte(byte('0' + n))
		}
	}
	return b.String()
}

// Evaluate implements grid.Rule. Cells in absent chunks count as dead.
func (r Rule) Evaluate(p grid.Point, cur grid.Cell[uint8], neighbors []grid.Cell[uint8]) []grid.Update[uint8] {
	live := 0
	for _, n := range neighbors {
		if n.Value == alive {
			live++
		}
	}
	if live > 8 {
		live = 8
	}
	if cur.Value == alive {
		if !r.Survive[live] {
			return []grid.Update[uint8]{{At: p, Next: dies}}
		}
		return nil
	}
	if r.Birth[live] {
		return []grid.Update[uint8]{{At: p, Next: born}}
	}
	return nil
}
