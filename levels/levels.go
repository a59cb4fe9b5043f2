// Package levels maps level identifiers to the ordered checks a pair must
// pass, and runs them.
//
// The catalogue is a YAML document embedded in the binary (levels.yaml).
// Each level names its checks and the levels that unlock it; the unlock
// relation must form a DAG. Order lists levels prerequisites-first.
//
// Errors:
//
//	ErrUnknownLevel        - the level ID is not in the catalogue (a contract error).
//	ErrUnknownCheck        - a check name in the catalogue cannot be parsed.
//	ErrCyclicPrerequisites - the requires relation has a cycle.
package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/core"
	"github.com/katalvlaran/tworow/dfs"
)

//go:embed levels.yaml
var catalogue []byte

var (
	// ErrUnknownLevel is returned for a level ID missing from the catalogue.
	ErrUnknownLevel = fmt.Errorf("%w: levels: unknown level", board.ErrContract)

	// ErrUnknownCheck is returned when a check name cannot be parsed.
	ErrUnknownCheck = errors.New("levels: unknown check")

	// ErrCyclicPrerequisites is returned when levels require each other.
	ErrCyclicPrerequisites = errors.New("levels: cyclic prerequisites")
)

// Kind names a check family.
type Kind string

// Check kinds, spelled as in the catalogue.
const (
	Orientation Kind = "orientation"
	NoFold      Kind = "noFold"
	NoPattern   Kind = "noPattern"
	Girth       Kind = "girth"
)

// Check is one entry of a level's check list. Bound is the minimum cycle
// length for Girth and zero otherwise.
type Check struct {
	Kind  Kind
	Bound int
}

// ParseCheck accepts "orientation", "noFold", "noPattern" and "girth(N)".
func ParseCheck(s string) (Check, error) {
	s = strings.TrimSpace(s)
	switch Kind(s) {
	case Orientation, NoFold, NoPattern:
		return Check{Kind: Kind(s)}, nil
	}
	if rest, ok := strings.CutPrefix(s, string(Girth)+"("); ok {
		if n, ok := strings.CutSuffix(rest, ")"); ok {
			bound, err := strconv.Atoi(n)
			if err == nil && bound > 0 {
				return Check{Kind: Girth, Bound: bound}, nil
			}
		}
	}

	return Check{}, fmt.Errorf("%w: %q", ErrUnknownCheck, s)
}

// String returns the catalogue spelling, e.g. "girth(4)".
func (c Check) String() string {
	if c.Kind == Girth {
		return fmt.Sprintf("%s(%d)", c.Kind, c.Bound)
	}

	return string(c.Kind)
}

// MarshalText encodes the catalogue spelling.
func (c Check) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText decodes the catalogue spelling.
func (c *Check) UnmarshalText(b []byte) error {
	parsed, err := ParseCheck(string(b))
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}

// UnmarshalYAML decodes a scalar check name.
func (c *Check) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: want a scalar", ErrUnknownCheck, n.Line)
	}

	return c.UnmarshalText([]byte(n.Value))
}

// Level is one catalogue entry.
type Level struct {
	ID          string   `yaml:"id" json:"id"`
	Description string   `yaml:"description" json:"description"`
	Checks      []Check  `yaml:"checks" json:"checks"`
	Requires    []string `yaml:"requires,omitempty" json:"requires,omitempty"`
}

// Policy is a parsed, validated catalogue.
type Policy struct {
	levels []Level
	byID   map[string]int
}

// Parse decodes and validates a catalogue: IDs are unique, every
// prerequisite exists and the prerequisite relation is acyclic.
func Parse(data []byte) (*Policy, error) {
	var doc struct {
		Levels []Level `yaml:"levels"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("levels: parse: %w", err)
	}
	p := &Policy{levels: doc.Levels, byID: make(map[string]int, len(doc.Levels))}
	for i, l := range p.levels {
		if l.ID == "" {
			return nil, fmt.Errorf("levels: parse: entry %d has no id", i)
		}
		if _, dup := p.byID[l.ID]; dup {
			return nil, fmt.Errorf("levels: parse: duplicate id %q", l.ID)
		}
		p.byID[l.ID] = i
	}
	for _, l := range p.levels {
		for _, req := range l.Requires {
			if req == l.ID {
				return nil, fmt.Errorf("%w: %q requires itself", ErrCyclicPrerequisites, req)
			}
			if _, ok := p.byID[req]; !ok {
				return nil, fmt.Errorf("levels: parse: %q requires %w %q", l.ID, ErrUnknownLevel, req)
			}
		}
	}
	if _, err := p.Order(); err != nil {
		return nil, err
	}

	return p, nil
}

// Default returns the embedded catalogue. It panics if the embedded file is
// invalid, which the package tests rule out.
func Default() *Policy {
	p, err := Parse(catalogue)
	if err != nil {
		panic(err)
	}

	return p
}

// Levels returns every level in catalogue order.
func (p *Policy) Levels() []Level {
	out := make([]Level, len(p.levels))
	for i, l := range p.levels {
		l.Checks = slices.Clone(l.Checks)
		l.Requires = slices.Clone(l.Requires)
		out[i] = l
	}

	return out
}

// Level returns the entry for id.
func (p *Policy) Level(id string) (Level, error) {
	i, ok := p.byID[id]
	if !ok {
		return Level{}, fmt.Errorf("%w: %q", ErrUnknownLevel, id)
	}
	l := p.levels[i]
	l.Checks = slices.Clone(l.Checks)
	l.Requires = slices.Clone(l.Requires)

	return l, nil
}

// Checks returns the ordered checks of level id.
func (p *Policy) Checks(id string) ([]Check, error) {
	l, err := p.Level(id)
	if err != nil {
		return nil, err
	}

	return l.Checks, nil
}

// graph builds the unlock graph: an edge prerequisite -> level. Vertices
// enumerate in catalogue order. reverse flips every edge.
func (p *Policy) graph(reverse bool) *core.Graph {
	g := core.NewGraph(core.WithDirected(true), core.WithVertexOrder(func(a, b string) int {
		return p.byID[a] - p.byID[b]
	}))
	for _, l := range p.levels {
		_ = g.AddVertex(l.ID)
		for _, req := range l.Requires {
			if reverse {
				_, _ = g.AddEdge(l.ID, req)
			} else {
				_, _ = g.AddEdge(req, l.ID)
			}
		}
	}

	return g
}

// Order returns every level ID with prerequisites before the levels they
// unlock; unrelated levels keep catalogue order.
func (p *Policy) Order() ([]string, error) {
	g := p.graph(false)
	order, err := dfs.TopologicalSort(g)
	if errors.Is(err, dfs.ErrCycleDetected) {
		_, cycles, _ := dfs.DetectCycles(g)
		if len(cycles) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrCyclicPrerequisites, strings.Join(cycles[0], " -> "))
		}
		return nil, fmt.Errorf("%w: %v", ErrCyclicPrerequisites, err)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: order: %w", err)
	}

	return order, nil
}

// Prerequisites returns every level that must be cleared before id, direct
// or transitive, in catalogue order.
func (p *Policy) Prerequisites(id string) ([]string, error) {
	if _, ok := p.byID[id]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, id)
	}
	res, err := dfs.DFS(p.graph(true), id)
	if err != nil {
		return nil, fmt.Errorf("levels: prerequisites of %q: %w", id, err)
	}
	var out []string
	for _, l := range p.levels {
		if l.ID != id && res.Visited[l.ID] {
			out = append(out, l.ID)
		}
	}

	return out, nil
}
