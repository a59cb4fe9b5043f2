// Package scenario reads scripted pair sequences and replays them through
// an engine, recording what every check said about every pair.
//
// Three input formats are accepted:
//
//	JSON     {"level": "Level 3", "pairs": [[["top-0","bottom-0"],["top-1","bottom-1"]], ...]}
//	YAML     the same document in YAML
//	compact  [first] t0-b0 t1-b1; t1-b2 t2-b0
//
// A pair is either a two-element list of connections or an object with a
// label (or id) and connections (or edges). A connection is a two-element
// list of vertex names, an object with nodes, or an object with top and
// bottom. Endpoints may be given bottom first; they are normalised.
package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tworow/board"
)

// ErrInvalid wraps every malformed scenario.
var ErrInvalid = errors.New("scenario: invalid")

// Pair is one scripted pair.
type Pair struct {
	Label string     `json:"label,omitempty" yaml:"label,omitempty" validate:"max=128"`
	Pair  board.Pair `json:"pair" yaml:"-"`
}

// Scenario is a level plus the pairs to replay in order.
type Scenario struct {
	Level string `json:"level" yaml:"level" validate:"required"`
	Pairs []Pair `json:"pairs" yaml:"pairs" validate:"dive"`
}

var validate = validator.New()

// Validate checks the level is named and labels are sane.
func (s Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// Parse sniffs the format of data and decodes it. fallbackLevel is used
// when the document names none.
func Parse(data []byte, fallbackLevel string) (Scenario, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return Scenario{}, fmt.Errorf("%w: empty input", ErrInvalid)
	case trimmed[0] == '{' || (trimmed[0] == '[' && json.Valid(trimmed)):
		return ParseJSON(trimmed, fallbackLevel)
	case looksLikeYAML(trimmed):
		return ParseYAML(trimmed, fallbackLevel)
	default:
		return ParseCompact(string(trimmed), fallbackLevel)
	}
}

func looksLikeYAML(b []byte) bool {
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		for _, key := range []string{"level:", "pairs:", "sequence:", "steps:"} {
			if strings.HasPrefix(line, key) {
				return true
			}
		}
	}

	return false
}

// ParseJSON decodes a JSON scenario. A bare array is read as the pairs.
func ParseJSON(data []byte, fallbackLevel string) (Scenario, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Scenario{}, fmt.Errorf("%w: json: %v", ErrInvalid, err)
	}

	return normalize(raw, fallbackLevel)
}

// ParseYAML decodes a YAML scenario.
func ParseYAML(data []byte, fallbackLevel string) (Scenario, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Scenario{}, fmt.Errorf("%w: yaml: %v", ErrInvalid, err)
	}

	return normalize(raw, fallbackLevel)
}

func normalize(raw any, fallbackLevel string) (Scenario, error) {
	var (
		sc  = Scenario{Level: fallbackLevel}
		seq []any
	)
	switch doc := raw.(type) {
	case []any:
		seq = doc
	case map[string]any:
		if lvl, ok := doc["level"].(string); ok && lvl != "" {
			sc.Level = lvl
		}
		var found bool
		for _, key := range []string{"pairs", "sequence", "steps"} {
			if seq, found = doc[key].([]any); found {
				break
			}
		}
		if !found {
			return Scenario{}, fmt.Errorf("%w: want a pairs (or sequence) list", ErrInvalid)
		}
	default:
		return Scenario{}, fmt.Errorf("%w: want an object with level and pairs", ErrInvalid)
	}

	for i, item := range seq {
		p, err := normalizePair(item, i)
		if err != nil {
			return Scenario{}, err
		}
		sc.Pairs = append(sc.Pairs, p)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}

	return sc, nil
}

func normalizePair(item any, i int) (Pair, error) {
	var (
		p     Pair
		conns []any
	)
	switch v := item.(type) {
	case []any:
		conns = v
	case map[string]any:
		p.Label = firstString(v, "label", "id")
		if c, ok := v["connections"].([]any); ok {
			conns = c
		} else if c, ok := v["edges"].([]any); ok {
			conns = c
		}
	}
	if len(conns) != 2 {
		return Pair{}, fmt.Errorf("%w: pair #%d must describe exactly two connections", ErrInvalid, i+1)
	}
	var out [2]board.Connection
	for j, c := range conns {
		conn, err := normalizeConnection(c)
		if err != nil {
			return Pair{}, fmt.Errorf("%w: pair #%d, connection #%d: %v", ErrInvalid, i+1, j+1, err)
		}
		out[j] = conn
	}
	p.Pair = board.Pair{First: out[0], Second: out[1]}

	return p, nil
}

func normalizeConnection(c any) (board.Connection, error) {
	var nodes []any
	switch v := c.(type) {
	case []any:
		nodes = v
	case map[string]any:
		if n, ok := v["nodes"].([]any); ok {
			nodes = n
		} else {
			nodes = []any{v["top"], v["bottom"]}
		}
	}
	if len(nodes) != 2 {
		return board.Connection{}, errors.New("must specify two nodes")
	}
	var ends [2]board.Vertex
	for k, n := range nodes {
		s, ok := n.(string)
		if !ok {
			return board.Connection{}, fmt.Errorf("node %v is not a string", n)
		}
		v, err := board.ParseVertex(s)
		if err != nil {
			return board.Connection{}, err
		}
		ends[k] = v
	}

	return board.Connect(ends[0], ends[1])
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			return v
		case int, float64:
			return fmt.Sprint(v)
		}
	}

	return ""
}
