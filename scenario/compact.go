package scenario

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/katalvlaran/tworow/board"
)

// The compact notation: pairs separated by ";" or newlines, each two
// connections "A-B" with an optional "[label]" in front. "#" starts a
// comment.
//
//	[opening] t0-b0 t1-b1; t1-b2 t2-b0
//	top-2-bottom-3, top-3-bottom-3
type compactDoc struct {
	Pairs []*compactPair `(@@ ";"?)*`
}

type compactPair struct {
	Label  string       `@Label?`
	First  *compactConn `@@ ","?`
	Second *compactConn `@@`
}

type compactConn struct {
	A string `@Vertex "-"`
	B string `@Vertex`
}

var compactLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Label", Pattern: `\[[^\]\n]*\]`},
	{Name: "Vertex", Pattern: `(?i)(?:top|bottom|t|b)-?\d+`},
	{Name: "Punct", Pattern: `[-;,]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parseCompact = participle.MustBuild[compactDoc](
	participle.Lexer(compactLexer),
	participle.Elide("Whitespace", "Comment"),
)

// ParseCompact decodes the compact notation. The level always comes from
// the caller.
func ParseCompact(text, level string) (Scenario, error) {
	doc, err := parseCompact.ParseString("", text)
	if err != nil {
		return Scenario{}, fmt.Errorf("%w: compact: %v", ErrInvalid, err)
	}
	sc := Scenario{Level: level}
	for i, cp := range doc.Pairs {
		var conns [2]board.Connection
		for j, c := range []*compactConn{cp.First, cp.Second} {
			conn, err := c.connection()
			if err != nil {
				return Scenario{}, fmt.Errorf("%w: pair #%d, connection #%d: %v", ErrInvalid, i+1, j+1, err)
			}
			conns[j] = conn
		}
		sc.Pairs = append(sc.Pairs, Pair{
			Label: strings.TrimSpace(strings.Trim(cp.Label, "[]")),
			Pair:  board.Pair{First: conns[0], Second: conns[1]},
		})
	}
	if err = sc.Validate(); err != nil {
		return Scenario{}, err
	}

	return sc, nil
}

func (c *compactConn) connection() (board.Connection, error) {
	a, err := board.ParseVertex(c.A)
	if err != nil {
		return board.Connection{}, err
	}
	b, err := board.ParseVertex(c.B)
	if err != nil {
		return board.Connection{}, err
	}

	return board.Connect(a, b)
}

// Compact renders sc in the compact notation, one pair per line.
func (sc Scenario) Compact() string {
	var b strings.Builder
	for _, p := range sc.Pairs {
		if p.Label != "" {
			fmt.Fprintf(&b, "[%s] ", p.Label)
		}
		fmt.Fprintf(&b, "%s-%s %s-%s\n",
			p.Pair.First.Top, p.Pair.First.Bottom,
			p.Pair.Second.Top, p.Pair.Second.Bottom)
	}

	return b.String()
}
