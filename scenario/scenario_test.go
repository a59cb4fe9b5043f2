package scenario_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/engine"
	"github.com/katalvlaran/tworow/scenario"
	"github.com/katalvlaran/tworow/verdict"
)

const triangle = `
# bottom triangle
t0-b0 t1-b1; t2-b1 t3-b2
[triangle] t4-b0 t5-b2
b3-t4, t5-b3
`

func conn(t, b uint) board.Connection {
	return board.Connection{Top: board.T(t), Bottom: board.B(b)}
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	return e
}

func TestParseCompact(t *testing.T) {
	sc, err := scenario.ParseCompact(triangle, "Level 3.G4")
	require.NoError(t, err)
	assert.Equal(t, "Level 3.G4", sc.Level)
	require.Len(t, sc.Pairs, 4)
	assert.Equal(t, board.Pair{First: conn(2, 1), Second: conn(3, 2)}, sc.Pairs[1].Pair)
	assert.Equal(t, "triangle", sc.Pairs[2].Label)
	assert.Equal(t, board.Pair{First: conn(4, 3), Second: conn(5, 3)}, sc.Pairs[3].Pair, "bottom-first normalised")

	long, err := scenario.ParseCompact("top-0-bottom-0 TOP-1-Bottom-1", "Level 2")
	require.NoError(t, err)
	assert.Equal(t, board.Pair{First: conn(0, 0), Second: conn(1, 1)}, long.Pairs[0].Pair)

	back, err := scenario.ParseCompact(sc.Compact(), sc.Level)
	require.NoError(t, err)
	assert.Equal(t, sc, back)
}

func TestParse_Formats(t *testing.T) {
	want := []board.Pair{
		{First: conn(0, 0), Second: conn(1, 0)},
		{First: conn(1, 1), Second: conn(0, 1)},
	}
	docs := map[string]string{
		"json lists": `{"level":"Level 2","pairs":[
			[["top-0","bottom-0"],["top-1","bottom-0"]],
			[["bottom-1","top-1"],["top-0","bottom-1"]]]}`,
		"json objects": `{"level":"Level 2","sequence":[
			{"label":"p1","connections":[{"top":"top-0","bottom":"bottom-0"},{"nodes":["top-1","bottom-0"]}]},
			{"id":"p2","edges":[["t1","b1"],["t0","b1"]]}]}`,
		"yaml": `
level: Level 2
pairs:
  - label: p1
    connections: [[top-0, bottom-0], [top-1, bottom-0]]
  - [[b1, t1], [t0, b1]]
`,
		"compact": "t0-b0 t1-b0\nt1-b1 t0-b1\n",
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			sc, err := scenario.Parse([]byte(doc), "Level 2")
			require.NoError(t, err)
			assert.Equal(t, "Level 2", sc.Level)
			require.Len(t, sc.Pairs, len(want))
			for i := range want {
				assert.Equal(t, want[i], sc.Pairs[i].Pair)
			}
		})
	}

	sc, err := scenario.Parse([]byte(`[[["t0","b0"],["t1","b1"]]]`), "Level 3")
	require.NoError(t, err)
	assert.Equal(t, "Level 3", sc.Level, "bare array takes the fallback level")
	assert.Len(t, sc.Pairs, 1)
}

func TestParse_Rejects(t *testing.T) {
	tests := map[string]string{
		"empty":           "   ",
		"no level":        `{"pairs":[]}`,
		"no pairs":        `{"level":"Level 2"}`,
		"three conns":     `{"level":"L","pairs":[[["t0","b0"],["t1","b1"],["t2","b2"]]]}`,
		"same row":        `{"level":"L","pairs":[[["t0","t1"],["t1","b1"]]]}`,
		"bad vertex":      `{"level":"L","pairs":[[["x0","b0"],["t1","b1"]]]}`,
		"number node":     `{"level":"L","pairs":[[[1,"b0"],["t1","b1"]]]}`,
		"compact garbage": "t0-b0 t1",
		"compact rows":    "t0-t1 t1-b1",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(doc), "")
			assert.ErrorIs(t, err, scenario.ErrInvalid)
		})
	}
}

func TestReplay_StopsAtFailure(t *testing.T) {
	sc, err := scenario.ParseCompact(triangle, "Level 3.G4")
	require.NoError(t, err)
	e := newEngine(t)

	rep, err := scenario.Replay(context.Background(), e, sc, scenario.Options{})
	require.NoError(t, err)
	require.Len(t, rep.Steps, 3)
	assert.False(t, rep.OK())
	failed := rep.Failed()
	require.NotNil(t, failed)
	assert.Equal(t, 3, failed.Index)
	assert.Equal(t, "triangle", failed.Label)
	assert.Equal(t, verdict.Girth, failed.Code)
	assert.Len(t, rep.Final.Pairs, 2, "failed pair rolled back")
	assert.Nil(t, rep.Steps[0].StateAfter)

	var out bytes.Buffer
	require.NoError(t, rep.WriteText(&out))
	assert.Contains(t, out.String(), "Level: Level 3.G4\nConstraints: orientation, girth(4)\n")
	assert.Contains(t, out.String(), "#3 (triangle): top-4->bottom-0 , top-5->bottom-2 [FAIL]")
	assert.Contains(t, out.String(), "Stopped at step #3 due to girth(4).")
}

func TestReplay_ContinueAndVerbose(t *testing.T) {
	sc, err := scenario.ParseCompact(triangle, "Level 3.G4")
	require.NoError(t, err)

	rep, err := scenario.Replay(context.Background(), newEngine(t), sc, scenario.Options{Continue: true, Verbose: true})
	require.NoError(t, err)
	require.Len(t, rep.Steps, 4)
	assert.False(t, rep.Steps[2].OK)
	assert.True(t, rep.Steps[3].OK)
	require.NotNil(t, rep.Steps[3].StateAfter)
	assert.Equal(t, board.Right, rep.Steps[3].StateAfter.Orientation.Top["top-4,top-5"])
	assert.Len(t, rep.Final.Pairs, 3)

	var out bytes.Buffer
	require.NoError(t, rep.WriteText(&out))
	assert.Contains(t, out.String(), "Failure at step #3 due to girth(4), continued processing remaining steps.")
	assert.Contains(t, out.String(), "top orientation: {")

	b, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"finalState"`)
	assert.Contains(t, string(b), `"topSequence"`)
}

func TestReplay_FoldsAndErrors(t *testing.T) {
	sc, err := scenario.ParseCompact(`
t0-b0 t1-b1
t2-b0 t3-b1
t2-b2 t3-b3
t0-b2 t4-b3
`, "Level 3")
	require.NoError(t, err)
	rep, err := scenario.Replay(context.Background(), newEngine(t), sc, scenario.Options{})
	require.NoError(t, err)
	failed := rep.Failed()
	require.NotNil(t, failed)
	assert.Equal(t, []string{"top-0,top-1", "top-0,top-4"}, failed.Folds)

	_, err = scenario.Replay(context.Background(), newEngine(t), scenario.Scenario{Level: "Level 99"}, scenario.Options{})
	assert.True(t, board.IsContract(err))

	dup, err := scenario.ParseCompact("t0-b0 t1-b1; t0-b0 t2-b2", "Level 2")
	require.NoError(t, err)
	rep, err = scenario.Replay(context.Background(), newEngine(t), dup, scenario.Options{})
	assert.ErrorIs(t, err, board.ErrDuplicateConnection)
	require.NotNil(t, rep)
	assert.Len(t, rep.Steps, 1)

	empty, err := scenario.Replay(context.Background(), newEngine(t), scenario.Scenario{Level: "Level 1"}, scenario.Options{})
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, empty.WriteText(&out))
	assert.Equal(t, "Level: Level 1\nConstraints: none\nNo connection pairs processed.\n", out.String())
}
