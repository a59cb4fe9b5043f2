package levels_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/levels"
	"github.com/katalvlaran/tworow/orientation"
	"github.com/katalvlaran/tworow/patternlog"
	"github.com/katalvlaran/tworow/verdict"
)

func TestDefault_CheckLists(t *testing.T) {
	p := levels.Default()

	tests := map[string]string{
		"Level 1":       "",
		"Level 2":       "orientation",
		"Level 3":       "orientation noFold",
		"Level 3.NF":    "orientation noFold",
		"Level 3.G4":    "orientation girth(4)",
		"Level 4NP":     "orientation noFold noPattern",
		"Level 4.NF+NP": "orientation noFold noPattern",
		"Level 4.6":     "orientation noFold girth(6)",
		"Level 4.NF+G4": "orientation noFold girth(4)",
		"Level 4.G4":    "orientation noFold noPattern girth(4)",
		"Level 5.NP+G4": "orientation noFold noPattern girth(4)",
		"Level 5.NP+G6": "orientation noFold noPattern girth(6)",
	}
	for id, want := range tests {
		checks, err := p.Checks(id)
		require.NoError(t, err, id)
		got := ""
		for i, c := range checks {
			if i > 0 {
				got += " "
			}
			got += c.String()
		}
		assert.Equal(t, want, got, id)
	}
	assert.Len(t, p.Levels(), len(tests))
}

func TestUnknownLevelIsContractError(t *testing.T) {
	_, err := levels.Default().Checks("Level 99")
	assert.ErrorIs(t, err, levels.ErrUnknownLevel)
	assert.True(t, board.IsContract(err))
}

func TestParseCheck(t *testing.T) {
	c, err := levels.ParseCheck("girth(6)")
	require.NoError(t, err)
	assert.Equal(t, levels.Check{Kind: levels.Girth, Bound: 6}, c)

	for _, bad := range []string{"girth", "girth(x)", "girth(0)", "fold", ""} {
		_, err = levels.ParseCheck(bad)
		assert.ErrorIs(t, err, levels.ErrUnknownCheck, bad)
	}

	b, err := json.Marshal([]levels.Check{{Kind: levels.NoFold}, {Kind: levels.Girth, Bound: 4}})
	require.NoError(t, err)
	assert.JSONEq(t, `["noFold","girth(4)"]`, string(b))
}

func TestOrder_PrerequisitesFirst(t *testing.T) {
	p := levels.Default()
	order, err := p.Order()
	require.NoError(t, err)
	require.Len(t, order, len(p.Levels()))

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, l := range p.Levels() {
		for _, req := range l.Requires {
			assert.Less(t, pos[req], pos[l.ID], "%s before %s", req, l.ID)
		}
	}
	assert.Equal(t, "Level 1", order[0])
}

func TestPrerequisites_Transitive(t *testing.T) {
	pre, err := levels.Default().Prerequisites("Level 4.NF+G4")
	require.NoError(t, err)
	assert.Equal(t, []string{"Level 1", "Level 2", "Level 3.NF", "Level 3.G4"}, pre)

	pre, err = levels.Default().Prerequisites("Level 1")
	require.NoError(t, err)
	assert.Empty(t, pre)
}

func TestParse_Rejects(t *testing.T) {
	tests := map[string]struct {
		doc  string
		want error
	}{
		"cycle": {
			doc: `
levels:
  - {id: A, checks: [], requires: [B]}
  - {id: B, checks: [], requires: [A]}
`,
			want: levels.ErrCyclicPrerequisites,
		},
		"self": {
			doc:  "levels:\n  - {id: A, checks: [], requires: [A]}\n",
			want: levels.ErrCyclicPrerequisites,
		},
		"missing prerequisite": {
			doc:  "levels:\n  - {id: A, checks: [], requires: [Z]}\n",
			want: levels.ErrUnknownLevel,
		},
		"bad check": {
			doc:  "levels:\n  - {id: A, checks: [girth(four)]}\n",
			want: levels.ErrUnknownCheck,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := levels.Parse([]byte(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	maps := orientation.NewMaps()
	for _, k := range []string{"bottom-0,bottom-1", "bottom-1,bottom-2", "bottom-0,bottom-2"} {
		maps.Bottom[k] = board.Right
	}
	in := levels.Input{Maps: maps, Log: patternlog.New()}

	checks, err := levels.Default().Checks("Level 4.NF+G4")
	require.NoError(t, err)

	res, steps, err := levels.Run(context.Background(), checks, in)
	require.NoError(t, err)
	require.False(t, res.OK)
	assert.Equal(t, verdict.Girth, res.Code)
	require.Len(t, steps, 3)
	assert.True(t, steps[0].OK)
	assert.True(t, steps[1].OK)
	assert.False(t, steps[2].OK)

	// A failing orientation outcome ends the run before the girth check.
	in.Orientation = orientation.Outcome{Violations: []verdict.Violation{{Code: verdict.Orientation, Kind: verdict.KindConflict}}}
	res, steps, err = levels.Run(context.Background(), checks, in)
	require.NoError(t, err)
	assert.Equal(t, verdict.Orientation, res.Code)
	assert.Len(t, steps, 1)

	res, steps, err = levels.Default().RunLevel(context.Background(), "Level 1", in)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Empty(t, steps)
}

func TestRun_SearchErrorIsNotAVerdict(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	maps := orientation.NewMaps()
	maps.Top["top-0,top-1"] = board.Right
	checks, err := levels.Default().Checks("Level 4.NF+G4")
	require.NoError(t, err)

	res, steps, err := levels.Run(ctx, checks, levels.Input{Maps: maps})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, res.OK)
	assert.Len(t, steps, 2, "checks before the girth search still ran")

	maps.Bottom["garbage"] = board.Left
	_, _, err = levels.Run(context.Background(), checks, levels.Input{Maps: maps})
	assert.ErrorIs(t, err, board.ErrContract)
}
