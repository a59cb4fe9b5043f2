package verdict_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/verdict"
)

func TestResultErr(t *testing.T) {
	assert.NoError(t, verdict.Pass().Err())

	r := verdict.Fail(verdict.NoFold, "", verdict.Violation{
		Code:   verdict.NoFold,
		Kind:   verdict.KindTwoCycle,
		Detail: "top-0->top-1 reversed",
	})
	err := r.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, verdict.ErrNoFold)
	assert.False(t, errors.Is(err, verdict.ErrGirth))
	assert.Equal(t, "NO_FOLD: top-0->top-1 reversed", r.Message)

	wrapped := fmt.Errorf("engine: SubmitPair: %w", err)
	assert.Equal(t, verdict.NoFold, verdict.CodeOf(wrapped))
	assert.Equal(t, verdict.None, verdict.CodeOf(errors.New("other")))
}

func TestCollect(t *testing.T) {
	assert.True(t, verdict.Collect(verdict.Girth, nil).OK)
	r := verdict.Collect(verdict.Girth, []verdict.Violation{{Detail: "a"}, {Detail: "b"}})
	assert.False(t, r.OK)
	assert.Equal(t, "GIRTH: a; b", r.Message)
}

func TestEdgeRefString(t *testing.T) {
	e := verdict.EdgeRef{
		Vertices:    [2]board.Vertex{board.T(0), board.T(1)},
		Orientation: board.Left,
		Color:       "#ff0000",
	}
	assert.Equal(t, "top-1->top-0 (#ff0000)", e.String())
}
