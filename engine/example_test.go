package engine_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/engine"
)

func ExampleEngine_SubmitPair() {
	e, err := engine.New(engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		panic(err)
	}
	ctx := context.Background()

	// top-0 -> top-1 stores right.
	res, _ := e.SubmitPair(ctx, board.Pair{
		First:  board.Connection{Top: board.T(0), Bottom: board.B(0)},
		Second: board.Connection{Top: board.T(1), Bottom: board.B(0)},
	}, "Level 2")
	fmt.Println(res.OK, e.Orientation("top-0,top-1"))

	// top-1 -> top-0 contradicts it.
	res, _ = e.SubmitPair(ctx, board.Pair{
		First:  board.Connection{Top: board.T(1), Bottom: board.B(1)},
		Second: board.Connection{Top: board.T(0), Bottom: board.B(1)},
	}, "Level 2")
	fmt.Println(res.OK, res.Code, len(e.Pairs()))

	// Output:
	// true right
	// false ORIENTATION 1
}

func ExampleEngine_Connect() {
	e, _ := engine.New(
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		engine.WithLevel("Level 3"),
	)
	ctx := context.Background()

	res, _ := e.Connect(ctx, board.T(0), board.B(0))
	fmt.Println(res.OK, res.Pending.Key())
	res, _ = e.Connect(ctx, board.B(1), board.T(1))
	fmt.Println(res.OK, res.PairKey, e.RowCounts())

	// Output:
	// true top-0|bottom-0
	// true ["top-0|bottom-0","top-1|bottom-1"] {3 3}
}
