package orientation_test

import (
	"fmt"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/orientation"
)

// ExamplePreflight stores the direction of a first pair, then rejects a
// pair that would run the same top combination backwards.
func ExamplePreflight() {
	maps := orientation.NewMaps()

	first := board.Pair{
		First:  board.Connection{Top: board.T(0), Bottom: board.B(0)},
		Second: board.Connection{Top: board.T(1), Bottom: board.B(1)},
	}
	out, err := orientation.Preflight(maps, first, "#e6194b")
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = orientation.Apply(&maps, out)
	fmt.Println("top-0,top-1:", maps.Top["top-0,top-1"])

	second := board.Pair{
		First:  board.Connection{Top: board.T(1), Bottom: board.B(2)},
		Second: board.Connection{Top: board.T(0), Bottom: board.B(3)},
	}
	out, err = orientation.Preflight(maps, second, "#3cb44b")
	if err != nil {
		fmt.Println(err)
		return
	}
	res := out.Result()
	fmt.Println(res.OK, res.Code)

	// Output:
	// top-0,top-1: right
	// false ORIENTATION
}
