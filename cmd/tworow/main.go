// Command tworow replays pair sequences, lists levels, manages saved boards
// and serves the engine over HTTP.
//
//	tworow replay game.json --level "Level 3" --verbose
//	tworow replay --pairs "t0-b0 t1-b1; t2-b2 t3-b3"
//	tworow levels
//	tworow serve --config tworow.yaml
//	tworow board list
package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes.
const (
	exitOK       = 0
	exitRejected = 1
	exitError    = 2
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errRejected) {
			os.Exit(exitRejected)
		}
		fmt.Fprintln(os.Stderr, "tworow:", err)
		os.Exit(exitError)
	}
	os.Exit(exitOK)
}
