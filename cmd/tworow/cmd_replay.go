package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tworow/scenario"
	"github.com/katalvlaran/tworow/store"
)

type replayFlags struct {
	level    string
	pairs    string
	cont     bool
	verbose  bool
	asJSON   bool
	saveName string
}

func newReplayCmd(a *app) *cobra.Command {
	f := &replayFlags{}
	cmd := &cobra.Command{
		Use:   "replay [file|-]",
		Short: "Replay a scripted pair sequence and report every check",
		Long: `Replay reads a JSON, YAML or compact pair sequence and submits each
pair in order. It stops at the first rejected pair unless --continue is set.

Exit status is 0 when every pair was accepted, 1 when one was rejected
and 2 on any other error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReplay(cmd, args, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.level, "level", "l", "", "level to validate at (overrides the document)")
	fl.StringVarP(&f.pairs, "pairs", "p", "", "inline compact sequence instead of a file")
	fl.BoolVar(&f.cont, "continue", false, "keep replaying after a rejected pair")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "print the orientation state after every pair")
	fl.BoolVar(&f.asJSON, "json", false, "print the report as JSON")
	fl.StringVar(&f.saveName, "save", "", "save the final board under this name")

	return cmd
}

func (a *app) runReplay(cmd *cobra.Command, args []string, f *replayFlags) error {
	fallback := a.cfg.Level
	if f.level != "" {
		fallback = f.level
	}

	var (
		sc  scenario.Scenario
		err error
	)
	switch {
	case f.pairs != "" && len(args) > 0:
		return errors.New("replay: give a file or --pairs, not both")
	case f.pairs != "":
		sc, err = scenario.ParseCompact(f.pairs, fallback)
	case len(args) == 1:
		var data []byte
		if data, err = readInput(cmd, args[0]); err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		sc, err = scenario.Parse(data, fallback)
	default:
		return errors.New("replay: nothing to replay")
	}
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	if f.level != "" {
		sc.Level = f.level
	}

	e, err := a.newEngine()
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rep, err := scenario.Replay(ctx, e, sc, scenario.Options{Continue: f.cont, Verbose: f.verbose})
	if err != nil {
		if rep != nil && !f.asJSON {
			_ = rep.WriteText(cmd.OutOrStdout())
		}
		return err
	}

	if f.asJSON {
		err = writeJSON(cmd.OutOrStdout(), rep)
	} else {
		err = rep.WriteText(cmd.OutOrStdout())
	}
	if err != nil {
		return err
	}

	if f.saveName != "" {
		s, err := a.openStore(true)
		if err != nil {
			return fmt.Errorf("replay: save: %w", err)
		}
		defer s.Close()
		b := store.Board{Name: f.saveName, Level: e.Level(), SavedAt: time.Now().UTC(), Snapshot: e.Snapshot()}
		if err = s.Save(ctx, b); err != nil {
			return fmt.Errorf("replay: save: %w", err)
		}
		a.logger.Info("Board saved", "name", f.saveName, "pairs", len(b.Snapshot.Pairs))
	}

	if !rep.OK() {
		return errRejected
	}

	return nil
}
