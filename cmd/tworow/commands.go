package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tworow/config"
	"github.com/katalvlaran/tworow/engine"
	"github.com/katalvlaran/tworow/store"
)

// errRejected is returned when a replay stops on a rejected pair. The report
// has already been printed.
var errRejected = errors.New("replay rejected")

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	cfg        config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "tworow",
		Short:         "Validate two-row matching puzzles level by level",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cfg.NewLogger(cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file (defaults apply when empty)")

	root.AddCommand(
		newReplayCmd(a),
		newLevelsCmd(a),
		newServeCmd(a),
		newBoardCmd(a),
	)

	return root
}

// newEngine builds an engine from the loaded config.
func (a *app) newEngine(opts ...engine.Option) (*engine.Engine, error) {
	return engine.New(append([]engine.Option{
		engine.WithConfig(a.cfg),
		engine.WithLogger(a.logger),
	}, opts...)...)
}

// openStore opens the configured board database. Commands that only make
// sense against persisted boards pass persistent=true.
func (a *app) openStore(persistent bool) (*store.Store, error) {
	if a.cfg.DBPath == "" {
		if persistent {
			return nil, errors.New("no db_path configured")
		}
		return store.Open(store.Config{InMemory: true, Logger: a.logger})
	}
	cfg := store.DefaultConfig(a.cfg.DBPath)
	cfg.Logger = a.logger

	return store.Open(cfg)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	return os.ReadFile(path)
}
