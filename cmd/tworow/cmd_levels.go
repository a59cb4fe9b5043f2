package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tworow/levels"
)

func newLevelsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "List the level catalogue in prerequisite order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := levels.Default()
			order, err := p.Order()
			if err != nil {
				return err
			}
			if asJSON {
				out := make([]levels.Level, 0, len(order))
				for _, id := range order {
					l, _ := p.Level(id)
					out = append(out, l)
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			for _, id := range order {
				l, _ := p.Level(id)
				checks := make([]string, 0, len(l.Checks))
				for _, c := range l.Checks {
					checks = append(checks, c.String())
				}
				if len(checks) == 0 {
					checks = append(checks, "none")
				}
				marker := " "
				if id == a.cfg.Level {
					marker = "*"
				}
				fmt.Fprintf(w, "%s %-16s %-28s %s\n", marker, id, strings.Join(checks, ", "), l.Description)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalogue as JSON")

	return cmd
}
