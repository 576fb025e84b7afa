package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openhrlab/talentdb/internal/sqlite"
)

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain",
		Short: "Compare a query plan before and after adding an index",
		Long: "Run EXPLAIN QUERY PLAN on a salary range query, create a temporary\n" +
			"index on positions(salary), run the plan again, and print both. The\n" +
			"index is dropped afterwards either way.",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			diff, err := backend.RunIndexExperiment(sqlite.DefaultIndexExperiment())
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("index experiment: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), diff)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "without index:")
			for _, line := range diff.Before {
				fmt.Fprintf(out, "  %s\n", line)
			}
			fmt.Fprintln(out, "with index:")
			for _, line := range diff.After {
				fmt.Fprintf(out, "  %s\n", line)
			}
			return nil
		},
	}
}
