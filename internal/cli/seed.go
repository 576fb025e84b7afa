package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample dataset",
		Long: "Insert a small fixed set of employers, positions, applicants, skills,\n" +
			"and assignments. Running seed twice leaves the database unchanged.",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			summary, err := backend.Seed()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("seed: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), summary)
			}
			if summary.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), "sample data already present, nothing to do")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"seeded %d employers, %d positions, %d applicants, %d skills, %d assignments\n",
				summary.Employers, summary.Positions, summary.Applicants, summary.Skills, summary.Assignments)
			return nil
		},
	}
}
