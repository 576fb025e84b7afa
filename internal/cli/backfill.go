package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBackfillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill",
		Short: "Recompute every applicant's skill count",
		Long: "Recalculate skill_count for all applicants from the skills table in a\n" +
			"single statement. Safe to run repeatedly; a second run changes nothing.",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			updated, err := backend.BackfillSkillCounts()
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("backfill: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]int64{"updated": updated})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recomputed skill counts for %d applicants\n", updated)
			return nil
		},
	}
}
