package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the talentctl release version.
const Version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the talentctl version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "talentctl v%s\n", Version)
			return nil
		},
	}
}
