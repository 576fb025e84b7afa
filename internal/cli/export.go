package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Export every table to JSONL files",
		Long: "Write one JSONL file per table into the given directory. Files are\n" +
			"written atomically via a temporary file and rename.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore()
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			defer backend.Detach()

			tables, err := backend.ExportJSONL(args[0])
			if err != nil {
				return exitError(exitSysError, fmt.Sprintf("export: %s", err))
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]int{"tables": tables})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d tables to %s\n", tables, args[0])
			return nil
		},
	}
}
