// Package cli implements the talentctl command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

var flags rootFlags

// NewRootCmd creates the top-level "talentctl" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "talentctl",
		Short: "A job-market demo database over SQLite",
		Long: "Talentctl manages employers, positions, applicants, skills, and\n" +
			"assignments in an embedded SQLite database, keeping the derived\n" +
			"applicant skill count consistent with the skills table.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .talentdb)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .talentdb-data)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newApplicantCmd())
	root.AddCommand(newSkillCmd())
	root.AddCommand(newBackfillCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newExplainCmd())
	root.AddCommand(newExportCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir() string {
	if flags.configDir != "" {
		return flags.configDir
	}
	if v := os.Getenv("TALENTDB_CONFIG_DIR"); v != "" {
		return v
	}
	return ".talentdb"
}

// resolveDataDir returns the data directory from flag or empty string.
// The caller may further override this with a value from config.yaml.
func resolveDataDir() string {
	return flags.dataDir
}

// exitError prints the error to stderr and exits with the given code.
func exitError(code int, msg string) error {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
	return nil // unreachable
}
