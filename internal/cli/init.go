package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openhrlab/talentdb/internal/sqlite"
	"github.com/openhrlab/talentdb/pkg/types"
)

func newInitCmd() *cobra.Command {
	var fresh bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize talentdb storage",
		Long:  "Create configuration and data directories, then initialize the storage backend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, fresh)
		},
	}
	cmd.Flags().BoolVar(&fresh, "fresh", false, "drop any existing data and start from an empty schema")
	return cmd
}

func runInit(cmd *cobra.Command, fresh bool) error {
	configDir := resolveConfigDir()
	v, err := loadConfig(configDir)
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("load config: %s", err))
	}

	dataDir := resolveDataDir()
	if dataDir == "" {
		dataDir = v.GetString(cfgKeyDataDir)
	}
	if dataDir == "" {
		dataDir = defaultDataDir
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return exitError(exitSysError, fmt.Sprintf("create data directory: %s", err))
	}

	cfg := types.Config{
		Backend: v.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return exitError(exitSysError, fmt.Sprintf("initialize storage: %s", err))
	}
	if fresh {
		if err := backend.Reset(); err != nil {
			backend.Detach()
			return exitError(exitSysError, fmt.Sprintf("reset storage: %s", err))
		}
	}
	if err := backend.Detach(); err != nil {
		return exitError(exitSysError, fmt.Sprintf("finalize storage: %s", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "talentdb initialized in %s\n", filepath.Clean(dataDir))
	return nil
}
