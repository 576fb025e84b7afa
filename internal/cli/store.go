package cli

import (
	"fmt"

	"github.com/openhrlab/talentdb/internal/sqlite"
	"github.com/openhrlab/talentdb/pkg/types"
)

// openStore resolves configuration and attaches a SQLite backend.
// Callers must Detach when done.
func openStore() (*sqlite.Backend, error) {
	configDir := resolveConfigDir()
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}

	dataDir := resolveDataDir()
	if dataDir == "" {
		dataDir = v.GetString(cfgKeyDataDir)
	}
	if dataDir == "" {
		dataDir = defaultDataDir
	}

	cfg := types.Config{
		Backend: v.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}
	return backend, nil
}
