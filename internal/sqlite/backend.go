// Package sqlite implements the SQLite storage backend for talentdb.
// The backend owns every write path: all mutations go through table
// accessors so that derived attributes (the applicant skill count) are
// recomputed inside the same transaction as the triggering mutation.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/openhrlab/talentdb/pkg/types"
)

// dbFileName is the SQLite database file created inside DataDir.
const dbFileName = "talentdb.db"

// Compile-time interface check: Backend must implement Store.
var _ types.Store = (*Backend)(nil)

// Backend implements the Store interface using an embedded SQLite database.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]types.Table
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		tables: make(map[string]types.Table),
	}
}

// GetTable returns a Table accessor for the given table name.
// Returns ErrTableNotFound if the name is not recognized.
// Returns ErrStoreDetached if the backend is not attached.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	table, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return table, nil
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, opens the SQLite database, and
// applies the schema. Tables, indexes, and views are created only when
// missing, so attaching to an existing data directory preserves data.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return err
	}
	// SQLite allows a single writer; one pooled connection keeps the
	// foreign_keys pragma effective for every statement.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("enabling foreign keys: %w", err)
	}

	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("applying indexes: %w", err)
		}
	}
	for _, stmt := range viewDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("applying views: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true

	b.tables[types.TableEmployers] = &employersTable{backend: b}
	b.tables[types.TablePositions] = &positionsTable{backend: b}
	b.tables[types.TableApplicants] = &applicantsTable{backend: b}
	b.tables[types.TableSkills] = &skillsTable{backend: b}
	b.tables[types.TableAssignments] = &assignmentsTable{backend: b}

	return nil
}

// Detach releases all resources held by the backend.
// After Detach, all operations return ErrStoreDetached.
// Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.tables = make(map[string]types.Table)

	return nil
}

// Reset drops all data and reapplies the schema, restoring the fresh
// database that the demo scripts assume. The backend stays attached.
func (b *Backend) Reset() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	drops := []string{
		"DROP VIEW IF EXISTS applicant_workload",
		"DROP TABLE IF EXISTS assignments",
		"DROP TABLE IF EXISTS skills",
		"DROP TABLE IF EXISTS applicants",
		"DROP TABLE IF EXISTS positions",
		"DROP TABLE IF EXISTS employers",
	}
	for _, stmt := range drops {
		if _, err := b.db.Exec(stmt); err != nil {
			return fmt.Errorf("dropping schema: %w", err)
		}
	}
	for _, stmt := range schemaDDL {
		if _, err := b.db.Exec(stmt); err != nil {
			return fmt.Errorf("reapplying schema: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := b.db.Exec(stmt); err != nil {
			return fmt.Errorf("reapplying indexes: %w", err)
		}
	}
	for _, stmt := range viewDDL {
		if _, err := b.db.Exec(stmt); err != nil {
			return fmt.Errorf("reapplying views: %w", err)
		}
	}
	return nil
}

// newUUID generates a UUID v7 string for entity IDs.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}
