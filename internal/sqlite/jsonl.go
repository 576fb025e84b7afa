// This file provides JSONL import/export for the demo database: exports
// dump every table to line-delimited JSON with an atomic write, imports
// read skill batches for the bulk insert path.
package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openhrlab/talentdb/pkg/types"
)

// skillRecord matches the JSONL format accepted by skill imports.
type skillRecord struct {
	ApplicantID string `json:"applicant_id"`
	Name        string `json:"name"`
	Level       int    `json:"level"`
}

// ReadSkillsJSONL parses a JSONL file of skill records for ImportSkills.
// Blank lines are skipped; a malformed line is an error, because a partial
// import batch would defeat the all-or-nothing contract.
func ReadSkillsJSONL(path string) ([]*types.Skill, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var skills []*types.Skill
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec skillRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("parsing %s line %d: %w", path, line, err)
		}
		skills = append(skills, &types.Skill{
			ApplicantID: rec.ApplicantID,
			Name:        rec.Name,
			Level:       rec.Level,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return skills, nil
}

// ExportJSONL dumps every table to <table>.jsonl files in the given
// directory, one JSON object per row. Returns the number of files written.
func (b *Backend) ExportJSONL(dir string) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return 0, types.ErrStoreDetached
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating export directory: %w", err)
	}

	written := 0
	for _, tableName := range types.StandardTableNames {
		records, err := b.dumpTableJSONL(tableName)
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, tableName+".jsonl")
		if err := writeJSONL(path, records); err != nil {
			return written, fmt.Errorf("writing %s: %w", path, err)
		}
		written++
	}
	return written, nil
}

// dumpTableJSONL reads all rows from one table as generic JSON records.
func (b *Backend) dumpTableJSONL(tableName string) ([]json.RawMessage, error) {
	rows, err := b.db.Query("SELECT * FROM " + tableName)
	if err != nil {
		return nil, fmt.Errorf("querying %s for export: %w", tableName, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("getting columns for %s: %w", tableName, err)
	}

	var records []json.RawMessage
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", tableName, err)
		}
		rec := make(map[string]any, len(cols))
		for i, col := range cols {
			rec[col] = values[i]
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s row: %w", tableName, err)
		}
		records = append(records, data)
	}
	return records, rows.Err()
}

// writeJSONL atomically writes records to a JSONL file using the
// temp-file, fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
