package sqlite

import (
	"fmt"
	"strings"

	"github.com/openhrlab/talentdb/pkg/types"
)

// whereClause joins filter conditions into a WHERE clause, or returns the
// empty string when there are none.
func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

// applyLimitOffset appends LIMIT and OFFSET clauses from the filter.
// Non-positive values are ignored.
func applyLimitOffset(query string, filter map[string]any) (string, error) {
	if v, ok := filter["limit"]; ok {
		limit, ok := toInt(v)
		if !ok {
			return "", types.ErrInvalidFilter
		}
		if limit > 0 {
			query += fmt.Sprintf(" LIMIT %d", limit)
		}
	}
	if v, ok := filter["offset"]; ok {
		offset, ok := toInt(v)
		if !ok {
			return "", types.ErrInvalidFilter
		}
		if offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", offset)
		}
	}
	return query, nil
}

// toInt converts various numeric types to int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
