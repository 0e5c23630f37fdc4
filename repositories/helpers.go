package repositories

import (
	"database/sql"
	"fmt"
	"strings"
)

func checkAffectedRows(result sql.Result, notFoundErr error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundErr
	}
	return nil
}

// prefixColumns qualifies a comma-separated column list with a table
// alias for join queries.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}
