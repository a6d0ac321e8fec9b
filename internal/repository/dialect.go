package repository

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"modernc.org/sqlite"
)

// sqliteLower is a Unicode-aware replacement for SQLite's LOWER, which only
// folds ASCII letters.
const sqliteLower = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(sqliteLower, 1, func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case string:
			return strings.ToLower(v), nil
		case []byte:
			return strings.ToLower(string(v)), nil
		default:
			return v, nil
		}
	})
}

// dayExpr renders a timestamp column as a YYYY-MM-DD string in the driver's dialect.
func dayExpr(driver, column string) string {
	switch driver {
	case "pgx", "postgres":
		return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD')", column)
	case "mysql":
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m-%%d')", column)
	default:
		return fmt.Sprintf("date(%s)", column)
	}
}

// lengthExpr counts characters of a text column in the driver's dialect.
func lengthExpr(driver, column string) string {
	if driver == "mysql" {
		return fmt.Sprintf("CHAR_LENGTH(%s)", column)
	}
	return fmt.Sprintf("LENGTH(%s)", column)
}

// lowerExpr lowercases a text column in the driver's dialect, matching strings.ToLower.
func lowerExpr(driver, column string) string {
	switch driver {
	case "pgx", "postgres", "mysql":
		return fmt.Sprintf("LOWER(%s)", column)
	default:
		return fmt.Sprintf("%s(%s)", sqliteLower, column)
	}
}

// isUniqueViolation recognizes unique constraint failures from SQLite, PostgreSQL and MySQL.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "duplicate key value") ||
		strings.Contains(errStr, "Duplicate entry")
}
