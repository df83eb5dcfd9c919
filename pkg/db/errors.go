package db

import "strings"

// IsUniqueViolation reports whether the provided error references a SQLite
// unique constraint. When columnName is provided, the helper looks for the
// column text in the error message.
func IsUniqueViolation(err error, columnName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	if columnName != "" {
		return strings.Contains(msg, columnName)
	}
	return true
}
