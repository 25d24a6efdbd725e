package db

import "strings"

// IsUniqueViolation reports whether the provided error references a unique
// constraint violation. Both supported drivers surface the constraint in the
// error text; when constraintName is provided the helper looks for it.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" && strings.Contains(msg, constraintName) {
		return true
	}
	// postgres and sqlite wordings respectively
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
