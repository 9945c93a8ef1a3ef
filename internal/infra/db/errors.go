package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsUniqueViolation は一意制約違反か判定する。
// postgresは "duplicate key value"、sqliteは "UNIQUE constraint failed"。
// constraintがあればそのテキストも含むか見る。
func IsUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return constraint == "" || strings.Contains(err.Error(), constraint)
	}
	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value") && !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	return constraint == "" || strings.Contains(msg, constraint)
}
