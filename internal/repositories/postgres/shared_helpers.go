package postgres

import (
	"fmt"

	"gorm.io/gorm"
)

// handleDBError is a package-level helper for handling database errors.
// The original error stays wrapped so callers can match gorm sentinels.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}

// newestFirst orders by a timestamp column with id as a stable tie-breaker
func newestFirst(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(column + " DESC").Order("id DESC")
	}
}

// count runs a COUNT(*) for model with the given condition
func count(db *gorm.DB, model interface{}, query interface{}, args ...interface{}) (int64, error) {
	var n int64
	q := db.Model(model)
	if query != nil {
		q = q.Where(query, args...)
	}
	err := q.Count(&n).Error
	return n, err
}
