package database

import (
	"gorm.io/gorm"
)

// Paginate applies page-based pagination to a GORM query. A page or pageSize
// of zero leaves the query unlimited.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page > 0 && pageSize > 0 {
			return db.Offset((page - 1) * pageSize).Limit(pageSize)
		}
		return db
	}
}
