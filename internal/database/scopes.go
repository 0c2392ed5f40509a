package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/employee-management-api/internal/utils"
)

// OrderBy applies an ORDER BY on a trusted column expression. Callers must
// resolve user input to an expression through a whitelist first.
func OrderBy(expr string, params utils.SortParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if expr == "" {
			return db
		}
		if params.Desc {
			return db.Order(expr + " DESC")
		}
		return db.Order(expr + " ASC")
	}
}
