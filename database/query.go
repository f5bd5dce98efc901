package database

import (
	"fmt"

	"gorm.io/gorm"
)

// ListOptions narrows a table query. Filters are equality matches keyed by column name;
// a zero Limit returns every row.
type ListOptions struct {
	Filters map[string]any
	Limit   int
}

func (o ListOptions) apply(db *gorm.DB, allowed ...string) (*gorm.DB, error) {
	for column, value := range o.Filters {
		if !contains(allowed, column) {
			return nil, fmt.Errorf("filter on column %q is not supported", column)
		}
		db = db.Where(fmt.Sprintf("%s = ?", column), value)
	}
	db = db.Order("created_at DESC")
	if o.Limit > 0 {
		db = db.Limit(o.Limit)
	}
	return db, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// updateAll writes every column of record except the identity columns, so cleared optional
// fields are persisted as NULL.
func updateAll(db *gorm.DB, model any, record any) error {
	res := db.Model(model).Select("*").Omit("id", "created_at").Updates(record)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deleteByID(db *gorm.DB, model any, id any) error {
	res := db.Delete(model, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
