package scope

import "gorm.io/gorm"

// StableOrder breaks ties on the primary key so equal sort keys come back
// in insertion order.
func StableOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
