package specification

import "gorm.io/gorm"

type ByPageID struct {
	PageID int64
}

func (s ByPageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("page_id = ?", s.PageID)
}

type ByPageIDs struct {
	PageIDs []int64
}

func (s ByPageIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("page_id IN ?", s.PageIDs)
}
