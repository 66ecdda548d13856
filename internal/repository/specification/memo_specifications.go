package specification

import "gorm.io/gorm"

// MemoSearchQuery matches memos whose title, content, AI summary or tags
// contain Query, case-insensitively.
type MemoSearchQuery struct {
	Query string
}

func (s MemoSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where(
		"title ILIKE ? OR content ILIKE ? OR ai_summary ILIKE ? OR CAST(tags AS TEXT) ILIKE ?",
		pattern, pattern, pattern, pattern,
	)
}
