package dto

import "strings"

type NotionImportRequest struct {
	NotionPageId string  `json:"notion_page_id" validate:"required,len=32,hexadecimal"`
	ParentId     *int64  `json:"parent_id" validate:"omitempty,gt=0"`
	UserId       *string `json:"-"`
}

// Normalize accepts the dashed UUID form Notion shows in share links.
func (r *NotionImportRequest) Normalize() {
	r.NotionPageId = strings.ReplaceAll(strings.TrimSpace(r.NotionPageId), "-", "")
}

type NotionImportResponse struct {
	PageId       int64   `json:"page_id"`
	BlocksCount  int     `json:"blocks_count"`
	NotionPageId string  `json:"notion_page_id"`
	Title        string  `json:"title"`
	Icon         *string `json:"icon"`
}
