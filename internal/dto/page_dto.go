package dto

import "time"

type CreatePageRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=500"`
	Icon     *string `json:"icon" validate:"omitempty,max=10"`
	ParentId *int64  `json:"parent_id" validate:"omitempty,gt=0"`
	UserId   *string `json:"-"`
}

type UpdatePageRequest struct {
	Id       int64            `json:"-"`
	Title    *string          `json:"title" validate:"omitempty,max=500"`
	Icon     Nullable[string] `json:"icon"`
	ParentId Nullable[int64]  `json:"parent_id"`
}

type ListPagesQuery struct {
	// ParentId is "root"/"null" for top-level pages, a page id, or empty for all.
	ParentId string `query:"parent_id"`
}

type PageResponse struct {
	Id        int64      `json:"id"`
	Title     string     `json:"title"`
	Icon      *string    `json:"icon"`
	ParentId  *int64     `json:"parent_id"`
	UserId    *string    `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type PageWithBlocksResponse struct {
	PageResponse
	Blocks []*BlockResponse `json:"blocks"`
}

type PageTreeNodeResponse struct {
	PageResponse
	Children []*PageTreeNodeResponse `json:"children"`
}

type BreadcrumbItem struct {
	Id    int64   `json:"id"`
	Title string  `json:"title"`
	Icon  *string `json:"icon"`
}

type PageMarkdownResponse struct {
	PageId   int64  `json:"page_id"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

type ImportMarkdownRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=500"`
	Markdown string  `json:"markdown" validate:"required"`
	ParentId *int64  `json:"parent_id" validate:"omitempty,gt=0"`
	UserId   *string `json:"-"`
}

type ImportHTMLRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=500"`
	Html     string  `json:"html" validate:"required"`
	ParentId *int64  `json:"parent_id" validate:"omitempty,gt=0"`
	UserId   *string `json:"-"`
}
