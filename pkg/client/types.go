package client

import (
	"time"

	"github.com/redcow77/module-5-test/pkg/blocks"
)

type Page struct {
	Id        int64      `json:"id"`
	Title     string     `json:"title"`
	Icon      *string    `json:"icon"`
	ParentId  *int64     `json:"parent_id"`
	UserId    *string    `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type PageWithBlocks struct {
	Page
	Blocks []Block `json:"blocks"`
}

// PageTreeNode is the server-built tree returned by /pages/tree.
type PageTreeNode struct {
	Page
	Children []PageTreeNode `json:"children"`
}

type Block struct {
	Id        int64       `json:"id"`
	PageId    int64       `json:"page_id"`
	Type      blocks.Type `json:"type"`
	Content   string      `json:"content"`
	Order     float64     `json:"order"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at"`
}

type Memo struct {
	Id        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	AiSummary *string    `json:"ai_summary"`
	Tags      []string   `json:"tags"`
	UserId    *string    `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type Breadcrumb struct {
	Id    int64   `json:"id"`
	Title string  `json:"title"`
	Icon  *string `json:"icon"`
}

type PageMarkdown struct {
	PageId   int64  `json:"page_id"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

type NotionImport struct {
	PageId       int64   `json:"page_id"`
	BlocksCount  int     `json:"blocks_count"`
	NotionPageId string  `json:"notion_page_id"`
	Title        string  `json:"title"`
	Icon         *string `json:"icon"`
}

type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type CreatePageInput struct {
	Title    *string `json:"title,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	ParentId *int64  `json:"parent_id,omitempty"`
}

// UpdatePageInput is a partial update. Clear* fields send an explicit null.
type UpdatePageInput struct {
	Title      *string
	Icon       *string
	ClearIcon  bool
	ParentId   *int64
	MoveToRoot bool
}

func (in UpdatePageInput) body() map[string]interface{} {
	body := map[string]interface{}{}
	if in.Title != nil {
		body["title"] = *in.Title
	}
	switch {
	case in.ClearIcon:
		body["icon"] = nil
	case in.Icon != nil:
		body["icon"] = *in.Icon
	}
	switch {
	case in.MoveToRoot:
		body["parent_id"] = nil
	case in.ParentId != nil:
		body["parent_id"] = *in.ParentId
	}
	return body
}

type CreateBlockInput struct {
	PageId       int64       `json:"page_id"`
	Type         blocks.Type `json:"type,omitempty"`
	Content      string      `json:"content"`
	Order        *float64    `json:"order,omitempty"`
	AfterBlockId *int64      `json:"after_block_id,omitempty"`
}

type UpdateBlockInput struct {
	Type    *blocks.Type `json:"type,omitempty"`
	Content *string      `json:"content,omitempty"`
	Order   *float64     `json:"order,omitempty"`
}

type MemoInput struct {
	Title   string `json:"title" validate:"required,min=1,max=500"`
	Content string `json:"content" validate:"required,min=1"`
}

type UpdateMemoInput struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1"`
}
