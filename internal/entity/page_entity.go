package entity

import "time"

type Page struct {
	Id        int64
	Title     string
	Icon      *string
	ParentId  *int64
	UserId    *string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// PageTreeNode is a page together with its nested children.
type PageTreeNode struct {
	Page     *Page
	Children []*PageTreeNode
}
