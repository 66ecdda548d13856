package entity

import "time"

type Memo struct {
	Id        int64
	Title     string
	Content   string
	AiSummary *string
	Tags      []string
	UserId    *string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
