package dto

import "time"

type CreateMemoRequest struct {
	Title   string  `json:"title" validate:"required,min=1,max=500"`
	Content string  `json:"content" validate:"required,min=1"`
	UserId  *string `json:"-"`
}

type UpdateMemoRequest struct {
	Id      int64   `json:"-"`
	Title   *string `json:"title" validate:"omitempty,min=1,max=500"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

type ListMemosQuery struct {
	Skip  int `query:"skip" validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=1,lte=100"`
}

type SearchMemosQuery struct {
	Q string `query:"q" validate:"required"`
}

type MemoResponse struct {
	Id        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	AiSummary *string    `json:"ai_summary"`
	Tags      []string   `json:"tags"`
	UserId    *string    `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
