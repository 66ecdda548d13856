package model

import (
	"time"

	"gorm.io/datatypes"
)

type Memo struct {
	Id        int64                       `gorm:"primaryKey;autoIncrement"`
	Title     string                      `gorm:"type:varchar(500);not null"`
	Content   string                      `gorm:"type:text;not null"`
	AiSummary *string                     `gorm:"type:text"`
	Tags      datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	UserId    *string                     `gorm:"type:varchar(64);index"`
	CreatedAt time.Time                   `gorm:"autoCreateTime;index"`
	UpdatedAt *time.Time
}

func (Memo) TableName() string {
	return "memos"
}
