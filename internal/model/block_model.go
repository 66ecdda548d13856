package model

import "time"

type Block struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	PageId    int64     `gorm:"not null;index:idx_blocks_page_position,priority:1"`
	Type      string    `gorm:"type:varchar(32);not null;default:'text'"`
	Content   string    `gorm:"type:text;not null;default:''"`
	Position  float64   `gorm:"not null;default:0;index:idx_blocks_page_position,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt *time.Time
}

func (Block) TableName() string {
	return "blocks"
}
