package model

import "time"

type Page struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"type:varchar(500);not null;default:'Untitled'"`
	Icon      *string   `gorm:"type:varchar(10)"`
	ParentId  *int64    `gorm:"index"`
	UserId    *string   `gorm:"type:varchar(64);index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt *time.Time
}

func (Page) TableName() string {
	return "pages"
}
