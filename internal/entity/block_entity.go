package entity

import (
	"time"

	"github.com/redcow77/module-5-test/pkg/blocks"
)

type Block struct {
	Id        int64
	PageId    int64
	Type      blocks.Type
	Content   string
	Order     float64
	CreatedAt time.Time
	UpdatedAt *time.Time
}
