package dto

import (
	"time"

	"github.com/redcow77/module-5-test/pkg/blocks"
)

type CreateBlockRequest struct {
	PageId       int64       `json:"page_id" validate:"required,gt=0"`
	Type         blocks.Type `json:"type" validate:"omitempty,oneof=text heading1 heading2 heading3 bullet_list numbered_list todo code quote divider"`
	Content      string      `json:"content"`
	Order        *float64    `json:"order"`
	AfterBlockId *int64      `json:"after_block_id" validate:"omitempty,gt=0"`
}

type UpdateBlockRequest struct {
	Id      int64        `json:"-"`
	Type    *blocks.Type `json:"type" validate:"omitempty,oneof=text heading1 heading2 heading3 bullet_list numbered_list todo code quote divider"`
	Content *string      `json:"content"`
	Order   *float64     `json:"order"`
}

type BlockOrder struct {
	Id    int64   `json:"id" validate:"required,gt=0"`
	Order float64 `json:"order"`
}

// ReorderBlocksRequest is either a single move (BlockId + NewOrder) or a
// batch for one page (PageId + BlockOrders or BlockIds).
type ReorderBlocksRequest struct {
	BlockId     *int64       `json:"block_id" validate:"omitempty,gt=0"`
	NewOrder    *float64     `json:"new_order"`
	PageId      *int64       `json:"page_id" validate:"omitempty,gt=0"`
	BlockOrders []BlockOrder `json:"block_orders" validate:"omitempty,dive"`
	BlockIds    []int64      `json:"block_ids" validate:"omitempty,dive,gt=0"`
}

// IsBatch reports whether the request addresses a whole page.
func (r *ReorderBlocksRequest) IsBatch() bool {
	return r.BlockId == nil && (r.BlockOrders != nil || r.BlockIds != nil)
}

type BlockResponse struct {
	Id        int64       `json:"id"`
	PageId    int64       `json:"page_id"`
	Type      blocks.Type `json:"type"`
	Content   string      `json:"content"`
	Order     float64     `json:"order"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at"`
}
