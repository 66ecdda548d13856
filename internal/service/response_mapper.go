package service

import (
	"github.com/redcow77/module-5-test/internal/dto"
	"github.com/redcow77/module-5-test/internal/entity"
)

func toPageResponse(p *entity.Page) dto.PageResponse {
	return dto.PageResponse{
		Id:        p.Id,
		Title:     p.Title,
		Icon:      p.Icon,
		ParentId:  p.ParentId,
		UserId:    p.UserId,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toBlockResponse(b *entity.Block) *dto.BlockResponse {
	return &dto.BlockResponse{
		Id:        b.Id,
		PageId:    b.PageId,
		Type:      b.Type,
		Content:   b.Content,
		Order:     b.Order,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toBlockResponses(items []*entity.Block) []*dto.BlockResponse {
	res := make([]*dto.BlockResponse, 0, len(items))
	for _, b := range items {
		res = append(res, toBlockResponse(b))
	}
	return res
}

func toMemoResponse(m *entity.Memo) *dto.MemoResponse {
	return &dto.MemoResponse{
		Id:        m.Id,
		Title:     m.Title,
		Content:   m.Content,
		AiSummary: m.AiSummary,
		Tags:      m.Tags,
		UserId:    m.UserId,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toMemoResponses(items []*entity.Memo) []*dto.MemoResponse {
	res := make([]*dto.MemoResponse, 0, len(items))
	for _, m := range items {
		res = append(res, toMemoResponse(m))
	}
	return res
}
