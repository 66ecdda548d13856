package mapper

import (
	"github.com/redcow77/module-5-test/internal/entity"
	"github.com/redcow77/module-5-test/internal/model"
	"github.com/redcow77/module-5-test/pkg/blocks"
)

type BlockMapper struct{}

func NewBlockMapper() *BlockMapper {
	return &BlockMapper{}
}

func (m *BlockMapper) ToEntity(b *model.Block) *entity.Block {
	if b == nil {
		return nil
	}
	return &entity.Block{
		Id:        b.Id,
		PageId:    b.PageId,
		Type:      blocks.Type(b.Type),
		Content:   b.Content,
		Order:     b.Position,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (m *BlockMapper) ToModel(b *entity.Block) *model.Block {
	if b == nil {
		return nil
	}
	return &model.Block{
		Id:        b.Id,
		PageId:    b.PageId,
		Type:      string(b.Type),
		Content:   b.Content,
		Position:  b.Order,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (m *BlockMapper) ToEntities(items []*model.Block) []*entity.Block {
	entities := make([]*entity.Block, len(items))
	for i, b := range items {
		entities[i] = m.ToEntity(b)
	}
	return entities
}

func (m *BlockMapper) ToModels(items []*entity.Block) []*model.Block {
	models := make([]*model.Block, len(items))
	for i, b := range items {
		models[i] = m.ToModel(b)
	}
	return models
}
