package mapper

import (
	"github.com/redcow77/module-5-test/internal/entity"
	"github.com/redcow77/module-5-test/internal/model"
)

type PageMapper struct{}

func NewPageMapper() *PageMapper {
	return &PageMapper{}
}

func (m *PageMapper) ToEntity(p *model.Page) *entity.Page {
	if p == nil {
		return nil
	}
	return &entity.Page{
		Id:        p.Id,
		Title:     p.Title,
		Icon:      p.Icon,
		ParentId:  p.ParentId,
		UserId:    p.UserId,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *PageMapper) ToModel(p *entity.Page) *model.Page {
	if p == nil {
		return nil
	}
	return &model.Page{
		Id:        p.Id,
		Title:     p.Title,
		Icon:      p.Icon,
		ParentId:  p.ParentId,
		UserId:    p.UserId,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *PageMapper) ToEntities(pages []*model.Page) []*entity.Page {
	entities := make([]*entity.Page, len(pages))
	for i, p := range pages {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
