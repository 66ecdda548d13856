package mapper

import (
	"github.com/redcow77/module-5-test/internal/entity"
	"github.com/redcow77/module-5-test/internal/model"

	"gorm.io/datatypes"
)

type MemoMapper struct{}

func NewMemoMapper() *MemoMapper {
	return &MemoMapper{}
}

func (m *MemoMapper) ToEntity(n *model.Memo) *entity.Memo {
	if n == nil {
		return nil
	}
	var tags []string
	if n.Tags != nil {
		tags = append([]string{}, n.Tags...)
	}
	return &entity.Memo{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		AiSummary: n.AiSummary,
		Tags:      tags,
		UserId:    n.UserId,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *MemoMapper) ToModel(n *entity.Memo) *model.Memo {
	if n == nil {
		return nil
	}
	var tags datatypes.JSONSlice[string]
	if n.Tags != nil {
		tags = datatypes.JSONSlice[string](append([]string{}, n.Tags...))
	}
	return &model.Memo{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		AiSummary: n.AiSummary,
		Tags:      tags,
		UserId:    n.UserId,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *MemoMapper) ToEntities(memos []*model.Memo) []*entity.Memo {
	entities := make([]*entity.Memo, len(memos))
	for i, n := range memos {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
