package contract

import (
	"context"

	"github.com/redcow77/module-5-test/internal/entity"
	"github.com/redcow77/module-5-test/internal/repository/specification"
)

type PageRepository interface {
	Create(ctx context.Context, page *entity.Page) error
	Update(ctx context.Context, page *entity.Page) error
	DeleteByIDs(ctx context.Context, ids []int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Page, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Page, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
