package contract

import (
	"context"

	"github.com/redcow77/module-5-test/internal/entity"
	"github.com/redcow77/module-5-test/internal/repository/specification"
)

type BlockRepository interface {
	Create(ctx context.Context, block *entity.Block) error
	CreateBatch(ctx context.Context, items []*entity.Block) error
	Update(ctx context.Context, block *entity.Block) error
	// UpdateOrders rewrites the order of the given blocks (id -> order).
	UpdateOrders(ctx context.Context, orders map[int64]float64) error
	Delete(ctx context.Context, id int64) error
	DeleteByPageIDs(ctx context.Context, pageIds []int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Block, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Block, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
