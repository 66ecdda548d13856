package contract

import (
	"context"

	"github.com/redcow77/module-5-test/internal/entity"
	"github.com/redcow77/module-5-test/internal/repository/specification"
)

type MemoRepository interface {
	Create(ctx context.Context, memo *entity.Memo) error
	Update(ctx context.Context, memo *entity.Memo) error
	Delete(ctx context.Context, id int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Memo, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Memo, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
