package memory

import (
	"context"

	"github.com/redcow77/module-5-test/internal/entity"
	"github.com/redcow77/module-5-test/internal/repository/contract"
	"github.com/redcow77/module-5-test/internal/repository/specification"
)

type BlockRepository struct {
	store *Store
	uow   *UnitOfWork
}

func NewBlockRepository(store *Store) contract.BlockRepository {
	return &BlockRepository{store: store}
}

func blockColumn(b *entity.Block, column string) interface{} {
	switch column {
	case "id":
		return b.Id
	case "page_id":
		return b.PageId
	case "type":
		return string(b.Type)
	case "content":
		return b.Content
	case "position":
		return b.Order
	case "created_at":
		return b.CreatedAt
	case "updated_at":
		return b.UpdatedAt
	}
	return nil
}

func (r *BlockRepository) Create(ctx context.Context, block *entity.Block) error {
	defer r.store.write(r.uow)()
	r.create(block)
	return nil
}

func (r *BlockRepository) create(block *entity.Block) {
	if block.CreatedAt.IsZero() {
		block.CreatedAt = r.store.timestamp()
	}
	*block = *r.store.blocks.insert(block)
}

func (r *BlockRepository) CreateBatch(ctx context.Context, items []*entity.Block) error {
	defer r.store.write(r.uow)()
	for _, b := range items {
		r.create(b)
	}
	return nil
}

func (r *BlockRepository) Update(ctx context.Context, block *entity.Block) error {
	defer r.store.write(r.uow)()

	now := r.store.timestamp()
	block.UpdatedAt = &now
	*block = *r.store.blocks.insert(block)
	return nil
}

func (r *BlockRepository) UpdateOrders(ctx context.Context, orders map[int64]float64) error {
	defer r.store.write(r.uow)()

	now := r.store.timestamp()
	for id, order := range orders {
		if b, ok := r.store.blocks.rows[id]; ok {
			b.Order = order
			t := now
			b.UpdatedAt = &t
		}
	}
	return nil
}

func (r *BlockRepository) Delete(ctx context.Context, id int64) error {
	defer r.store.write(r.uow)()
	delete(r.store.blocks.rows, id)
	return nil
}

func (r *BlockRepository) DeleteByPageIDs(ctx context.Context, pageIds []int64) error {
	defer r.store.write(r.uow)()

	set := int64Set(pageIds)
	for id, b := range r.store.blocks.rows {
		if set[b.PageId] {
			delete(r.store.blocks.rows, id)
		}
	}
	return nil
}

func (r *BlockRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Block, error) {
	rows, err := r.FindAll(ctx, specs...)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *BlockRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Block, error) {
	q, err := compile(blockColumn, specs)
	if err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return q.run(blockColumn, r.store.blocks.sorted()), nil
}

func (r *BlockRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, err := r.FindAll(ctx, specs...)
	return int64(len(rows)), err
}
