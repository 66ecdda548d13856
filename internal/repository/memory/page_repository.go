package memory

import (
	"context"

	"github.com/redcow77/module-5-test/internal/entity"
	"github.com/redcow77/module-5-test/internal/repository/contract"
	"github.com/redcow77/module-5-test/internal/repository/specification"
)

type PageRepository struct {
	store *Store
	uow   *UnitOfWork
}

func NewPageRepository(store *Store) contract.PageRepository {
	return &PageRepository{store: store}
}

func pageColumn(p *entity.Page, column string) interface{} {
	switch column {
	case "id":
		return p.Id
	case "title":
		return p.Title
	case "icon":
		return p.Icon
	case "parent_id":
		return p.ParentId
	case "user_id":
		return p.UserId
	case "created_at":
		return p.CreatedAt
	case "updated_at":
		return p.UpdatedAt
	}
	return nil
}

func (r *PageRepository) Create(ctx context.Context, page *entity.Page) error {
	defer r.store.write(r.uow)()

	now := r.store.timestamp()
	if page.CreatedAt.IsZero() {
		page.CreatedAt = now
	}
	*page = *r.store.pages.insert(page)
	return nil
}

func (r *PageRepository) Update(ctx context.Context, page *entity.Page) error {
	defer r.store.write(r.uow)()

	now := r.store.timestamp()
	page.UpdatedAt = &now
	*page = *r.store.pages.insert(page)
	return nil
}

func (r *PageRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	defer r.store.write(r.uow)()

	for _, id := range ids {
		delete(r.store.pages.rows, id)
	}
	return nil
}

func (r *PageRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Page, error) {
	rows, err := r.FindAll(ctx, specs...)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *PageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Page, error) {
	q, err := compile(pageColumn, specs)
	if err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return q.run(pageColumn, r.store.pages.sorted()), nil
}

func (r *PageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, err := r.FindAll(ctx, specs...)
	return int64(len(rows)), err
}
