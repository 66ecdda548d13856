package memory

import (
	"context"

	"github.com/redcow77/module-5-test/internal/entity"
	"github.com/redcow77/module-5-test/internal/repository/contract"
	"github.com/redcow77/module-5-test/internal/repository/specification"
)

type MemoRepository struct {
	store *Store
	uow   *UnitOfWork
}

func NewMemoRepository(store *Store) contract.MemoRepository {
	return &MemoRepository{store: store}
}

func memoColumn(m *entity.Memo, column string) interface{} {
	switch column {
	case "id":
		return m.Id
	case "title":
		return m.Title
	case "content":
		return m.Content
	case "ai_summary":
		return m.AiSummary
	case "tags":
		return m.Tags
	case "user_id":
		return m.UserId
	case "created_at":
		return m.CreatedAt
	case "updated_at":
		return m.UpdatedAt
	}
	return nil
}

func (r *MemoRepository) Create(ctx context.Context, memo *entity.Memo) error {
	defer r.store.write(r.uow)()

	if memo.CreatedAt.IsZero() {
		memo.CreatedAt = r.store.timestamp()
	}
	*memo = *r.store.memos.insert(memo)
	return nil
}

func (r *MemoRepository) Update(ctx context.Context, memo *entity.Memo) error {
	defer r.store.write(r.uow)()

	now := r.store.timestamp()
	memo.UpdatedAt = &now
	*memo = *r.store.memos.insert(memo)
	return nil
}

func (r *MemoRepository) Delete(ctx context.Context, id int64) error {
	defer r.store.write(r.uow)()
	delete(r.store.memos.rows, id)
	return nil
}

func (r *MemoRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Memo, error) {
	rows, err := r.FindAll(ctx, specs...)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *MemoRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Memo, error) {
	q, err := compile(memoColumn, specs)
	if err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return q.run(memoColumn, r.store.memos.sorted()), nil
}

func (r *MemoRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, err := r.FindAll(ctx, specs...)
	return int64(len(rows)), err
}
