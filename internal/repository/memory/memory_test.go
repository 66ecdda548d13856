package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/redcow77/module-5-test/internal/entity"
	"github.com/redcow77/module-5-test/internal/repository/specification"
	"github.com/redcow77/module-5-test/pkg/blocks"
)

func TestPageRepositoryFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewPageRepository(NewStore())

	root := &entity.Page{Title: "root"}
	require.NoError(t, repo.Create(ctx, root))
	assert.Equal(t, int64(1), root.Id)
	assert.False(t, root.CreatedAt.IsZero())

	child := &entity.Page{Title: "child", ParentId: &root.Id}
	require.NoError(t, repo.Create(ctx, child))

	roots, err := repo.FindAll(ctx, specification.ByParentID{})
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "root", roots[0].Title)

	children, err := repo.FindAll(ctx, specification.ByParentID{ParentID: &root.Id})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.Id, children[0].Id)

	missing, err := repo.FindOne(ctx, specification.ByID{ID: 99})
	require.NoError(t, err)
	assert.Nil(t, missing)

	// returned rows are detached copies
	roots[0].Title = "mutated"
	again, _ := repo.FindOne(ctx, specification.ByID{ID: root.Id})
	assert.Equal(t, "root", again.Title)
}

func TestBlockRepositoryOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewBlockRepository(NewStore())

	items := []*entity.Block{
		{PageId: 1, Type: blocks.TypeText, Content: "c", Order: 2},
		{PageId: 1, Type: blocks.TypeText, Content: "a", Order: 0},
		{PageId: 1, Type: blocks.TypeText, Content: "b", Order: 1},
		{PageId: 2, Type: blocks.TypeText, Content: "other", Order: 0},
	}
	require.NoError(t, repo.CreateBatch(ctx, items))

	got, err := repo.FindAll(ctx, specification.ByPageID{PageID: 1}, specification.OrderBy{Field: "position"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].Content, got[1].Content, got[2].Content})

	require.NoError(t, repo.UpdateOrders(ctx, map[int64]float64{items[0].Id: -1}))
	got, _ = repo.FindAll(ctx, specification.ByPageID{PageID: 1}, specification.OrderBy{Field: "position"})
	assert.Equal(t, "c", got[0].Content)
	assert.NotNil(t, got[0].UpdatedAt)

	require.NoError(t, repo.DeleteByPageIDs(ctx, []int64{1}))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoRepositorySearchAndPagination(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoRepository(store)

	for i, title := range []string{"Go notes", "Groceries", "golang tips"} {
		m := &entity.Memo{Title: title, Content: "x", CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, repo.Create(ctx, m))
	}
	tagged := &entity.Memo{Title: "misc", Content: "x", Tags: []string{"GoLang"}, CreatedAt: base.Add(5 * time.Hour)}
	require.NoError(t, repo.Create(ctx, tagged))

	got, err := repo.FindAll(ctx, specification.MemoSearchQuery{Query: "golang"}, specification.OrderBy{Field: "created_at", Desc: true})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "misc", got[0].Title)
	assert.Equal(t, "golang tips", got[1].Title)

	page, err := repo.FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true}, specification.Pagination{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "golang tips", page[0].Title)
	assert.Equal(t, "Groceries", page[1].Title)
}

func TestUnitOfWorkRollback(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(NewStore())

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.PageRepository().Create(ctx, &entity.Page{Title: "kept"}))

	require.NoError(t, uow.Begin(ctx))
	assert.Error(t, uow.Begin(ctx))
	require.NoError(t, uow.PageRepository().Create(ctx, &entity.Page{Title: "discarded"}))
	require.NoError(t, uow.Rollback())

	pages, err := factory.NewUnitOfWork(ctx).PageRepository().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "kept", pages[0].Title)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.PageRepository().Create(ctx, &entity.Page{Title: "committed"}))
	require.NoError(t, uow.Commit())
	assert.Error(t, uow.Commit())

	n, _ := factory.NewUnitOfWork(ctx).PageRepository().Count(ctx)
	assert.Equal(t, int64(2), n)
}

func TestRollbackKeepsWritesOutsideTransaction(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(NewStore())

	tx := factory.NewUnitOfWork(ctx)
	require.NoError(t, tx.Begin(ctx))
	require.NoError(t, tx.PageRepository().Create(ctx, &entity.Page{Title: "discarded"}))

	done := make(chan error, 1)
	go func() {
		done <- factory.NewUnitOfWork(ctx).MemoRepository().Create(ctx, &entity.Memo{Title: "outside", Content: "kept"})
	}()

	select {
	case <-done:
		t.Fatal("write outside the transaction did not wait for it to end")
	case <-time.After(50 * time.Millisecond):
	}
	require.NoError(t, tx.Rollback())
	require.NoError(t, <-done)

	reader := factory.NewUnitOfWork(ctx)
	pages, err := reader.PageRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pages)

	memos, err := reader.MemoRepository().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, memos, 1)
	assert.Equal(t, "outside", memos[0].Title)
}

type unknownSpec struct{}

func (unknownSpec) Apply(db *gorm.DB) *gorm.DB { return db }

func TestUnsupportedSpecification(t *testing.T) {
	_, err := NewMemoRepository(NewStore()).FindAll(context.Background(), unknownSpec{})
	assert.Error(t, err)
}
