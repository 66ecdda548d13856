package unitofwork_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcow77/module-5-test/internal/entity"
	"github.com/redcow77/module-5-test/internal/model"
	"github.com/redcow77/module-5-test/internal/repository/specification"
	"github.com/redcow77/module-5-test/internal/repository/unitofwork"
	"github.com/redcow77/module-5-test/pkg/blocks"
	"github.com/redcow77/module-5-test/pkg/database"
)

func TestGormUnitOfWork(t *testing.T) {
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, model.All()...))

	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(db)
	uow := factory.NewUnitOfWork(ctx)
	marker := "integration-" + uuid.NewString()

	root := &entity.Page{Title: marker}
	require.NoError(t, uow.PageRepository().Create(ctx, root))
	t.Cleanup(func() {
		_ = uow.BlockRepository().DeleteByPageIDs(ctx, []int64{root.Id})
		_ = uow.PageRepository().DeleteByIDs(ctx, []int64{root.Id})
	})
	assert.NotZero(t, root.Id)

	t.Run("blocks keep their order", func(t *testing.T) {
		items := []*entity.Block{
			{PageId: root.Id, Type: blocks.TypeText, Content: "b", Order: 1},
			{PageId: root.Id, Type: blocks.TypeHeading1, Content: "a", Order: 0},
		}
		require.NoError(t, uow.BlockRepository().CreateBatch(ctx, items))

		found, err := uow.BlockRepository().FindAll(ctx,
			specification.ByPageID{PageID: root.Id},
			specification.OrderBy{Field: "position"},
		)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "a", found[0].Content)

		require.NoError(t, uow.BlockRepository().UpdateOrders(ctx, map[int64]float64{found[0].Id: 5}))
		moved, err := uow.BlockRepository().FindOne(ctx, specification.ByID{ID: found[0].Id})
		require.NoError(t, err)
		assert.Equal(t, float64(5), moved.Order)
	})

	t.Run("rollback discards writes", func(t *testing.T) {
		tx := factory.NewUnitOfWork(ctx)
		require.NoError(t, tx.Begin(ctx))
		child := &entity.Page{Title: marker + "-child", ParentId: &root.Id}
		require.NoError(t, tx.PageRepository().Create(ctx, child))
		require.NoError(t, tx.Rollback())

		count, err := uow.PageRepository().Count(ctx, specification.ByParentID{ParentID: &root.Id})
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("memo search matches tags", func(t *testing.T) {
		memo := &entity.Memo{Title: marker, Content: "body", Tags: []string{"zebra-" + marker}}
		require.NoError(t, uow.MemoRepository().Create(ctx, memo))
		t.Cleanup(func() { _ = uow.MemoRepository().Delete(ctx, memo.Id) })

		found, err := uow.MemoRepository().FindAll(ctx, specification.MemoSearchQuery{Query: "ZEBRA-" + marker})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, []string{"zebra-" + marker}, found[0].Tags)
	})
}
