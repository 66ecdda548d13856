package unitofwork

import (
	"context"

	"github.com/redcow77/module-5-test/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	PageRepository() contract.PageRepository
	BlockRepository() contract.BlockRepository
	MemoRepository() contract.MemoRepository
}
