package memory

import (
	"context"
	"fmt"

	"github.com/redcow77/module-5-test/internal/repository/contract"
	"github.com/redcow77/module-5-test/internal/repository/unitofwork"
)

type UnitOfWork struct {
	store *Store
	snap  *snapshot // non-nil while a transaction is open
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.snap != nil {
		return fmt.Errorf("transaction already started")
	}
	u.store.txMu.Lock()
	u.snap = u.store.snapshot()
	return nil
}

func (u *UnitOfWork) Commit() error {
	if u.snap == nil {
		return fmt.Errorf("no transaction to commit")
	}
	u.snap = nil
	u.store.txMu.Unlock()
	return nil
}

func (u *UnitOfWork) Rollback() error {
	if u.snap == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	u.store.restore(u.snap)
	u.snap = nil
	u.store.txMu.Unlock()
	return nil
}

func (u *UnitOfWork) inTx() bool {
	return u != nil && u.snap != nil
}

func (u *UnitOfWork) PageRepository() contract.PageRepository {
	return &PageRepository{store: u.store, uow: u}
}

func (u *UnitOfWork) BlockRepository() contract.BlockRepository {
	return &BlockRepository{store: u.store, uow: u}
}

func (u *UnitOfWork) MemoRepository() contract.MemoRepository {
	return &MemoRepository{store: u.store, uow: u}
}

type RepositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &RepositoryFactory{store: store}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &UnitOfWork{store: f.store}
}
