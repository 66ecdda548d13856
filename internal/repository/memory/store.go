// Package memory is an in-process storage driver behind the same
// repository contracts as the GORM implementation. It backs development
// runs (STORAGE_DRIVER=memory) and service tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/redcow77/module-5-test/internal/entity"
)

type table[T any] struct {
	rows   map[int64]*T
	nextID int64
	id     func(*T) *int64
	clone  func(*T) *T
}

func newTable[T any](id func(*T) *int64, clone func(*T) *T) *table[T] {
	return &table[T]{rows: map[int64]*T{}, id: id, clone: clone}
}

func (t *table[T]) insert(row *T) *T {
	stored := t.clone(row)
	if *t.id(stored) == 0 {
		t.nextID++
		*t.id(stored) = t.nextID
	} else if *t.id(stored) > t.nextID {
		t.nextID = *t.id(stored)
	}
	t.rows[*t.id(stored)] = stored
	return t.clone(stored)
}

// sorted returns detached copies ordered by id.
func (t *table[T]) sorted() []*T {
	out := make([]*T, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, t.clone(r))
	}
	sort.Slice(out, func(i, j int) bool { return *t.id(out[i]) < *t.id(out[j]) })
	return out
}

func (t *table[T]) snapshot() *table[T] {
	c := newTable(t.id, t.clone)
	c.nextID = t.nextID
	for k, v := range t.rows {
		c.rows[k] = t.clone(v)
	}
	return c
}

// Store holds every table. Transactions are serialized on txMu and undone
// by restoring the snapshot taken at Begin. Writes outside a transaction
// also take txMu, so a rollback never discards them.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	pages  *table[entity.Page]
	blocks *table[entity.Block]
	memos  *table[entity.Memo]

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		pages:  newTable(func(p *entity.Page) *int64 { return &p.Id }, clonePage),
		blocks: newTable(func(b *entity.Block) *int64 { return &b.Id }, cloneBlock),
		memos:  newTable(func(m *entity.Memo) *int64 { return &m.Id }, cloneMemo),
		now:    time.Now,
	}
}

type snapshot struct {
	pages  *table[entity.Page]
	blocks *table[entity.Block]
	memos  *table[entity.Memo]
}

func (s *Store) snapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &snapshot{pages: s.pages.snapshot(), blocks: s.blocks.snapshot(), memos: s.memos.snapshot()}
}

func (s *Store) restore(snap *snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages, s.blocks, s.memos = snap.pages, snap.blocks, snap.memos
}

// write locks the store for one repository write and returns the unlock.
// Writes made inside tx already hold txMu.
func (s *Store) write(tx *UnitOfWork) func() {
	own := !tx.inTx()
	if own {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if own {
			s.txMu.Unlock()
		}
	}
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func clonePage(p *entity.Page) *entity.Page {
	c := *p
	c.Icon = cloneString(p.Icon)
	c.UserId = cloneString(p.UserId)
	if p.ParentId != nil {
		v := *p.ParentId
		c.ParentId = &v
	}
	c.UpdatedAt = cloneTime(p.UpdatedAt)
	return &c
}

func cloneBlock(b *entity.Block) *entity.Block {
	c := *b
	c.UpdatedAt = cloneTime(b.UpdatedAt)
	return &c
}

func cloneMemo(m *entity.Memo) *entity.Memo {
	c := *m
	c.AiSummary = cloneString(m.AiSummary)
	c.UserId = cloneString(m.UserId)
	if m.Tags != nil {
		c.Tags = append([]string{}, m.Tags...)
	}
	c.UpdatedAt = cloneTime(m.UpdatedAt)
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
