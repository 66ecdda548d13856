package client

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

const DefaultSaveDelay = 500 * time.Millisecond

var ErrSaverClosed = errors.New("autosaver closed")

// SaveFunc persists the content of one block.
type SaveFunc func(ctx context.Context, blockId int64, content string) error

// Autosaver debounces content writes per block. A new edit restarts that
// block's timer and replaces its pending content, so only the last write
// within the delay reaches the server.
type Autosaver struct {
	delay time.Duration
	save  SaveFunc

	// OnError receives failures of timer driven saves.
	OnError func(blockId int64, err error)

	mu      sync.Mutex
	pending map[int64]string
	timers  map[int64]*time.Timer
	closed  bool

	saving sync.Mutex
}

func NewAutosaver(delay time.Duration, save SaveFunc) *Autosaver {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	return &Autosaver{
		delay:   delay,
		save:    save,
		pending: make(map[int64]string),
		timers:  make(map[int64]*time.Timer),
	}
}

// Schedule queues content for blockId and restarts its timer.
func (a *Autosaver) Schedule(blockId int64, content string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrSaverClosed
	}
	a.pending[blockId] = content
	if t, ok := a.timers[blockId]; ok {
		t.Stop()
	}
	a.timers[blockId] = time.AfterFunc(a.delay, func() { a.fire(blockId) })
	return nil
}

// Cancel drops a pending edit without saving it.
func (a *Autosaver) Cancel(blockId int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if t, ok := a.timers[blockId]; ok {
		t.Stop()
	}
	delete(a.timers, blockId)
	delete(a.pending, blockId)
}

// Pending reports how many blocks have unsaved content.
func (a *Autosaver) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

func (a *Autosaver) fire(blockId int64) {
	a.mu.Lock()
	content, ok := a.pending[blockId]
	delete(a.pending, blockId)
	delete(a.timers, blockId)
	a.mu.Unlock()

	if !ok {
		return
	}
	if err := a.persist(context.Background(), blockId, content); err != nil && a.OnError != nil {
		a.OnError(blockId, err)
	}
}

func (a *Autosaver) persist(ctx context.Context, blockId int64, content string) error {
	a.saving.Lock()
	defer a.saving.Unlock()
	return a.save(ctx, blockId, content)
}

// Flush saves every pending edit now, in block id order.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	batch := a.pending
	for _, t := range a.timers {
		t.Stop()
	}
	a.pending = make(map[int64]string)
	a.timers = make(map[int64]*time.Timer)
	a.mu.Unlock()

	ids := make([]int64, 0, len(batch))
	for id := range batch {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var errs []error
	for _, id := range ids {
		if err := a.persist(ctx, id, batch[id]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close flushes pending edits and rejects further ones.
func (a *Autosaver) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	return a.Flush(ctx)
}
