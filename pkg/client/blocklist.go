package client

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redcow77/module-5-test/pkg/blocks"
)

var validate = validator.New()

// BlockList is the ordered block list of one page. Moves are applied
// locally first and rolled back when the server rejects them. Content edits
// are debounced through an Autosaver.
type BlockList struct {
	api    *Client
	pageId int64
	saver  *Autosaver

	mu     sync.Mutex
	blocks []Block
}

// NewBlockList wraps initial blocks of pageId. A zero delay uses
// DefaultSaveDelay.
func NewBlockList(api *Client, pageId int64, initial []Block, delay time.Duration) *BlockList {
	l := &BlockList{api: api, pageId: pageId}
	l.saver = NewAutosaver(delay, func(ctx context.Context, blockId int64, content string) error {
		_, err := api.UpdateBlock(ctx, blockId, UpdateBlockInput{Content: &content})
		return err
	})
	l.set(initial)
	return l
}

func (l *BlockList) PageId() int64 {
	return l.pageId
}

func (l *BlockList) Saver() *Autosaver {
	return l.saver
}

// Blocks returns a copy of the current blocks in display order.
func (l *BlockList) Blocks() []Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Block, len(l.blocks))
	copy(out, l.blocks)
	return out
}

func (l *BlockList) set(items []Block) {
	sorted := make([]Block, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order == sorted[j].Order {
			return sorted[i].Id < sorted[j].Id
		}
		return sorted[i].Order < sorted[j].Order
	})
	l.mu.Lock()
	l.blocks = sorted
	l.mu.Unlock()
}

func (l *BlockList) index(blockId int64) int {
	for i, b := range l.blocks {
		if b.Id == blockId {
			return i
		}
	}
	return -1
}

// Reload replaces local state with the server's.
func (l *BlockList) Reload(ctx context.Context) error {
	items, err := l.api.ListBlocks(ctx, l.pageId)
	if err != nil {
		return err
	}
	l.set(items)
	return nil
}

// Add creates a block at the end, or right after another block.
func (l *BlockList) Add(ctx context.Context, kind blocks.Type, content string, after *int64) (*Block, error) {
	if err := validate.Var(string(kind), "required,"+blocks.ValidatorTag); err != nil {
		return nil, fmt.Errorf("invalid block type %q", kind)
	}
	if kind == blocks.TypeDivider {
		content = blocks.DividerContent
	}
	created, err := l.api.CreateBlock(ctx, CreateBlockInput{
		PageId:       l.pageId,
		Type:         kind,
		Content:      content,
		AfterBlockId: after,
	})
	if err != nil {
		return nil, err
	}
	return created, l.Reload(ctx)
}

// Edit updates content locally and schedules a debounced save.
func (l *BlockList) Edit(blockId int64, content string) error {
	l.mu.Lock()
	i := l.index(blockId)
	if i >= 0 {
		l.blocks[i].Content = content
	}
	l.mu.Unlock()

	if i < 0 {
		return fmt.Errorf("block %d not in page %d", blockId, l.pageId)
	}
	return l.saver.Schedule(blockId, content)
}

// SetType changes a block's kind immediately.
func (l *BlockList) SetType(ctx context.Context, blockId int64, kind blocks.Type) error {
	if err := validate.Var(string(kind), "required,"+blocks.ValidatorTag); err != nil {
		return fmt.Errorf("invalid block type %q", kind)
	}
	updated, err := l.api.UpdateBlock(ctx, blockId, UpdateBlockInput{Type: &kind})
	if err != nil {
		return err
	}
	l.replace(*updated)
	return nil
}

// Toggle flips a todo checkbox.
func (l *BlockList) Toggle(ctx context.Context, blockId int64) error {
	updated, err := l.api.ToggleBlock(ctx, blockId)
	if err != nil {
		return err
	}
	l.replace(*updated)
	return nil
}

func (l *BlockList) replace(b Block) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(b.Id); i >= 0 {
		l.blocks[i] = b
	}
}

// Delete drops a pending edit for the block, removes it and reloads.
func (l *BlockList) Delete(ctx context.Context, blockId int64) error {
	l.saver.Cancel(blockId)
	if err := l.api.DeleteBlock(ctx, blockId); err != nil {
		return err
	}
	return l.Reload(ctx)
}

// Move places the block at index from at index to. The new order is shown
// at once and sent as one batch reorder; on failure the previous positions
// are restored and the error returned. Content is never rolled back, so
// edits made while the request is in flight survive either way.
func (l *BlockList) Move(ctx context.Context, from, to int) error {
	l.mu.Lock()
	if from < 0 || from >= len(l.blocks) {
		l.mu.Unlock()
		return fmt.Errorf("index %d out of range", from)
	}
	previous := make(map[int64]float64, len(l.blocks))
	ids := make([]int64, len(l.blocks))
	byId := make(map[int64]Block, len(l.blocks))
	for i, b := range l.blocks {
		previous[b.Id] = b.Order
		ids[i] = b.Id
		byId[b.Id] = b
	}
	ids = blocks.Move(ids, from, to)

	moved := make([]Block, len(ids))
	for i, id := range ids {
		b := byId[id]
		b.Order = float64(i)
		moved[i] = b
	}
	l.blocks = moved
	l.mu.Unlock()

	result, err := l.api.ReorderBlocks(ctx, l.pageId, ids)
	if err != nil {
		l.reposition(previous)
		return err
	}

	positions := make(map[int64]float64, len(result))
	for _, b := range result {
		positions[b.Id] = b.Order
	}
	l.reposition(positions)
	return nil
}

// reposition applies orders to the current blocks and re-sorts them.
// Blocks missing from orders keep their position.
func (l *BlockList) reposition(orders map[int64]float64) {
	l.mu.Lock()
	current := make([]Block, len(l.blocks))
	copy(current, l.blocks)
	l.mu.Unlock()
	for i := range current {
		if pos, ok := orders[current[i].Id]; ok {
			current[i].Order = pos
		}
	}
	l.set(current)
}

// Flush saves pending edits now.
func (l *BlockList) Flush(ctx context.Context) error {
	return l.saver.Flush(ctx)
}

// Close flushes pending edits and stops the autosaver.
func (l *BlockList) Close(ctx context.Context) error {
	return l.saver.Close(ctx)
}
