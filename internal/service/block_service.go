package service

import (
	"context"
	"time"

	"github.com/redcow77/module-5-test/internal/dto"
	"github.com/redcow77/module-5-test/internal/entity"
	"github.com/redcow77/module-5-test/internal/pkg/logger"
	"github.com/redcow77/module-5-test/internal/pkg/serverutils"
	"github.com/redcow77/module-5-test/internal/repository/specification"
	"github.com/redcow77/module-5-test/internal/repository/unitofwork"
	"github.com/redcow77/module-5-test/pkg/blocks"
	"github.com/redcow77/module-5-test/pkg/events"
)

type IBlockService interface {
	ListByPage(ctx context.Context, pageId int64) ([]*dto.BlockResponse, error)
	Create(ctx context.Context, req *dto.CreateBlockRequest) (*dto.BlockResponse, error)
	Update(ctx context.Context, req *dto.UpdateBlockRequest) (*dto.BlockResponse, error)
	Delete(ctx context.Context, id int64) error
	// Reorder moves one block (returns it) or renumbers a page (returns
	// every block of the page in order).
	Reorder(ctx context.Context, req *dto.ReorderBlocksRequest) ([]*dto.BlockResponse, error)
	Toggle(ctx context.Context, id int64) (*dto.BlockResponse, error)
}

type blockService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewBlockService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService, log logger.ILogger) IBlockService {
	return &blockService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *blockService) ensurePage(ctx context.Context, uow unitofwork.UnitOfWork, pageId int64) error {
	page, err := uow.PageRepository().FindOne(ctx, specification.ByID{ID: pageId})
	if err != nil {
		return err
	}
	if page == nil {
		return serverutils.NotFound("Page not found")
	}
	return nil
}

func (s *blockService) findBlock(ctx context.Context, uow unitofwork.UnitOfWork, id int64) (*entity.Block, error) {
	block, err := uow.BlockRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, serverutils.NotFound("Block not found")
	}
	return block, nil
}

func (s *blockService) siblings(ctx context.Context, uow unitofwork.UnitOfWork, pageId int64) ([]*entity.Block, error) {
	return uow.BlockRepository().FindAll(ctx,
		specification.ByPageID{PageID: pageId},
		specification.OrderBy{Field: "position"},
	)
}

func (s *blockService) ListByPage(ctx context.Context, pageId int64) ([]*dto.BlockResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.ensurePage(ctx, uow, pageId); err != nil {
		return nil, err
	}
	items, err := s.siblings(ctx, uow, pageId)
	if err != nil {
		return nil, err
	}
	return toBlockResponses(items), nil
}

func (s *blockService) Create(ctx context.Context, req *dto.CreateBlockRequest) (*dto.BlockResponse, error) {
	blockType := req.Type
	if blockType == "" {
		blockType = blocks.TypeText
	}
	if !blockType.Valid() {
		return nil, serverutils.BadRequest("Invalid block type")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.ensurePage(ctx, uow, req.PageId); err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	block := entity.Block{
		PageId:    req.PageId,
		Type:      blockType,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	order, err := s.placement(ctx, uow, req)
	if err != nil {
		uow.Rollback()
		return nil, err
	}
	block.Order = order

	if err := uow.BlockRepository().Create(ctx, &block); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	publishAsync(ctx, s.publisher, s.logger, events.BlockCreated, map[string]interface{}{
		"page_id":  block.PageId,
		"block_id": block.Id,
		"type":     block.Type,
		"order":    block.Order,
	})
	return toBlockResponse(&block), nil
}

// placement picks the position of a new block. Inserting after a sibling
// shifts every later sibling down by one so the page stays dense.
func (s *blockService) placement(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.CreateBlockRequest) (float64, error) {
	if req.AfterBlockId == nil && req.Order != nil {
		return *req.Order, nil
	}

	items, err := s.siblings(ctx, uow, req.PageId)
	if err != nil {
		return 0, err
	}

	if req.AfterBlockId == nil {
		if len(items) == 0 {
			return 0, nil
		}
		return items[len(items)-1].Order + 1, nil
	}

	anchor := -1
	for i, b := range items {
		if b.Id == *req.AfterBlockId {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return 0, serverutils.NotFound("Block to insert after not found on this page")
	}

	orders := make(map[int64]float64)
	for i, b := range items {
		want := float64(i)
		if i > anchor {
			want = float64(i + 1)
		}
		if b.Order != want {
			orders[b.Id] = want
		}
	}
	if len(orders) > 0 {
		if err := uow.BlockRepository().UpdateOrders(ctx, orders); err != nil {
			return 0, err
		}
	}
	return float64(anchor + 1), nil
}

func (s *blockService) Update(ctx context.Context, req *dto.UpdateBlockRequest) (*dto.BlockResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	block, err := s.findBlock(ctx, uow, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, serverutils.BadRequest("Invalid block type")
		}
		block.Type = *req.Type
	}
	if req.Content != nil {
		block.Content = *req.Content
	}
	if req.Order != nil {
		block.Order = *req.Order
	}

	if err := uow.BlockRepository().Update(ctx, block); err != nil {
		return nil, err
	}

	publishAsync(ctx, s.publisher, s.logger, events.BlockUpdated, map[string]interface{}{
		"page_id":  block.PageId,
		"block_id": block.Id,
		"type":     block.Type,
		"order":    block.Order,
	})
	return toBlockResponse(block), nil
}

func (s *blockService) Delete(ctx context.Context, id int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	block, err := s.findBlock(ctx, uow, id)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.BlockRepository().Delete(ctx, id); err != nil {
		uow.Rollback()
		return err
	}
	if err := s.densify(ctx, uow, block.PageId); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	publishAsync(ctx, s.publisher, s.logger, events.BlockDeleted, map[string]interface{}{
		"page_id":  block.PageId,
		"block_id": id,
	})
	return nil
}

func (s *blockService) densify(ctx context.Context, uow unitofwork.UnitOfWork, pageId int64) error {
	items, err := s.siblings(ctx, uow, pageId)
	if err != nil {
		return err
	}
	orders := blocks.Densify(positions(items))
	if len(orders) == 0 {
		return nil
	}
	return uow.BlockRepository().UpdateOrders(ctx, orders)
}

func positions(items []*entity.Block) []blocks.Positioned {
	out := make([]blocks.Positioned, 0, len(items))
	for _, b := range items {
		out = append(out, blocks.Positioned{ID: b.Id, Order: b.Order})
	}
	return out
}

func (s *blockService) Reorder(ctx context.Context, req *dto.ReorderBlocksRequest) ([]*dto.BlockResponse, error) {
	if req.IsBatch() {
		return s.reorderPage(ctx, req)
	}
	if req.BlockId == nil || req.NewOrder == nil {
		return nil, serverutils.BadRequest("Either block_id with new_order or page_id with block_orders is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	block, err := s.findBlock(ctx, uow, *req.BlockId)
	if err != nil {
		return nil, err
	}
	if err := uow.BlockRepository().UpdateOrders(ctx, map[int64]float64{block.Id: *req.NewOrder}); err != nil {
		return nil, err
	}
	now := time.Now()
	block.Order = *req.NewOrder
	block.UpdatedAt = &now

	publishAsync(ctx, s.publisher, s.logger, events.BlocksReordered, map[string]interface{}{
		"page_id":  block.PageId,
		"block_id": block.Id,
		"order":    block.Order,
	})
	return []*dto.BlockResponse{toBlockResponse(block)}, nil
}

func (s *blockService) reorderPage(ctx context.Context, req *dto.ReorderBlocksRequest) ([]*dto.BlockResponse, error) {
	if req.PageId == nil {
		return nil, serverutils.BadRequest("page_id is required for a batch reorder")
	}
	pageId := *req.PageId

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.ensurePage(ctx, uow, pageId); err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	items, err := s.siblings(ctx, uow, pageId)
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	requested, err := requestedPositions(req, items)
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	stored := make(map[int64]float64, len(items))
	for _, b := range items {
		stored[b.Id] = b.Order
	}
	orders := blocks.Renumber(requested, stored)
	if len(orders) > 0 {
		if err := uow.BlockRepository().UpdateOrders(ctx, orders); err != nil {
			uow.Rollback()
			return nil, err
		}
	}

	result, err := s.siblings(ctx, uow, pageId)
	if err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(result))
	for _, b := range result {
		ids = append(ids, b.Id)
	}
	publishAsync(ctx, s.publisher, s.logger, events.BlocksReordered, map[string]interface{}{
		"page_id":   pageId,
		"block_ids": ids,
	})
	return toBlockResponses(result), nil
}

// requestedPositions merges the request with the page's current blocks.
// Blocks the request leaves out keep their relative order after the listed
// ones (block_ids) or their current position (block_orders).
func requestedPositions(req *dto.ReorderBlocksRequest, items []*entity.Block) ([]blocks.Positioned, error) {
	current := make(map[int64]float64, len(items))
	for _, b := range items {
		current[b.Id] = b.Order
	}

	seen := make(map[int64]bool)
	claim := func(id int64) error {
		if _, ok := current[id]; !ok {
			return serverutils.BadRequest("All blocks must belong to the page")
		}
		if seen[id] {
			return serverutils.BadRequest("Duplicate block in reorder request")
		}
		seen[id] = true
		return nil
	}

	out := make([]blocks.Positioned, 0, len(items))
	if req.BlockIds != nil {
		for i, id := range req.BlockIds {
			if err := claim(id); err != nil {
				return nil, err
			}
			out = append(out, blocks.Positioned{ID: id, Order: float64(i)})
		}
		next := float64(len(req.BlockIds))
		for _, b := range items {
			if !seen[b.Id] {
				out = append(out, blocks.Positioned{ID: b.Id, Order: next})
				next++
			}
		}
		return out, nil
	}

	for _, o := range req.BlockOrders {
		if err := claim(o.Id); err != nil {
			return nil, err
		}
		out = append(out, blocks.Positioned{ID: o.Id, Order: o.Order})
	}
	for _, b := range items {
		if !seen[b.Id] {
			out = append(out, blocks.Positioned{ID: b.Id, Order: b.Order})
		}
	}
	return out, nil
}

func (s *blockService) Toggle(ctx context.Context, id int64) (*dto.BlockResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	block, err := s.findBlock(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if block.Type != blocks.TypeTodo {
		return nil, serverutils.BadRequest("Only todo blocks can be toggled")
	}

	block.Content = blocks.ToggleTodo(block.Content)
	if err := uow.BlockRepository().Update(ctx, block); err != nil {
		return nil, err
	}

	checked, _ := blocks.ParseTodo(block.Content)
	publishAsync(ctx, s.publisher, s.logger, events.BlockUpdated, map[string]interface{}{
		"page_id":  block.PageId,
		"block_id": block.Id,
		"checked":  checked,
	})
	return toBlockResponse(block), nil
}
