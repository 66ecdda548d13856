package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/redcow77/module-5-test/internal/dto"
	"github.com/redcow77/module-5-test/internal/entity"
	"github.com/redcow77/module-5-test/internal/pkg/logger"
	"github.com/redcow77/module-5-test/internal/pkg/serverutils"
	"github.com/redcow77/module-5-test/internal/repository/specification"
	"github.com/redcow77/module-5-test/internal/repository/unitofwork"
	"github.com/redcow77/module-5-test/pkg/blocks"
	"github.com/redcow77/module-5-test/pkg/cache"
	"github.com/redcow77/module-5-test/pkg/events"
	"github.com/redcow77/module-5-test/pkg/markdown"
)

const (
	DefaultPageTitle = "Untitled"
	maxTitleLength   = 500
	maxIconLength    = 10
)

type IPageService interface {
	List(ctx context.Context, query *dto.ListPagesQuery) ([]dto.PageResponse, error)
	Tree(ctx context.Context) ([]*dto.PageTreeNodeResponse, error)
	Show(ctx context.Context, id int64) (*dto.PageWithBlocksResponse, error)
	Breadcrumb(ctx context.Context, id int64) ([]dto.BreadcrumbItem, error)
	Create(ctx context.Context, req *dto.CreatePageRequest) (*dto.PageResponse, error)
	Update(ctx context.Context, req *dto.UpdatePageRequest) (*dto.PageResponse, error)
	Delete(ctx context.Context, id int64) error
	ExportMarkdown(ctx context.Context, id int64) (*dto.PageMarkdownResponse, error)
	ImportMarkdown(ctx context.Context, req *dto.ImportMarkdownRequest) (*dto.PageWithBlocksResponse, error)
	ImportHTML(ctx context.Context, req *dto.ImportHTMLRequest) (*dto.PageWithBlocksResponse, error)
	// CreateDocument creates a page and its blocks in one transaction.
	CreateDocument(ctx context.Context, doc *Document) (*dto.PageWithBlocksResponse, error)
}

// Document is a page about to be created together with its content.
type Document struct {
	Title    string
	Icon     *string
	ParentId *int64
	UserId   *string
	Blocks   []blocks.Draft
	// Event is published once the document is stored.
	Event string
}

type pageService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	cache      cache.Service
	logger     logger.ILogger
}

func NewPageService(
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	cacheService cache.Service,
	log logger.ILogger,
) IPageService {
	return &pageService{
		uowFactory: uowFactory,
		publisher:  publisher,
		cache:      cacheService,
		logger:     log,
	}
}

func (s *pageService) List(ctx context.Context, query *dto.ListPagesQuery) ([]dto.PageResponse, error) {
	specs := []specification.Specification{specification.OrderBy{Field: "created_at"}}

	switch p := strings.TrimSpace(strings.ToLower(query.ParentId)); p {
	case "":
	case "root", "null":
		specs = append(specs, specification.ByParentID{})
	default:
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			return nil, serverutils.BadRequest("Invalid parent_id")
		}
		specs = append(specs, specification.ByParentID{ParentID: &id})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	pages, err := uow.PageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]dto.PageResponse, 0, len(pages))
	for _, p := range pages {
		res = append(res, toPageResponse(p))
	}
	return res, nil
}

func (s *pageService) Tree(ctx context.Context) ([]*dto.PageTreeNodeResponse, error) {
	var cached []*dto.PageTreeNodeResponse
	if err := s.cache.Get(ctx, cache.KeyPageTree, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("PageService", "Page tree cache read failed", map[string]interface{}{"error": err.Error()})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	pages, err := uow.PageRepository().FindAll(ctx, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, err
	}

	tree := BuildPageTree(pages)
	if err := s.cache.Set(ctx, cache.KeyPageTree, tree, cache.TTLPageTree); err != nil {
		s.logger.Warn("PageService", "Page tree cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return tree, nil
}

// BuildPageTree nests pages by parent. Pages whose parent is missing are
// promoted to roots; sibling order follows the input order.
func BuildPageTree(pages []*entity.Page) []*dto.PageTreeNodeResponse {
	nodes := make(map[int64]*dto.PageTreeNodeResponse, len(pages))
	for _, p := range pages {
		nodes[p.Id] = &dto.PageTreeNodeResponse{PageResponse: toPageResponse(p), Children: []*dto.PageTreeNodeResponse{}}
	}

	roots := []*dto.PageTreeNodeResponse{}
	for _, p := range pages {
		node := nodes[p.Id]
		if p.ParentId != nil && *p.ParentId != p.Id {
			if parent, ok := nodes[*p.ParentId]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

func (s *pageService) findPage(ctx context.Context, uow unitofwork.UnitOfWork, id int64) (*entity.Page, error) {
	page, err := uow.PageRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, serverutils.NotFound("Page not found")
	}
	return page, nil
}

func (s *pageService) findParent(ctx context.Context, uow unitofwork.UnitOfWork, id *int64) error {
	if id == nil {
		return nil
	}
	parent, err := uow.PageRepository().FindOne(ctx, specification.ByID{ID: *id})
	if err != nil {
		return err
	}
	if parent == nil {
		return serverutils.NotFound("Parent page not found")
	}
	return nil
}

func (s *pageService) Show(ctx context.Context, id int64) (*dto.PageWithBlocksResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, err := s.findPage(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	items, err := uow.BlockRepository().FindAll(ctx,
		specification.ByPageID{PageID: id},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return nil, err
	}

	return &dto.PageWithBlocksResponse{
		PageResponse: toPageResponse(page),
		Blocks:       toBlockResponses(items),
	}, nil
}

func (s *pageService) Breadcrumb(ctx context.Context, id int64) ([]dto.BreadcrumbItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, err := s.findPage(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	path := []dto.BreadcrumbItem{{Id: page.Id, Title: page.Title, Icon: page.Icon}}
	seen := map[int64]bool{page.Id: true}
	for page.ParentId != nil && !seen[*page.ParentId] {
		seen[*page.ParentId] = true
		parent, err := uow.PageRepository().FindOne(ctx, specification.ByID{ID: *page.ParentId})
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break
		}
		path = append(path, dto.BreadcrumbItem{Id: parent.Id, Title: parent.Title, Icon: parent.Icon})
		page = parent
	}

	// root first
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

func normalizeTitle(title *string) string {
	if title == nil || strings.TrimSpace(*title) == "" {
		return DefaultPageTitle
	}
	if runes := []rune(*title); len(runes) > maxTitleLength {
		return string(runes[:maxTitleLength])
	}
	return *title
}

func validateIcon(icon *string) error {
	if icon != nil && utf8.RuneCountInString(*icon) > maxIconLength {
		return serverutils.BadRequest("Icon must be at most 10 characters")
	}
	return nil
}

func (s *pageService) Create(ctx context.Context, req *dto.CreatePageRequest) (*dto.PageResponse, error) {
	if err := validateIcon(req.Icon); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.findParent(ctx, uow, req.ParentId); err != nil {
		return nil, err
	}

	page := entity.Page{
		Title:     normalizeTitle(req.Title),
		Icon:      req.Icon,
		ParentId:  req.ParentId,
		UserId:    req.UserId,
		CreatedAt: time.Now(),
	}
	if err := uow.PageRepository().Create(ctx, &page); err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	publishAsync(ctx, s.publisher, s.logger, events.PageCreated, map[string]interface{}{
		"page_id":   page.Id,
		"parent_id": page.ParentId,
		"title":     page.Title,
	})

	res := toPageResponse(&page)
	return &res, nil
}

func (s *pageService) Update(ctx context.Context, req *dto.UpdatePageRequest) (*dto.PageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, err := s.findPage(ctx, uow, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		page.Title = normalizeTitle(req.Title)
	}
	if req.Icon.Set {
		if err := validateIcon(req.Icon.Value); err != nil {
			return nil, err
		}
		page.Icon = req.Icon.Value
	}
	if req.ParentId.Set {
		if err := s.checkMove(ctx, uow, page.Id, req.ParentId.Value); err != nil {
			return nil, err
		}
		page.ParentId = req.ParentId.Value
	}

	now := time.Now()
	page.UpdatedAt = &now
	if err := uow.PageRepository().Update(ctx, page); err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	publishAsync(ctx, s.publisher, s.logger, events.PageUpdated, map[string]interface{}{
		"page_id":   page.Id,
		"parent_id": page.ParentId,
		"title":     page.Title,
	})

	res := toPageResponse(page)
	return &res, nil
}

// checkMove rejects parents that do not exist or would create a cycle.
func (s *pageService) checkMove(ctx context.Context, uow unitofwork.UnitOfWork, pageId int64, parentId *int64) error {
	if parentId == nil {
		return nil
	}
	if *parentId == pageId {
		return serverutils.BadRequest("A page cannot be its own parent")
	}
	if *parentId <= 0 {
		return serverutils.BadRequest("Invalid parent_id")
	}
	if err := s.findParent(ctx, uow, parentId); err != nil {
		return err
	}

	// walk up from the new parent; meeting pageId means it is a descendant
	seen := map[int64]bool{}
	current := parentId
	for current != nil && !seen[*current] {
		if *current == pageId {
			return serverutils.BadRequest("A page cannot be moved under its own descendant")
		}
		seen[*current] = true
		ancestor, err := uow.PageRepository().FindOne(ctx, specification.ByID{ID: *current})
		if err != nil {
			return err
		}
		if ancestor == nil {
			break
		}
		current = ancestor.ParentId
	}
	return nil
}

func (s *pageService) Delete(ctx context.Context, id int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.findPage(ctx, uow, id); err != nil {
		return err
	}

	ids, err := s.collectSubtree(ctx, uow, id)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.BlockRepository().DeleteByPageIDs(ctx, ids); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.PageRepository().DeleteByIDs(ctx, ids); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.invalidateTree(ctx)
	publishAsync(ctx, s.publisher, s.logger, events.PageDeleted, map[string]interface{}{
		"page_id":     id,
		"deleted_ids": ids,
	})
	return nil
}

// collectSubtree returns root and every descendant, breadth first.
func (s *pageService) collectSubtree(ctx context.Context, uow unitofwork.UnitOfWork, root int64) ([]int64, error) {
	ids := []int64{root}
	seen := map[int64]bool{root: true}
	frontier := []int64{root}
	for len(frontier) > 0 {
		children, err := uow.PageRepository().FindAll(ctx, specification.ByParentIDs{ParentIDs: frontier})
		if err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, c := range children {
			if seen[c.Id] {
				continue
			}
			seen[c.Id] = true
			ids = append(ids, c.Id)
			frontier = append(frontier, c.Id)
		}
	}
	return ids, nil
}

func (s *pageService) ExportMarkdown(ctx context.Context, id int64) (*dto.PageMarkdownResponse, error) {
	page, err := s.Show(ctx, id)
	if err != nil {
		return nil, err
	}

	drafts := make([]blocks.Draft, 0, len(page.Blocks))
	for _, b := range page.Blocks {
		drafts = append(drafts, blocks.Draft{Type: b.Type, Content: b.Content})
	}
	return &dto.PageMarkdownResponse{
		PageId:   page.Id,
		Title:    page.Title,
		Markdown: markdown.Render(page.Title, drafts),
	}, nil
}

func (s *pageService) ImportMarkdown(ctx context.Context, req *dto.ImportMarkdownRequest) (*dto.PageWithBlocksResponse, error) {
	drafts := markdown.Parse(req.Markdown)
	return s.CreateDocument(ctx, documentFrom(req.Title, req.ParentId, req.UserId, drafts))
}

func (s *pageService) ImportHTML(ctx context.Context, req *dto.ImportHTMLRequest) (*dto.PageWithBlocksResponse, error) {
	drafts, err := markdown.FromHTML(req.Html)
	if err != nil {
		return nil, serverutils.NewAppError(400, "Could not convert HTML", err)
	}
	return s.CreateDocument(ctx, documentFrom(req.Title, req.ParentId, req.UserId, drafts))
}

// documentFrom titles an imported document. Without an explicit title a
// leading heading becomes the title and is dropped from the body.
func documentFrom(title *string, parentId *int64, userId *string, drafts []blocks.Draft) *Document {
	doc := &Document{ParentId: parentId, UserId: userId, Blocks: drafts, Event: events.PageImported}
	if title != nil && strings.TrimSpace(*title) != "" {
		doc.Title = *title
		return doc
	}
	if len(drafts) > 0 && drafts[0].Type == blocks.TypeHeading1 {
		doc.Title = drafts[0].Content
		doc.Blocks = drafts[1:]
		return doc
	}
	doc.Title = normalizeTitle(nil)
	if t := markdown.Title(drafts); t != "" {
		doc.Title = t
	}
	return doc
}

func (s *pageService) CreateDocument(ctx context.Context, doc *Document) (*dto.PageWithBlocksResponse, error) {
	if err := validateIcon(doc.Icon); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.findParent(ctx, uow, doc.ParentId); err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	page := entity.Page{
		Title:     normalizeTitle(&doc.Title),
		Icon:      doc.Icon,
		ParentId:  doc.ParentId,
		UserId:    doc.UserId,
		CreatedAt: time.Now(),
	}
	if err := uow.PageRepository().Create(ctx, &page); err != nil {
		uow.Rollback()
		return nil, err
	}

	now := time.Now()
	items := make([]*entity.Block, 0, len(doc.Blocks))
	for i, d := range doc.Blocks {
		items = append(items, &entity.Block{
			PageId:    page.Id,
			Type:      d.Type,
			Content:   d.Content,
			Order:     float64(i),
			CreatedAt: now,
		})
	}
	if err := uow.BlockRepository().CreateBatch(ctx, items); err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	eventType := doc.Event
	if eventType == "" {
		eventType = events.PageCreated
	}
	publishAsync(ctx, s.publisher, s.logger, eventType, map[string]interface{}{
		"page_id":      page.Id,
		"parent_id":    page.ParentId,
		"title":        page.Title,
		"blocks_count": len(items),
	})

	return &dto.PageWithBlocksResponse{
		PageResponse: toPageResponse(&page),
		Blocks:       toBlockResponses(items),
	}, nil
}

func (s *pageService) invalidateTree(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyPageTree); err != nil {
		s.logger.Warn("PageService", "Page tree cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
