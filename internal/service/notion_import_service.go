package service

import (
	"context"

	"github.com/redcow77/module-5-test/internal/dto"
	"github.com/redcow77/module-5-test/internal/pkg/logger"
	"github.com/redcow77/module-5-test/internal/pkg/serverutils"
	"github.com/redcow77/module-5-test/pkg/events"
	"github.com/redcow77/module-5-test/pkg/notion"
)

// NotionClient is the part of the Notion API the importer reads.
type NotionClient interface {
	RetrievePage(ctx context.Context, pageId string) (*notion.Page, error)
	ListChildren(ctx context.Context, blockId string) ([]notion.Block, error)
}

type INotionImportService interface {
	Import(ctx context.Context, req *dto.NotionImportRequest) (*dto.NotionImportResponse, error)
}

type notionImportService struct {
	client NotionClient
	pages  IPageService
	logger logger.ILogger
}

// NewNotionImportService builds the importer. A nil client means no Notion
// key is configured and every import is rejected.
func NewNotionImportService(client NotionClient, pages IPageService, log logger.ILogger) INotionImportService {
	return &notionImportService{
		client: client,
		pages:  pages,
		logger: log,
	}
}

func (s *notionImportService) Import(ctx context.Context, req *dto.NotionImportRequest) (*dto.NotionImportResponse, error) {
	if s.client == nil {
		return nil, serverutils.Unauthorized("Notion API key is not configured")
	}

	page, err := s.client.RetrievePage(ctx, req.NotionPageId)
	if err != nil {
		return nil, s.notionError(req.NotionPageId, err)
	}
	children, err := s.client.ListChildren(ctx, req.NotionPageId)
	if err != nil {
		return nil, s.notionError(req.NotionPageId, err)
	}

	created, err := s.pages.CreateDocument(ctx, &Document{
		Title:    notion.PageTitle(page),
		Icon:     notion.PageIcon(page),
		ParentId: req.ParentId,
		UserId:   req.UserId,
		Blocks:   notion.ConvertBlocks(children),
		Event:    events.PageImported,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("NotionImport", "Imported Notion page", map[string]interface{}{
		"notion_page_id": req.NotionPageId,
		"page_id":        created.Id,
		"blocks_count":   len(created.Blocks),
	})

	return &dto.NotionImportResponse{
		PageId:       created.Id,
		BlocksCount:  len(created.Blocks),
		NotionPageId: req.NotionPageId,
		Title:        created.Title,
		Icon:         created.Icon,
	}, nil
}

func (s *notionImportService) notionError(pageId string, err error) error {
	if notion.IsNotFound(err) {
		return serverutils.NotFound("Notion page not found")
	}
	s.logger.Error("NotionImport", "Notion API request failed", map[string]interface{}{
		"notion_page_id": pageId,
		"error":          err.Error(),
	})
	return serverutils.BadGateway("Notion API error", err)
}
