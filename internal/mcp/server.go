package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/redcow77/module-5-test/internal/dto"
	"github.com/redcow77/module-5-test/internal/pkg/logger"
	"github.com/redcow77/module-5-test/internal/pkg/serverutils"
	"github.com/redcow77/module-5-test/internal/service"
)

const (
	Name    = "Workspace MCP"
	Version = "0.1.0"

	Endpoint = "/mcp"
)

type ListPagesRequest struct {
	ParentId string `json:"parent_id"` // "root", a page id, or empty for all pages
}

type GetPageRequest struct {
	PageId int64 `json:"page_id"`
}

type SearchMemosRequest struct {
	Query string `json:"query"`
}

type CreateMemoRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type ImportNotionPageRequest struct {
	NotionPageId string `json:"notion_page_id"`
	ParentId     *int64 `json:"parent_id,omitempty"`
}

// Tools exposes workspace services as MCP tools.
type Tools struct {
	pages    service.IPageService
	memos    service.IMemoService
	importer service.INotionImportService
	logger   logger.ILogger
}

func NewTools(pages service.IPageService, memos service.IMemoService, importer service.INotionImportService, log logger.ILogger) *Tools {
	return &Tools{
		pages:    pages,
		memos:    memos,
		importer: importer,
		logger:   log,
	}
}

// NewServer registers every workspace tool on a fresh MCP server.
func NewServer(t *Tools) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.AddTool(mcp.NewTool("list_pages",
		mcp.WithDescription("List workspace pages, optionally only the children of one page"),
		mcp.WithString("parent_id",
			mcp.Description("\"root\" for top-level pages or a page id; omit for every page"),
		),
	), mcp.NewTypedToolHandler(t.ListPages))

	s.AddTool(mcp.NewTool("get_page",
		mcp.WithDescription("Get a page with its blocks in order"),
		mcp.WithNumber("page_id",
			mcp.Required(),
			mcp.Description("The id of the page"),
		),
	), mcp.NewTypedToolHandler(t.GetPage))

	s.AddTool(mcp.NewTool("search_memos",
		mcp.WithDescription("Search memos by title, content, AI summary and tags"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive search text"),
		),
	), mcp.NewTypedToolHandler(t.SearchMemos))

	s.AddTool(mcp.NewTool("create_memo",
		mcp.WithDescription("Create a memo; a summary and tags are generated when AI is available"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Memo title, up to 500 characters"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Memo body"),
		),
	), mcp.NewTypedToolHandler(t.CreateMemo))

	s.AddTool(mcp.NewTool("import_notion_page",
		mcp.WithDescription("Import a Notion page and its blocks into the workspace"),
		mcp.WithString("notion_page_id",
			mcp.Required(),
			mcp.Description("The 32 character Notion page id, dashes allowed"),
		),
		mcp.WithNumber("parent_id",
			mcp.Description("Optional workspace page to import under"),
		),
	), mcp.NewTypedToolHandler(t.ImportNotionPage))

	return s
}

// NewHTTPHandler serves s over streamable HTTP at Endpoint.
func NewHTTPHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s, server.WithEndpointPath(Endpoint))
}

func (t *Tools) ListPages(ctx context.Context, request mcp.CallToolRequest, args ListPagesRequest) (*mcp.CallToolResult, error) {
	res, err := t.pages.List(ctx, &dto.ListPagesQuery{ParentId: args.ParentId})
	return t.result("list_pages", res, err)
}

func (t *Tools) GetPage(ctx context.Context, request mcp.CallToolRequest, args GetPageRequest) (*mcp.CallToolResult, error) {
	if args.PageId <= 0 {
		return mcp.NewToolResultError("page_id is required"), nil
	}
	res, err := t.pages.Show(ctx, args.PageId)
	return t.result("get_page", res, err)
}

func (t *Tools) SearchMemos(ctx context.Context, request mcp.CallToolRequest, args SearchMemosRequest) (*mcp.CallToolResult, error) {
	res, err := t.memos.Search(ctx, args.Query)
	return t.result("search_memos", res, err)
}

func (t *Tools) CreateMemo(ctx context.Context, request mcp.CallToolRequest, args CreateMemoRequest) (*mcp.CallToolResult, error) {
	req := dto.CreateMemoRequest{Title: args.Title, Content: args.Content}
	if err := serverutils.ValidateRequest(req); err != nil {
		return t.result("create_memo", nil, err)
	}
	res, err := t.memos.Create(ctx, &req)
	return t.result("create_memo", res, err)
}

func (t *Tools) ImportNotionPage(ctx context.Context, request mcp.CallToolRequest, args ImportNotionPageRequest) (*mcp.CallToolResult, error) {
	req := dto.NotionImportRequest{NotionPageId: args.NotionPageId, ParentId: args.ParentId}
	req.Normalize()
	if err := serverutils.ValidateRequest(req); err != nil {
		return t.result("import_notion_page", nil, err)
	}
	res, err := t.importer.Import(ctx, &req)
	return t.result("import_notion_page", res, err)
}

// result renders a service outcome. Application errors become tool errors
// the model can read; anything else is logged and reported generically.
func (t *Tools) result(tool string, data interface{}, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		var appErr *serverutils.AppError
		if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
			return mcp.NewToolResultError(appErr.Message), nil
		}
		t.logger.Error("MCP", "Tool call failed", map[string]interface{}{"tool": tool, "error": err.Error()})
		if appErr != nil {
			return mcp.NewToolResultError(appErr.Message), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("%s failed", tool)), nil
	}

	body, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}
