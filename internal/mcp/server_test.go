package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcow77/module-5-test/internal/dto"
	"github.com/redcow77/module-5-test/internal/pkg/logger"
	"github.com/redcow77/module-5-test/internal/repository/memory"
	"github.com/redcow77/module-5-test/internal/service"
	"github.com/redcow77/module-5-test/pkg/cache"
	"github.com/redcow77/module-5-test/pkg/llm"
)

func newTools(t *testing.T) (*Tools, service.IPageService) {
	t.Helper()
	log := logger.NewNopLogger()
	uow := memory.NewRepositoryFactory(memory.NewStore())
	pages := service.NewPageService(uow, nil, cache.NewMemoryService(), log)
	memos := service.NewMemoService(uow, service.NewAIService(llm.Unavailable{Reason: "test"}), nil, log, service.MemoServiceOptions{})
	importer := service.NewNotionImportService(nil, pages, log)
	return NewTools(pages, memos, importer, log), pages
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestNewServer(t *testing.T) {
	tools, _ := newTools(t)
	assert.NotNil(t, NewServer(tools))
	assert.NotNil(t, NewHTTPHandler(NewServer(tools)))
}

func TestTools_PagesRoundTrip(t *testing.T) {
	tools, pages := newTools(t)
	ctx := context.Background()
	title := "Roadmap"
	page, err := pages.Create(ctx, &dto.CreatePageRequest{Title: &title})
	require.NoError(t, err)

	result, err := tools.ListPages(ctx, mcp.CallToolRequest{}, ListPagesRequest{ParentId: "root"})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	var listed []dto.PageResponse
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Roadmap", listed[0].Title)

	result, err = tools.GetPage(ctx, mcp.CallToolRequest{}, GetPageRequest{PageId: page.Id})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	result, err = tools.GetPage(ctx, mcp.CallToolRequest{}, GetPageRequest{PageId: 404})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Page not found", textOf(t, result))
}

func TestTools_Memos(t *testing.T) {
	tools, _ := newTools(t)
	ctx := context.Background()

	result, err := tools.CreateMemo(ctx, mcp.CallToolRequest{}, CreateMemoRequest{Title: "", Content: "x"})
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = tools.CreateMemo(ctx, mcp.CallToolRequest{}, CreateMemoRequest{Title: "Standup", Content: "ship the importer"})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	result, err = tools.SearchMemos(ctx, mcp.CallToolRequest{}, SearchMemosRequest{Query: "importer"})
	require.NoError(t, err)
	var found []dto.MemoResponse
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &found))
	assert.Len(t, found, 1)
}

func TestTools_ImportWithoutKey(t *testing.T) {
	tools, _ := newTools(t)

	result, err := tools.ImportNotionPage(context.Background(), mcp.CallToolRequest{}, ImportNotionPageRequest{
		NotionPageId: "01234567-89ab-cdef-0123-456789abcdef",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Notion API key is not configured", textOf(t, result))
}
