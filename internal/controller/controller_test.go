package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcow77/module-5-test/internal/pkg/logger"
	"github.com/redcow77/module-5-test/internal/pkg/serverutils"
	"github.com/redcow77/module-5-test/internal/repository/memory"
	"github.com/redcow77/module-5-test/internal/service"
	"github.com/redcow77/module-5-test/pkg/cache"
	"github.com/redcow77/module-5-test/pkg/llm"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.NewNopLogger()
	uow := memory.NewRepositoryFactory(memory.NewStore())

	pages := service.NewPageService(uow, nil, cache.NewMemoryService(), log)
	blocks := service.NewBlockService(uow, nil, log)
	memos := service.NewMemoService(uow, service.NewAIService(llm.Unavailable{Reason: "test"}), nil, log, service.MemoServiceOptions{})
	importer := service.NewNotionImportService(nil, pages, log)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	api := app.Group("/api")
	NewHealthController().RegisterRoutes(api)
	NewPageController(pages).RegisterRoutes(api)
	NewBlockController(blocks).RegisterRoutes(api)
	NewMemoController(memos).RegisterRoutes(api)
	NewNotionImportController(importer).RegisterRoutes(api)
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestPageRoutes(t *testing.T) {
	app := newTestApp(t)

	status, env := call(t, app, http.MethodPost, "/api/pages", map[string]interface{}{"title": "Root"})
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)
	root := decode[map[string]interface{}](t, env.Data)
	rootId := int64(root["id"].(float64))

	status, env = call(t, app, http.MethodPost, "/api/pages", map[string]interface{}{"title": "Child", "parent_id": rootId})
	require.Equal(t, http.StatusCreated, status)
	child := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, float64(rootId), child["parent_id"])

	status, env = call(t, app, http.MethodGet, "/api/pages/tree", nil)
	require.Equal(t, http.StatusOK, status)
	tree := decode[[]map[string]interface{}](t, env.Data)
	require.Len(t, tree, 1)
	assert.Len(t, tree[0]["children"], 1)

	// explicit null moves the child to the root
	status, env = call(t, app, http.MethodPatch, "/api/pages/2", map[string]interface{}{"parent_id": nil})
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, decode[map[string]interface{}](t, env.Data)["parent_id"])

	status, env = call(t, app, http.MethodGet, "/api/pages?parent_id=root", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]interface{}](t, env.Data), 2)

	status, env = call(t, app, http.MethodGet, "/api/pages/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)

	status, _ = call(t, app, http.MethodGet, "/api/pages/999", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, app, http.MethodPatch, "/api/pages/1", map[string]interface{}{"parent_id": 1})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodDelete, "/api/pages/1", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, app, http.MethodGet, "/api/pages/1", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPageImportExportRoutes(t *testing.T) {
	app := newTestApp(t)

	status, env := call(t, app, http.MethodPost, "/api/pages/import/markdown", map[string]interface{}{
		"markdown": "# Notes\n\n1. first\n2. second\n",
	})
	require.Equal(t, http.StatusCreated, status)
	page := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, "Notes", page["title"])
	assert.Len(t, page["blocks"], 2)

	status, env = call(t, app, http.MethodGet, "/api/pages/1/markdown", nil)
	require.Equal(t, http.StatusOK, status)
	exported := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, "# Notes\n\n1. first\n2. second\n", exported["markdown"])

	status, _ = call(t, app, http.MethodPost, "/api/pages/import/html", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestBlockRoutes(t *testing.T) {
	app := newTestApp(t)
	status, _ := call(t, app, http.MethodPost, "/api/pages", map[string]interface{}{"title": "Page"})
	require.Equal(t, http.StatusCreated, status)

	for _, content := range []string{"a", "b", "c"} {
		status, _ = call(t, app, http.MethodPost, "/api/blocks", map[string]interface{}{"page_id": 1, "content": content})
		require.Equal(t, http.StatusCreated, status)
	}

	status, _ = call(t, app, http.MethodPost, "/api/blocks", map[string]interface{}{"page_id": 1, "type": "table"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env := call(t, app, http.MethodPost, "/api/blocks/reorder", map[string]interface{}{"page_id": 1, "block_ids": []int{3, 1, 2}})
	require.Equal(t, http.StatusOK, status)
	reordered := decode[[]map[string]interface{}](t, env.Data)
	require.Len(t, reordered, 3)
	assert.Equal(t, "c", reordered[0]["content"])

	status, env = call(t, app, http.MethodPost, "/api/blocks/reorder", map[string]interface{}{"block_id": 2, "new_order": 0.5})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0.5, decode[map[string]interface{}](t, env.Data)["order"])

	status, env = call(t, app, http.MethodGet, "/api/pages/1/blocks", nil)
	require.Equal(t, http.StatusOK, status)
	listed := decode[[]map[string]interface{}](t, env.Data)
	assert.Equal(t, []interface{}{"c", "b", "a"}, []interface{}{listed[0]["content"], listed[1]["content"], listed[2]["content"]})

	status, _ = call(t, app, http.MethodPost, "/api/blocks/1/toggle", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = call(t, app, http.MethodPatch, "/api/blocks/1", map[string]interface{}{"type": "todo", "content": "[ ] a"})
	require.Equal(t, http.StatusOK, status)
	status, env = call(t, app, http.MethodPost, "/api/blocks/1/toggle", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "[x] a", decode[map[string]interface{}](t, env.Data)["content"])

	status, _ = call(t, app, http.MethodDelete, "/api/blocks/1", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, app, http.MethodDelete, "/api/blocks/1", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMemoRoutes(t *testing.T) {
	app := newTestApp(t)

	status, env := call(t, app, http.MethodPost, "/api/memos", map[string]interface{}{"title": ""})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "title")

	status, env = call(t, app, http.MethodPost, "/api/memos", map[string]interface{}{"title": "Groceries", "content": "eggs"})
	require.Equal(t, http.StatusCreated, status)
	memo := decode[map[string]interface{}](t, env.Data)
	assert.Nil(t, memo["ai_summary"])

	status, env = call(t, app, http.MethodGet, "/api/memos/search?q=EGG", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]interface{}](t, env.Data), 1)

	status, _ = call(t, app, http.MethodGet, "/api/memos/search", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodGet, "/api/memos?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodGet, "/api/memos?limit=101", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = call(t, app, http.MethodGet, "/api/memos", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]interface{}](t, env.Data), 1)

	status, _ = call(t, app, http.MethodPost, "/api/memos/1/regenerate-ai", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, env = call(t, app, http.MethodPatch, "/api/memos/1", map[string]interface{}{"title": "Shopping"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Shopping", decode[map[string]interface{}](t, env.Data)["title"])

	status, _ = call(t, app, http.MethodDelete, "/api/memos/1", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestNotionImportRoute(t *testing.T) {
	app := newTestApp(t)

	status, _ := call(t, app, http.MethodPost, "/api/mcp/import", map[string]interface{}{"notion_page_id": "short"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env := call(t, app, http.MethodPost, "/api/mcp/import", map[string]interface{}{
		"notion_page_id": "01234567-89ab-cdef-0123-456789abcdef",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
}
