package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

const DefaultBaseURL = "http://localhost:8000/api"

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the workspace REST API. GET requests are retried on
// network errors and 5xx answers.
type Client struct {
	BaseURL  string
	Token    string
	HTTP     *http.Client
	Attempts uint
	Delay    time.Duration
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: 60 * time.Second},
		Attempts: 3,
		Delay:    200 * time.Millisecond,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	attempts := uint(1)
	if method == http.MethodGet && c.Attempts > 1 {
		attempts = c.Attempts
	}

	return retry.Do(
		func() error {
			return c.once(ctx, method, path, payload, out)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(c.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(retryable),
		retry.LastErrorOnly(true),
	)
}

func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) once(ctx context.Context, method, path string, payload []byte, out interface{}) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if decodeErr != nil {
		return retry.Unrecoverable(fmt.Errorf("decode response: %w", decodeErr))
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return retry.Unrecoverable(fmt.Errorf("decode response data: %w", err))
	}
	return nil
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

// Health is the only endpoint answering outside the envelope.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	var h Health
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Pages

// ListPages lists pages; parent is "", "root" or a page id.
func (c *Client) ListPages(ctx context.Context, parent string) ([]Page, error) {
	path := "/pages"
	if parent != "" {
		path += "?parent_id=" + url.QueryEscape(parent)
	}
	var out []Page
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PageTree returns the nested tree of every page.
func (c *Client) PageTree(ctx context.Context) ([]PageTreeNode, error) {
	var out []PageTreeNode
	if err := c.do(ctx, http.MethodGet, "/pages/tree", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPage(ctx context.Context, pageId int64) (*PageWithBlocks, error) {
	var out PageWithBlocks
	if err := c.do(ctx, http.MethodGet, "/pages/"+id(pageId), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Breadcrumb(ctx context.Context, pageId int64) ([]Breadcrumb, error) {
	var out []Breadcrumb
	if err := c.do(ctx, http.MethodGet, "/pages/"+id(pageId)+"/breadcrumb", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePage(ctx context.Context, in CreatePageInput) (*Page, error) {
	var out Page
	if err := c.do(ctx, http.MethodPost, "/pages", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePage(ctx context.Context, pageId int64, in UpdatePageInput) (*Page, error) {
	var out Page
	if err := c.do(ctx, http.MethodPatch, "/pages/"+id(pageId), in.body(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePage(ctx context.Context, pageId int64) error {
	return c.do(ctx, http.MethodDelete, "/pages/"+id(pageId), nil, nil)
}

func (c *Client) ExportMarkdown(ctx context.Context, pageId int64) (*PageMarkdown, error) {
	var out PageMarkdown
	if err := c.do(ctx, http.MethodGet, "/pages/"+id(pageId)+"/markdown", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ImportMarkdown(ctx context.Context, title *string, markdown string, parentId *int64) (*PageWithBlocks, error) {
	body := map[string]interface{}{"markdown": markdown}
	if title != nil {
		body["title"] = *title
	}
	if parentId != nil {
		body["parent_id"] = *parentId
	}
	var out PageWithBlocks
	if err := c.do(ctx, http.MethodPost, "/pages/import/markdown", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ImportHTML(ctx context.Context, title *string, html string, parentId *int64) (*PageWithBlocks, error) {
	body := map[string]interface{}{"html": html}
	if title != nil {
		body["title"] = *title
	}
	if parentId != nil {
		body["parent_id"] = *parentId
	}
	var out PageWithBlocks
	if err := c.do(ctx, http.MethodPost, "/pages/import/html", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ImportNotion(ctx context.Context, notionPageId string, parentId *int64) (*NotionImport, error) {
	body := map[string]interface{}{"notion_page_id": notionPageId}
	if parentId != nil {
		body["parent_id"] = *parentId
	}
	var out NotionImport
	if err := c.do(ctx, http.MethodPost, "/mcp/import", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Blocks

func (c *Client) ListBlocks(ctx context.Context, pageId int64) ([]Block, error) {
	var out []Block
	if err := c.do(ctx, http.MethodGet, "/pages/"+id(pageId)+"/blocks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBlock(ctx context.Context, in CreateBlockInput) (*Block, error) {
	var out Block
	if err := c.do(ctx, http.MethodPost, "/blocks", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBlock(ctx context.Context, blockId int64, in UpdateBlockInput) (*Block, error) {
	var out Block
	if err := c.do(ctx, http.MethodPatch, "/blocks/"+id(blockId), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBlock(ctx context.Context, blockId int64) error {
	return c.do(ctx, http.MethodDelete, "/blocks/"+id(blockId), nil, nil)
}

// MoveBlock sets one block's position, fractions allowed.
func (c *Client) MoveBlock(ctx context.Context, blockId int64, newOrder float64) (*Block, error) {
	var out Block
	body := map[string]interface{}{"block_id": blockId, "new_order": newOrder}
	if err := c.do(ctx, http.MethodPost, "/blocks/reorder", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReorderBlocks renumbers a page to follow ids and returns its blocks.
func (c *Client) ReorderBlocks(ctx context.Context, pageId int64, ids []int64) ([]Block, error) {
	var out []Block
	body := map[string]interface{}{"page_id": pageId, "block_ids": ids}
	if err := c.do(ctx, http.MethodPost, "/blocks/reorder", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ToggleBlock(ctx context.Context, blockId int64) (*Block, error) {
	var out Block
	if err := c.do(ctx, http.MethodPost, "/blocks/"+id(blockId)+"/toggle", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Memos

func (c *Client) ListMemos(ctx context.Context, skip, limit int) ([]Memo, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []Memo
	if err := c.do(ctx, http.MethodGet, "/memos?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchMemos(ctx context.Context, query string) ([]Memo, error) {
	var out []Memo
	if err := c.do(ctx, http.MethodGet, "/memos/search?q="+url.QueryEscape(query), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMemo(ctx context.Context, memoId int64) (*Memo, error) {
	var out Memo
	if err := c.do(ctx, http.MethodGet, "/memos/"+id(memoId), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateMemo(ctx context.Context, in MemoInput) (*Memo, error) {
	var out Memo
	if err := c.do(ctx, http.MethodPost, "/memos", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMemo(ctx context.Context, memoId int64, in UpdateMemoInput) (*Memo, error) {
	var out Memo
	if err := c.do(ctx, http.MethodPatch, "/memos/"+id(memoId), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMemo(ctx context.Context, memoId int64) error {
	return c.do(ctx, http.MethodDelete, "/memos/"+id(memoId), nil, nil)
}

func (c *Client) RegenerateMemoAI(ctx context.Context, memoId int64) (*Memo, error) {
	var out Memo
	if err := c.do(ctx, http.MethodPost, "/memos/"+id(memoId)+"/regenerate-ai", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
