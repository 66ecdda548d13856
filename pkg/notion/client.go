package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	APIVersion     = "2022-06-28"
	pageSize       = 100
)

type Client struct {
	BaseURL  string
	APIKey   string
	Client   *http.Client
	Attempts uint
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL:  DefaultBaseURL,
		APIKey:   apiKey,
		Attempts: 3,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RetrievePage fetches page metadata (title property, icon).
func (c *Client) RetrievePage(ctx context.Context, pageId string) (*Page, error) {
	var page Page
	if err := c.get(ctx, "/pages/"+url.PathEscape(pageId), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListChildren fetches every child block of a page or block, following the
// pagination cursor until has_more is false.
func (c *Client) ListChildren(ctx context.Context, blockId string) ([]Block, error) {
	result := make([]Block, 0)
	var cursor *string

	for {
		query := url.Values{}
		query.Set("page_size", fmt.Sprint(pageSize))
		if cursor != nil && *cursor != "" {
			query.Set("start_cursor", *cursor)
		}

		var resp childrenResponse
		if err := c.get(ctx, "/blocks/"+url.PathEscape(blockId)+"/children", query, &resp); err != nil {
			return nil, err
		}
		result = append(result, resp.Results...)

		if !resp.HasMore || resp.NextCursor == nil {
			return result, nil
		}
		cursor = resp.NextCursor
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	attempts := c.Attempts
	if attempts == 0 {
		attempts = 1
	}

	return retry.Do(
		func() error {
			return c.do(ctx, endpoint, out)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
	)
}

func (c *Client) do(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("notion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(body, apiErr); jsonErr != nil || apiErr.Code == "" {
			apiErr.Code = "http_error"
			apiErr.Message = string(body)
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return retry.Unrecoverable(fmt.Errorf("unmarshal response: %w", err))
	}
	return nil
}

func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusTooManyRequests || apiErr.Status >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// IsNotFound reports whether err is Notion's object_not_found error.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.Code == CodeObjectNotFound || apiErr.Status == http.StatusNotFound)
}
