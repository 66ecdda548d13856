package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcow77/module-5-test/pkg/blocks"
)

const pageFixture = `{
  "object": "page",
  "id": "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6",
  "icon": {"type": "emoji", "emoji": "📄"},
  "properties": {
    "Tags": {"type": "multi_select"},
    "Name": {"type": "title", "title": [{"plain_text": "My "}, {"plain_text": "Page"}]}
  }
}`

func block(id, typ, data string) string {
	return `{"object":"block","id":"` + id + `","type":"` + typ + `","has_children":false,"` + typ + `":` + data + `}`
}

func TestBlockUnmarshal(t *testing.T) {
	var b Block
	err := json.Unmarshal([]byte(block("1", "to_do", `{"rich_text":[{"plain_text":"ship"}],"checked":true}`)), &b)
	require.NoError(t, err)

	assert.Equal(t, "1", b.Id)
	assert.Equal(t, "to_do", b.Type)
	assert.True(t, b.Data.Checked)
	assert.Equal(t, "ship", PlainText(b.Data.RichText))
}

func TestConvertBlocks(t *testing.T) {
	raw := "[" +
		block("1", "paragraph", `{"rich_text":[{"plain_text":"hello "},{"plain_text":"world"}]}`) + "," +
		block("2", "heading_2", `{"rich_text":[{"plain_text":"Section"}]}`) + "," +
		block("3", "image", `{"type":"external"}`) + "," +
		block("4", "to_do", `{"rich_text":[{"plain_text":"open"}],"checked":false}`) + "," +
		block("5", "code", `{"rich_text":[{"plain_text":"print(1)"}],"language":"python"}`) + "," +
		block("6", "code", `{"rich_text":[{"plain_text":"raw"}],"language":""}`) + "," +
		block("7", "divider", `{}`) + "," +
		block("8", "bulleted_list_item", `{"rich_text":[]}`) +
		"]"

	var in []Block
	require.NoError(t, json.Unmarshal([]byte(raw), &in))

	got := ConvertBlocks(in)

	want := []blocks.Draft{
		{Type: blocks.TypeText, Content: "hello world"},
		{Type: blocks.TypeHeading2, Content: "Section"},
		{Type: blocks.TypeTodo, Content: "[ ] open"},
		{Type: blocks.TypeCode, Content: "```python\nprint(1)\n```"},
		{Type: blocks.TypeCode, Content: "raw"},
		{Type: blocks.TypeDivider, Content: "---"},
		{Type: blocks.TypeBulletList, Content: ""},
	}
	assert.Equal(t, want, got)
	assert.False(t, Supported("image"))
}

func TestPageTitleAndIcon(t *testing.T) {
	var p Page
	require.NoError(t, json.Unmarshal([]byte(pageFixture), &p))

	assert.Equal(t, "My Page", PageTitle(&p))
	require.NotNil(t, PageIcon(&p))
	assert.Equal(t, "📄", *PageIcon(&p))

	p.Icon = &Icon{Type: "external"}
	assert.Nil(t, PageIcon(&p))

	p.Properties = map[string]Property{"Name": {Type: "title"}}
	assert.Equal(t, "Untitled", PageTitle(&p))
	assert.Equal(t, "Untitled", PageTitle(nil))
}

func TestClientRetrievePageAndPaginate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, APIVersion, r.Header.Get("Notion-Version"))

		switch r.URL.Path {
		case "/pages/abc":
			w.Write([]byte(pageFixture))
		case "/blocks/abc/children":
			assert.Equal(t, "100", r.URL.Query().Get("page_size"))
			if r.URL.Query().Get("start_cursor") == "" {
				w.Write([]byte(`{"results":[` + block("1", "paragraph", `{"rich_text":[{"plain_text":"one"}]}`) + `],"has_more":true,"next_cursor":"c2"}`))
				return
			}
			assert.Equal(t, "c2", r.URL.Query().Get("start_cursor"))
			w.Write([]byte(`{"results":[` + block("2", "quote", `{"rich_text":[{"plain_text":"two"}]}`) + `],"has_more":false,"next_cursor":null}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient("secret")
	c.BaseURL = srv.URL

	page, err := c.RetrievePage(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "My Page", PageTitle(page))

	children, err := c.ListChildren(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "quote", children[1].Type)
}

func TestClientNotFoundIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"object":"error","status":404,"code":"object_not_found","message":"Could not find page"}`))
	}))
	defer srv.Close()

	c := NewClient("secret")
	c.BaseURL = srv.URL

	_, err := c.RetrievePage(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(pageFixture))
	}))
	defer srv.Close()

	c := NewClient("secret")
	c.BaseURL = srv.URL

	page, err := c.RetrievePage(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "My Page", PageTitle(page))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
