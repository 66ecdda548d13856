package client

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcow77/module-5-test/pkg/blocks"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestRenderBlocks_NumberedCountersRestart(t *testing.T) {
	out := RenderBlocks([]Block{
		{Type: blocks.TypeNumberedList, Content: "one"},
		{Type: blocks.TypeNumberedList, Content: "two"},
		{Type: blocks.TypeText, Content: "break"},
		{Type: blocks.TypeNumberedList, Content: "again"},
	})
	assert.Equal(t, "1. one\n2. two\nbreak\n1. again", out)
}

func TestRenderBlock_Kinds(t *testing.T) {
	cases := []struct {
		block Block
		want  string
	}{
		{Block{Type: blocks.TypeHeading1, Content: "Title"}, "Title"},
		{Block{Type: blocks.TypeBulletList, Content: "item"}, "• item"},
		{Block{Type: blocks.TypeTodo, Content: "[x] done"}, "[x] done"},
		{Block{Type: blocks.TypeTodo, Content: "open"}, "[ ] open"},
		{Block{Type: blocks.TypeQuote, Content: "a\nb"}, "│ a\n│ b"},
		{Block{Type: blocks.TypeCode, Content: "```go\nfmt.Println()\n```"}, "```go\nfmt.Println()\n```"},
		{Block{Type: blocks.TypeDivider, Content: "---"}, strings.Repeat("─", dividerWidth)},
		{Block{Type: blocks.Type("unknown"), Content: "plain"}, "plain"},
	}
	for _, tc := range cases {
		t.Run(string(tc.block.Type), func(t *testing.T) {
			assert.Equal(t, tc.want, RenderBlock(tc.block))
		})
	}
}

func TestRenderPage_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, Page{Title: "Trip", Icon: ptr("🧳")}, nil))
	assert.Equal(t, "🧳 Trip\n(empty page)\n", buf.String())
}

func TestRenderTree_Indents(t *testing.T) {
	var buf bytes.Buffer
	rows := []Row{
		{Page: Page{Id: 1, Title: "Work"}, HasChildren: true, Expanded: true},
		{Page: Page{Id: 3, Title: "Meetings"}, Depth: 1},
	}
	require.NoError(t, RenderTree(&buf, rows))
	assert.Equal(t, "▾ Work #1\n    Meetings #3\n", buf.String())
}
