package markdown

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/redcow77/module-5-test/pkg/blocks"
)

// FromHTML converts an HTML fragment to Markdown and then to block drafts.
func FromHTML(html string) ([]blocks.Draft, error) {
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return nil, fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return Parse(md), nil
}

// Title returns the content of the first heading, or "" when there is none.
func Title(drafts []blocks.Draft) string {
	for _, d := range drafts {
		if d.Type.IsHeading() {
			return d.Content
		}
	}
	return ""
}
