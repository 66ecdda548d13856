package notion

import (
	"strings"

	"github.com/redcow77/module-5-test/pkg/blocks"
)

var blockTypes = map[string]blocks.Type{
	"paragraph":          blocks.TypeText,
	"heading_1":          blocks.TypeHeading1,
	"heading_2":          blocks.TypeHeading2,
	"heading_3":          blocks.TypeHeading3,
	"bulleted_list_item": blocks.TypeBulletList,
	"numbered_list_item": blocks.TypeNumberedList,
	"to_do":              blocks.TypeTodo,
	"code":               blocks.TypeCode,
	"quote":              blocks.TypeQuote,
	"divider":            blocks.TypeDivider,
}

// Supported reports whether a Notion block kind can be imported.
func Supported(notionType string) bool {
	_, ok := blockTypes[notionType]
	return ok
}

func PlainText(rich []RichText) string {
	var sb strings.Builder
	for _, rt := range rich {
		sb.WriteString(rt.PlainText)
	}
	return sb.String()
}

// PageTitle returns the text of the page's title property, "Untitled" when
// it is missing or empty.
func PageTitle(p *Page) string {
	if p == nil {
		return "Untitled"
	}
	for _, prop := range p.Properties {
		if prop.Type == "title" {
			if title := PlainText(prop.Title); title != "" {
				return title
			}
			return "Untitled"
		}
	}
	return "Untitled"
}

// PageIcon returns the page emoji; file and external icons are ignored.
func PageIcon(p *Page) *string {
	if p == nil || p.Icon == nil || p.Icon.Type != "emoji" || p.Icon.Emoji == "" {
		return nil
	}
	icon := p.Icon.Emoji
	return &icon
}

// ConvertBlock maps one Notion block to a draft. ok is false for kinds
// without a local equivalent.
func ConvertBlock(b Block) (draft blocks.Draft, ok bool) {
	t, ok := blockTypes[b.Type]
	if !ok {
		return blocks.Draft{}, false
	}

	text := PlainText(b.Data.RichText)
	switch t {
	case blocks.TypeTodo:
		text = blocks.FormatTodo(b.Data.Checked, text)
	case blocks.TypeCode:
		text = blocks.FormatCode(b.Data.Language, text)
	case blocks.TypeDivider:
		text = blocks.DividerContent
	}

	return blocks.Draft{Type: t, Content: text}, true
}

// ConvertBlocks maps a page's children, skipping unsupported kinds. The
// position of each draft in the result is its order.
func ConvertBlocks(in []Block) []blocks.Draft {
	out := make([]blocks.Draft, 0, len(in))
	for _, b := range in {
		if d, ok := ConvertBlock(b); ok {
			out = append(out, d)
		}
	}
	return out
}
