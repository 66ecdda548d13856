package markdown

import (
	"strconv"
	"strings"

	"github.com/redcow77/module-5-test/pkg/blocks"
)

// Render writes blocks as a Markdown document. Adjacent items of the same
// list kind stay in one list; everything else is separated by a blank line.
func Render(title string, items []blocks.Draft) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString("# ")
		sb.WriteString(title)
	}

	number := 0
	var prev blocks.Type
	for i, b := range items {
		if b.Type == blocks.TypeNumberedList {
			if prev == blocks.TypeNumberedList {
				number++
			} else {
				number = 1
			}
		}

		if sb.Len() > 0 {
			if i > 0 && isList(b.Type) && b.Type == prev {
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n\n")
			}
		}
		sb.WriteString(renderBlock(b, number))
		prev = b.Type
	}

	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	return sb.String()
}

func isList(t blocks.Type) bool {
	return t == blocks.TypeBulletList || t == blocks.TypeNumberedList || t == blocks.TypeTodo
}

func renderBlock(b blocks.Draft, number int) string {
	switch b.Type {
	case blocks.TypeHeading1:
		return "# " + b.Content
	case blocks.TypeHeading2:
		return "## " + b.Content
	case blocks.TypeHeading3:
		return "### " + b.Content
	case blocks.TypeBulletList:
		return "- " + b.Content
	case blocks.TypeNumberedList:
		return strconv.Itoa(number) + ". " + b.Content
	case blocks.TypeTodo:
		checked, text := blocks.ParseTodo(b.Content)
		if checked {
			return "- [x] " + text
		}
		return "- [ ] " + text
	case blocks.TypeCode:
		lang, code := blocks.ParseCode(b.Content)
		return "```" + lang + "\n" + code + "\n```"
	case blocks.TypeQuote:
		lines := strings.Split(b.Content, "\n")
		for i, l := range lines {
			lines[i] = "> " + l
		}
		return strings.Join(lines, "\n")
	case blocks.TypeDivider:
		return blocks.DividerContent
	}
	return b.Content
}
