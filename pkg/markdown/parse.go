package markdown

import (
	"regexp"
	"strings"

	"github.com/redcow77/module-5-test/pkg/blocks"
)

var (
	numberedRe = regexp.MustCompile(`^\d+[.)]\s+`)
	todoRe     = regexp.MustCompile(`^[-*+]\s+\[([ xX])\]\s?`)
	bulletRe   = regexp.MustCompile(`^[-*+]\s+`)
	headingRe  = regexp.MustCompile(`^(#{1,6})\s+`)
	escapeRe   = regexp.MustCompile(`\\([\\` + "`" + `*_{}\[\]()#+\-.!|>~])`)
)

// Parse splits a Markdown document into block drafts. Consecutive paragraph
// lines form one text block and consecutive quote lines one quote block.
func Parse(doc string) []blocks.Draft {
	lines := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")
	out := make([]blocks.Draft, 0)

	var para, quote []string
	flush := func() {
		if len(para) > 0 {
			out = append(out, blocks.Draft{Type: blocks.TypeText, Content: strings.Join(para, "\n")})
			para = nil
		}
		if len(quote) > 0 {
			out = append(out, blocks.Draft{Type: blocks.TypeQuote, Content: strings.Join(quote, "\n")})
			quote = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		raw := lines[i]
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "```") {
			flush()
			lang := strings.TrimSpace(strings.TrimPrefix(line, "```"))
			var body []string
			for i+1 < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i+1]), "```") {
				i++
				body = append(body, lines[i])
			}
			i++ // closing fence (or EOF)
			out = append(out, blocks.Draft{
				Type:    blocks.TypeCode,
				Content: blocks.FormatCode(lang, strings.Join(body, "\n")),
			})
			continue
		}

		if line == "" {
			flush()
			continue
		}

		if strings.HasPrefix(line, ">") {
			if len(para) > 0 {
				out = append(out, blocks.Draft{Type: blocks.TypeText, Content: strings.Join(para, "\n")})
				para = nil
			}
			quote = append(quote, unescape(strings.TrimSpace(strings.TrimPrefix(line, ">"))))
			continue
		}

		if isDivider(line) {
			flush()
			out = append(out, blocks.Draft{Type: blocks.TypeDivider, Content: blocks.DividerContent})
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			flush()
			t := blocks.TypeHeading3
			switch len(m[1]) {
			case 1:
				t = blocks.TypeHeading1
			case 2:
				t = blocks.TypeHeading2
			}
			out = append(out, blocks.Draft{Type: t, Content: unescape(line[len(m[0]):])})
			continue
		}

		if m := todoRe.FindStringSubmatch(line); m != nil {
			flush()
			checked := m[1] != " "
			out = append(out, blocks.Draft{Type: blocks.TypeTodo, Content: blocks.FormatTodo(checked, unescape(line[len(m[0]):]))})
			continue
		}

		if m := bulletRe.FindString(line); m != "" {
			flush()
			out = append(out, blocks.Draft{Type: blocks.TypeBulletList, Content: unescape(line[len(m):])})
			continue
		}

		if m := numberedRe.FindString(line); m != "" {
			flush()
			out = append(out, blocks.Draft{Type: blocks.TypeNumberedList, Content: unescape(line[len(m):])})
			continue
		}

		if len(quote) > 0 {
			flush()
		}
		para = append(para, unescape(line))
	}
	flush()

	return out
}

func isDivider(line string) bool {
	if len(line) < 3 {
		return false
	}
	compact := strings.ReplaceAll(line, " ", "")
	for _, c := range []string{"-", "*", "_"} {
		if strings.Trim(compact, c) == "" && len(compact) >= 3 {
			return true
		}
	}
	return false
}

func unescape(s string) string {
	return escapeRe.ReplaceAllString(s, "$1")
}
