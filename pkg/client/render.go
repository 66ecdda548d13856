package client

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/redcow77/module-5-test/pkg/blocks"
)

const dividerWidth = 40

var (
	heading1Style = color.New(color.FgCyan, color.Bold, color.Underline)
	heading2Style = color.New(color.FgCyan, color.Bold)
	heading3Style = color.New(color.Bold)
	doneStyle     = color.New(color.FgGreen)
	quoteStyle    = color.New(color.FgHiBlack)
	codeStyle     = color.New(color.FgYellow)
	mutedStyle    = color.New(color.Faint)
)

// renderState carries counters that span consecutive blocks.
type renderState struct {
	number int
}

type renderer func(st *renderState, content string) string

var renderers = map[blocks.Type]renderer{
	blocks.TypeText: func(_ *renderState, c string) string {
		return c
	},
	blocks.TypeHeading1: func(_ *renderState, c string) string {
		return heading1Style.Sprint(c)
	},
	blocks.TypeHeading2: func(_ *renderState, c string) string {
		return heading2Style.Sprint(c)
	},
	blocks.TypeHeading3: func(_ *renderState, c string) string {
		return heading3Style.Sprint(c)
	},
	blocks.TypeBulletList: func(_ *renderState, c string) string {
		return "• " + c
	},
	blocks.TypeNumberedList: func(st *renderState, c string) string {
		st.number++
		return fmt.Sprintf("%d. %s", st.number, c)
	},
	blocks.TypeTodo: func(_ *renderState, c string) string {
		checked, text := blocks.ParseTodo(c)
		if checked {
			return doneStyle.Sprint("[x] " + text)
		}
		return "[ ] " + text
	},
	blocks.TypeCode: func(_ *renderState, c string) string {
		lang, code := blocks.ParseCode(c)
		var b strings.Builder
		b.WriteString(mutedStyle.Sprint("```" + lang))
		b.WriteByte('\n')
		b.WriteString(codeStyle.Sprint(code))
		b.WriteByte('\n')
		b.WriteString(mutedStyle.Sprint("```"))
		return b.String()
	},
	blocks.TypeQuote: func(_ *renderState, c string) string {
		lines := strings.Split(c, "\n")
		for i, line := range lines {
			lines[i] = "│ " + quoteStyle.Sprint(line)
		}
		return strings.Join(lines, "\n")
	},
	blocks.TypeDivider: func(_ *renderState, _ string) string {
		return mutedStyle.Sprint(strings.Repeat("─", dividerWidth))
	},
}

// RenderBlock renders one block without list context.
func RenderBlock(b Block) string {
	return renderWith(&renderState{}, b)
}

func renderWith(st *renderState, b Block) string {
	if b.Type != blocks.TypeNumberedList {
		st.number = 0
	}
	r, ok := renderers[b.Type]
	if !ok {
		r = renderers[blocks.TypeText]
	}
	return r(st, b.Content)
}

// RenderBlocks renders blocks in order, one per line. Numbered items count
// up across a run and restart after any other kind.
func RenderBlocks(items []Block) string {
	st := &renderState{}
	lines := make([]string, 0, len(items))
	for _, b := range items {
		lines = append(lines, renderWith(st, b))
	}
	return strings.Join(lines, "\n")
}

// RenderPage writes a page header followed by its blocks.
func RenderPage(w io.Writer, page Page, items []Block) error {
	title := page.Title
	if page.Icon != nil && *page.Icon != "" {
		title = *page.Icon + " " + title
	}
	if _, err := fmt.Fprintln(w, heading1Style.Sprint(title)); err != nil {
		return err
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Sprint("(empty page)"))
		return err
	}
	_, err := fmt.Fprintln(w, RenderBlocks(items))
	return err
}

// RenderTree writes sidebar rows indented by depth.
func RenderTree(w io.Writer, rows []Row) error {
	for _, r := range rows {
		marker := "  "
		if r.HasChildren {
			marker = "▸ "
			if r.Expanded {
				marker = "▾ "
			}
		}
		label := r.Page.Title
		if r.Page.Icon != nil && *r.Page.Icon != "" {
			label = *r.Page.Icon + " " + label
		}
		line := fmt.Sprintf("%s%s%s %s", strings.Repeat("  ", r.Depth), marker, label, mutedStyle.Sprintf("#%d", r.Page.Id))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderMemo writes a memo with its AI summary and tags when present.
func RenderMemo(w io.Writer, m Memo) error {
	fmt.Fprintln(w, heading2Style.Sprintf("%s", m.Title)+" "+mutedStyle.Sprintf("#%d", m.Id))
	fmt.Fprintln(w, m.Content)
	if m.AiSummary != nil && *m.AiSummary != "" {
		fmt.Fprintln(w, quoteStyle.Sprint("summary: "+*m.AiSummary))
	}
	if len(m.Tags) > 0 {
		tags := make([]string, len(m.Tags))
		for i, t := range m.Tags {
			tags[i] = "#" + t
		}
		_, err := fmt.Fprintln(w, doneStyle.Sprint(strings.Join(tags, " ")))
		return err
	}
	return nil
}
