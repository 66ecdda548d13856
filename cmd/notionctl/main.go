package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/redcow77/module-5-test/pkg/blocks"
	"github.com/redcow77/module-5-test/pkg/client"
	"github.com/redcow77/module-5-test/pkg/events"
	"github.com/redcow77/module-5-test/pkg/nats"
)

const usage = `notionctl - workspace command line

Usage:
  notionctl [flags] <command> [args]

Commands:
  tree                                  show the page tree
  show <page>                           show a page and its blocks
  add <page> <type> <content>           append a block to a page
  move <page> <block> <index>           move a block to a position
  memos [query]                         list or search memos
  memo <id>                             show one memo
  import-notion <notion_page_id> [parent]
  watch [event_type]                    follow live events over NATS

Flags:
`

type app struct {
	api  *client.Client
	out  io.Writer
	nats string
}

func main() {
	fs := flag.NewFlagSet("notionctl", flag.ExitOnError)
	baseURL := fs.String("api", envOr("NOTION_API_URL", client.DefaultBaseURL), "API base URL")
	token := fs.String("token", os.Getenv("NOTION_API_TOKEN"), "bearer token")
	natsURL := fs.String("nats", os.Getenv("NATS_URL"), "NATS URL for watch")
	noColor := fs.Bool("no-color", false, "disable colors")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if *noColor {
		color.NoColor = true
	}
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	api := client.New(*baseURL)
	api.Token = *token
	a := &app{api: api, out: os.Stdout, nats: *natsURL}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "tree":
		return a.tree(ctx)
	case "show":
		if len(args) != 1 {
			return errors.New("usage: show <page>")
		}
		return a.show(ctx, args[0])
	case "add":
		if len(args) < 3 {
			return errors.New("usage: add <page> <type> <content>")
		}
		return a.add(ctx, args[0], args[1], strings.Join(args[2:], " "))
	case "move":
		if len(args) != 3 {
			return errors.New("usage: move <page> <block> <index>")
		}
		return a.move(ctx, args[0], args[1], args[2])
	case "memos":
		return a.memos(ctx, strings.Join(args, " "))
	case "memo":
		if len(args) != 1 {
			return errors.New("usage: memo <id>")
		}
		return a.memo(ctx, args[0])
	case "import-notion":
		if len(args) < 1 || len(args) > 2 {
			return errors.New("usage: import-notion <notion_page_id> [parent]")
		}
		return a.importNotion(ctx, args)
	case "watch":
		eventType := ""
		if len(args) > 0 {
			eventType = args[0]
		}
		return a.watch(ctx, eventType)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func parseID(s, what string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, s)
	}
	return v, nil
}

func (a *app) tree(ctx context.Context) error {
	sidebar := client.NewSidebar(a.api)
	if err := sidebar.Load(ctx); err != nil {
		return err
	}
	sidebar.ExpandAll()
	rows := sidebar.Visible()
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "no pages")
		return nil
	}
	return client.RenderTree(a.out, rows)
}

func (a *app) show(ctx context.Context, raw string) error {
	pageId, err := parseID(raw, "page")
	if err != nil {
		return err
	}
	view := client.NewPageView(a.api)
	if err := view.Load(ctx, pageId); err != nil {
		return err
	}
	defer view.Close(ctx)

	if len(view.Crumbs) > 1 {
		color.New(color.Faint).Fprintln(a.out, view.Path())
	}
	return client.RenderPage(a.out, *view.Page, view.Blocks.Blocks())
}

func (a *app) add(ctx context.Context, rawPage, rawType, content string) error {
	pageId, err := parseID(rawPage, "page")
	if err != nil {
		return err
	}
	kind := blocks.Type(rawType)
	if kind == blocks.TypeTodo {
		content = blocks.FormatTodo(false, content)
	}

	list := client.NewBlockList(a.api, pageId, nil, 0)
	defer list.Close(ctx)
	created, err := list.Add(ctx, kind, content, nil)
	if err != nil {
		return err
	}
	color.Green("added %s block #%d", kind.Label(), created.Id)
	return nil
}

func (a *app) move(ctx context.Context, rawPage, rawBlock, rawIndex string) error {
	pageId, err := parseID(rawPage, "page")
	if err != nil {
		return err
	}
	blockId, err := parseID(rawBlock, "block")
	if err != nil {
		return err
	}
	to, err := strconv.Atoi(rawIndex)
	if err != nil || to < 0 {
		return fmt.Errorf("invalid index %q", rawIndex)
	}

	items, err := a.api.ListBlocks(ctx, pageId)
	if err != nil {
		return err
	}
	list := client.NewBlockList(a.api, pageId, items, 0)
	defer list.Close(ctx)

	from := -1
	for i, b := range list.Blocks() {
		if b.Id == blockId {
			from = i
			break
		}
	}
	if from < 0 {
		return fmt.Errorf("block %d is not on page %d", blockId, pageId)
	}
	if err := list.Move(ctx, from, to); err != nil {
		return err
	}
	return client.RenderPage(a.out, client.Page{Id: pageId, Title: fmt.Sprintf("Page #%d", pageId)}, list.Blocks())
}

func (a *app) memos(ctx context.Context, query string) error {
	editor := client.NewMemoEditor(a.api)
	if err := editor.Refresh(ctx, query); err != nil {
		return err
	}
	if len(editor.Memos) == 0 {
		fmt.Fprintln(a.out, "no memos")
		return nil
	}
	for _, m := range editor.Memos {
		tags := ""
		if len(m.Tags) > 0 {
			tags = color.GreenString(" #" + strings.Join(m.Tags, " #"))
		}
		fmt.Fprintf(a.out, "%s %s%s\n", color.New(color.Faint).Sprintf("%4d", m.Id), m.Title, tags)
	}
	return nil
}

func (a *app) memo(ctx context.Context, raw string) error {
	memoId, err := parseID(raw, "memo")
	if err != nil {
		return err
	}
	m, err := client.NewMemoEditor(a.api).Get(ctx, memoId)
	if err != nil {
		return err
	}
	return client.RenderMemo(a.out, *m)
}

func (a *app) importNotion(ctx context.Context, args []string) error {
	var parent *int64
	if len(args) == 2 {
		p, err := parseID(args[1], "parent")
		if err != nil {
			return err
		}
		parent = &p
	}
	res, err := a.api.ImportNotion(ctx, args[0], parent)
	if err != nil {
		return err
	}
	color.Green("imported %q as page #%d (%d blocks)", res.Title, res.PageId, res.BlocksCount)
	return nil
}

func (a *app) watch(ctx context.Context, eventType string) error {
	if a.nats == "" {
		return errors.New("watch needs -nats or NATS_URL")
	}
	sub, err := nats.NewSubscriber(a.nats)
	if err != nil {
		return err
	}
	defer sub.Close()

	color.Cyan("following %s events, ctrl-c to stop", orAll(eventType))
	return sub.Follow(ctx, eventType, func(_ context.Context, e events.BaseEvent) error {
		fmt.Fprintf(a.out, "%s %s %v\n",
			color.New(color.Faint).Sprint(e.Timestamp().Local().Format(time.TimeOnly)),
			color.YellowString(e.EventType()),
			e.Payload())
		return nil
	})
}

func orAll(eventType string) string {
	if eventType == "" {
		return "all"
	}
	return eventType
}
