package client

import (
	"context"
	"errors"
	"strings"
)

var ErrNotLoaded = errors.New("page not loaded")

// PageView is the detail view of one page: its header plus a block list.
type PageView struct {
	api    *Client
	Page   *Page
	Crumbs []Breadcrumb
	Blocks *BlockList
}

func NewPageView(api *Client) *PageView {
	return &PageView{api: api}
}

// Load fetches the page with its blocks and breadcrumb trail.
func (v *PageView) Load(ctx context.Context, pageId int64) error {
	page, err := v.api.GetPage(ctx, pageId)
	if err != nil {
		return err
	}
	crumbs, err := v.api.Breadcrumb(ctx, pageId)
	if err != nil {
		return err
	}

	if v.Blocks != nil {
		v.Blocks.Close(ctx)
	}
	p := page.Page
	v.Page = &p
	v.Crumbs = crumbs
	v.Blocks = NewBlockList(v.api, pageId, page.Blocks, 0)
	return nil
}

// SetTitle persists a new title. Blank titles fall back to the server default.
func (v *PageView) SetTitle(ctx context.Context, title string) error {
	if v.Page == nil {
		return ErrNotLoaded
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled"
	}
	updated, err := v.api.UpdatePage(ctx, v.Page.Id, UpdatePageInput{Title: &title})
	if err != nil {
		return err
	}
	v.Page = updated
	return nil
}

// SetIcon persists an icon; an empty icon clears it.
func (v *PageView) SetIcon(ctx context.Context, icon string) error {
	if v.Page == nil {
		return ErrNotLoaded
	}
	in := UpdatePageInput{ClearIcon: icon == ""}
	if icon != "" {
		in.Icon = &icon
	}
	updated, err := v.api.UpdatePage(ctx, v.Page.Id, in)
	if err != nil {
		return err
	}
	v.Page = updated
	return nil
}

// Path renders the breadcrumb trail as "A / B / C".
func (v *PageView) Path() string {
	parts := make([]string, 0, len(v.Crumbs))
	for _, c := range v.Crumbs {
		label := c.Title
		if c.Icon != nil && *c.Icon != "" {
			label = *c.Icon + " " + label
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " / ")
}

// Close flushes pending block edits.
func (v *PageView) Close(ctx context.Context) error {
	if v.Blocks == nil {
		return nil
	}
	return v.Blocks.Close(ctx)
}
