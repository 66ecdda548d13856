package client

import (
	"context"
	"sort"
)

// TreeNode is a page with its children, ready for the sidebar.
type TreeNode struct {
	Page     Page
	Children []*TreeNode
}

// Row is one visible sidebar line.
type Row struct {
	Page        Page
	Depth       int
	HasChildren bool
	Expanded    bool
}

// BuildTree nests pages by parent_id. Pages whose parent is not in the
// list are promoted to roots. Siblings are ordered by creation time.
func BuildTree(pages []Page) []*TreeNode {
	nodes := make(map[int64]*TreeNode, len(pages))
	for _, p := range pages {
		nodes[p.Id] = &TreeNode{Page: p}
	}

	var roots []*TreeNode
	for _, p := range pages {
		node := nodes[p.Id]
		if p.ParentId != nil {
			if parent, ok := nodes[*p.ParentId]; ok && parent != node {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortNodes(roots)
	return roots
}

func sortNodes(nodes []*TreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i].Page, nodes[j].Page
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.Id < b.Id
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}

// Sidebar holds the page tree and which nodes are expanded.
type Sidebar struct {
	api      *Client
	roots    []*TreeNode
	expanded map[int64]bool
}

func NewSidebar(api *Client) *Sidebar {
	return &Sidebar{api: api, expanded: make(map[int64]bool)}
}

// Load fetches every page and rebuilds the tree. Expansion state survives.
func (s *Sidebar) Load(ctx context.Context) error {
	pages, err := s.api.ListPages(ctx, "")
	if err != nil {
		return err
	}
	s.SetPages(pages)
	return nil
}

func (s *Sidebar) SetPages(pages []Page) {
	s.roots = BuildTree(pages)
}

func (s *Sidebar) Roots() []*TreeNode {
	return s.roots
}

func (s *Sidebar) Expanded(pageId int64) bool {
	return s.expanded[pageId]
}

func (s *Sidebar) Expand(pageId int64) {
	s.expanded[pageId] = true
}

func (s *Sidebar) Collapse(pageId int64) {
	delete(s.expanded, pageId)
}

func (s *Sidebar) Toggle(pageId int64) {
	if s.expanded[pageId] {
		s.Collapse(pageId)
		return
	}
	s.Expand(pageId)
}

// ExpandAll opens every node that has children.
func (s *Sidebar) ExpandAll() {
	var walk func([]*TreeNode)
	walk = func(nodes []*TreeNode) {
		for _, n := range nodes {
			if len(n.Children) > 0 {
				s.expanded[n.Page.Id] = true
				walk(n.Children)
			}
		}
	}
	walk(s.roots)
}

// Visible flattens the tree depth-first, descending only into expanded nodes.
func (s *Sidebar) Visible() []Row {
	var rows []Row
	var walk func([]*TreeNode, int)
	walk = func(nodes []*TreeNode, depth int) {
		for _, n := range nodes {
			open := s.expanded[n.Page.Id]
			rows = append(rows, Row{
				Page:        n.Page,
				Depth:       depth,
				HasChildren: len(n.Children) > 0,
				Expanded:    open,
			})
			if open {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(s.roots, 0)
	return rows
}

// CreatePage adds a page under parent (nil for root) and expands the parent.
func (s *Sidebar) CreatePage(ctx context.Context, title string, parent *int64) (*Page, error) {
	in := CreatePageInput{ParentId: parent}
	if title != "" {
		in.Title = &title
	}
	page, err := s.api.CreatePage(ctx, in)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		s.Expand(*parent)
	}
	return page, s.Load(ctx)
}

// DeletePage removes a page and its subtree, then reloads.
func (s *Sidebar) DeletePage(ctx context.Context, pageId int64) error {
	if err := s.api.DeletePage(ctx, pageId); err != nil {
		return err
	}
	s.Collapse(pageId)
	return s.Load(ctx)
}
