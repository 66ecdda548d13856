package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcow77/module-5-test/internal/dto"
	"github.com/redcow77/module-5-test/internal/pkg/serverutils"
	"github.com/redcow77/module-5-test/pkg/blocks"
	"github.com/redcow77/module-5-test/pkg/cache"
	"github.com/redcow77/module-5-test/pkg/events"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func createPage(t *testing.T, w *workspace, title string, parent *int64) *dto.PageResponse {
	t.Helper()
	page, err := w.pages.Create(context.Background(), &dto.CreatePageRequest{Title: ptr(title), ParentId: parent})
	require.NoError(t, err)
	return page
}

func TestPageService_CreateDefaultsTitle(t *testing.T) {
	w := newWorkspace(t)

	page, err := w.pages.Create(context.Background(), &dto.CreatePageRequest{Title: ptr("   ")})
	require.NoError(t, err)

	assert.Equal(t, DefaultPageTitle, page.Title)
	assert.NotZero(t, page.Id)
	assert.Equal(t, []string{events.PageCreated}, w.publisher.types())
}

func TestPageService_CreateRequiresExistingParent(t *testing.T) {
	w := newWorkspace(t)

	_, err := w.pages.Create(context.Background(), &dto.CreatePageRequest{ParentId: ptr(int64(99))})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestPageService_CreateRejectsLongIcon(t *testing.T) {
	w := newWorkspace(t)

	_, err := w.pages.Create(context.Background(), &dto.CreatePageRequest{Icon: ptr("abcdefghijk")})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestPageService_ListFiltersByParent(t *testing.T) {
	w := newWorkspace(t)
	ctx := context.Background()
	root := createPage(t, w, "Root", nil)
	createPage(t, w, "Child", &root.Id)
	createPage(t, w, "Other root", nil)

	all, err := w.pages.List(ctx, &dto.ListPagesQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	roots, err := w.pages.List(ctx, &dto.ListPagesQuery{ParentId: "root"})
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "Root", roots[0].Title)
	assert.Equal(t, "Other root", roots[1].Title)

	children, err := w.pages.List(ctx, &dto.ListPagesQuery{ParentId: strconv.FormatInt(root.Id, 10)})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Child", children[0].Title)

	_, err = w.pages.List(ctx, &dto.ListPagesQuery{ParentId: "abc"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestPageService_TreeIsCachedAndInvalidated(t *testing.T) {
	w := newWorkspace(t)
	ctx := context.Background()
	root := createPage(t, w, "Root", nil)
	createPage(t, w, "A", &root.Id)
	createPage(t, w, "B", &root.Id)

	tree, err := w.pages.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "A", tree[0].Children[0].Title)
	assert.Equal(t, "B", tree[0].Children[1].Title)

	var cached []*dto.PageTreeNodeResponse
	require.NoError(t, w.cache.Get(ctx, cache.KeyPageTree, &cached))
	assert.Len(t, cached, 1)

	createPage(t, w, "Second root", nil)
	assert.ErrorIs(t, w.cache.Get(ctx, cache.KeyPageTree, &cached), cache.ErrMiss)

	tree, err = w.pages.Tree(ctx)
	require.NoError(t, err)
	assert.Len(t, tree, 2)
}

func TestBuildPageTree_PromotesOrphans(t *testing.T) {
	w := newWorkspace(t)
	ctx := context.Background()
	root := createPage(t, w, "Root", nil)
	child := createPage(t, w, "Child", &root.Id)

	uow := w.uow.NewUnitOfWork(ctx)
	pages, err := uow.PageRepository().FindAll(ctx)
	require.NoError(t, err)
	// drop the root so the child's parent is missing
	tree := BuildPageTree(pages[1:])

	require.Len(t, tree, 1)
	assert.Equal(t, child.Id, tree[0].Id)
	assert.Empty(t, tree[0].Children)
}

func TestPageService_UpdateMovesAndRejectsCycles(t *testing.T) {
	w := newWorkspace(t)
	ctx := context.Background()
	a := createPage(t, w, "A", nil)
	b := createPage(t, w, "B", &a.Id)
	c := createPage(t, w, "C", &b.Id)

	_, err := w.pages.Update(ctx, &dto.UpdatePageRequest{Id: a.Id, ParentId: dto.Some(a.Id)})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = w.pages.Update(ctx, &dto.UpdatePageRequest{Id: a.Id, ParentId: dto.Some(c.Id)})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = w.pages.Update(ctx, &dto.UpdatePageRequest{Id: a.Id, ParentId: dto.Some(int64(404))})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	moved, err := w.pages.Update(ctx, &dto.UpdatePageRequest{Id: c.Id, ParentId: dto.Null[int64]()})
	require.NoError(t, err)
	assert.Nil(t, moved.ParentId)
	assert.NotNil(t, moved.UpdatedAt)
}

func TestPageService_UpdateKeepsAbsentFields(t *testing.T) {
	w := newWorkspace(t)
	ctx := context.Background()
	parent := createPage(t, w, "Parent", nil)
	page, err := w.pages.Create(ctx, &dto.CreatePageRequest{Title: ptr("Page"), Icon: ptr("📄"), ParentId: &parent.Id})
	require.NoError(t, err)

	updated, err := w.pages.Update(ctx, &dto.UpdatePageRequest{Id: page.Id, Title: ptr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	require.NotNil(t, updated.Icon)
	assert.Equal(t, "📄", *updated.Icon)
	require.NotNil(t, updated.ParentId)
	assert.Equal(t, parent.Id, *updated.ParentId)

	cleared, err := w.pages.Update(ctx, &dto.UpdatePageRequest{Id: page.Id, Icon: dto.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.Icon)
}

func TestPageService_BreadcrumbRootFirst(t *testing.T) {
	w := newWorkspace(t)
	a := createPage(t, w, "A", nil)
	b := createPage(t, w, "B", &a.Id)
	c := createPage(t, w, "C", &b.Id)

	path, err := w.pages.Breadcrumb(context.Background(), c.Id)
	require.NoError(t, err)
	require.Len(t, path, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{path[0].Title, path[1].Title, path[2].Title})

	_, err = w.pages.Breadcrumb(context.Background(), 999)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestPageService_DeleteCascades(t *testing.T) {
	w := newWorkspace(t)
	ctx := context.Background()
	a := createPage(t, w, "A", nil)
	b := createPage(t, w, "B", &a.Id)
	c := createPage(t, w, "C", &b.Id)
	keep := createPage(t, w, "Keep", nil)
	for _, id := range []int64{a.Id, c.Id, keep.Id} {
		_, err := w.blocks.Create(ctx, &dto.CreateBlockRequest{PageId: id, Content: "x"})
		require.NoError(t, err)
	}

	require.NoError(t, w.pages.Delete(ctx, a.Id))

	pages, err := w.pages.List(ctx, &dto.ListPagesQuery{})
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, keep.Id, pages[0].Id)

	uow := w.uow.NewUnitOfWork(ctx)
	count, err := uow.BlockRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	evt := w.publisher.last()
	assert.Equal(t, events.PageDeleted, evt.EventType())
	assert.ElementsMatch(t, []int64{a.Id, b.Id, c.Id}, evt.Payload()["deleted_ids"])

	assert.Equal(t, http.StatusNotFound, statusOf(t, w.pages.Delete(ctx, a.Id)))
}

func TestPageService_MarkdownRoundTrip(t *testing.T) {
	w := newWorkspace(t)
	ctx := context.Background()

	imported, err := w.pages.ImportMarkdown(ctx, &dto.ImportMarkdownRequest{
		Markdown: "# Trip\n\nPack light.\n\n- passport\n- [x] tickets\n",
	})
	require.NoError(t, err)
	assert.Equal(t, "Trip", imported.Title)
	require.Len(t, imported.Blocks, 3)
	assert.Equal(t, blocks.TypeText, imported.Blocks[0].Type)
	assert.Equal(t, blocks.TypeBulletList, imported.Blocks[1].Type)
	assert.Equal(t, blocks.TypeTodo, imported.Blocks[2].Type)
	assert.Equal(t, float64(2), imported.Blocks[2].Order)
	assert.Equal(t, events.PageImported, w.publisher.last().EventType())

	exported, err := w.pages.ExportMarkdown(ctx, imported.Id)
	require.NoError(t, err)
	assert.Equal(t, "# Trip\n\nPack light.\n\n- passport\n\n- [x] tickets\n", exported.Markdown)
}

func TestPageService_ImportClipsLongTitle(t *testing.T) {
	w := newWorkspace(t)
	ctx := context.Background()

	fromHeading, err := w.pages.ImportMarkdown(ctx, &dto.ImportMarkdownRequest{
		Markdown: "# " + strings.Repeat("x", 800) + "\n\nbody\n",
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 500), fromHeading.Title)
	require.Len(t, fromHeading.Blocks, 1)

	fromHTML, err := w.pages.ImportHTML(ctx, &dto.ImportHTMLRequest{
		Html: "<h1>" + strings.Repeat("ü", 600) + "</h1><p>body</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, 500, utf8.RuneCountInString(fromHTML.Title))

	stored, err := w.pages.Show(ctx, fromHTML.Id)
	require.NoError(t, err)
	assert.Equal(t, fromHTML.Title, stored.Title)
}

func TestPageService_ImportHTML(t *testing.T) {
	w := newWorkspace(t)

	page, err := w.pages.ImportHTML(context.Background(), &dto.ImportHTMLRequest{
		Title: ptr("Clipped"),
		Html:  "<h2>Intro</h2><p>Hello <strong>world</strong></p><ul><li>one</li></ul>",
	})
	require.NoError(t, err)

	assert.Equal(t, "Clipped", page.Title)
	require.Len(t, page.Blocks, 3)
	assert.Equal(t, blocks.TypeHeading2, page.Blocks[0].Type)
	assert.Equal(t, "Intro", page.Blocks[0].Content)
	assert.Equal(t, blocks.TypeText, page.Blocks[1].Type)
	assert.Equal(t, blocks.TypeBulletList, page.Blocks[2].Type)
}

func TestPageService_PublishFailureDoesNotFailWrite(t *testing.T) {
	w := newWorkspace(t)
	w.publisher.err = errUpstream

	page, err := w.pages.Create(context.Background(), &dto.CreatePageRequest{Title: ptr("Still here")})
	require.NoError(t, err)
	assert.Equal(t, "Still here", page.Title)
}
