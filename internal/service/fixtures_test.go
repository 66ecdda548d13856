package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/redcow77/module-5-test/internal/pkg/logger"
	"github.com/redcow77/module-5-test/internal/repository/memory"
	"github.com/redcow77/module-5-test/internal/repository/unitofwork"
	"github.com/redcow77/module-5-test/pkg/cache"
	"github.com/redcow77/module-5-test/pkg/events"
	"github.com/redcow77/module-5-test/pkg/notion"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

func (p *recordingPublisher) last() events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return nil
	}
	return p.events[len(p.events)-1]
}

type stubAI struct {
	summary string
	tags    []string
	err     error
	calls   int
}

func (a *stubAI) Summarize(ctx context.Context, content string) (string, error) {
	a.calls++
	return a.summary, a.err
}

func (a *stubAI) ExtractTags(ctx context.Context, content string) ([]string, error) {
	return a.tags, a.err
}

func (a *stubAI) Enrich(ctx context.Context, content string) (*Enrichment, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	return &Enrichment{Summary: a.summary, Tags: a.tags}, nil
}

type stubNotion struct {
	page     *notion.Page
	children []notion.Block
	err      error
}

func (n *stubNotion) RetrievePage(ctx context.Context, pageId string) (*notion.Page, error) {
	if n.err != nil {
		return nil, n.err
	}
	return n.page, nil
}

func (n *stubNotion) ListChildren(ctx context.Context, blockId string) ([]notion.Block, error) {
	return n.children, nil
}

type workspace struct {
	uow       unitofwork.RepositoryFactory
	publisher *recordingPublisher
	cache     cache.Service
	log       logger.ILogger
	pages     IPageService
	blocks    IBlockService
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	w := &workspace{
		uow:       memory.NewRepositoryFactory(memory.NewStore()),
		publisher: &recordingPublisher{},
		cache:     cache.NewMemoryService(),
		log:       logger.NewNopLogger(),
	}
	w.pages = NewPageService(w.uow, w.publisher, w.cache, w.log)
	w.blocks = NewBlockService(w.uow, w.publisher, w.log)
	return w
}

var errUpstream = errors.New("upstream exploded")

func ptr[T any](v T) *T { return &v }
