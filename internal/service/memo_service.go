package service

import (
	"context"
	"strings"
	"time"

	"github.com/redcow77/module-5-test/internal/dto"
	"github.com/redcow77/module-5-test/internal/entity"
	"github.com/redcow77/module-5-test/internal/pkg/logger"
	"github.com/redcow77/module-5-test/internal/pkg/serverutils"
	"github.com/redcow77/module-5-test/internal/repository/specification"
	"github.com/redcow77/module-5-test/internal/repository/unitofwork"
	"github.com/redcow77/module-5-test/pkg/events"
	"github.com/redcow77/module-5-test/pkg/search"
)

const (
	EnrichmentSync  = "sync"
	EnrichmentAsync = "async"

	DefaultMemoLimit = 100
)

type IMemoService interface {
	List(ctx context.Context, query *dto.ListMemosQuery) ([]*dto.MemoResponse, error)
	Search(ctx context.Context, q string) ([]*dto.MemoResponse, error)
	Show(ctx context.Context, id int64) (*dto.MemoResponse, error)
	Create(ctx context.Context, req *dto.CreateMemoRequest) (*dto.MemoResponse, error)
	Update(ctx context.Context, req *dto.UpdateMemoRequest) (*dto.MemoResponse, error)
	Delete(ctx context.Context, id int64) error
	RegenerateAI(ctx context.Context, id int64) (*dto.MemoResponse, error)
	ApplyEnrichment(ctx context.Context, memoId int64) error
}

type MemoServiceOptions struct {
	// EnrichmentMode is EnrichmentSync (default) or EnrichmentAsync.
	EnrichmentMode string
	// AITimeout bounds a single enrichment; zero means no extra deadline.
	AITimeout time.Duration
}

type memoService struct {
	uowFactory unitofwork.RepositoryFactory
	ai         IAIService
	publisher  IPublisherService
	logger     logger.ILogger
	opts       MemoServiceOptions
}

func NewMemoService(
	uowFactory unitofwork.RepositoryFactory,
	ai IAIService,
	publisher IPublisherService,
	log logger.ILogger,
	opts MemoServiceOptions,
) IMemoService {
	if opts.EnrichmentMode == "" {
		opts.EnrichmentMode = EnrichmentSync
	}
	return &memoService{
		uowFactory: uowFactory,
		ai:         ai,
		publisher:  publisher,
		logger:     log,
		opts:       opts,
	}
}

func (s *memoService) findMemo(ctx context.Context, uow unitofwork.UnitOfWork, id int64) (*entity.Memo, error) {
	memo, err := uow.MemoRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if memo == nil {
		return nil, serverutils.NotFound("Memo not found")
	}
	return memo, nil
}

func (s *memoService) List(ctx context.Context, query *dto.ListMemosQuery) ([]*dto.MemoResponse, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultMemoLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	memos, err := uow.MemoRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: query.Skip},
	)
	if err != nil {
		return nil, err
	}
	return toMemoResponses(memos), nil
}

func (s *memoService) Search(ctx context.Context, q string) ([]*dto.MemoResponse, error) {
	query := search.ParseQuery(q)
	if query.Empty() {
		return nil, serverutils.BadRequest("Search query is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	candidates, err := uow.MemoRepository().FindAll(ctx,
		specification.MemoSearchQuery{Query: query.Needle()},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	return toMemoResponses(RankMemos(candidates, q)), nil
}

// RankMemos keeps the memos matching q and puts tag matches first. Input
// order is preserved within each group. "#tag" terms in q must all be
// present on a memo.
func RankMemos(memos []*entity.Memo, q string) []*entity.Memo {
	query := search.ParseQuery(q)
	needle := strings.ToLower(query.Text)
	var tagged, rest []*entity.Memo
	for _, m := range memos {
		if !query.HasTags(m.Tags) {
			continue
		}
		switch {
		case needle == "":
			tagged = append(tagged, m)
		case tagMatches(m.Tags, needle):
			tagged = append(tagged, m)
		case textMatches(m, needle):
			rest = append(rest, m)
		}
	}
	return append(tagged, rest...)
}

func tagMatches(tags []string, needle string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

func textMatches(m *entity.Memo, needle string) bool {
	if strings.Contains(strings.ToLower(m.Title), needle) || strings.Contains(strings.ToLower(m.Content), needle) {
		return true
	}
	return m.AiSummary != nil && strings.Contains(strings.ToLower(*m.AiSummary), needle)
}

func (s *memoService) Show(ctx context.Context, id int64) (*dto.MemoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	memo, err := s.findMemo(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	return toMemoResponse(memo), nil
}

func (s *memoService) Create(ctx context.Context, req *dto.CreateMemoRequest) (*dto.MemoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	memo := entity.Memo{
		Title:     req.Title,
		Content:   req.Content,
		UserId:    req.UserId,
		CreatedAt: time.Now(),
	}
	if err := uow.MemoRepository().Create(ctx, &memo); err != nil {
		return nil, err
	}

	publishAsync(ctx, s.publisher, s.logger, events.MemoCreated, map[string]interface{}{
		"memo_id": memo.Id,
		"title":   memo.Title,
	})

	if s.opts.EnrichmentMode == EnrichmentAsync && s.publisher != nil {
		publishAsync(ctx, s.publisher, s.logger, events.MemoEnrichmentRequested, map[string]interface{}{
			"memo_id": memo.Id,
		})
		return toMemoResponse(&memo), nil
	}

	if err := s.enrich(ctx, uow, &memo); err != nil {
		// the memo is saved; it just goes without AI fields for now
		s.logger.Warn("MemoService", "Memo enrichment skipped", map[string]interface{}{
			"memo_id": memo.Id,
			"error":   err.Error(),
		})
	}
	return toMemoResponse(&memo), nil
}

// enrich asks the AI for a summary and tags and stores them on memo.
func (s *memoService) enrich(ctx context.Context, uow unitofwork.UnitOfWork, memo *entity.Memo) error {
	aiCtx := ctx
	if s.opts.AITimeout > 0 {
		var cancel context.CancelFunc
		aiCtx, cancel = context.WithTimeout(ctx, s.opts.AITimeout)
		defer cancel()
	}

	result, err := s.ai.Enrich(aiCtx, memo.Content)
	if err != nil {
		return err
	}

	memo.AiSummary = &result.Summary
	memo.Tags = result.Tags
	if err := uow.MemoRepository().Update(ctx, memo); err != nil {
		return err
	}

	publishAsync(ctx, s.publisher, s.logger, events.MemoAIUpdated, map[string]interface{}{
		"memo_id":    memo.Id,
		"ai_summary": result.Summary,
		"tags":       result.Tags,
	})
	return nil
}

func (s *memoService) Update(ctx context.Context, req *dto.UpdateMemoRequest) (*dto.MemoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	memo, err := s.findMemo(ctx, uow, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		memo.Title = *req.Title
	}
	if req.Content != nil {
		memo.Content = *req.Content
	}
	if err := uow.MemoRepository().Update(ctx, memo); err != nil {
		return nil, err
	}

	publishAsync(ctx, s.publisher, s.logger, events.MemoUpdated, map[string]interface{}{
		"memo_id": memo.Id,
		"title":   memo.Title,
	})
	return toMemoResponse(memo), nil
}

func (s *memoService) Delete(ctx context.Context, id int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.findMemo(ctx, uow, id); err != nil {
		return err
	}
	if err := uow.MemoRepository().Delete(ctx, id); err != nil {
		return err
	}

	publishAsync(ctx, s.publisher, s.logger, events.MemoDeleted, map[string]interface{}{
		"memo_id": id,
	})
	return nil
}

func (s *memoService) RegenerateAI(ctx context.Context, id int64) (*dto.MemoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	memo, err := s.findMemo(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if err := s.enrich(ctx, uow, memo); err != nil {
		if IsAIUnavailable(err) {
			return nil, serverutils.ServiceUnavailable("AI service is not configured", err)
		}
		return nil, serverutils.ServiceUnavailable("AI service failed", err)
	}
	return toMemoResponse(memo), nil
}

func (s *memoService) ApplyEnrichment(ctx context.Context, memoId int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	memo, err := s.findMemo(ctx, uow, memoId)
	if err != nil {
		return err
	}
	return s.enrich(ctx, uow, memo)
}
