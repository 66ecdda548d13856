package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redcow77/module-5-test/internal/constant"
	"github.com/redcow77/module-5-test/pkg/llm"
	"github.com/redcow77/module-5-test/pkg/utils"
)

// Enrichment is the AI output attached to a memo.
type Enrichment struct {
	Summary string
	Tags    []string
}

type IAIService interface {
	Summarize(ctx context.Context, content string) (string, error)
	ExtractTags(ctx context.Context, content string) ([]string, error)
	Enrich(ctx context.Context, content string) (*Enrichment, error)
}

type aiService struct {
	provider llm.LLMProvider
}

func NewAIService(provider llm.LLMProvider) IAIService {
	return &aiService{provider: provider}
}

func (s *aiService) Summarize(ctx context.Context, content string) (string, error) {
	out, err := s.provider.Generate(ctx,
		fmt.Sprintf(constant.MemoSummaryPrompt, promptText(content)),
		llm.WithMaxTokens(constant.MemoSummaryMaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("summarize memo: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (s *aiService) ExtractTags(ctx context.Context, content string) ([]string, error) {
	out, err := s.provider.Generate(ctx,
		fmt.Sprintf(constant.MemoTagsPrompt, promptText(content)),
		llm.WithMaxTokens(constant.MemoTagsMaxTokens),
	)
	if err != nil {
		return nil, fmt.Errorf("extract tags: %w", err)
	}
	return ParseTags(out), nil
}

func (s *aiService) Enrich(ctx context.Context, content string) (*Enrichment, error) {
	summary, err := s.Summarize(ctx, content)
	if err != nil {
		return nil, err
	}
	tags, err := s.ExtractTags(ctx, content)
	if err != nil {
		return nil, err
	}
	return &Enrichment{Summary: summary, Tags: tags}, nil
}

func promptText(content string) string {
	return utils.Clip(content, constant.MemoPromptMaxChars)
}

// ParseTags splits a comma separated model reply into at most five tags.
func ParseTags(reply string) []string {
	tags := make([]string, 0, constant.MemoMaxTags)
	for _, part := range strings.Split(strings.TrimSpace(reply), ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == constant.MemoMaxTags {
			break
		}
	}
	return tags
}

// IsAIUnavailable reports whether err means no provider is configured.
func IsAIUnavailable(err error) bool {
	return errors.Is(err, llm.ErrUnavailable)
}
