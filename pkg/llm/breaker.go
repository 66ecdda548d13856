package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerProvider guards an upstream provider with a circuit breaker so a
// failing model endpoint is not hammered by every memo save.
type BreakerProvider struct {
	next LLMProvider
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerProvider(name string, next LLMProvider) *BreakerProvider {
	return &BreakerProvider{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: func(err error) bool {
				// A missing key is a configuration state, not an upstream failure.
				return err == nil || errors.Is(err, ErrUnavailable) || errors.Is(err, context.Canceled)
			},
		}),
	}
}

var _ LLMProvider = &BreakerProvider{}

func (b *BreakerProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Chat(ctx, history, options...)
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

func (b *BreakerProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return b.Chat(ctx, []Message{{Role: "user", Content: prompt}}, options...)
}

// State reports the breaker state name ("closed", "open", "half-open").
func (b *BreakerProvider) State() string {
	return b.cb.State().String()
}
