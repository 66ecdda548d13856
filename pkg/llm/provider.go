package llm

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no provider is configured (missing key or
// unknown provider name).
var ErrUnavailable = errors.New("llm provider unavailable")

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// Apply resolves options over the given defaults.
func Apply(defaults Options, opts ...Option) Options {
	o := defaults
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// Unavailable is a provider that always fails with ErrUnavailable. It stands
// in when the configured provider has no credentials.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	if u.Reason == "" {
		return "", ErrUnavailable
	}
	return "", &unavailableError{reason: u.Reason}
}

func (u Unavailable) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return u.Chat(ctx, nil, options...)
}

type unavailableError struct {
	reason string
}

func (e *unavailableError) Error() string { return ErrUnavailable.Error() + ": " + e.reason }

func (e *unavailableError) Unwrap() error { return ErrUnavailable }
