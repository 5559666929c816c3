package llm

import (
	"context"
	"fmt"
	"time"
)

// Provider is the abstraction over chat-completion APIs. Consumers send a
// prompt and receive the raw assistant message text; anything smarter
// (parsing, retries) belongs to the caller.
type Provider interface {
	// Complete performs one chat-completion call and returns the raw
	// assistant message content.
	Complete(ctx context.Context, req Request) (string, error)

	// ModelID returns the default model identifier this provider uses.
	ModelID() string
}

// Request describes a single completion call.
type Request struct {
	// System is the system instruction. For quiz generation it constrains
	// the assistant to emit only valid JSON.
	System string

	// Prompt is the user message.
	Prompt string

	// Model optionally overrides the provider's configured model.
	Model string

	// Temperature controls randomness. Zero means provider default.
	Temperature float32

	// MaxTokens caps the response length. Zero means provider default.
	MaxTokens int
}

// NewProvider creates a Provider from configuration. The real backends are
// wrapped so every completion call runs under cfg.Timeout.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		p, err := NewOpenAIProvider(cfg.OpenAI)
		if err != nil {
			return nil, err
		}
		return WithTimeout(p, cfg.Timeout), nil
	case "gemini":
		p, err := NewGeminiProvider(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		return WithTimeout(p, cfg.Timeout), nil
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}

// WithTimeout bounds every completion call of the wrapped provider by a
// wall-clock deadline. A hung endpoint then surfaces as the provider's
// context error instead of blocking the caller forever. A non-positive
// timeout leaves the provider unwrapped.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &timeoutProvider{next: p, timeout: timeout}
}

type timeoutProvider struct {
	next    Provider
	timeout time.Duration
}

func (p *timeoutProvider) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.next.Complete(ctx, req)
}

func (p *timeoutProvider) ModelID() string {
	return p.next.ModelID()
}
