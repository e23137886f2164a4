package failover

import (
	"context"
	"fmt"
	"log"
	"time"

	"chat-memory-be/internal/pkg/apperror"
	"chat-memory-be/pkg/llm"
)

// Provider wraps the configured backend with a deterministic offline
// fallback. Any primary failure triggers one full retry of the request
// against the fallback, with the conversation unchanged. The error only
// surfaces when the fallback itself fails, which an offline backend
// should make unreachable.
type Provider struct {
	primary  llm.LLMProvider
	fallback llm.LLMProvider
	timeout  time.Duration // bound on the primary sync call; 0 disables
	logger   *log.Logger
}

var _ llm.LLMProvider = &Provider{}

func NewProvider(primary, fallback llm.LLMProvider, timeout time.Duration, logger *log.Logger) *Provider {
	return &Provider{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger,
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	reply, prErr := p.primary.Chat(callCtx, history, opts...)
	if prErr == nil {
		return reply, nil
	}
	p.logf("[FAILOVER] primary backend failed, substituting fallback: %v", prErr)

	reply, fbErr := p.fallback.Chat(ctx, history, opts...)
	if fbErr != nil {
		return "", apperror.Generation("both primary and fallback generation failed",
			fmt.Errorf("primary: %v; fallback: %w", prErr, fbErr))
	}
	return reply, nil
}

// ChatStream applies the same substitution policy incrementally. A primary
// failure before the first fragment swaps in the fallback stream; a failure
// after partial output surfaces as a terminal error chunk, since splicing
// two half-replies together would corrupt the response.
func (p *Provider) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (<-chan llm.StreamChunk, error) {
	primary, prErr := p.primary.ChatStream(ctx, history, opts...)
	if prErr != nil {
		p.logf("[FAILOVER] primary stream startup failed, substituting fallback: %v", prErr)
		return p.fallbackStream(ctx, history, opts...)
	}

	out := make(chan llm.StreamChunk)
	go func() {
		defer close(out)

		emitted := false
		for chunk := range primary {
			if chunk.Err != nil {
				if !emitted {
					p.logf("[FAILOVER] primary stream failed before first fragment, substituting fallback: %v", chunk.Err)
					p.relayFallback(ctx, out, history, chunk.Err, opts...)
					return
				}
				p.logf("[FAILOVER] primary stream failed after partial output: %v", chunk.Err)
				p.emit(ctx, out, chunk)
				return
			}
			if chunk.Done {
				p.emit(ctx, out, chunk)
				return
			}
			emitted = true
			if !p.emit(ctx, out, chunk) {
				return
			}
		}
		// Producer closed without a done marker or error chunk; the
		// consumer still needs a terminal event.
		p.emit(ctx, out, llm.StreamChunk{Err: fmt.Errorf("primary stream ended without done marker")})
	}()

	return out, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func (p *Provider) fallbackStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (<-chan llm.StreamChunk, error) {
	stream, err := p.fallback.ChatStream(ctx, history, opts...)
	if err != nil {
		return nil, apperror.Generation("both primary and fallback generation failed", err)
	}
	return stream, nil
}

// relayFallback replays the unchanged conversation against the fallback
// and forwards its chunks.
func (p *Provider) relayFallback(ctx context.Context, out chan<- llm.StreamChunk, history []llm.Message, prErr error, opts ...llm.Option) {
	fb, fbErr := p.fallback.ChatStream(ctx, history, opts...)
	if fbErr != nil {
		p.emit(ctx, out, llm.StreamChunk{Err: apperror.Generation("both primary and fallback generation failed",
			fmt.Errorf("primary: %v; fallback: %w", prErr, fbErr))})
		return
	}
	for chunk := range fb {
		if !p.emit(ctx, out, chunk) {
			return
		}
		if chunk.Done || chunk.Err != nil {
			return
		}
	}
}

func (p *Provider) emit(ctx context.Context, out chan<- llm.StreamChunk, chunk llm.StreamChunk) bool {
	select {
	case out <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}

func (p *Provider) logf(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}
