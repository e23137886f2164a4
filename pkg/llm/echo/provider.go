package echo

import (
	"context"
	"fmt"
	"strings"

	"chat-memory-be/pkg/llm"
)

// EchoProvider is the offline fallback backend. It performs no I/O and is
// fully deterministic: the same conversation always produces the same
// reply. It echoes the most recent user message so callers (and tests) can
// see that no external model was involved.
type EchoProvider struct{}

var _ llm.LLMProvider = &EchoProvider{}

func NewEchoProvider() *EchoProvider {
	return &EchoProvider{}
}

func (e *EchoProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return e.reply(history), nil
}

func (e *EchoProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return e.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

// ChatStream emits the deterministic reply split on word boundaries,
// followed by the end marker. Emission stops as soon as ctx is cancelled.
func (e *EchoProvider) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (<-chan llm.StreamChunk, error) {
	reply := e.reply(history)
	out := make(chan llm.StreamChunk)

	go func() {
		defer close(out)
		words := strings.SplitAfter(reply, " ")
		for _, w := range words {
			if w == "" {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			select {
			case out <- llm.StreamChunk{Content: w}:
			case <-ctx.Done():
				return
			}
		}
		if ctx.Err() != nil {
			return
		}
		select {
		case out <- llm.StreamChunk{Done: true}:
		case <-ctx.Done():
		}
	}()

	return out, nil
}

func (e *EchoProvider) reply(history []llm.Message) string {
	last := llm.LastUserContent(history)
	return fmt.Sprintf("Received: %s. No external model is configured; this is an offline fallback reply.", last)
}
