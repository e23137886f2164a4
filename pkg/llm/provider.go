package llm

import (
	"context"
)

// Role constants shared by all providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// LastUserContent returns the content of the most recent user-role message,
// or an empty string if the conversation contains none.
func LastUserContent(conversation []Message) string {
	for i := len(conversation) - 1; i >= 0; i-- {
		if conversation[i].Role == RoleUser {
			return conversation[i].Content
		}
	}
	return ""
}

// StreamChunk is one incremental unit of generated text. A chunk with
// Done=true is the end marker and carries no content. A chunk with a
// non-nil Err terminates the stream in place of the end marker; fragments
// delivered before it must be treated as discarded by the caller.
type StreamChunk struct {
	Content string
	Done    bool
	Err     error
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

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// ResolveOptions applies the functional options over provider defaults.
func ResolveOptions(opts []Option) *Options {
	options := &Options{
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// LLMProvider defines the contract for any generation backend.
//
// ChatStream returns once the backend connection is established; fragments
// arrive on the returned channel as the backend emits them. The channel is
// closed right after the Done marker or an Err chunk. A stream is not
// restartable. Cancelling ctx releases the backend connection and stops
// emission: no chunk is sent after the consumer stops receiving.
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// ChatStream sends a chat history and emits the response incrementally
	ChatStream(ctx context.Context, history []Message, options ...Option) (<-chan StreamChunk, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
