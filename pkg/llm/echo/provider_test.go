package echo

import (
	"context"
	"strings"
	"testing"

	"chat-memory-be/pkg/llm"
)

func TestChatEchoesLastUserMessage(t *testing.T) {
	p := NewEchoProvider()

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: "You are a helpful assistant."},
		{Role: llm.RoleUser, Content: "first question"},
		{Role: llm.RoleAssistant, Content: "first answer"},
		{Role: llm.RoleUser, Content: "what is the weather?"},
	}

	reply, err := p.Chat(context.Background(), history)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if !strings.Contains(reply, "what is the weather?") {
		t.Errorf("reply %q does not contain the last user message", reply)
	}
	if strings.Contains(reply, "first question") {
		t.Errorf("reply %q echoed an earlier message instead of the last one", reply)
	}
}

func TestChatIsDeterministic(t *testing.T) {
	p := NewEchoProvider()
	history := []llm.Message{{Role: llm.RoleUser, Content: "hello"}}

	first, err := p.Chat(context.Background(), history)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	second, err := p.Chat(context.Background(), history)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if first != second {
		t.Errorf("replies differ: %q vs %q", first, second)
	}
}

func TestChatStreamConcatenatesToChatReply(t *testing.T) {
	p := NewEchoProvider()
	history := []llm.Message{{Role: llm.RoleUser, Content: "stream me"}}

	want, _ := p.Chat(context.Background(), history)

	chunks, err := p.ChatStream(context.Background(), history)
	if err != nil {
		t.Fatalf("ChatStream() error = %v", err)
	}

	var sb strings.Builder
	var sawDone bool
	for chunk := range chunks {
		if chunk.Err != nil {
			t.Fatalf("unexpected stream error: %v", chunk.Err)
		}
		if chunk.Done {
			sawDone = true
			continue
		}
		sb.WriteString(chunk.Content)
	}
	if !sawDone {
		t.Fatal("stream ended without a done marker")
	}
	if sb.String() != want {
		t.Errorf("streamed reply = %q, want %q", sb.String(), want)
	}
}

func TestChatStreamStopsOnCancel(t *testing.T) {
	p := NewEchoProvider()
	history := []llm.Message{{Role: llm.RoleUser, Content: "one two three four five six"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chunks, err := p.ChatStream(ctx, history)
	if err != nil {
		t.Fatalf("ChatStream() error = %v", err)
	}

	// An abandoned consumer must see the channel close without fragments
	// and without a done marker.
	for chunk := range chunks {
		t.Fatalf("received chunk %+v after cancellation", chunk)
	}
}
