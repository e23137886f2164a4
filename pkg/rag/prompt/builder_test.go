package prompt

import (
	"strings"
	"testing"

	"chat-memory-be/pkg/llm"
)

func TestBuildOrdering(t *testing.T) {
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "earlier question"},
		{Role: llm.RoleAssistant, Content: "earlier answer"},
	}

	conversation := NewContextualBuilder(history, []string{"a passage"}, "new question").Build()

	if len(conversation) != 4 {
		t.Fatalf("len(conversation) = %d, want 4", len(conversation))
	}
	if conversation[0].Role != llm.RoleSystem {
		t.Errorf("first message role = %q, want system", conversation[0].Role)
	}
	if conversation[1].Content != "earlier question" || conversation[2].Content != "earlier answer" {
		t.Error("history messages are not in insertion order")
	}
	last := conversation[len(conversation)-1]
	if last.Role != llm.RoleUser || last.Content != "new question" {
		t.Errorf("last message = %+v, want the new user message", last)
	}
}

func TestBuildJoinsContextsWithBlankLine(t *testing.T) {
	conversation := NewContextualBuilder(nil, []string{"first passage", "second passage"}, "q").Build()

	system := conversation[0].Content
	if !strings.Contains(system, "first passage\n\nsecond passage") {
		t.Errorf("system instruction does not join passages with a blank line:\n%s", system)
	}
}

func TestBuildSubstitutesPlaceholderWhenNoContext(t *testing.T) {
	tests := []struct {
		name     string
		contexts []string
	}{
		{name: "nil contexts", contexts: nil},
		{name: "empty slice", contexts: []string{}},
		{name: "blank passages only", contexts: []string{"", "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conversation := NewContextualBuilder(nil, tt.contexts, "q").Build()
			system := conversation[0].Content
			if !strings.Contains(system, EmptyContextPlaceholder) {
				t.Errorf("system instruction missing placeholder:\n%s", system)
			}
		})
	}
}

func TestBuildIsPure(t *testing.T) {
	history := []llm.Message{{Role: llm.RoleUser, Content: "q1"}}
	b := NewContextualBuilder(history, []string{"ctx"}, "q2")

	first := b.Build()
	second := b.Build()

	if len(first) != len(second) {
		t.Fatal("repeated builds differ in length")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("message %d differs between builds", i)
		}
	}
}
