package prompt

import (
	"strings"

	"chat-memory-be/pkg/llm"
)

// EmptyContextPlaceholder is substituted when retrieval found nothing, so
// the backend never sees an ambiguous blank context slot.
const EmptyContextPlaceholder = "no relevant context found"

// ContextualBuilder assembles the conversation sent to the generation
// backend: one system instruction with the retrieved context embedded,
// the full session history, then the new user message. It performs no I/O
// and cannot fail.
type ContextualBuilder struct {
	history     []llm.Message
	contexts    []string
	userMessage string
}

// NewContextualBuilder creates a new contextual prompt builder
func NewContextualBuilder(history []llm.Message, contexts []string, userMessage string) *ContextualBuilder {
	return &ContextualBuilder{
		history:     history,
		contexts:    contexts,
		userMessage: userMessage,
	}
}

// Build produces the ordered conversation structure.
func (b *ContextualBuilder) Build() []llm.Message {
	conversation := make([]llm.Message, 0, len(b.history)+2)
	conversation = append(conversation, llm.Message{
		Role:    llm.RoleSystem,
		Content: b.systemInstruction(),
	})
	conversation = append(conversation, b.history...)
	conversation = append(conversation, llm.Message{
		Role:    llm.RoleUser,
		Content: b.userMessage,
	})
	return conversation
}

func (b *ContextualBuilder) systemInstruction() string {
	var prompt strings.Builder

	prompt.WriteString("You are a helpful assistant with conversation memory. ")
	prompt.WriteString("Answer the user's question using the conversation so far and the reference material below.\n\n")

	prompt.WriteString("<reference_material>\n")
	prompt.WriteString(b.contextBlock())
	prompt.WriteString("\n</reference_material>\n\n")

	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("1. Prefer the reference material when it answers the question\n")
	prompt.WriteString("2. Fall back to the conversation memory for anything the material does not cover\n")
	prompt.WriteString("3. If neither contains the answer, say so honestly\n")
	prompt.WriteString("</guidelines>")

	return prompt.String()
}

// contextBlock joins the retrieved passages with a blank line between each.
func (b *ContextualBuilder) contextBlock() string {
	passages := make([]string, 0, len(b.contexts))
	for _, c := range b.contexts {
		if strings.TrimSpace(c) == "" {
			continue
		}
		passages = append(passages, c)
	}
	if len(passages) == 0 {
		return EmptyContextPlaceholder
	}
	return strings.Join(passages, "\n\n")
}
