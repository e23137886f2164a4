package constant

// Message roles persisted in the history store.
const (
	ChatMessageRoleSystem    = "system"
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

// Pipeline defaults.
const (
	// DefaultRetrievalK is the number of passages pulled into the
	// context slot per request.
	DefaultRetrievalK = 5

	// MaxRetrievalK caps caller-supplied k on the search endpoint.
	MaxRetrievalK = 50
)

// Event bus topics (in-process watermill pub/sub).
const (
	TopicPipelineEvents = "PIPELINE_EVENTS"
)
