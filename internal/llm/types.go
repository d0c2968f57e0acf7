package llm

// Role represents the role of a message sender in a conversation.
type Role string

const RoleUser Role = "user"

// Message represents a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest contains the parameters for an LLM completion request.
// A zero MaxTokens leaves the service default in place.
type CompletionRequest struct {
	Model     string
	Messages  []Message
	MaxTokens int
}

// CompletionResponse contains the result of an LLM completion request.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}
