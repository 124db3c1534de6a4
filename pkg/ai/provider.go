package ai

import "context"

// Message represents a single chat message for LLM requests.
type Message struct {
	Role    string
	Content string
}

// ChatRequest is the outgoing payload of one send. It is built per call and
// never stored.
type ChatRequest struct {
	Model    string
	Messages []Message
}

// ChatResponse is the normalized first choice of a completion.
type ChatResponse struct {
	Content   string
	Reasoning string
	Model     string
}

// Provider defines the LLM interface used by the app.
type Provider interface {
	CreateChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error)
}
