// Package llm provides the chat-completion client used for grammar
// correction.
package llm

import "context"

// CompletionClient defines the interface for chat completion calls.
type CompletionClient interface {
	// CreateChatCompletion sends a chat completion request.
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// Ensure Client implements CompletionClient interface.
var _ CompletionClient = (*Client)(nil)
