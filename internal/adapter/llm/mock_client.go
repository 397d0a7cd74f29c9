package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MockClient is a deterministic CompletionClient for local runs. It echoes
// the last user message back inside the reply contract, reusing the
// correction label found in the system instruction.
type MockClient struct{}

// NewMockClient creates a new mock completion client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements CompletionClient interface.
var _ CompletionClient = (*MockClient)(nil)

// CreateChatCompletion returns a mock response.
func (m *MockClient) CreateChatCompletion(_ context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	content := m.generateMockReply(req)

	return &ChatCompletionResponse{
		ID:      fmt.Sprintf("mock-chatcmpl-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []Choice{
			{
				Index: 0,
				Message: &ChatMessage{
					Role:    "assistant",
					Content: content,
				},
				FinishReason: "stop",
			},
		},
		Usage: &Usage{},
	}, nil
}

// generateMockReply extracts the correction label from the system
// instruction (the quoted format line) and the last user message.
func (m *MockClient) generateMockReply(req *ChatCompletionRequest) string {
	label := "Correction:"
	lastUser := ""
	for _, msg := range req.Messages {
		switch msg.Role {
		case "system":
			if idx := strings.Index(msg.Content, "\"["); idx >= 0 {
				rest := msg.Content[idx+2:]
				if end := strings.Index(rest, " "); end > 0 {
					label = rest[:end]
				}
			}
		case "user":
			lastUser = msg.Content
		}
	}
	return fmt.Sprintf("[%s %s] Tell me more about that?", label, lastUser)
}
