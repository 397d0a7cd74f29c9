package llm

import (
	"log"
	"os"
	"time"
)

const (
	// EnvIprilMode is the environment variable name for mode selection.
	EnvIprilMode = "IPRIL_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewCompletionClient creates a completion client based on the IPRIL_MODE
// environment variable. If IPRIL_MODE=MOCK, returns a MockClient;
// otherwise returns a real Client.
func NewCompletionClient(baseURL, apiKey string, timeout time.Duration) CompletionClient {
	if os.Getenv(EnvIprilMode) == ModeMock {
		log.Println("IPRIL_MODE=MOCK detected, using mock completion client")
		return NewMockClient()
	}

	return NewClient(baseURL, apiKey, timeout)
}
