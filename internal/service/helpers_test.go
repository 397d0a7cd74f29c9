package service

import (
	"context"
	"sync"
	"time"

	"github.com/iprilbot/ipril/config"
	"github.com/iprilbot/ipril/internal/adapter/llm"
	"github.com/iprilbot/ipril/internal/session"
)

// fakeDetector returns a fixed code or error and counts invocations.
type fakeDetector struct {
	code  string
	err   error
	calls int
}

func (d *fakeDetector) Detect(string) (string, error) {
	d.calls++
	return d.code, d.err
}

// scriptedLLM replays canned completions and records every request it
// receives. The last reply is repeated once the script runs out.
type scriptedLLM struct {
	replies []string
	err     error
	reqs    []*llm.ChatCompletionRequest
}

func (c *scriptedLLM) CreateChatCompletion(_ context.Context, req *llm.ChatCompletionRequest) (*llm.ChatCompletionResponse, error) {
	c.reqs = append(c.reqs, req)
	if c.err != nil {
		return nil, c.err
	}
	reply := c.replies[0]
	if len(c.replies) > 1 {
		c.replies = c.replies[1:]
	}
	return &llm.ChatCompletionResponse{
		Choices: []llm.Choice{
			{Message: &llm.ChatMessage{Role: "assistant", Content: reply}},
		},
	}, nil
}

// blockingLLM parks the completion call until released, for tests that
// assert one user's slow completion cannot stall another user.
type blockingLLM struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingLLM() *blockingLLM {
	return &blockingLLM{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (c *blockingLLM) CreateChatCompletion(context.Context, *llm.ChatCompletionRequest) (*llm.ChatCompletionResponse, error) {
	close(c.started)
	<-c.release
	return &llm.ChatCompletionResponse{
		Choices: []llm.Choice{
			{Message: &llm.ChatMessage{Role: "assistant", Content: "[Correction: parked] Anything else?"}},
		},
	}, nil
}

// recordingMessenger captures outbound traffic.
type recordingMessenger struct {
	mu      sync.Mutex
	replies []string
	typing  int
}

func (m *recordingMessenger) Reply(_ int64, text string) {
	m.mu.Lock()
	m.replies = append(m.replies, text)
	m.mu.Unlock()
}

func (m *recordingMessenger) SendTyping(int64) {
	m.mu.Lock()
	m.typing++
	m.mu.Unlock()
}

func (m *recordingMessenger) last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.replies) == 0 {
		return ""
	}
	return m.replies[len(m.replies)-1]
}

// memorySnapshot keeps the language mapping in memory.
type memorySnapshot struct {
	mu    sync.Mutex
	langs map[int64]string
	saves int
}

func (s *memorySnapshot) LoadAll() (map[int64]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.langs == nil {
		return map[int64]string{}, nil
	}
	return s.langs, nil
}

func (s *memorySnapshot) SaveAll(langs map[int64]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.langs = langs
	s.saves++
	return nil
}

// testEnv wires a Service over fakes. The archive is nil: archival is
// optional and exercised separately in the store package.
type testEnv struct {
	svc      *Service
	llm      *scriptedLLM
	det      *fakeDetector
	out      *recordingMessenger
	snap     *memorySnapshot
	sessions *session.Store
}

func newTestEnv() *testEnv {
	env := &testEnv{
		llm:      &scriptedLLM{replies: []string{"[Correction: placeholder] And then?"}},
		det:      &fakeDetector{code: "en"},
		out:      &recordingMessenger{},
		snap:     &memorySnapshot{},
		sessions: session.NewStore(),
	}
	cfg := &config.Config{
		Model:       "deepseek-chat",
		LLMTimeout:  time.Second,
		Temperature: 0.7,
		MaxTokens:   300,
	}
	env.svc = New(env.sessions, env.llm, env.det, env.out, env.snap, nil, cfg)
	return env
}

// session returns user 1's session without creating side effects beyond
// what the handlers already did.
func (env *testEnv) session(userID int64) *session.Session {
	sess, _ := env.sessions.GetOrCreate(userID)
	return sess
}
