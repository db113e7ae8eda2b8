package providers

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const MockClientName = "mock"

// MockClient is an LLMClient for testing.
// Responses are served in order; the last one repeats once the queue drains.
type MockClient struct {
	Latency    time.Duration
	ShouldFail bool
	FailAfter  int // Fail after N requests (0 = never)
	Err        error
	Responses  []string

	mu       sync.Mutex
	requests []*ChatRequest
}

// NewMockClient creates a new mock client answering with the given responses.
func NewMockClient(responses ...string) *MockClient {
	if len(responses) == 0 {
		responses = []string{"mock response"}
	}
	return &MockClient{Responses: responses}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// Chat records the request and returns the next canned response.
func (c *MockClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	start := time.Now()

	c.mu.Lock()
	c.requests = append(c.requests, req)
	count := len(c.requests)
	c.mu.Unlock()

	result := &ChatResult{
		RequestID: fmt.Sprintf("mock-%d", count),
		Provider:  MockClientName,
		ModelUsed: req.Model,
	}

	fail := func(err error) (*ChatResult, error) {
		result.Success = false
		result.ErrorType = "mock_failure"
		result.ErrorMessage = err.Error()
		result.TotalTime = time.Since(start)
		return result, err
	}

	if c.ShouldFail {
		err := c.Err
		if err == nil {
			err = fmt.Errorf("mock client configured to fail")
		}
		return fail(err)
	}
	if c.FailAfter > 0 && count > c.FailAfter {
		return fail(fmt.Errorf("mock client failed after %d requests", c.FailAfter))
	}

	if c.Latency > 0 {
		select {
		case <-time.After(c.Latency):
		case <-ctx.Done():
			return fail(ctx.Err())
		}
	}

	if len(c.Responses) == 0 {
		return fail(ErrEmptyResponse)
	}
	idx := count - 1
	if idx >= len(c.Responses) {
		idx = len(c.Responses) - 1
	}

	result.Success = true
	result.Content = c.Responses[idx]
	result.ExecutionTime = time.Since(start)
	result.TotalTime = result.ExecutionTime

	promptTokens := 0
	for _, m := range req.Messages {
		promptTokens += len(m.Content) / 4 // Rough estimate
	}
	result.PromptTokens = promptTokens
	result.CompletionTokens = len(result.Content) / 4
	result.TotalTokens = result.PromptTokens + result.CompletionTokens

	return result, nil
}

// Requests returns the requests received so far.
func (c *MockClient) Requests() []*ChatRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*ChatRequest, len(c.requests))
	copy(out, c.requests)
	return out
}

// RequestCount returns the number of requests made.
func (c *MockClient) RequestCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

// Verify interface
var _ LLMClient = (*MockClient)(nil)
