package mock

import (
	"context"
	"sync"

	"github.com/poiesic/policyatlas/ai"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// CompleteFunc is called by Complete if set.
	// If nil, returns the canned Response string.
	CompleteFunc func(ctx context.Context, messages []ai.Message, temperature float64, maxTokens int) (string, error)

	// Response is returned by the default behavior.
	Response string

	mu        sync.Mutex
	callCount int
	lastCall  []ai.Message
}

// NewMockGenerator creates a mock generator with default behavior.
// Note: Returns concrete type to allow test assertions via call counts.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{Response: "mock response"}
}

// Complete records the call and returns either the injected behavior's
// result or the canned Response.
func (m *MockGenerator) Complete(ctx context.Context, messages []ai.Message, temperature float64, maxTokens int) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastCall = append([]ai.Message(nil), messages...)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, messages, temperature, maxTokens)
	}
	return m.Response, nil
}

// CallCount returns the number of times Complete was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastMessages returns the message list from the most recent Complete call.
func (m *MockGenerator) LastMessages() []ai.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastCall
}

// Reset clears recorded calls and custom functions.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	m.callCount = 0
	m.lastCall = nil
	m.mu.Unlock()
	m.CompleteFunc = nil
}
