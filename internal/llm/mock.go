package llm

import (
	"context"
	"fmt"
	"sync"
)

// Mock is a scripted client for tests. Responses are returned in order;
// running past the script fails loudly so a test that makes an unexpected
// extra call is caught rather than silently reusing a canned answer.
type Mock struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     []Request
}

// NewMock seeds a mock with ordered responses.
func NewMock(responses ...string) *Mock {
	return &Mock{responses: responses}
}

// FailWith makes every subsequent call return err.
func (m *Mock) FailWith(err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// Complete implements Client.
func (m *Mock) Complete(_ context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", fmt.Errorf("llm: mock exhausted after %d calls", len(m.calls))
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	return next, nil
}

// Calls returns a copy of every request seen so far.
func (m *Mock) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request{}, m.calls...)
}

// CallCount reports how many times Complete ran.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
