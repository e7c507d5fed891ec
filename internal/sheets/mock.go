package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/simsieve/internal/model"
)

// MockWriter is a mock implementation of the result writer for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, results []model.AnalysisResult) (string, error)
	WriteCalls     []WriteCall
	LastResults    []model.AnalysisResult
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error   error
	Results []model.AnalysisResult
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write records the call and returns WriteFunc's result, or a fixed URL.
func (m *MockWriter) Write(ctx context.Context, results []model.AnalysisResult) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastResults = results

	url := "https://docs.google.com/spreadsheets/d/mock"
	var err error
	if m.WriteFunc != nil {
		url, err = m.WriteFunc(ctx, results)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Results: results,
		Error:   err,
	})

	return url, err
}

// Reset clears all recorded calls.
func (m *MockWriter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount = 0
	m.WriteCalls = make([]WriteCall, 0)
	m.LastResults = nil
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// AssertWriteCalled verifies that Write was called the expected number of times.
func (m *MockWriter) AssertWriteCalled(t interface{ Fatalf(string, ...any) }, expectedCalls int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteCallCount != expectedCalls {
		t.Fatalf("expected Write to be called %d times, but was called %d times", expectedCalls, m.WriteCallCount)
	}
}

// SetWriteError configures the mock to return an error on every Write call.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(_ context.Context, _ []model.AnalysisResult) (string, error) {
		return "", err
	}
}
