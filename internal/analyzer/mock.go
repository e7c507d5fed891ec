package analyzer

import (
	"context"
	"slices"
	"sync"

	"github.com/Veraticus/simsieve/internal/common"
	"github.com/Veraticus/simsieve/internal/model"
)

// MockAnalyzer is an in-memory analyzer for tests.
type MockAnalyzer struct {
	analyzeErr error
	results    map[string]model.AnalysisResult
	calls      [][]string
	mu         sync.Mutex
	healthy    bool
}

// NewMockAnalyzer creates a healthy mock that echoes numbers back as results.
func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{
		results: make(map[string]model.AnalysisResult),
		healthy: true,
	}
}

// SetResult registers the canned result returned for a number.
func (m *MockAnalyzer) SetResult(result model.AnalysisResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[result.SimNumber] = result
}

// SetError makes subsequent AnalyzeBulk calls fail with err.
func (m *MockAnalyzer) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyzeErr = err
}

// SetHealthy sets the value returned by Health.
func (m *MockAnalyzer) SetHealthy(healthy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthy = healthy
}

// Calls returns the batches passed to AnalyzeBulk.
func (m *MockAnalyzer) Calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// AnalyzeBulk implements service.Analyzer. Numbers without a canned result
// come back with empty texts.
func (m *MockAnalyzer) AnalyzeBulk(_ context.Context, numbers []string) ([]model.AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(numbers) == 0 {
		return nil, common.ErrEmptyBatch
	}

	m.calls = append(m.calls, slices.Clone(numbers))

	if m.analyzeErr != nil {
		return nil, m.analyzeErr
	}

	results := make([]model.AnalysisResult, 0, len(numbers))
	for _, n := range numbers {
		if r, ok := m.results[n]; ok {
			results = append(results, r)
			continue
		}
		results = append(results, model.AnalysisResult{SimNumber: n})
	}
	return results, nil
}

// Health implements service.Analyzer.
func (m *MockAnalyzer) Health(_ context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthy
}
