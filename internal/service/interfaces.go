// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/simsieve/internal/model"
)

// Analyzer submits numbers to the analysis service.
type Analyzer interface {
	AnalyzeBulk(ctx context.Context, numbers []string) ([]model.AnalysisResult, error)
	Health(ctx context.Context) bool
}

// SessionStore is the contract for our persistence layer.
type SessionStore interface {
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id string) (*model.Session, error)
	ListSessions(ctx context.Context, limit int) ([]model.SessionSummary, error)
	DeleteSession(ctx context.Context, id string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ResultWriter publishes results to an external spreadsheet and returns
// where they landed.
type ResultWriter interface {
	Write(ctx context.Context, results []model.AnalysisResult) (string, error)
}
