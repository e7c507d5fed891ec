package model

import "time"

// Session is one submitted batch together with the results the service returned.
type Session struct {
	CreatedAt time.Time
	ID        string
	Endpoint  string
	Numbers   []string
	Results   []AnalysisResult
}

// SessionSummary describes a stored session without its results.
type SessionSummary struct {
	CreatedAt   time.Time
	ID          string
	Endpoint    string
	NumberCount int
	ResultCount int
	ValidCount  int
}
