package engine

import (
	"context"
	"time"
)

// PassSummary reports what one trigger pass did. Skipped counts schedules
// whose occurrence another pass claimed first.
type PassSummary struct {
	TriggeredCount int `json:"triggered_count"`
	PublishedCount int `json:"published_count"`
	FailedCount    int `json:"failed_count"`
	SkippedCount   int `json:"skipped_count"`
}

type IEngineUsecase interface {
	// RunPass evaluates every active schedule against 'now' and processes
	// the due ones. Failures are isolated per schedule.
	RunPass(ctx context.Context, now time.Time) (PassSummary, error)
}
