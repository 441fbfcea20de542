package syncer

import (
	"time"

	"github.com/google/uuid"
)

// Category identifies one record category of the legacy source.
type Category string

const (
	CategoryTransfer Category = "transfer"
	CategoryPlugin   Category = "plugin"
	CategoryDownload Category = "download"
)

// CategoryResult accumulates the outcome of importing one category.
type CategoryResult struct {
	Category Category
	Written  int
	Skipped  int
	Failed   int
	Elapsed  time.Duration
	// Err is set when the category aborted early: truncate failure,
	// extraction failure, or a systemic store error. Per-record failures
	// only increment Failed.
	Err error
}

// RunSummary reports one import run for observability. It is the only
// result that crosses the coordinator boundary; per-record failures are
// visible here as counts and in the logs, never as errors.
type RunSummary struct {
	RunID      uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	Categories []*CategoryResult
}

func newRunSummary() *RunSummary {
	return &RunSummary{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
	}
}

// Totals sums the per-category counts.
func (s *RunSummary) Totals() (written, skipped, failed int) {
	for _, c := range s.Categories {
		written += c.Written
		skipped += c.Skipped
		failed += c.Failed
	}
	return written, skipped, failed
}

// Result returns the result for a category, or nil if it did not run.
func (s *RunSummary) Result(category Category) *CategoryResult {
	for _, c := range s.Categories {
		if c.Category == category {
			return c
		}
	}
	return nil
}
