package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// SweepResult reports what a retention sweep removed.
type SweepResult struct {
	Cutoff              string
	SummariesDeleted    int64
	TransactionsDeleted int64
	Skipped             bool
}

// RetentionSvc purges an owner's data that fell out of the retention window.
type RetentionSvc interface {
	// SweepExpired deletes the owner's summaries and transactions older than the cutoff month.
	SweepExpired(ctx context.Context, userID string) (SweepResult, error)
}

// HistorySvcFacade lists monthly history, sweeping expired data first.
type HistorySvcFacade interface {
	RetentionSvc

	// ListHistory runs a retention sweep for the owner and returns the
	// remaining summaries, newest month first.
	ListHistory(ctx context.Context, userID string) ([]domain.MonthSummary, error)
}
