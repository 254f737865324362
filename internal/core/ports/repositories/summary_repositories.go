package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryReader defines owner scoped read operations for month summaries.
type SummaryReader interface {
	// FindSummary retrieves the owner's summary for a month, or apperrors.ErrNotFound.
	FindSummary(ctx context.Context, userID, monthGroup string) (*domain.MonthSummary, error)

	// ListSummaries retrieves all of the owner's summaries, newest month first.
	ListSummaries(ctx context.Context, userID string) ([]domain.MonthSummary, error)
}

// SummaryWriter defines write operations for month summaries.
type SummaryWriter interface {
	// UpsertInitialBalance sets initialBalance on the owner's summary, creating
	// it at zero if absent. Running totals are untouched; currentBalance is
	// re-derived only when recompute is true.
	UpsertInitialBalance(ctx context.Context, userID, monthGroup string, initialBalance decimal.Decimal, recompute bool, now time.Time) (*domain.MonthSummary, error)
}

// SummaryPurger removes expired summaries.
type SummaryPurger interface {
	// DeleteSummariesBefore deletes the owner's summaries whose month group
	// sorts before cutoff and returns how many were removed.
	DeleteSummariesBefore(ctx context.Context, userID, cutoff string) (int64, error)
}

// SummaryRepositoryFacade combines all summary repository interfaces.
type SummaryRepositoryFacade interface {
	SummaryReader
	SummaryWriter
	SummaryPurger
}
