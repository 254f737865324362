package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
)

// SummaryReaderSvc defines read operations for month summaries
type SummaryReaderSvc interface {
	// GetSummary retrieves the owner's summary for a month. A month without a
	// summary yields (nil, nil) so callers never branch on not-found.
	GetSummary(ctx context.Context, userID string, monthGroup string) (*domain.MonthSummary, error)
}

// SummaryWriterSvc defines write operations for month summaries
type SummaryWriterSvc interface {
	// SetInitialBalance upserts the starting balance of a month.
	SetInitialBalance(ctx context.Context, userID string, req dto.UpdateSummaryRequest) (*domain.MonthSummary, error)
}

// SummarySvcFacade combines all summary-related service interfaces
type SummarySvcFacade interface {
	SummaryReaderSvc
	SummaryWriterSvc
}
