package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/shopspring/decimal"
)

type summaryService struct {
	BaseService
	summaryRepo portsrepo.SummaryRepositoryFacade
	// When set, currentBalance is re-derived on every initialBalance update.
	recomputeBalance bool
}

// SummaryServiceOption is a functional option for configuring the summary service
type SummaryServiceOption func(*summaryService)

// WithRecomputeBalance makes SetInitialBalance re-derive currentBalance.
func WithRecomputeBalance(recompute bool) SummaryServiceOption {
	return func(s *summaryService) {
		s.recomputeBalance = recompute
	}
}

// WithSummaryClock overrides the clock used for timestamps and the default month.
func WithSummaryClock(clock func() time.Time) SummaryServiceOption {
	return func(s *summaryService) {
		s.clock = clock
	}
}

// NewSummaryService creates a new summary service with the provided options
func NewSummaryService(repo portsrepo.SummaryRepositoryFacade, options ...SummaryServiceOption) portssvc.SummarySvcFacade {
	svc := &summaryService{
		summaryRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SummarySvcFacade = (*summaryService)(nil)

// GetSummary defaults an empty monthGroup to the current month.
func (s *summaryService) GetSummary(ctx context.Context, userID string, monthGroup string) (*domain.MonthSummary, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if monthGroup == "" {
		monthGroup = domain.MonthGroupOf(s.Now())
	}
	if err := domain.ValidateMonthGroup(monthGroup); err != nil {
		return nil, err
	}

	summary, err := s.summaryRepo.FindSummary(ctx, userID, monthGroup)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to find month summary",
			slog.String("user_id", userID),
			slog.String("month_group", monthGroup))
		return nil, err
	}
	return summary, nil
}

func (s *summaryService) SetInitialBalance(ctx context.Context, userID string, req dto.UpdateSummaryRequest) (*domain.MonthSummary, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if err := domain.ValidateMonthGroup(req.MonthGroup); err != nil {
		return nil, err
	}
	if req.InitialBalance == nil {
		return nil, apperrors.NewValidationError("initialBalance is required")
	}

	initialBalance := decimal.NewFromFloat(*req.InitialBalance)
	summary, err := s.summaryRepo.UpsertInitialBalance(ctx, userID, req.MonthGroup, initialBalance, s.recomputeBalance, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to set initial balance",
			slog.String("user_id", userID),
			slog.String("month_group", req.MonthGroup))
		return nil, err
	}

	s.LogInfo(ctx, "Initial balance set",
		slog.String("month_group", req.MonthGroup),
		slog.String("initial_balance", initialBalance.String()),
		slog.Bool("recomputed", s.recomputeBalance))
	return summary, nil
}
