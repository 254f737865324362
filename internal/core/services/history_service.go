package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
)

const defaultSweepLockTTL = 30 * time.Second

type historyService struct {
	BaseService
	summaryRepo     portsrepo.SummaryRepositoryFacade
	txnRepo         portsrepo.TransactionRepositoryFacade
	locker          ports.Locker
	retentionMonths int
	lockTTL         time.Duration
}

// HistoryServiceOption is a functional option for configuring the history service
type HistoryServiceOption func(*historyService)

// WithSweepLocker serializes sweeps for one owner across instances.
func WithSweepLocker(locker ports.Locker) HistoryServiceOption {
	return func(s *historyService) {
		s.locker = locker
	}
}

// WithRetentionMonths sets how many months before the current one are kept.
func WithRetentionMonths(months int) HistoryServiceOption {
	return func(s *historyService) {
		if months > 0 {
			s.retentionMonths = months
		}
	}
}

// WithHistoryClock overrides the clock the retention cutoff is computed from.
func WithHistoryClock(clock func() time.Time) HistoryServiceOption {
	return func(s *historyService) {
		s.clock = clock
	}
}

// NewHistoryService creates a new history service with the provided options
func NewHistoryService(summaryRepo portsrepo.SummaryRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, options ...HistoryServiceOption) portssvc.HistorySvcFacade {
	svc := &historyService{
		summaryRepo:     summaryRepo,
		txnRepo:         txnRepo,
		retentionMonths: domain.DefaultRetentionMonths,
		lockTTL:         defaultSweepLockTTL,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.HistorySvcFacade = (*historyService)(nil)

// SweepExpired removes summaries first, then transactions, for months before
// the cutoff. If another instance holds the owner's sweep lock the sweep is
// skipped; if the lock store fails the sweep runs unlocked.
func (s *historyService) SweepExpired(ctx context.Context, userID string) (portssvc.SweepResult, error) {
	result := portssvc.SweepResult{Cutoff: domain.RetentionCutoff(s.Now(), s.retentionMonths)}
	if userID == "" {
		return result, apperrors.ErrUnauthorized
	}

	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, "retention:"+userID, s.lockTTL)
		switch {
		case errors.Is(err, ports.ErrLockNotObtained):
			s.LogDebug(ctx, "Retention sweep already running elsewhere; skipping",
				slog.String("user_id", userID))
			result.Skipped = true
			return result, nil
		case err != nil:
			s.LogWarn(ctx, "Could not obtain retention lock; proceeding without lock",
				slog.String("user_id", userID),
				slog.String("error", err.Error()))
		default:
			defer func() {
				if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
					s.LogWarn(ctx, "Failed to release retention lock",
						slog.String("user_id", userID),
						slog.String("error", err.Error()))
				}
			}()
		}
	}

	summaries, err := s.summaryRepo.DeleteSummariesBefore(ctx, userID, result.Cutoff)
	if err != nil {
		s.LogError(ctx, err, "Failed to purge expired summaries",
			slog.String("user_id", userID),
			slog.String("cutoff", result.Cutoff))
		return result, err
	}
	result.SummariesDeleted = summaries

	txns, err := s.txnRepo.DeleteTransactionsBefore(ctx, userID, result.Cutoff)
	if err != nil {
		s.LogError(ctx, err, "Failed to purge expired transactions",
			slog.String("user_id", userID),
			slog.String("cutoff", result.Cutoff))
		return result, err
	}
	result.TransactionsDeleted = txns

	if summaries > 0 || txns > 0 {
		s.LogInfo(ctx, "Retention sweep removed expired data",
			slog.String("cutoff", result.Cutoff),
			slog.Int64("summaries_deleted", summaries),
			slog.Int64("transactions_deleted", txns))
	}
	return result, nil
}

func (s *historyService) ListHistory(ctx context.Context, userID string) ([]domain.MonthSummary, error) {
	if _, err := s.SweepExpired(ctx, userID); err != nil {
		return nil, err
	}

	summaries, err := s.summaryRepo.ListSummaries(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list month summaries", slog.String("user_id", userID))
		return nil, err
	}
	if summaries == nil {
		return []domain.MonthSummary{}, nil
	}
	return summaries, nil
}
