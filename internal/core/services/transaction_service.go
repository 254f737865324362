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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionService records and removes transactions, keeping the month
// summary aggregate in step through the repository.
type transactionService struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionClock overrides the clock used for timestamps and the current month.
func WithTransactionClock(clock func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.clock = clock
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	newTxn := domain.NewTransaction{
		Description: req.Description,
		Amount:      decimal.NewFromFloat(req.Amount),
		Type:        domain.TransactionType(req.Type),
		Date:        req.Date,
	}
	monthGroup, err := newTxn.Validate()
	if err != nil {
		return nil, err
	}

	now := s.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Description:   newTxn.Description,
		Amount:        newTxn.Amount,
		Type:          newTxn.Type,
		Date:          newTxn.Date,
		MonthGroup:    monthGroup,
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, txn.Delta()); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("user_id", userID),
			slog.String("month_group", monthGroup))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("month_group", monthGroup),
		slog.String("type", string(txn.Type)))
	return &txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	if userID == "" {
		return apperrors.ErrUnauthorized
	}
	if transactionID == "" {
		return apperrors.NewValidationError("transaction id is required")
	}

	removed, err := s.txnRepo.DeleteTransaction(ctx, userID, transactionID)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrInconsistentSummary):
		// The transaction is gone; only the aggregate is off.
		s.LogError(ctx, err, "Transaction deleted but month summary was not adjusted",
			slog.String("transaction_id", transactionID),
			slog.String("user_id", userID))
	case errors.Is(err, apperrors.ErrNotFound):
		return err
	default:
		s.LogError(ctx, err, "Failed to delete transaction",
			slog.String("transaction_id", transactionID),
			slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.String("month_group", removed.MonthGroup))
	return nil
}

func (s *transactionService) ListCurrentMonthTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return s.ListTransactionsByMonth(ctx, userID, domain.MonthGroupOf(s.Now()))
}

func (s *transactionService) ListTransactionsByMonth(ctx context.Context, userID string, monthGroup string) ([]domain.Transaction, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if err := domain.ValidateMonthGroup(monthGroup); err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.ListTransactionsByMonth(ctx, userID, monthGroup)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions",
			slog.String("user_id", userID),
			slog.String("month_group", monthGroup))
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}
