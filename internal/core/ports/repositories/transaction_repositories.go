package repositories

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// TransactionReader defines owner scoped read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by ID. A transaction owned by
	// someone else is reported as apperrors.ErrNotFound.
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByMonth retrieves the owner's transactions for a month,
	// oldest first by creation time.
	ListTransactionsByMonth(ctx context.Context, userID, monthGroup string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data. Both
// writers keep the owner's month summary in step with the transaction set.
type TransactionWriter interface {
	// SaveTransaction inserts the transaction and applies delta to the
	// (owner, month) summary, creating the summary at zero if absent.
	SaveTransaction(ctx context.Context, txn domain.Transaction, delta domain.SummaryDelta) error

	// DeleteTransaction removes the owner's transaction and applies the inverse
	// of its delta to the month summary. It returns the removed transaction,
	// or apperrors.ErrNotFound if no such transaction belongs to the owner.
	DeleteTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
}

// TransactionPurger removes expired transaction data.
type TransactionPurger interface {
	// DeleteTransactionsBefore deletes the owner's transactions whose month
	// group sorts before cutoff and returns how many were removed.
	DeleteTransactionsBefore(ctx context.Context, userID, cutoff string) (int64, error)
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionPurger
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with database transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
