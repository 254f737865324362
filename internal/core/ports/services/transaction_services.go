package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// ListCurrentMonthTransactions retrieves the owner's transactions for the current month in creation order.
	ListCurrentMonthTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)

	// ListTransactionsByMonth retrieves the owner's transactions for the given YYYY-MM month in creation order.
	ListTransactionsByMonth(ctx context.Context, userID string, monthGroup string) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations that keep month summaries in step.
type TransactionWriterSvc interface {
	// CreateTransaction validates and records a transaction, adding its effect to the month summary.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes the owner's transaction and reverses its effect on the month summary.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
