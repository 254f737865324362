package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	Description string  `json:"description" binding:"required,notblank" example:"Coffee"`
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"5"`
	Type        string  `json:"type" binding:"required,oneof=expense credit" example:"expense"`
	Date        string  `json:"date" binding:"required,datetime=2006-01-02" example:"2026-01-10"`
}

// ListTransactionsParams defines the query parameters for listing transactions.
type ListTransactionsParams struct {
	Month string `form:"month" binding:"omitempty,datetime=2006-01"`
}

// DeleteTransactionParams defines the query parameters for deleting a transaction.
type DeleteTransactionParams struct {
	ID string `form:"id" binding:"required"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Date        string    `json:"date"`
	MonthGroup  string    `json:"monthGroup"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MessageResponse is returned by operations that have nothing else to report.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          txn.TransactionID,
		UserID:      txn.UserID,
		Description: txn.Description,
		Amount:      txn.Amount.InexactFloat64(),
		Type:        string(txn.Type),
		Date:        txn.Date,
		MonthGroup:  txn.MonthGroup,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
