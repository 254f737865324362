package mapping

import (
	"fmt"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// The date must already be validated.
func ToModelTransaction(d domain.Transaction) (models.Transaction, error) {
	txnDate, err := time.Parse(domain.DateLayout, d.Date)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid transaction date %q: %w", d.Date, err)
	}
	return models.Transaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		Description:   d.Description,
		Amount:        d.Amount,
		Type:          string(d.Type),
		TxnDate:       txnDate,
		MonthGroup:    d.MonthGroup,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		Description:   m.Description,
		Amount:        m.Amount,
		Type:          domain.TransactionType(m.Type),
		Date:          m.TxnDate.Format(domain.DateLayout),
		MonthGroup:    m.MonthGroup,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
