package domain

import (
	"strings"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType indicates whether money left or entered the owner's pocket.
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeCredit  TransactionType = "credit"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeCredit
}

// Transaction is a single income or expense entry. It is never mutated after
// creation; it is either kept or deleted.
type Transaction struct {
	TransactionID string          `json:"_id"`
	UserID        string          `json:"userId"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"type"`
	Date          string          `json:"date"`
	MonthGroup    string          `json:"monthGroup"`
	AuditFields
}

// NewTransaction is the caller supplied part of a transaction.
type NewTransaction struct {
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Date        string
}

// Validate checks the caller supplied fields and returns the derived month
// group. Errors wrap apperrors.ErrValidation.
func (n NewTransaction) Validate() (string, error) {
	if strings.TrimSpace(n.Description) == "" {
		return "", apperrors.NewValidationError("description is required")
	}
	if !n.Amount.IsPositive() {
		return "", apperrors.NewValidationError("amount must be positive, got %s", n.Amount.String())
	}
	if !n.Type.IsValid() {
		return "", apperrors.NewValidationError("type must be one of expense, credit; got %q", string(n.Type))
	}
	return MonthGroupFromDate(n.Date)
}

// Validate checks a fully built transaction, including the month group invariant.
func (t Transaction) Validate() error {
	if t.UserID == "" {
		return apperrors.NewValidationError("owner is required")
	}
	monthGroup, err := NewTransaction{
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		Date:        t.Date,
	}.Validate()
	if err != nil {
		return err
	}
	if t.MonthGroup != monthGroup {
		return apperrors.NewValidationError("monthGroup %q does not match date %q", t.MonthGroup, t.Date)
	}
	return nil
}

// Delta is the effect this transaction has on its month summary.
func (t Transaction) Delta() SummaryDelta {
	if t.Type == TransactionTypeExpense {
		return SummaryDelta{Expenses: t.Amount, Balance: t.Amount.Neg()}
	}
	return SummaryDelta{Credits: t.Amount, Balance: t.Amount}
}
