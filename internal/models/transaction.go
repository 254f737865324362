package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row shape of the transactions table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"` // NUMERIC, always positive
	Type          string          `db:"type"`   // expense or credit
	TxnDate       time.Time       `db:"txn_date"`
	MonthGroup    string          `db:"month_group"`
	AuditFields
}
