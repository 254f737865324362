package models

import "github.com/shopspring/decimal"

// MonthSummary is the row shape of the month_summaries table.
// (user_id, month_group) is unique.
type MonthSummary struct {
	SummaryID      string          `db:"summary_id"`
	UserID         string          `db:"user_id"`
	MonthGroup     string          `db:"month_group"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	TotalExpenses  decimal.Decimal `db:"total_expenses"`
	TotalCredits   decimal.Decimal `db:"total_credits"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	AuditFields
}
