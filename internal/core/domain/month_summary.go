package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryDelta is an increment applied to the running totals of a month summary.
type SummaryDelta struct {
	Expenses decimal.Decimal
	Credits  decimal.Decimal
	Balance  decimal.Decimal
}

// Inverse returns the delta that undoes d.
func (d SummaryDelta) Inverse() SummaryDelta {
	return SummaryDelta{
		Expenses: d.Expenses.Neg(),
		Credits:  d.Credits.Neg(),
		Balance:  d.Balance.Neg(),
	}
}

// Add combines two deltas. Increments commute, so order does not matter.
func (d SummaryDelta) Add(o SummaryDelta) SummaryDelta {
	return SummaryDelta{
		Expenses: d.Expenses.Add(o.Expenses),
		Credits:  d.Credits.Add(o.Credits),
		Balance:  d.Balance.Add(o.Balance),
	}
}

// SumDeltas recomputes from scratch the delta a set of transactions contributes.
func SumDeltas(txns []Transaction) SummaryDelta {
	var total SummaryDelta
	for _, t := range txns {
		total = total.Add(t.Delta())
	}
	return total
}

// MonthSummary is the denormalized running aggregate of one owner's month.
type MonthSummary struct {
	SummaryID      string          `json:"_id"`
	UserID         string          `json:"userId"`
	MonthGroup     string          `json:"monthGroup"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	TotalCredits   decimal.Decimal `json:"totalCredits"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	AuditFields
}

// NewMonthSummary returns a summary with every numeric field at zero.
func NewMonthSummary(summaryID, userID, monthGroup string, now time.Time) MonthSummary {
	return MonthSummary{
		SummaryID:      summaryID,
		UserID:         userID,
		MonthGroup:     monthGroup,
		InitialBalance: decimal.Zero,
		TotalExpenses:  decimal.Zero,
		TotalCredits:   decimal.Zero,
		CurrentBalance: decimal.Zero,
		AuditFields:    AuditFields{CreatedAt: now, UpdatedAt: now},
	}
}

// Apply adds d to the running totals.
func (s *MonthSummary) Apply(d SummaryDelta, now time.Time) {
	s.TotalExpenses = s.TotalExpenses.Add(d.Expenses)
	s.TotalCredits = s.TotalCredits.Add(d.Credits)
	s.CurrentBalance = s.CurrentBalance.Add(d.Balance)
	s.UpdatedAt = now
}

// SetInitialBalance replaces the starting balance. The running totals are left
// alone; currentBalance is re-derived only when recompute is set.
func (s *MonthSummary) SetInitialBalance(initialBalance decimal.Decimal, recompute bool, now time.Time) {
	s.InitialBalance = initialBalance
	if recompute {
		s.CurrentBalance = s.DerivedBalance()
	}
	s.UpdatedAt = now
}

// DerivedBalance is initialBalance + totalCredits - totalExpenses.
func (s MonthSummary) DerivedBalance() decimal.Decimal {
	return s.InitialBalance.Add(s.TotalCredits).Sub(s.TotalExpenses)
}
