package mapping

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/models"
)

// ToDomainMonthSummary converts a model MonthSummary to a domain MonthSummary
func ToDomainMonthSummary(m models.MonthSummary) domain.MonthSummary {
	return domain.MonthSummary{
		SummaryID:      m.SummaryID,
		UserID:         m.UserID,
		MonthGroup:     m.MonthGroup,
		InitialBalance: m.InitialBalance,
		TotalExpenses:  m.TotalExpenses,
		TotalCredits:   m.TotalCredits,
		CurrentBalance: m.CurrentBalance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMonthSummarySlice converts a slice of model MonthSummaries to a slice of domain MonthSummaries
func ToDomainMonthSummarySlice(ms []models.MonthSummary) []domain.MonthSummary {
	ds := make([]domain.MonthSummary, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMonthSummary(m)
	}
	return ds
}
