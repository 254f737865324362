package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// GetSummaryParams defines the query parameters for reading a month summary.
type GetSummaryParams struct {
	Month string `form:"month" binding:"omitempty,datetime=2006-01"`
}

// UpdateSummaryRequest sets the starting balance of a month.
type UpdateSummaryRequest struct {
	MonthGroup     string   `json:"monthGroup" binding:"required,datetime=2006-01" example:"2026-01"`
	InitialBalance *float64 `json:"initialBalance" binding:"required" example:"500"`
}

// SummaryResponse defines the data returned for a month summary.
type SummaryResponse struct {
	ID             string    `json:"_id"`
	UserID         string    `json:"userId"`
	MonthGroup     string    `json:"monthGroup"`
	InitialBalance float64   `json:"initialBalance"`
	TotalExpenses  float64   `json:"totalExpenses"`
	TotalCredits   float64   `json:"totalCredits"`
	CurrentBalance float64   `json:"currentBalance"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// EmptySummaryResponse is returned for a month that has no summary yet.
type EmptySummaryResponse struct {
	InitialBalance float64 `json:"initialBalance"`
}

// ToSummaryResponse converts a domain.MonthSummary to SummaryResponse DTO.
func ToSummaryResponse(s *domain.MonthSummary) SummaryResponse {
	return SummaryResponse{
		ID:             s.SummaryID,
		UserID:         s.UserID,
		MonthGroup:     s.MonthGroup,
		InitialBalance: s.InitialBalance.InexactFloat64(),
		TotalExpenses:  s.TotalExpenses.InexactFloat64(),
		TotalCredits:   s.TotalCredits.InexactFloat64(),
		CurrentBalance: s.CurrentBalance.InexactFloat64(),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// ToSummaryResponses converts a slice of domain.MonthSummary to []SummaryResponse.
func ToSummaryResponses(summaries []domain.MonthSummary) []SummaryResponse {
	responses := make([]SummaryResponse, len(summaries))
	for i, s := range summaries {
		responses[i] = ToSummaryResponse(&s)
	}
	return responses
}
