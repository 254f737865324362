package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SummaryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSummaryRepository
	now      time.Time
}

func (suite *SummaryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSummaryRepository)
	suite.now = time.Date(2026, time.March, 5, 8, 0, 0, 0, time.UTC)
}

func (suite *SummaryServiceTestSuite) TestGetSummary_DefaultsToCurrentMonth() {
	ctx := context.Background()
	svc := services.NewSummaryService(suite.mockRepo, services.WithSummaryClock(fixedClock(suite.now)))
	expected := &domain.MonthSummary{UserID: "alice", MonthGroup: "2026-03"}
	suite.mockRepo.On("FindSummary", ctx, "alice", "2026-03").Return(expected, nil).Once()

	summary, err := svc.GetSummary(ctx, "alice", "")

	suite.Require().NoError(err)
	suite.Equal(expected, summary)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestGetSummary_NotFoundIsNil() {
	ctx := context.Background()
	svc := services.NewSummaryService(suite.mockRepo)
	suite.mockRepo.On("FindSummary", ctx, "alice", "2025-12").Return(nil, apperrors.ErrNotFound).Once()

	summary, err := svc.GetSummary(ctx, "alice", "2025-12")

	suite.NoError(err)
	suite.Nil(summary)
}

func (suite *SummaryServiceTestSuite) TestGetSummary_RepoError() {
	ctx := context.Background()
	svc := services.NewSummaryService(suite.mockRepo)
	suite.mockRepo.On("FindSummary", ctx, "alice", "2025-12").Return(nil, assert.AnError).Once()

	_, err := svc.GetSummary(ctx, "alice", "2025-12")

	suite.ErrorIs(err, assert.AnError)
}

func (suite *SummaryServiceTestSuite) TestSetInitialBalance_PassesRecomputeFlag() {
	ctx := context.Background()
	for _, recompute := range []bool{false, true} {
		repo := new(MockSummaryRepository)
		svc := services.NewSummaryService(repo,
			services.WithSummaryClock(fixedClock(suite.now)),
			services.WithRecomputeBalance(recompute))
		initial := 500.0
		expected := &domain.MonthSummary{MonthGroup: "2026-01", InitialBalance: decimal.NewFromInt(500)}

		repo.On("UpsertInitialBalance", ctx, "alice", "2026-01",
			mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(500)) }),
			recompute, suite.now,
		).Return(expected, nil).Once()

		summary, err := svc.SetInitialBalance(ctx, "alice", dto.UpdateSummaryRequest{MonthGroup: "2026-01", InitialBalance: &initial})

		suite.Require().NoError(err)
		suite.Equal(expected, summary)
		repo.AssertExpectations(suite.T())
	}
}

func (suite *SummaryServiceTestSuite) TestSetInitialBalance_Validation() {
	svc := services.NewSummaryService(suite.mockRepo)
	initial := 1.0

	_, err := svc.SetInitialBalance(context.Background(), "alice", dto.UpdateSummaryRequest{MonthGroup: "01-2026", InitialBalance: &initial})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = svc.SetInitialBalance(context.Background(), "alice", dto.UpdateSummaryRequest{MonthGroup: "2026-01"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertInitialBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSummaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceTestSuite))
}
