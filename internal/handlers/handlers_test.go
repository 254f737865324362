package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/handlers"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) ListCurrentMonthTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactionsByMonth(ctx context.Context, userID string, monthGroup string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, monthGroup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock SummaryService ---
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) GetSummary(ctx context.Context, userID string, monthGroup string) (*domain.MonthSummary, error) {
	args := m.Called(ctx, userID, monthGroup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthSummary), args.Error(1)
}

func (m *MockSummaryService) SetInitialBalance(ctx context.Context, userID string, req dto.UpdateSummaryRequest) (*domain.MonthSummary, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthSummary), args.Error(1)
}

var _ portssvc.SummarySvcFacade = (*MockSummaryService)(nil)

// --- Mock HistoryService ---
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) SweepExpired(ctx context.Context, userID string) (portssvc.SweepResult, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(portssvc.SweepResult), args.Error(1)
}

func (m *MockHistoryService) ListHistory(ctx context.Context, userID string) ([]domain.MonthSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthSummary), args.Error(1)
}

var _ portssvc.HistorySvcFacade = (*MockHistoryService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockTxnService     *MockTransactionService
	mockSummaryService *MockSummaryService
	mockHistoryService *MockHistoryService
	jwtSecret          string
	userID             string
}

func (suite *HandlerTestSuite) generateTestToken(userID string, expiresIn time.Duration) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "expense-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterValidators()

	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = "user_2abc"
	suite.mockTxnService = new(MockTransactionService)
	suite.mockSummaryService = new(MockSummaryService)
	suite.mockHistoryService = new(MockHistoryService)

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))

	api := suite.router.Group("/api", middleware.AuthMiddleware(suite.jwtSecret, ""))
	handlers.RegisterTransactionRoutes(api, suite.mockTxnService)
	handlers.RegisterSummaryRoutes(api, suite.mockSummaryService)
	handlers.RegisterHistoryRoutes(api, suite.mockHistoryService)
}

func (suite *HandlerTestSuite) do(method, url, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID, time.Hour))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func sampleTransaction(userID string) *domain.Transaction {
	now := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	return &domain.Transaction{
		TransactionID: "7f1c1f7e-4c3b-4d7a-9d55-3b0a3f2d9a10",
		UserID:        userID,
		Description:   "Coffee",
		Amount:        decimal.NewFromInt(5),
		Type:          domain.TransactionTypeExpense,
		Date:          "2026-01-10",
		MonthGroup:    "2026-01",
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
}

// --- Auth ---

func (suite *HandlerTestSuite) TestMissingIdentityIsUnauthorized() {
	for _, path := range []string{"/api/transactions", "/api/summary", "/api/history"} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)

		suite.Equal(http.StatusUnauthorized, w.Code, path)
		suite.JSONEq(`{"error":"Unauthorized"}`, w.Body.String())
	}
	suite.mockTxnService.AssertNotCalled(suite.T(), "ListCurrentMonthTransactions", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestExpiredAndForgedTokensAreUnauthorized() {
	tokens := []string{
		suite.generateTestToken(suite.userID, -time.Hour),
		"not-a-jwt",
	}
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: suite.userID})
	forgedSigned, err := forged.SignedString([]byte("some-other-secret-of-enough-length"))
	suite.Require().NoError(err)
	tokens = append(tokens, forgedSigned)

	for _, token := range tokens {
		req, _ := http.NewRequest(http.MethodGet, "/api/history", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)

		suite.Equal(http.StatusUnauthorized, w.Code)
		suite.JSONEq(`{"error":"Unauthorized"}`, w.Body.String())
	}
}

// --- Transactions ---

func (suite *HandlerTestSuite) TestCreateTransaction_Success() {
	req := dto.CreateTransactionRequest{Description: "Coffee", Amount: 5, Type: "expense", Date: "2026-01-10"}
	suite.mockTxnService.On("CreateTransaction", mock.Anything, suite.userID, req).
		Return(sampleTransaction(suite.userID), nil).Once()

	w := suite.do(http.MethodPost, "/api/transactions", `{"description":"Coffee","amount":5,"type":"expense","date":"2026-01-10"}`)

	suite.Equal(http.StatusCreated, w.Code)
	body := suite.decode(w)
	suite.Equal("7f1c1f7e-4c3b-4d7a-9d55-3b0a3f2d9a10", body["_id"])
	suite.Equal(suite.userID, body["userId"])
	suite.Equal(5.0, body["amount"])
	suite.Equal("2026-01", body["monthGroup"])
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateTransaction_InvalidBodies() {
	bodies := []string{
		`{"description":"","amount":5,"type":"expense","date":"2026-01-10"}`,
		`{"description":"   ","amount":5,"type":"expense","date":"2026-01-10"}`,
		`{"description":"Coffee","amount":0,"type":"expense","date":"2026-01-10"}`,
		`{"description":"Coffee","amount":-5,"type":"expense","date":"2026-01-10"}`,
		`{"description":"Coffee","amount":"5","type":"expense","date":"2026-01-10"}`,
		`{"description":"Coffee","amount":5,"type":"refund","date":"2026-01-10"}`,
		`{"description":"Coffee","amount":5,"type":"expense","date":"10/01/2026"}`,
		`{"description":"Coffee","amount":5,"type":"expense"}`,
		`not json`,
	}
	for _, body := range bodies {
		w := suite.do(http.MethodPost, "/api/transactions", body)
		suite.Equal(http.StatusBadRequest, w.Code, body)
	}
	suite.mockTxnService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateTransaction_StoreFailureIsGeneric() {
	suite.mockTxnService.On("CreateTransaction", mock.Anything, suite.userID, mock.Anything).
		Return(nil, apperrors.NewAppError(500, "failed to insert transaction", fmt.Errorf("pq: connection refused"))).Once()

	w := suite.do(http.MethodPost, "/api/transactions", `{"description":"Coffee","amount":5,"type":"expense","date":"2026-01-10"}`)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection refused")
}

func (suite *HandlerTestSuite) TestListTransactions_CurrentMonth() {
	suite.mockTxnService.On("ListCurrentMonthTransactions", mock.Anything, suite.userID).
		Return([]domain.Transaction{*sampleTransaction(suite.userID)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/transactions", "")

	suite.Equal(http.StatusOK, w.Code)
	var list []dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Require().Len(list, 1)
	suite.Equal("Coffee", list[0].Description)
}

func (suite *HandlerTestSuite) TestListTransactions_EmptyIsArray() {
	suite.mockTxnService.On("ListCurrentMonthTransactions", mock.Anything, suite.userID).
		Return([]domain.Transaction{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/transactions", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *HandlerTestSuite) TestListTransactions_ByMonth() {
	suite.mockTxnService.On("ListTransactionsByMonth", mock.Anything, suite.userID, "2025-11").
		Return([]domain.Transaction{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/transactions?month=2025-11", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListTransactions_BadMonth() {
	w := suite.do(http.MethodGet, "/api/transactions?month=2025-13", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTransaction() {
	suite.mockTxnService.On("DeleteTransaction", mock.Anything, suite.userID, "t1").Return(nil).Once()
	suite.mockTxnService.On("DeleteTransaction", mock.Anything, suite.userID, "gone").Return(apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodDelete, "/api/transactions?id=t1", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"message":"Transaction deleted"}`, w.Body.String())

	w = suite.do(http.MethodDelete, "/api/transactions?id=gone", "")
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodDelete, "/api/transactions", "")
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockTxnService.AssertExpectations(suite.T())
}

// --- Summary ---

func (suite *HandlerTestSuite) TestGetSummary_NoneYet() {
	suite.mockSummaryService.On("GetSummary", mock.Anything, suite.userID, "2026-02").Return(nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/summary?month=2026-02", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"initialBalance":0}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestGetSummary_Found() {
	summary := &domain.MonthSummary{
		SummaryID:      "s1",
		UserID:         suite.userID,
		MonthGroup:     "2026-01",
		InitialBalance: decimal.Zero,
		TotalExpenses:  decimal.NewFromInt(5),
		TotalCredits:   decimal.NewFromInt(100),
		CurrentBalance: decimal.NewFromInt(95),
	}
	suite.mockSummaryService.On("GetSummary", mock.Anything, suite.userID, "").Return(summary, nil).Once()

	w := suite.do(http.MethodGet, "/api/summary", "")

	suite.Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal(95.0, body["currentBalance"])
	suite.Equal(5.0, body["totalExpenses"])
	suite.Equal(100.0, body["totalCredits"])
	suite.Equal(0.0, body["initialBalance"])
}

func (suite *HandlerTestSuite) TestGetSummary_BadMonth() {
	w := suite.do(http.MethodGet, "/api/summary?month=January", "")
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSummaryService.AssertNotCalled(suite.T(), "GetSummary", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestUpdateSummary() {
	suite.mockSummaryService.On("SetInitialBalance", mock.Anything, suite.userID,
		mock.MatchedBy(func(r dto.UpdateSummaryRequest) bool {
			return r.MonthGroup == "2026-01" && r.InitialBalance != nil && *r.InitialBalance == -250
		}),
	).Return(&domain.MonthSummary{MonthGroup: "2026-01", InitialBalance: decimal.NewFromInt(-250)}, nil).Once()

	w := suite.do(http.MethodPatch, "/api/summary", `{"monthGroup":"2026-01","initialBalance":-250}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(-250.0, suite.decode(w)["initialBalance"])
}

func (suite *HandlerTestSuite) TestUpdateSummary_InvalidBodies() {
	for _, body := range []string{
		`{"monthGroup":"2026-01"}`,
		`{"initialBalance":10}`,
		`{"monthGroup":"2026/01","initialBalance":10}`,
	} {
		w := suite.do(http.MethodPatch, "/api/summary", body)
		suite.Equal(http.StatusBadRequest, w.Code, body)
	}
	suite.mockSummaryService.AssertNotCalled(suite.T(), "SetInitialBalance", mock.Anything, mock.Anything, mock.Anything)
}

// --- History ---

func (suite *HandlerTestSuite) TestListHistory() {
	suite.mockHistoryService.On("ListHistory", mock.Anything, suite.userID).Return([]domain.MonthSummary{
		{MonthGroup: "2026-01"},
		{MonthGroup: "2025-12"},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/history", "")

	suite.Equal(http.StatusOK, w.Code)
	var list []dto.SummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Require().Len(list, 2)
	suite.Equal("2026-01", list[0].MonthGroup)
	suite.Equal("2025-12", list[1].MonthGroup)
}

func (suite *HandlerTestSuite) TestListHistory_Failure() {
	suite.mockHistoryService.On("ListHistory", mock.Anything, suite.userID).Return(nil, fmt.Errorf("boom")).Once()

	w := suite.do(http.MethodGet, "/api/history", "")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.JSONEq(`{"error":"Failed to fetch history"}`, w.Body.String())
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
