package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type summaryHandler struct {
	summaryService portssvc.SummarySvcFacade
}

func newSummaryHandler(ss portssvc.SummarySvcFacade) *summaryHandler {
	return &summaryHandler{
		summaryService: ss,
	}
}

// RegisterSummaryRoutes registers routes related to month summaries.
func RegisterSummaryRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvcFacade) {
	h := newSummaryHandler(summaryService)

	summary := rg.Group("/summary")
	{
		summary.GET("", h.getSummary)
		summary.PATCH("", h.updateSummary)
	}
}

// getSummary godoc
// @Summary Get a month summary
// @Description Returns the caller's summary for a month. A month without activity yields {"initialBalance":0}.
// @Tags summary
// @Produce  json
// @Param   month query string false "Month as YYYY-MM; defaults to the current month"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} map[string]string "Invalid month"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to fetch summary"
// @Security BearerAuth
// @Router /summary [get]
func (h *summaryHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, middleware.UnauthorizedBody)
		return
	}

	var params dto.GetSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for GetSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month: expected YYYY-MM"})
		return
	}

	summary, err := h.summaryService.GetSummary(c.Request.Context(), userID, params.Month)
	if err != nil {
		respondError(c, logger, err, "Failed to fetch summary")
		return
	}
	if summary == nil {
		c.JSON(http.StatusOK, dto.EmptySummaryResponse{InitialBalance: 0})
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// updateSummary godoc
// @Summary Set the initial balance of a month
// @Description Creates the month summary if needed and sets its initialBalance
// @Tags summary
// @Accept  json
// @Produce  json
// @Param   summary body dto.UpdateSummaryRequest true "Month and initial balance"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to update summary"
// @Security BearerAuth
// @Router /summary [patch]
func (h *summaryHandler) updateSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, middleware.UnauthorizedBody)
		return
	}

	var req dto.UpdateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	summary, err := h.summaryService.SetInitialBalance(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}
