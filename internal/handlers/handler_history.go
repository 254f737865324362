package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type historyHandler struct {
	historyService portssvc.HistorySvcFacade
}

// RegisterHistoryRoutes registers the monthly history route.
func RegisterHistoryRoutes(rg *gin.RouterGroup, historyService portssvc.HistorySvcFacade) {
	h := &historyHandler{historyService: historyService}
	rg.GET("/history", h.listHistory)
}

// listHistory godoc
// @Summary List monthly history
// @Description Purges data older than the retention window, then lists the caller's month summaries, newest first
// @Tags history
// @Produce  json
// @Success 200 {array} dto.SummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to fetch history"
// @Security BearerAuth
// @Router /history [get]
func (h *historyHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, middleware.UnauthorizedBody)
		return
	}

	summaries, err := h.historyService.ListHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to fetch history")
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponses(summaries))
}
