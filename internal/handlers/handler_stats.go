package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_shift_app/internal/core/ports/services"
	"github.com/SscSPs/pos_shift_app/internal/dto"
	"github.com/SscSPs/pos_shift_app/internal/middleware"
	"github.com/SscSPs/pos_shift_app/internal/utils"
	"github.com/gin-gonic/gin"
)

type statsHandler struct {
	statsService portssvc.StatsSvc
}

func newStatsHandler(ss portssvc.StatsSvc) *statsHandler {
	return &statsHandler{statsService: ss}
}

func registerStatsRoutes(rg *gin.RouterGroup, statsService portssvc.StatsSvc, bulkLimit gin.HandlerFunc) {
	h := newStatsHandler(statsService)

	rg.GET("/stats/daily", h.listDailyStats)

	admin := rg.Group("/admin/stats", middleware.RequireRole(utils.RoleAdmin), bulkLimit)
	{
		admin.POST("/rebuild", h.rebuildDailyStats)
	}
}

// rebuildDailyStats godoc
// @Summary Rebuild daily statistics
// @Description Streams transactions in timestamp order and rewrites one summary per business day
// @Tags stats
// @Accept  json
// @Produce  json
// @Param   rebuild body dto.RebuildStatsRequest false "Optional bounds"
// @Success 200 {object} dto.RunReportResponse
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 503 {object} map[string]interface{} "Stopped early, report included"
// @Security BearerAuth
// @Router /admin/stats/rebuild [post]
func (h *statsHandler) rebuildDailyStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RebuildStatsRequest
	// An empty body rebuilds the whole history.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for RebuildDailyStats", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	report, err := h.statsService.RebuildDailyStats(c.Request.Context(), req)
	respondRunReport(c, report, err, "Daily stats rebuild failed")
}

// listDailyStats godoc
// @Summary List daily statistics
// @Description Returns stored daily summaries for an inclusive date range
// @Tags stats
// @Produce  json
// @Param   from query string false "First day (YYYY-MM-DD)"
// @Param   to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} dto.ListDailyStatsResponse
// @Failure 400 {object} map[string]string "Invalid dates"
// @Security BearerAuth
// @Router /stats/daily [get]
func (h *statsHandler) listDailyStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListDailyStatsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListDailyStats", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	stats, err := h.statsService.ListDailyStats(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list daily stats")
		return
	}
	c.JSON(http.StatusOK, dto.ListDailyStatsResponse{Stats: stats})
}
