package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pos_shift_app/internal/apperrors"
	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_shift_app/internal/core/ports/services"
	"github.com/SscSPs/pos_shift_app/internal/dto"
	"github.com/SscSPs/pos_shift_app/internal/middleware"
	"github.com/SscSPs/pos_shift_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles the backfill and audit endpoints.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvc
}

func newReconciliationHandler(rs portssvc.ReconciliationSvc) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

// registerReconciliationRoutes registers the audit route for all staff and the backfill route behind
// the admin role and the bulk rate limit.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvc, bulkLimit gin.HandlerFunc) {
	h := newReconciliationHandler(reconciliationService)

	rg.GET("/shifts/:shiftID/audit", h.auditShift)

	admin := rg.Group("/admin/reconciliation", middleware.RequireRole(utils.RoleAdmin), bulkLimit)
	{
		admin.POST("/backfill", h.backfill)
	}
}

// respondRunReport writes a bulk run outcome. A run that stopped early still returns its report.
func respondRunReport(c *gin.Context, report *domain.RunReport, err error, generic string) {
	if err == nil {
		c.JSON(http.StatusOK, dto.ToRunReportResponse(report))
		return
	}
	if report == nil {
		respondServiceError(c, err, generic)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Error(generic,
		slog.String("error", err.Error()),
		slog.String("status", report.Status()))
	c.JSON(apperrors.StatusCode(err), gin.H{"error": report.Status(), "report": dto.ToRunReportResponse(report)})
}

// backfill godoc
// @Summary Backfill shift totals
// @Description Recomputes closed shifts that started in [from, to) and overwrites only those whose stored totals differ.
// @Description A run cut short by an exhausted retry budget returns its partial report.
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   backfill body dto.BackfillRequest true "Window and dry-run flag"
// @Success 200 {object} dto.RunReportResponse
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 503 {object} map[string]interface{} "Stopped early, report included"
// @Security BearerAuth
// @Router /admin/reconciliation/backfill [post]
func (h *reconciliationHandler) backfill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BackfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Backfill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	report, err := h.reconciliationService.Backfill(c.Request.Context(), req, actor)
	respondRunReport(c, report, err, "Backfill failed")
}

// auditShift godoc
// @Summary Audit a shift's classification
// @Description Classifies every transaction of the shift under two rule sets and reports disagreements. Never writes.
// @Tags reconciliation
// @Produce  json
// @Param   shiftID path string true "Shift ID"
// @Param   primary query string false "Primary rule set (standard, catalog, text)"
// @Param   alternate query string false "Alternate rule set (standard, catalog, text)"
// @Success 200 {object} domain.AuditReport
// @Failure 400 {object} map[string]string "Unknown rule set"
// @Failure 404 {object} map[string]string "Shift not found"
// @Security BearerAuth
// @Router /shifts/{shiftID}/audit [get]
func (h *reconciliationHandler) auditShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.AuditShiftParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for AuditShift", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reconciliationService.AuditShift(c.Request.Context(), c.Param("shiftID"), params)
	if err != nil {
		respondServiceError(c, err, "Failed to audit shift")
		return
	}
	c.JSON(http.StatusOK, report)
}
