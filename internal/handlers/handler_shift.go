package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_shift_app/internal/core/ports/services"
	"github.com/SscSPs/pos_shift_app/internal/dto"
	"github.com/SscSPs/pos_shift_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// shiftHandler handles HTTP requests related to shifts and the transactions recorded on them.
type shiftHandler struct {
	shiftService portssvc.ShiftSvcFacade
}

// newShiftHandler creates a new shiftHandler.
func newShiftHandler(ss portssvc.ShiftSvcFacade) *shiftHandler {
	return &shiftHandler{
		shiftService: ss,
	}
}

// registerShiftRoutes registers routes related to shifts.
func registerShiftRoutes(rg *gin.RouterGroup, shiftService portssvc.ShiftSvcFacade) {
	h := newShiftHandler(shiftService)

	shifts := rg.Group("/shifts")
	{
		shifts.POST("", h.startShift)
		shifts.GET("/:shiftID", h.getShift)
		shifts.POST("/:shiftID/close", h.closeShift)
		shifts.POST("/:shiftID/transactions", h.recordTransaction)
	}

	transactions := rg.Group("/transactions")
	{
		transactions.PATCH("/:transactionID", h.editTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// startShift godoc
// @Summary Start a shift
// @Description Opens a zero-total shift for the caller, or for staffEmail when given
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   shift body dto.StartShiftRequest true "Shift details"
// @Success 201 {object} dto.ShiftResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Staff member already has an open shift"
// @Security BearerAuth
// @Router /shifts [post]
func (h *shiftHandler) startShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StartShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for StartShift", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	shift, err := h.shiftService.StartShift(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to start shift")
		return
	}
	c.JSON(http.StatusCreated, dto.ToShiftResponse(shift))
}

// getShift godoc
// @Summary Get a shift
// @Description Retrieves a shift with its stored totals and reconciliation
// @Tags shifts
// @Produce  json
// @Param   shiftID path string true "Shift ID"
// @Success 200 {object} dto.ShiftResponse
// @Failure 404 {object} map[string]string "Shift not found"
// @Security BearerAuth
// @Router /shifts/{shiftID} [get]
func (h *shiftHandler) getShift(c *gin.Context) {
	shift, err := h.shiftService.GetShift(c.Request.Context(), c.Param("shiftID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve shift")
		return
	}
	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

// closeShift godoc
// @Summary Close a shift
// @Description Reconciles the shift's transactions against the entered PC rental total and closes it.
// @Description Repeating the call with the same figure returns the stored reconciliation.
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   shiftID path string true "Shift ID"
// @Param   close body dto.CloseShiftRequest true "Entered PC rental total"
// @Success 200 {object} dto.ShiftResponse
// @Failure 400 {object} map[string]string "Missing or invalid rental total"
// @Failure 404 {object} map[string]string "Shift not found"
// @Failure 409 {object} map[string]string "Shift closed concurrently"
// @Failure 503 {object} map[string]string "Storage unavailable, retry"
// @Security BearerAuth
// @Router /shifts/{shiftID}/close [post]
func (h *shiftHandler) closeShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shiftID := c.Param("shiftID")

	var req dto.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CloseShift", slog.String("shift_id", shiftID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "pcRentalTotal is required to close a shift"})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	shift, err := h.shiftService.CloseShift(c.Request.Context(), shiftID, req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to close shift")
		return
	}
	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

// recordTransaction godoc
// @Summary Record a transaction
// @Description Attaches a sale, expense or debt entry to an open shift
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   shiftID path string true "Shift ID"
// @Param   transaction body dto.RecordTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Shift is closed"
// @Security BearerAuth
// @Router /shifts/{shiftID}/transactions [post]
func (h *shiftHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	txn, err := h.shiftService.RecordTransaction(c.Request.Context(), c.Param("shiftID"), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to record transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// editTransaction godoc
// @Summary Edit a transaction
// @Description Changes amount, date or notes. The reason is stored in the audit trail.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   edit body dto.EditTransactionRequest true "Changes and reason"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is deleted"
// @Security BearerAuth
// @Router /transactions/{transactionID} [patch]
func (h *shiftHandler) editTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.EditTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EditTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	txn, err := h.shiftService.EditTransaction(c.Request.Context(), c.Param("transactionID"), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to edit transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Soft-delete a transaction
// @Description Flags the transaction deleted so it no longer counts toward totals. The reason is stored in the audit trail.
// @Tags transactions
// @Accept  json
// @Param   transactionID path string true "Transaction ID"
// @Param   delete body dto.DeleteTransactionRequest true "Reason"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Reason missing"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *shiftHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DeleteTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DeleteTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A reason is required"})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.shiftService.SoftDeleteTransaction(c.Request.Context(), c.Param("transactionID"), req.Reason, actor); err != nil {
		respondServiceError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}
