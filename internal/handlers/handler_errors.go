package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pos_shift_app/internal/apperrors"
	"github.com/SscSPs/pos_shift_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondServiceError writes err with the status its kind maps to. Server-side failures
// get the generic message, caller errors get the service's own message.
func respondServiceError(c *gin.Context, err error, generic string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error(generic, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": generic})
		return
	}
	logger.Warn(generic, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}

// requireActor returns the authenticated actor or writes a 401.
func requireActor(c *gin.Context) (string, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return actor, ok
}
