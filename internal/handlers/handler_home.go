package handlers

import (
	"net/http"

	"github.com/SscSPs/pos_shift_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// newHomeHandler godoc
// @Summary Show the status of server.
// @Description Service banner with the active rental policy and business timezone.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func newHomeHandler(cfg *config.Config) gin.HandlerFunc {
	info := gin.H{
		"message":          "POS shift reconciliation API v1",
		"rentalPolicy":     cfg.Reconciliation.RentalPolicy,
		"businessTimezone": cfg.BusinessTimezone,
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, info)
	}
}
