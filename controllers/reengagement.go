package controllers

import (
	"net/http"

	"barberledger-backend/logger"
	"barberledger-backend/services"

	"github.com/gin-gonic/gin"
)

type ReengagementController struct {
	Reengagement *services.ReengagementService
	Log          *logger.Logger
}

// GetTargets lists inactive clients with their rendered message and a
// WhatsApp link.
func (rc *ReengagementController) GetTargets(c *gin.Context) {
	ownerID, ok := operatorID(c)
	if !ok {
		return
	}
	targets, err := rc.Reengagement.Targets(c.Request.Context(), ownerID)
	if err != nil {
		respondServiceError(c, rc.Log, "Failed to build reengagement list", err)
		return
	}
	c.JSON(http.StatusOK, targets)
}
