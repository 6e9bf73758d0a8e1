package controllers

import (
	"net/http"

	"barberledger-backend/logger"
	"barberledger-backend/services"
	"barberledger-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// operatorID reads the authenticated operator set by the auth middleware.
// It writes the error response itself and returns false on failure.
func operatorID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(utils.OperatorIDKey)
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Operator ID not found in context")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid operator ID format")
		return uuid.Nil, false
	}
	return id, true
}

func pathID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+resource+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps service errors onto HTTP statuses.
func respondServiceError(c *gin.Context, log *logger.Logger, fallback string, err error) {
	switch {
	case services.IsValidation(err):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case services.IsNotFound(err):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case services.IsConsistency(err):
		log.Error("ledger consistency failure", "path", c.Request.URL.Path, "error", err)
		utils.RespondWithError(c, http.StatusInternalServerError, fallback)
	default:
		log.Error(fallback, "path", c.Request.URL.Path, "error", err)
		utils.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}

func respondBindError(c *gin.Context, err error) {
	utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
}
