package controllers

import (
	"net/http"

	"barberledger-backend/logger"
	"barberledger-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// UpdateSettingsInput is merged into the stored settings; omitted fields
// are kept.
type UpdateSettingsInput struct {
	ShopName             *string          `json:"shopName"`
	MonthlyFixedCost     *decimal.Decimal `json:"monthlyFixedCost"`
	InactivityDays       *int             `json:"inactivityDays"`
	ReengagementTemplate *string          `json:"reengagementTemplate"`
}

type SettingsController struct {
	Settings *services.SettingsService
	Log      *logger.Logger
}

func (sc *SettingsController) GetSettings(c *gin.Context) {
	ownerID, ok := operatorID(c)
	if !ok {
		return
	}
	settings, err := sc.Settings.Get(c.Request.Context(), ownerID)
	if err != nil {
		respondServiceError(c, sc.Log, "Failed to fetch settings", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	ownerID, ok := operatorID(c)
	if !ok {
		return
	}

	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	settings, err := sc.Settings.Upsert(c.Request.Context(), ownerID, services.SettingsUpdate{
		ShopName:             input.ShopName,
		MonthlyFixedCost:     input.MonthlyFixedCost,
		InactivityDays:       input.InactivityDays,
		ReengagementTemplate: input.ReengagementTemplate,
	})
	if err != nil {
		respondServiceError(c, sc.Log, "Failed to update settings", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
