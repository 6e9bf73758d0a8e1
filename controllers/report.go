// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"barberledger-backend/logger"
	"barberledger-backend/services"
	"barberledger-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController handles all reporting functions
type ReportController struct {
	Reports  *services.ReportService
	Location *time.Location
	Log      *logger.Logger
	Now      func() time.Time
}

func (rc *ReportController) now() time.Time {
	if rc.Now != nil {
		return rc.Now().In(rc.Location)
	}
	return time.Now().In(rc.Location)
}

// GetDailyReport serves ?date=YYYY-MM-DD, defaulting to today.
func (rc *ReportController) GetDailyReport(c *gin.Context) {
	ownerID, ok := operatorID(c)
	if !ok {
		return
	}

	day := rc.now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := utils.ParseDay(raw, rc.Location)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	report, err := rc.Reports.Daily(c.Request.Context(), ownerID, day)
	if err != nil {
		respondServiceError(c, rc.Log, "Failed to generate daily report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetMonthlyReport serves ?month=YYYY-MM, defaulting to the current month.
func (rc *ReportController) GetMonthlyReport(c *gin.Context) {
	ownerID, ok := operatorID(c)
	if !ok {
		return
	}

	ym := utils.YearMonthOf(rc.now())
	if raw := c.Query("month"); raw != "" {
		parsed, err := utils.ParseYearMonth(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid month, expected YYYY-MM")
			return
		}
		ym = parsed
	}

	report, err := rc.Reports.Monthly(c.Request.Context(), ownerID, ym)
	if err != nil {
		respondServiceError(c, rc.Log, "Failed to generate monthly report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}
