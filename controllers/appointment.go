// controllers/appointment.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"barberledger-backend/logger"
	"barberledger-backend/services"
	"barberledger-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAppointmentInput defines the expected JSON structure for recording
// an appointment. ClientID links an existing client; otherwise ClientName
// creates one inline; with neither the appointment is a walk-in.
type CreateAppointmentInput struct {
	Date          time.Time        `json:"date" binding:"required"`
	Value         *decimal.Decimal `json:"value" binding:"required"`
	ServiceType   string           `json:"serviceType" binding:"required"`
	PaymentMethod string           `json:"paymentMethod" binding:"required"`
	ClientID      *uuid.UUID       `json:"clientId"`
	ClientName    string           `json:"clientName"`
	ClientPhone   *string          `json:"clientPhone"`
}

func (in CreateAppointmentInput) resolution() services.ClientResolution {
	switch {
	case in.ClientID != nil && *in.ClientID != uuid.Nil:
		return services.ExistingClient(*in.ClientID)
	case in.ClientName != "":
		return services.NewInlineClient(in.ClientName, in.ClientPhone)
	default:
		return services.WalkIn()
	}
}

type AppointmentController struct {
	Recorder *services.AppointmentRecorder
	Ledger   *services.LedgerStore
	Log      *logger.Logger
}

func (ac *AppointmentController) CreateAppointment(c *gin.Context) {
	ownerID, ok := operatorID(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	appointment, err := ac.Recorder.Record(c.Request.Context(), ownerID, services.AppointmentInput{
		OccurredAt:    input.Date,
		Value:         input.Value,
		ServiceType:   input.ServiceType,
		PaymentMethod: input.PaymentMethod,
	}, input.resolution())
	if err != nil {
		respondServiceError(c, ac.Log, "Failed to create appointment", err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments lists one day (?date=YYYY-MM-DD), one month
// (?month=YYYY-MM), or the most recent appointments (?limit=N, default 50).
// Day and month listings are newest first.
func (ac *AppointmentController) GetAppointments(c *gin.Context) {
	ownerID, ok := operatorID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	loc := ac.Ledger.Location()

	if date := c.Query("date"); date != "" {
		day, err := utils.ParseDay(date, loc)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		appointments, err := ac.Ledger.ListByDay(ctx, ownerID, day)
		if err != nil {
			respondServiceError(c, ac.Log, "Failed to retrieve appointments", err)
			return
		}
		c.JSON(http.StatusOK, appointments)
		return
	}

	if month := c.Query("month"); month != "" {
		ym, err := utils.ParseYearMonth(month)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid month, expected YYYY-MM")
			return
		}
		appointments, err := ac.Ledger.ListByMonth(ctx, ownerID, ym)
		if err != nil {
			respondServiceError(c, ac.Log, "Failed to retrieve appointments", err)
			return
		}
		for i, j := 0, len(appointments)-1; i < j; i, j = i+1, j-1 {
			appointments[i], appointments[j] = appointments[j], appointments[i]
		}
		c.JSON(http.StatusOK, appointments)
		return
	}

	limit := services.DefaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	appointments, err := ac.Ledger.ListRecent(ctx, ownerID, limit)
	if err != nil {
		respondServiceError(c, ac.Log, "Failed to retrieve appointments", err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}
