package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"barberledger-backend/logger"
	"barberledger-backend/metrics"
	"barberledger-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ResolutionKind int

const (
	ResolveWalkIn ResolutionKind = iota
	ResolveExisting
	ResolveNewInline
)

func (k ResolutionKind) String() string {
	switch k {
	case ResolveExisting:
		return "existing"
	case ResolveNewInline:
		return "new_inline"
	default:
		return "walk_in"
	}
}

// ClientResolution says which client, if any, an appointment belongs to.
type ClientResolution struct {
	Kind     ResolutionKind
	ClientID uuid.UUID
	Name     string
	Phone    *string
}

func ExistingClient(id uuid.UUID) ClientResolution {
	return ClientResolution{Kind: ResolveExisting, ClientID: id}
}

func NewInlineClient(name string, phone *string) ClientResolution {
	return ClientResolution{Kind: ResolveNewInline, Name: name, Phone: phone}
}

func WalkIn() ClientResolution {
	return ClientResolution{Kind: ResolveWalkIn}
}

// AppointmentInput is the caller-supplied part of a ledger row. Value is a
// pointer so a missing amount can be told apart from zero.
type AppointmentInput struct {
	OccurredAt    time.Time
	Value         *decimal.Decimal
	ServiceType   string
	PaymentMethod string
}

// AppointmentRecorder is the only write path into the ledger. Each call
// inserts one appointment and updates at most one client aggregate in a
// single transaction.
type AppointmentRecorder struct {
	db      *gorm.DB
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewAppointmentRecorder(db *gorm.DB, log *logger.Logger, m *metrics.Metrics) *AppointmentRecorder {
	return &AppointmentRecorder{db: db, log: log, metrics: m}
}

// Record appends an appointment and applies the aggregate update for its
// client. For an existing client, TotalVisits is incremented in SQL and
// LastAppointmentAt is overwritten with OccurredAt even when the new value
// is older than the stored one (last write wins, not max).
func (r *AppointmentRecorder) Record(ctx context.Context, ownerID uuid.UUID, input AppointmentInput, resolution ClientResolution) (*models.Appointment, error) {
	if err := validateAppointment(input, resolution); err != nil {
		r.metrics.RecordFailures.WithLabelValues("validation").Inc()
		return nil, err
	}

	occurredAt := input.OccurredAt.UTC()
	appointment := models.Appointment{
		OwnerID:       ownerID,
		OccurredAt:    occurredAt,
		Value:         *input.Value,
		ServiceType:   strings.TrimSpace(input.ServiceType),
		PaymentMethod: strings.TrimSpace(input.PaymentMethod),
	}

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		r.metrics.RecordFailures.WithLabelValues("storage").Inc()
		return nil, fmt.Errorf("begin record transaction: %w", tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	client, err := r.applyAggregate(tx, ownerID, resolution, occurredAt)
	if err != nil {
		return nil, r.abort(tx, "apply client aggregate", err, false)
	}
	if client != nil {
		appointment.ClientID = &client.ID
	}

	if err := tx.Create(&appointment).Error; err != nil {
		// A client row was created or bumped; it must not outlive this failure.
		return nil, r.abort(tx, "insert appointment", err, client != nil)
	}

	if err := tx.Commit().Error; err != nil {
		r.metrics.RecordFailures.WithLabelValues("storage").Inc()
		return nil, fmt.Errorf("commit appointment: %w", err)
	}

	appointment.Client = client
	r.metrics.AppointmentsRecorded.WithLabelValues(resolution.Kind.String()).Inc()
	return &appointment, nil
}

// applyAggregate resolves the client and applies the visit to its
// aggregate. It returns nil for walk-ins.
func (r *AppointmentRecorder) applyAggregate(tx *gorm.DB, ownerID uuid.UUID, resolution ClientResolution, occurredAt time.Time) (*models.Client, error) {
	switch resolution.Kind {
	case ResolveNewInline:
		phone, err := normalizeOptionalPhone(resolution.Phone)
		if err != nil {
			return nil, err
		}
		client := models.Client{
			OwnerID:           ownerID,
			Name:              strings.TrimSpace(resolution.Name),
			Phone:             phone,
			AcceptsContact:    true,
			TotalVisits:       1,
			LastAppointmentAt: &occurredAt,
		}
		if err := tx.Create(&client).Error; err != nil {
			return nil, fmt.Errorf("create client: %w", err)
		}
		return &client, nil

	case ResolveExisting:
		// The increment is the first statement so the write lock is taken
		// before anything is read. A client that is missing, deleted or owned
		// by someone else matches no row and nothing changes.
		result := tx.Model(&models.Client{}).
			Where("owner_id = ? AND id = ?", ownerID, resolution.ClientID).
			Updates(map[string]interface{}{
				"total_visits":        gorm.Expr("total_visits + ?", 1),
				"last_appointment_at": occurredAt,
			})
		if result.Error != nil {
			return nil, fmt.Errorf("update client aggregate: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, &NotFoundError{Resource: "client", ID: resolution.ClientID.String()}
		}
		return findOwnedClient(tx, ownerID, resolution.ClientID)

	default:
		return nil, nil
	}
}

// abort rolls tx back. When mutated is set the failure happened after the
// aggregate changed and is reported as a ConsistencyError.
func (r *AppointmentRecorder) abort(tx *gorm.DB, op string, err error, mutated bool) error {
	rbErr := tx.Rollback().Error
	if rbErr != nil {
		r.metrics.RecordFailures.WithLabelValues("consistency").Inc()
		r.log.Error("appointment rollback failed", "op", op, "error", err, "rollbackError", rbErr)
		return &ConsistencyError{Op: op, Err: err, RollbackErr: rbErr}
	}

	switch {
	case IsValidation(err):
		r.metrics.RecordFailures.WithLabelValues("validation").Inc()
	case IsNotFound(err):
		r.metrics.RecordFailures.WithLabelValues("not_found").Inc()
	case mutated:
		r.metrics.RecordFailures.WithLabelValues("consistency").Inc()
		r.log.Warn("appointment rolled back after aggregate update", "op", op, "error", err)
		return &ConsistencyError{Op: op, Err: err}
	default:
		r.metrics.RecordFailures.WithLabelValues("storage").Inc()
	}
	return err
}

func validateAppointment(input AppointmentInput, resolution ClientResolution) error {
	if input.OccurredAt.IsZero() {
		return validationErr("date", "is required")
	}
	if input.Value == nil {
		return validationErr("value", "is required")
	}
	if input.Value.IsNegative() {
		return validationErr("value", "must not be negative")
	}
	if !isCents(*input.Value) {
		return validationErr("value", "must have at most two decimal places")
	}
	if strings.TrimSpace(input.ServiceType) == "" {
		return validationErr("serviceType", "is required")
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		return validationErr("paymentMethod", "is required")
	}
	switch resolution.Kind {
	case ResolveNewInline:
		if strings.TrimSpace(resolution.Name) == "" {
			return validationErr("clientName", "is required for a new client")
		}
	case ResolveExisting:
		if resolution.ClientID == uuid.Nil {
			return validationErr("clientId", "is required")
		}
	}
	return nil
}

// isCents reports whether d fits a decimal(10,2) column without rounding.
func isCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}
