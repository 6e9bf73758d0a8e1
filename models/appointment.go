package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Appointment is a ledger row. Rows are append-only: Value and OccurredAt
// never change after insert.
type Appointment struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_appointments_owner_occurred,priority:1" json:"ownerId"`
	ClientID *uuid.UUID `gorm:"type:uuid;index" json:"clientId"`

	OccurredAt    time.Time       `gorm:"not null;index:idx_appointments_owner_occurred,priority:2" json:"date"`
	Value         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"value"`
	ServiceType   string          `gorm:"not null" json:"serviceType"`
	PaymentMethod string          `gorm:"not null" json:"paymentMethod"`

	CreatedAt time.Time `json:"createdAt"`

	// Nil for walk-ins and for clients that were deleted after the visit.
	Client *Client `gorm:"foreignKey:ClientID" json:"client"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// ClientName returns the linked client's name, or "" for walk-ins and
// references that no longer resolve.
func (a *Appointment) ClientName() string {
	if a.Client == nil {
		return ""
	}
	return a.Client.Name
}
