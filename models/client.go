package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client carries the per-client aggregate (TotalVisits, LastAppointmentAt).
// Both fields are maintained by the appointment recorder only.
type Client struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null" json:"ownerId"`

	Name           string  `gorm:"not null" json:"name"`
	Phone          *string `json:"phone"`
	AcceptsContact bool    `gorm:"not null" json:"acceptsContact"`

	TotalVisits       int        `gorm:"not null;default:0" json:"totalVisits"`
	LastAppointmentAt *time.Time `gorm:"index" json:"lastAppointmentAt"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
