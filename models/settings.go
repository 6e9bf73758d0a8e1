package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultInactivityDays = 30

	ClientNamePlaceholder = "[NOME_CLIENTE]"
	ShopNamePlaceholder   = "[NOME_BARBEARIA]"

	DefaultReengagementTemplate = "Fala, " + ClientNamePlaceholder + "! Aqui é da " + ShopNamePlaceholder +
		", sentimos sua falta por aqui. Que tal marcar um horário essa semana?"
)

// OperatorSettings is 1:1 with an operator, keyed by OwnerID.
type OperatorSettings struct {
	OwnerID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"ownerId"`
	ShopName             *string         `json:"shopName"`
	MonthlyFixedCost     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"monthlyFixedCost"`
	InactivityDays       int             `gorm:"not null;default:30" json:"inactivityDays"`
	ReengagementTemplate string          `gorm:"type:text;not null" json:"reengagementTemplate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultSettings returns the settings row an operator gets on first access.
func DefaultSettings(ownerID uuid.UUID) OperatorSettings {
	return OperatorSettings{
		OwnerID:              ownerID,
		MonthlyFixedCost:     decimal.Zero,
		InactivityDays:       DefaultInactivityDays,
		ReengagementTemplate: DefaultReengagementTemplate,
	}
}
