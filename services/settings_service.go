package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"barberledger-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsUpdate merges into the operator's settings; nil fields keep their
// current (or default) value.
type SettingsUpdate struct {
	ShopName             *string
	MonthlyFixedCost     *decimal.Decimal
	InactivityDays       *int
	ReengagementTemplate *string
}

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the operator's settings, creating the default row on first
// access. Concurrent first calls converge on one row via ON CONFLICT DO NOTHING.
func (s *SettingsService) Get(ctx context.Context, ownerID uuid.UUID) (*models.OperatorSettings, error) {
	return getOrCreateSettings(s.db.WithContext(ctx), ownerID)
}

// Upsert creates the settings row with defaults overlaid by update, or
// merges update into the existing row, in a single statement.
func (s *SettingsService) Upsert(ctx context.Context, ownerID uuid.UUID, update SettingsUpdate) (*models.OperatorSettings, error) {
	row := models.DefaultSettings(ownerID)
	var columns []string

	if update.ShopName != nil {
		name := strings.TrimSpace(*update.ShopName)
		if name == "" {
			row.ShopName = nil
		} else {
			row.ShopName = &name
		}
		columns = append(columns, "shop_name")
	}
	if update.MonthlyFixedCost != nil {
		if update.MonthlyFixedCost.IsNegative() {
			return nil, validationErr("monthlyFixedCost", "must not be negative")
		}
		if !isCents(*update.MonthlyFixedCost) {
			return nil, validationErr("monthlyFixedCost", "must have at most two decimal places")
		}
		row.MonthlyFixedCost = *update.MonthlyFixedCost
		columns = append(columns, "monthly_fixed_cost")
	}
	if update.InactivityDays != nil {
		if *update.InactivityDays <= 0 {
			return nil, validationErr("inactivityDays", "must be a positive number of days")
		}
		row.InactivityDays = *update.InactivityDays
		columns = append(columns, "inactivity_days")
	}
	if update.ReengagementTemplate != nil {
		if strings.TrimSpace(*update.ReengagementTemplate) == "" {
			return nil, validationErr("reengagementTemplate", "must not be empty")
		}
		row.ReengagementTemplate = *update.ReengagementTemplate
		columns = append(columns, "reengagement_template")
	}

	db := s.db.WithContext(ctx)
	onConflict := clause.OnConflict{Columns: []clause.Column{{Name: "owner_id"}}, DoNothing: true}
	if len(columns) > 0 {
		onConflict = clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns(append(columns, "updated_at")),
		}
	}
	if err := db.Clauses(onConflict).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("upsert settings: %w", err)
	}
	return loadSettings(db, ownerID)
}

func getOrCreateSettings(db *gorm.DB, ownerID uuid.UUID) (*models.OperatorSettings, error) {
	settings, err := loadSettings(db, ownerID)
	if err == nil || !errors.Is(err, gorm.ErrRecordNotFound) {
		return settings, err
	}

	row := models.DefaultSettings(ownerID)
	err = db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "owner_id"}}, DoNothing: true}).
		Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("create default settings: %w", err)
	}
	return loadSettings(db, ownerID)
}

func loadSettings(db *gorm.DB, ownerID uuid.UUID) (*models.OperatorSettings, error) {
	var settings models.OperatorSettings
	if err := db.Where("owner_id = ?", ownerID).First(&settings).Error; err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &settings, nil
}
