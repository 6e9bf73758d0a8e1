package services

import (
	"context"
	"fmt"
	"time"

	"barberledger-backend/models"
	"barberledger-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultRecentLimit = 50

// LedgerStore is the read side of the appointment ledger. Writes go through
// AppointmentRecorder only.
type LedgerStore struct {
	db  *gorm.DB
	loc *time.Location
}

func NewLedgerStore(db *gorm.DB, loc *time.Location) *LedgerStore {
	return &LedgerStore{db: db, loc: loc}
}

func (s *LedgerStore) Location() *time.Location {
	return s.loc
}

// ListByDay returns the appointments on day's calendar date, newest first.
func (s *LedgerStore) ListByDay(ctx context.Context, ownerID uuid.UUID, day time.Time) ([]models.Appointment, error) {
	return s.listWindow(ctx, ownerID, utils.DayWindow(day, s.loc), "occurred_at DESC, created_at DESC")
}

// ListByMonth returns the appointments in ym, oldest first.
func (s *LedgerStore) ListByMonth(ctx context.Context, ownerID uuid.UUID, ym utils.YearMonth) ([]models.Appointment, error) {
	return s.listWindow(ctx, ownerID, utils.MonthWindow(ym, s.loc), "occurred_at ASC, created_at ASC")
}

// ListRecent returns up to limit appointments, newest first. A non-positive
// limit means DefaultRecentLimit.
func (s *LedgerStore) ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.Appointment, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Client").
		Where("owner_id = ?", ownerID).
		Order("occurred_at DESC, created_at DESC").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("list recent appointments: %w", err)
	}
	return appointments, nil
}

// Timestamps are stored in UTC, so bounds are converted before querying.
func (s *LedgerStore) listWindow(ctx context.Context, ownerID uuid.UUID, w utils.Window, order string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Client").
		Where("owner_id = ? AND occurred_at BETWEEN ? AND ?", ownerID, w.Start.UTC(), w.End.UTC()).
		Order(order).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("list appointments %s..%s: %w", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339), err)
	}
	return appointments, nil
}
