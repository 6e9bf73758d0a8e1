package services

import (
	"context"
	"sort"
	"time"

	"barberledger-backend/models"

	"github.com/google/uuid"
)

// Classification partitions an operator's clients for reengagement.
type Classification struct {
	// Inactive clients, most overdue first; never-seen clients lead.
	Inactive []models.Client
	Active   []models.Client
}

// IsInactive reports whether c should be targeted for reengagement. The
// contact preference is checked first: a client who opted out is never
// inactive, however long ago they last came in.
func IsInactive(c models.Client, threshold time.Time) bool {
	if !c.AcceptsContact {
		return false
	}
	return c.LastAppointmentAt == nil || c.LastAppointmentAt.Before(threshold)
}

// InactivityThreshold is now minus inactivityDays calendar days.
func InactivityThreshold(now time.Time, inactivityDays int) time.Time {
	return now.AddDate(0, 0, -inactivityDays)
}

// ClassifyClients is pure: it reads only its arguments.
func ClassifyClients(clients []models.Client, inactivityDays int, now time.Time) Classification {
	threshold := InactivityThreshold(now, inactivityDays)
	result := Classification{Inactive: []models.Client{}, Active: []models.Client{}}
	for _, c := range clients {
		if IsInactive(c, threshold) {
			result.Inactive = append(result.Inactive, c)
		} else {
			result.Active = append(result.Active, c)
		}
	}
	sort.SliceStable(result.Inactive, func(i, j int) bool {
		a, b := result.Inactive[i].LastAppointmentAt, result.Inactive[j].LastAppointmentAt
		switch {
		case a == nil:
			return b != nil
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})
	return result
}

type InactivityService struct {
	clients  *ClientStore
	settings *SettingsService
	now      func() time.Time
}

func NewInactivityService(clients *ClientStore, settings *SettingsService, now func() time.Time) *InactivityService {
	if now == nil {
		now = time.Now
	}
	return &InactivityService{clients: clients, settings: settings, now: now}
}

// FindInactive returns the operator's reengagement targets using the
// operator's inactivityDays (30 until configured).
func (s *InactivityService) FindInactive(ctx context.Context, ownerID uuid.UUID) ([]models.Client, error) {
	settings, err := s.settings.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	// Clients who opted out can never be inactive; skip loading them.
	clients, err := s.clients.ListContactable(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ClassifyClients(clients, settings.InactivityDays, s.now()).Inactive, nil
}
