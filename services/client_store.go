package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"barberledger-backend/models"
	"barberledger-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientInput holds the operator-editable client fields. Aggregate fields
// (TotalVisits, LastAppointmentAt) are never accepted from callers.
type ClientInput struct {
	Name           string
	Phone          *string
	AcceptsContact *bool
}

// ClientUpdate is a partial update; nil fields are left unchanged.
type ClientUpdate struct {
	Name           *string
	Phone          *string
	AcceptsContact *bool
}

// ClientStore owns the clients table outside the recording path.
type ClientStore struct {
	db *gorm.DB
}

func NewClientStore(db *gorm.DB) *ClientStore {
	return &ClientStore{db: db}
}

func (s *ClientStore) Create(ctx context.Context, ownerID uuid.UUID, input ClientInput) (*models.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, validationErr("name", "is required")
	}
	phone, err := normalizeOptionalPhone(input.Phone)
	if err != nil {
		return nil, err
	}
	client := models.Client{
		OwnerID:        ownerID,
		Name:           name,
		Phone:          phone,
		AcceptsContact: input.AcceptsContact == nil || *input.AcceptsContact,
	}
	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &client, nil
}

// List returns the operator's clients. With a search term it matches name
// (case-insensitive) or phone and orders by name; otherwise most recent
// visit first, never-seen clients last.
func (s *ClientStore) List(ctx context.Context, ownerID uuid.UUID, search string) ([]models.Client, error) {
	q := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if term := strings.TrimSpace(search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, "%"+term+"%").Order("name ASC")
	} else {
		q = q.Order("last_appointment_at IS NULL").Order("last_appointment_at DESC").Order("name ASC")
	}
	var clients []models.Client
	if err := q.Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// ListContactable returns the clients that accept contact, unordered.
func (s *ClientStore) ListContactable(ctx context.Context, ownerID uuid.UUID) ([]models.Client, error) {
	var clients []models.Client
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND accepts_contact = ?", ownerID, true).
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("list contactable clients: %w", err)
	}
	return clients, nil
}

func (s *ClientStore) Get(ctx context.Context, ownerID, clientID uuid.UUID) (*models.Client, error) {
	return findOwnedClient(s.db.WithContext(ctx), ownerID, clientID)
}

func (s *ClientStore) Update(ctx context.Context, ownerID, clientID uuid.UUID, update ClientUpdate) (*models.Client, error) {
	changes := map[string]interface{}{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, validationErr("name", "must not be empty")
		}
		changes["name"] = name
	}
	if update.Phone != nil {
		phone, err := normalizeOptionalPhone(update.Phone)
		if err != nil {
			return nil, err
		}
		changes["phone"] = phone
	}
	if update.AcceptsContact != nil {
		changes["accepts_contact"] = *update.AcceptsContact
	}

	db := s.db.WithContext(ctx)
	if len(changes) > 0 {
		result := db.Model(&models.Client{}).
			Where("owner_id = ? AND id = ?", ownerID, clientID).
			Updates(changes)
		if result.Error != nil {
			return nil, fmt.Errorf("update client: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, &NotFoundError{Resource: "client", ID: clientID.String()}
		}
	}
	return findOwnedClient(db, ownerID, clientID)
}

// Delete soft-deletes the client. Appointments keep their client_id and
// are reported as walk-ins from then on.
func (s *ClientStore) Delete(ctx context.Context, ownerID, clientID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, clientID).
		Delete(&models.Client{})
	if result.Error != nil {
		return fmt.Errorf("delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "client", ID: clientID.String()}
	}
	return nil
}

func findOwnedClient(db *gorm.DB, ownerID, clientID uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := db.Where("owner_id = ? AND id = ?", ownerID, clientID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "client", ID: clientID.String()}
		}
		return nil, fmt.Errorf("load client: %w", err)
	}
	return &client, nil
}

// An empty phone clears the field.
func normalizeOptionalPhone(phone *string) (*string, error) {
	if phone == nil {
		return nil, nil
	}
	normalized := utils.NormalizePhone(*phone)
	if normalized == "" {
		return nil, nil
	}
	if !utils.ValidatePhone(normalized) {
		return nil, validationErr("phone", "invalid phone number format")
	}
	return &normalized, nil
}
