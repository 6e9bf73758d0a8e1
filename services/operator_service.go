package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"barberledger-backend/models"
	"barberledger-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrEmailTaken is returned by Register when the email is already used.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned by Authenticate for any mismatch.
var ErrInvalidCredentials = errors.New("invalid credentials")

const minPasswordLength = 8

type OperatorService struct {
	db *gorm.DB
}

func NewOperatorService(db *gorm.DB) *OperatorService {
	return &OperatorService{db: db}
}

// Register creates the operator and its default settings together.
func (s *OperatorService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, validationErr("name", "is required")
	}
	if !utils.ValidateEmail(email) {
		return nil, validationErr("email", "invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, validationErr("password", fmt.Sprintf("must have at least %d characters", minPasswordLength))
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Name: name, Email: email, Password: hashed}
	// The unique index on email decides between concurrent signups.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		settings := models.DefaultSettings(user.ID)
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&settings).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("register operator: %w", err)
	}
	return &user, nil
}

// Authenticate checks the password and stamps LastLogin.
func (s *OperatorService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load operator: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := db.Model(&user).Update("last_login", now).Error; err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	return &user, nil
}

func (s *OperatorService) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "operator", ID: id}
		}
		return nil, fmt.Errorf("load operator: %w", err)
	}
	return &user, nil
}
