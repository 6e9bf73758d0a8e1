package services

import (
	"sync"
	"testing"

	"barberledger-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_GetCreatesDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)
	owner := uuid.New()

	got, err := svc.Get(t.Context(), owner)
	require.NoError(t, err)
	assert.Equal(t, owner, got.OwnerID)
	assert.Equal(t, models.DefaultInactivityDays, got.InactivityDays)
	assert.True(t, got.MonthlyFixedCost.IsZero())
	assert.Equal(t, models.DefaultReengagementTemplate, got.ReengagementTemplate)
	assert.Nil(t, got.ShopName)
}

func TestSettings_ConcurrentFirstAccessCreatesOneRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)
	owner := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Get(t.Context(), owner)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var n int64
	require.NoError(t, db.Model(&models.OperatorSettings{}).Where("owner_id = ?", owner).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestSettings_UpsertMergesFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)
	owner := uuid.New()

	// Creates the row on first upsert.
	got, err := svc.Upsert(t.Context(), owner, SettingsUpdate{MonthlyFixedCost: decPtr("2500.50")})
	require.NoError(t, err)
	assert.True(t, got.MonthlyFixedCost.Equal(dec("2500.5")))
	assert.Equal(t, models.DefaultInactivityDays, got.InactivityDays)

	// Later upserts touch only the provided fields.
	got, err = svc.Upsert(t.Context(), owner, SettingsUpdate{ShopName: strPtr("Barbearia do João"), InactivityDays: intPtr(45)})
	require.NoError(t, err)
	assert.True(t, got.MonthlyFixedCost.Equal(dec("2500.5")))
	assert.Equal(t, 45, got.InactivityDays)
	require.NotNil(t, got.ShopName)
	assert.Equal(t, "Barbearia do João", *got.ShopName)

	// An empty update leaves the row as is.
	got, err = svc.Upsert(t.Context(), owner, SettingsUpdate{})
	require.NoError(t, err)
	assert.Equal(t, 45, got.InactivityDays)

	// Blank shop name clears it.
	got, err = svc.Upsert(t.Context(), owner, SettingsUpdate{ShopName: strPtr("  ")})
	require.NoError(t, err)
	assert.Nil(t, got.ShopName)

	var n int64
	require.NoError(t, db.Model(&models.OperatorSettings{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestSettings_UpsertValidation(t *testing.T) {
	svc := NewSettingsService(newTestDB(t))
	owner := uuid.New()

	tests := []struct {
		name   string
		update SettingsUpdate
	}{
		{"negative cost", SettingsUpdate{MonthlyFixedCost: decPtr("-1")}},
		{"fractional cents", SettingsUpdate{MonthlyFixedCost: decPtr("2500.005")}},
		{"zero days", SettingsUpdate{InactivityDays: intPtr(0)}},
		{"empty template", SettingsUpdate{ReengagementTemplate: strPtr(" ")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upsert(t.Context(), owner, tt.update)
			assert.True(t, IsValidation(err), "got %v", err)
		})
	}
}

func TestSettings_RejectedCostLeavesStoredValue(t *testing.T) {
	svc := NewSettingsService(newTestDB(t))
	owner := uuid.New()

	_, err := svc.Upsert(t.Context(), owner, SettingsUpdate{MonthlyFixedCost: decPtr("1200.50")})
	require.NoError(t, err)

	_, err = svc.Upsert(t.Context(), owner, SettingsUpdate{MonthlyFixedCost: decPtr("1200.505")})
	assert.True(t, IsValidation(err), "got %v", err)

	got, err := svc.Get(t.Context(), owner)
	require.NoError(t, err)
	assert.True(t, got.MonthlyFixedCost.Equal(dec("1200.5")), got.MonthlyFixedCost.String())
}
