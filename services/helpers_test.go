package services

import (
	"path/filepath"
	"testing"
	"time"

	"barberledger-backend/config"
	"barberledger-backend/logger"
	"barberledger-backend/metrics"
	"barberledger-backend/models"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory database. One connection keeps the
// memory database alive and serializes writers the way a row lock would.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), config.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, config.Migrate(db))
	return db
}

// newSharedTestDB opens a file database in WAL mode with a pooled
// connection per caller, so concurrent transactions genuinely overlap and
// queue on SQLite's write lock through the busy timeout.
func newSharedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "ledger.db") + "?_journal_mode=WAL&_busy_timeout=10000"
	db, err := gorm.Open(sqlite.Open(dsn), config.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(32)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, config.Migrate(db))

	var mode string
	require.NoError(t, db.Raw("PRAGMA journal_mode").Scan(&mode).Error)
	require.Equal(t, "wal", mode)
	return db
}

func newTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func newTestRecorder(db *gorm.DB) *AppointmentRecorder {
	return NewAppointmentRecorder(db, logger.Nop(), newTestMetrics())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func haircut(when time.Time, value string) AppointmentInput {
	return AppointmentInput{
		OccurredAt:    when,
		Value:         decPtr(value),
		ServiceType:   "corte",
		PaymentMethod: "pix",
	}
}

func mustClient(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string) *models.Client {
	t.Helper()
	client, err := NewClientStore(db).Create(t.Context(), ownerID, ClientInput{Name: name, Phone: strPtr("11987654321")})
	require.NoError(t, err)
	return client
}

func reloadClient(t *testing.T, db *gorm.DB, id uuid.UUID) models.Client {
	t.Helper()
	var c models.Client
	require.NoError(t, db.Unscoped().First(&c, "id = ?", id).Error)
	return c
}

func countAppointments(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Appointment{}).Count(&n).Error)
	return n
}
