package services

import (
	"testing"
	"time"

	"barberledger-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReportService(t *testing.T) (*ReportService, *AppointmentRecorder, *SettingsService, *ClientStore) {
	db := newTestDB(t)
	settings := NewSettingsService(db)
	return NewReportService(NewLedgerStore(db, time.UTC), settings), newTestRecorder(db), settings, NewClientStore(db)
}

func TestReportService_MonthlyFromLedger(t *testing.T) {
	reports, recorder, settings, clients := newTestReportService(t)
	owner := uuid.New()
	_, err := settings.Upsert(t.Context(), owner, SettingsUpdate{MonthlyFixedCost: decPtr("3000")})
	require.NoError(t, err)

	client, err := clients.Create(t.Context(), owner, ClientInput{Name: "João"})
	require.NoError(t, err)

	_, err = recorder.Record(t.Context(), owner, haircut(at(2024, time.March, 1, 9, 0), "50"), ExistingClient(client.ID))
	require.NoError(t, err)
	_, err = recorder.Record(t.Context(), owner, haircut(at(2024, time.March, 14, 9, 0), "80"), NewInlineClient("Marcos", nil))
	require.NoError(t, err)
	_, err = recorder.Record(t.Context(), owner, haircut(at(2024, time.March, 31, 23, 30), "40"), WalkIn())
	require.NoError(t, err)
	// Outside the window on both sides.
	_, err = recorder.Record(t.Context(), owner, haircut(at(2024, time.February, 29, 23, 59), "999"), WalkIn())
	require.NoError(t, err)
	_, err = recorder.Record(t.Context(), owner, haircut(at(2024, time.April, 1, 0, 0), "999"), WalkIn())
	require.NoError(t, err)

	report, err := reports.Monthly(t.Context(), owner, utils.YearMonth{Year: 2024, Month: time.March})
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalAppointments)
	assert.True(t, report.GrossRevenue.Equal(dec("170")), "gross %s", report.GrossRevenue)
	assert.True(t, report.NetProfit.Equal(dec("-2830")), "net %s", report.NetProfit)
	assert.Equal(t, "56.67", report.AverageTicket.StringFixed(2))
	assert.True(t, report.DailyRevenue[31].Equal(dec("40")))

	// A deleted client must not break the report.
	require.NoError(t, clients.Delete(t.Context(), owner, client.ID))
	report, err = reports.Monthly(t.Context(), owner, utils.YearMonth{Year: 2024, Month: time.March})
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalAppointments)
	assert.Nil(t, report.Appointments[0].Client)
	assert.Equal(t, "Marcos", report.Appointments[1].ClientName())
}

func TestReportService_DailyWithoutSettingsUsesDefaults(t *testing.T) {
	reports, recorder, _, _ := newTestReportService(t)
	owner := uuid.New()

	_, err := recorder.Record(t.Context(), owner, haircut(at(2024, time.March, 10, 10, 0), "60"), WalkIn())
	require.NoError(t, err)

	report, err := reports.Daily(t.Context(), owner, at(2024, time.March, 10, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", report.Date)
	assert.Equal(t, 1, report.TotalAppointments)
	assert.True(t, report.DailyFixedCost.IsZero())
	assert.True(t, report.NetProfit.Equal(dec("60")))
}

func TestReportService_DailyNetProfit(t *testing.T) {
	reports, recorder, settings, _ := newTestReportService(t)
	owner := uuid.New()
	_, err := settings.Upsert(t.Context(), owner, SettingsUpdate{MonthlyFixedCost: decPtr("1000")})
	require.NoError(t, err)

	for _, v := range []string{"35", "45", "20"} {
		_, err := recorder.Record(t.Context(), owner, haircut(at(2024, time.March, 10, 10, 0), v), WalkIn())
		require.NoError(t, err)
	}

	report, err := reports.Daily(t.Context(), owner, at(2024, time.March, 10, 0, 0))
	require.NoError(t, err)
	want := dec("100").Sub(dec("1000").Div(decimal.NewFromInt(30)))
	assert.True(t, report.NetProfit.Equal(want), "net %s want %s", report.NetProfit, want)
}
