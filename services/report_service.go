package services

import (
	"context"
	"time"

	"barberledger-backend/utils"

	"github.com/google/uuid"
)

// ReportService recomputes reports from the ledger on every call.
type ReportService struct {
	ledger   *LedgerStore
	settings *SettingsService
}

func NewReportService(ledger *LedgerStore, settings *SettingsService) *ReportService {
	return &ReportService{ledger: ledger, settings: settings}
}

func (s *ReportService) Daily(ctx context.Context, ownerID uuid.UUID, day time.Time) (*DailyReport, error) {
	settings, err := s.settings.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	appointments, err := s.ledger.ListByDay(ctx, ownerID, day)
	if err != nil {
		return nil, err
	}
	report := CompileDailyReport(day.In(s.ledger.Location()), appointments, settings.MonthlyFixedCost)
	return &report, nil
}

func (s *ReportService) Monthly(ctx context.Context, ownerID uuid.UUID, ym utils.YearMonth) (*MonthlyReport, error) {
	settings, err := s.settings.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	appointments, err := s.ledger.ListByMonth(ctx, ownerID, ym)
	if err != nil {
		return nil, err
	}
	report := CompileMonthlyReport(ym, appointments, settings.MonthlyFixedCost, s.ledger.Location())
	return &report, nil
}
