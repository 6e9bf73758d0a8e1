package services

import (
	"time"

	"barberledger-backend/models"
	"barberledger-backend/utils"

	"github.com/shopspring/decimal"
)

// DaysPerCostMonth is the fixed divisor for the daily share of the monthly
// fixed cost. It does not follow the calendar length of the month.
const DaysPerCostMonth = 30

var daysPerCostMonth = decimal.NewFromInt(DaysPerCostMonth)

type DailyReport struct {
	Date              string               `json:"date"`
	Appointments      []models.Appointment `json:"appointments"`
	TotalAppointments int                  `json:"totalAppointments"`
	GrossRevenue      decimal.Decimal      `json:"grossRevenue"`
	DailyFixedCost    decimal.Decimal      `json:"dailyFixedCost"`
	NetProfit         decimal.Decimal      `json:"netProfit"`
}

type MonthlyReport struct {
	Month             string                  `json:"month"`
	Appointments      []models.Appointment    `json:"appointments"`
	TotalAppointments int                     `json:"totalAppointments"`
	GrossRevenue      decimal.Decimal         `json:"grossRevenue"`
	MonthlyFixedCost  decimal.Decimal         `json:"monthlyFixedCost"`
	NetProfit         decimal.Decimal         `json:"netProfit"`
	AverageTicket     decimal.Decimal         `json:"averageTicket"`
	DailyRevenue      map[int]decimal.Decimal `json:"dailyRevenue"`
}

// GrossRevenue sums appointment values exactly.
func GrossRevenue(appointments []models.Appointment) decimal.Decimal {
	total := decimal.Zero
	for _, a := range appointments {
		total = total.Add(a.Value)
	}
	return total
}

// DailyFixedCost is monthlyFixedCost / 30.
func DailyFixedCost(monthlyFixedCost decimal.Decimal) decimal.Decimal {
	return monthlyFixedCost.Div(daysPerCostMonth)
}

// CompileDailyReport summarizes one day's window. The caller supplies the
// appointments already bounded to the day.
func CompileDailyReport(day time.Time, appointments []models.Appointment, monthlyFixedCost decimal.Decimal) DailyReport {
	gross := GrossRevenue(appointments)
	dailyCost := DailyFixedCost(monthlyFixedCost)
	return DailyReport{
		Date:              day.Format(utils.DayLayout),
		Appointments:      nonNil(appointments),
		TotalAppointments: len(appointments),
		GrossRevenue:      gross,
		DailyFixedCost:    dailyCost,
		NetProfit:         gross.Sub(dailyCost),
	}
}

// CompileMonthlyReport summarizes one month's window. Appointments outside
// ym in loc are ignored. DailyRevenue is keyed by day of month in loc; days
// without appointments are absent.
func CompileMonthlyReport(ym utils.YearMonth, appointments []models.Appointment, monthlyFixedCost decimal.Decimal, loc *time.Location) MonthlyReport {
	window := utils.MonthWindow(ym, loc)
	inWindow := make([]models.Appointment, 0, len(appointments))
	gross := decimal.Zero
	daily := make(map[int]decimal.Decimal)
	for _, a := range appointments {
		if !window.Contains(a.OccurredAt) {
			continue
		}
		inWindow = append(inWindow, a)
		gross = gross.Add(a.Value)
		day := a.OccurredAt.In(loc).Day()
		daily[day] = daily[day].Add(a.Value)
	}

	average := decimal.Zero
	if n := len(inWindow); n > 0 {
		average = gross.Div(decimal.NewFromInt(int64(n)))
	}

	return MonthlyReport{
		Month:             ym.String(),
		Appointments:      inWindow,
		TotalAppointments: len(inWindow),
		GrossRevenue:      gross,
		MonthlyFixedCost:  monthlyFixedCost,
		NetProfit:         gross.Sub(monthlyFixedCost),
		AverageTicket:     average,
		DailyRevenue:      daily,
	}
}

func nonNil(appointments []models.Appointment) []models.Appointment {
	if appointments == nil {
		return []models.Appointment{}
	}
	return appointments
}
