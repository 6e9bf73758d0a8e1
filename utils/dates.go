// utils/dates.go
package utils

import (
	"fmt"
	"time"
)

const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// EndOfDay is the last millisecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Window is a closed interval [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// DayWindow covers day's calendar date in loc.
func DayWindow(day time.Time, loc *time.Location) Window {
	local := day.In(loc)
	return Window{Start: BeginningOfDay(local), End: EndOfDay(local)}
}

// MonthWindow runs from day 1 00:00:00.000 to the last calendar day
// 23:59:59.999 in loc. Day 0 of the next month normalizes to the last day
// of this one, so 28/29/30/31-day months need no table.
func MonthWindow(ym YearMonth, loc *time.Location) Window {
	start := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, loc)
	last := time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, loc)
	return Window{Start: start, End: EndOfDay(last)}
}

// ParseDay parses YYYY-MM-DD as a calendar date in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, s, loc)
}

// ParseYearMonth parses YYYY-MM.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return YearMonth{}, err
	}
	return YearMonthOf(t), nil
}
