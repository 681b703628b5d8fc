package finance

import (
	"fmt"
	"time"

	"github.com/altanbooks/altanbooks/internal/shared"
)

// ReportPeriod is a resolved, inclusive date window with its localized label.
// Callers never construct one directly; they go through the resolvers so the
// range and label always agree.
type ReportPeriod struct {
	Start time.Time
	End   time.Time
	Label string
}

const (
	minReportYear = 2000
	maxReportYear = 2100
)

// ResolveYear resolves a full calendar year.
func ResolveYear(year int) (ReportPeriod, error) {
	if err := validateYear(year); err != nil {
		return ReportPeriod{}, err
	}
	return ReportPeriod{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		Label: fmt.Sprintf("%d он", year),
	}, nil
}

// ResolveQuarter resolves quarter q of a year. The end date lands on the last
// calendar day of the closing month, leap years included.
func ResolveQuarter(year, quarter int) (ReportPeriod, error) {
	if err := validateYear(year); err != nil {
		return ReportPeriod{}, err
	}
	if quarter < 1 || quarter > 4 {
		return ReportPeriod{}, shared.InvalidInput("Улирал 1-4 хооронд байх ёстой")
	}
	startMonth := time.Month((quarter-1)*3 + 1)
	endMonth := time.Month(quarter * 3)
	return ReportPeriod{
		Start: time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC),
		End:   lastDayOfMonth(year, endMonth),
		Label: fmt.Sprintf("%d оны %d-р улирал", year, quarter),
	}, nil
}

// ResolveMonth resolves a single calendar month.
func ResolveMonth(year, month int) (ReportPeriod, error) {
	if err := validateYear(year); err != nil {
		return ReportPeriod{}, err
	}
	if month < 1 || month > 12 {
		return ReportPeriod{}, shared.InvalidInput("Сар 1-12 хооронд байх ёстой")
	}
	return ReportPeriod{
		Start: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		End:   lastDayOfMonth(year, time.Month(month)),
		Label: fmt.Sprintf("%d оны %d-р сар", year, month),
	}, nil
}

// Months lists the calendar month numbers covered by the period, in order.
// Resolved periods never cross a year boundary.
func (p ReportPeriod) Months() []int {
	months := make([]int, 0, 12)
	for m := int(p.Start.Month()); m <= int(p.End.Month()); m++ {
		months = append(months, m)
	}
	return months
}

// Contains reports whether the date falls inside the window, both ends
// inclusive. Only the calendar date is compared.
func (p ReportPeriod) Contains(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(dateOnly(p.Start)) && !d.After(dateOnly(p.End))
}

// MonthLabel renders the localized month name ("1-р сар" .. "12-р сар").
func MonthLabel(month int) string {
	return fmt.Sprintf("%d-р сар", month)
}

func validateYear(year int) error {
	if year < minReportYear || year > maxReportYear {
		return shared.InvalidInput("Он буруу байна")
	}
	return nil
}

func lastDayOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
