package finance

import (
	"errors"
	"testing"
	"time"

	"github.com/altanbooks/altanbooks/internal/shared"
)

func TestResolveYear(t *testing.T) {
	period, err := ResolveYear(2024)
	if err != nil {
		t.Fatalf("ResolveYear returned error: %v", err)
	}
	if !period.Start.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %s", period.Start)
	}
	if !period.End.Equal(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end %s", period.End)
	}
	if period.Label != "2024 он" {
		t.Fatalf("unexpected label %q", period.Label)
	}
}

func TestResolveQuarter(t *testing.T) {
	cases := []struct {
		quarter   int
		wantStart time.Time
		wantEnd   time.Time
		wantLabel string
	}{
		{1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), "2024 оны 1-р улирал"},
		{2, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), "2024 оны 2-р улирал"},
		{4, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "2024 оны 4-р улирал"},
	}
	for _, tc := range cases {
		period, err := ResolveQuarter(2024, tc.quarter)
		if err != nil {
			t.Fatalf("ResolveQuarter(%d) returned error: %v", tc.quarter, err)
		}
		if !period.Start.Equal(tc.wantStart) || !period.End.Equal(tc.wantEnd) {
			t.Fatalf("quarter %d: got [%s, %s]", tc.quarter, period.Start, period.End)
		}
		if period.Label != tc.wantLabel {
			t.Fatalf("quarter %d: unexpected label %q", tc.quarter, period.Label)
		}
	}
}

func TestResolveMonthLeapFebruary(t *testing.T) {
	period, err := ResolveMonth(2024, 2)
	if err != nil {
		t.Fatalf("ResolveMonth returned error: %v", err)
	}
	if !period.End.Equal(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected leap-year end, got %s", period.End)
	}
	if period.Label != "2024 оны 2-р сар" {
		t.Fatalf("unexpected label %q", period.Label)
	}
}

func TestResolveValidation(t *testing.T) {
	if _, err := ResolveYear(1999); !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("expected invalid year error, got %v", err)
	}
	if _, err := ResolveQuarter(2024, 5); !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("expected invalid quarter error, got %v", err)
	}
	if _, err := ResolveMonth(2024, 13); !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("expected invalid month error, got %v", err)
	}
}

func TestPeriodMonths(t *testing.T) {
	period, err := ResolveQuarter(2024, 3)
	if err != nil {
		t.Fatalf("ResolveQuarter returned error: %v", err)
	}
	months := period.Months()
	if len(months) != 3 || months[0] != 7 || months[2] != 9 {
		t.Fatalf("unexpected months %v", months)
	}
}

func TestPeriodContainsBoundaries(t *testing.T) {
	period, err := ResolveMonth(2024, 1)
	if err != nil {
		t.Fatalf("ResolveMonth returned error: %v", err)
	}
	if !period.Contains(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start date should be included")
	}
	if !period.Contains(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)) {
		t.Fatalf("end date should be included regardless of time of day")
	}
	if period.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("next month should be excluded")
	}
}

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel(1); got != "1-р сар" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := MonthLabel(12); got != "12-р сар" {
		t.Fatalf("unexpected label %q", got)
	}
}
