package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/altanbooks/altanbooks/internal/shared"
)

// Repository supplies the engine's inputs. The engine itself never issues
// I/O; everything behind this interface belongs to the host.
type Repository interface {
	// TransactionsInRange returns the caller's transactions inside the
	// inclusive window, ordered by date ascending.
	TransactionsInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]Transaction, error)
	// CompanySettings returns the caller's tax profile. shared.ErrNotFound
	// when none exists.
	CompanySettings(ctx context.Context, userID uuid.UUID) (CompanySettings, error)
}

// Service binds the pure report builders to a transaction source. Every
// method is a stateless function of the request plus the stored data.
type Service struct {
	repo  Repository
	rates PayrollRates
}

// NewService constructs the reporting service with the statutory payroll
// schedule.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, rates: DefaultPayrollRates()}
}

// NewServiceWithRates overrides the payroll schedule, e.g. for historical
// rate sets.
func NewServiceWithRates(repo Repository, rates PayrollRates) *Service {
	return &Service{repo: repo, rates: rates}
}

// CalculateSalary runs the payroll decomposition. Pure; no stored data is
// consulted.
func (s *Service) CalculateSalary(_ context.Context, input SalaryInput) (SalaryResult, error) {
	return CalculateSalary(input, s.rates)
}

// VatReport builds the monthly VAT return for the caller.
func (s *Service) VatReport(ctx context.Context, userID uuid.UUID, year, month int) (VatReport, error) {
	period, err := ResolveMonth(year, month)
	if err != nil {
		return VatReport{}, err
	}
	settings, err := s.settings(ctx, userID)
	if err != nil {
		return VatReport{}, err
	}
	transactions, err := s.repo.TransactionsInRange(ctx, userID, period.Start, period.End)
	if err != nil {
		return VatReport{}, fmt.Errorf("load transactions: %w", err)
	}
	return BuildVatReport(period, transactions, settings), nil
}

// IncomeTaxReport builds the quarterly or annual income-tax return. A nil
// quarter selects the full year.
func (s *Service) IncomeTaxReport(ctx context.Context, userID uuid.UUID, year int, quarter *int) (IncomeTaxReport, error) {
	var (
		period ReportPeriod
		err    error
	)
	if quarter != nil {
		period, err = ResolveQuarter(year, *quarter)
	} else {
		period, err = ResolveYear(year)
	}
	if err != nil {
		return IncomeTaxReport{}, err
	}
	settings, err := s.settings(ctx, userID)
	if err != nil {
		return IncomeTaxReport{}, err
	}
	transactions, err := s.repo.TransactionsInRange(ctx, userID, period.Start, period.End)
	if err != nil {
		return IncomeTaxReport{}, fmt.Errorf("load transactions: %w", err)
	}
	return BuildIncomeTaxReport(period, transactions, settings), nil
}

// GenericReport builds the ad-hoc period report over an explicit date range.
func (s *Service) GenericReport(ctx context.Context, userID uuid.UUID, reportType, startDate, endDate string, format ReportFormat) (GenericReport, error) {
	start, err := parseReportDate(startDate)
	if err != nil {
		return GenericReport{}, err
	}
	end, err := parseReportDate(endDate)
	if err != nil {
		return GenericReport{}, err
	}
	if end.Before(start) {
		return GenericReport{}, shared.InvalidInput("Дуусах огноо эхлэх огнооноос өмнө байж болохгүй")
	}
	transactions, err := s.repo.TransactionsInRange(ctx, userID, start, end)
	if err != nil {
		return GenericReport{}, fmt.Errorf("load transactions: %w", err)
	}
	return BuildGenericReport(reportType, start, end, transactions, format)
}

func (s *Service) settings(ctx context.Context, userID uuid.UUID) (CompanySettings, error) {
	settings, err := s.repo.CompanySettings(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return CompanySettings{}, shared.MissingConfiguration("Компанийн тохиргоо олдсонгүй")
		}
		return CompanySettings{}, fmt.Errorf("load company settings: %w", err)
	}
	return settings, nil
}

func parseReportDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, shared.InvalidInput("Огнооны формат буруу байна")
	}
	return t, nil
}
