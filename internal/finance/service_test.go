package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altanbooks/altanbooks/internal/shared"
)

type mockRepo struct {
	transactions []Transaction
	txErr        error
	settings     CompanySettings
	settingsErr  error

	lastStart time.Time
	lastEnd   time.Time
	txCalls   int
}

func (m *mockRepo) TransactionsInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]Transaction, error) {
	m.txCalls++
	m.lastStart = start
	m.lastEnd = end
	return m.transactions, m.txErr
}

func (m *mockRepo) CompanySettings(ctx context.Context, userID uuid.UUID) (CompanySettings, error) {
	return m.settings, m.settingsErr
}

func TestServiceVatReport(t *testing.T) {
	repo := &mockRepo{
		transactions: []Transaction{
			tx(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), TypeIncome, 110000, ""),
		},
		settings: CompanySettings{
			CompanyName:   "Тест ХХК",
			VATRegistered: true,
			VATRate:       decimal.NewFromInt(10),
		},
	}
	svc := NewService(repo)

	report, err := svc.VatReport(context.Background(), uuid.New(), 2024, 1)
	require.NoError(t, err)

	assert.Equal(t, "2024 оны 1-р сар", report.Period)
	assert.True(t, report.Summary.OutputVat.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), repo.lastStart)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), repo.lastEnd)
}

func TestServiceVatReportMissingSettings(t *testing.T) {
	repo := &mockRepo{settingsErr: shared.ErrNotFound}
	svc := NewService(repo)

	_, err := svc.VatReport(context.Background(), uuid.New(), 2024, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrMissingConfiguration))
	assert.Equal(t, "Компанийн тохиргоо олдсонгүй", shared.UserMessage(err))
	assert.Zero(t, repo.txCalls)
}

func TestServiceIncomeTaxReportQuarterAndYear(t *testing.T) {
	repo := &mockRepo{settings: CompanySettings{CompanyName: "Тест ХХК"}}
	svc := NewService(repo)

	quarter := 2
	report, err := svc.IncomeTaxReport(context.Background(), uuid.New(), 2024, &quarter)
	require.NoError(t, err)
	assert.Equal(t, "2024 оны 2-р улирал", report.Period)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), repo.lastStart)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), repo.lastEnd)

	report, err = svc.IncomeTaxReport(context.Background(), uuid.New(), 2024, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024 он", report.Period)
	assert.Len(t, report.MonthlyBreakdown, 12)
}

func TestServiceGenericReportValidation(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	userID := uuid.New()

	_, err := svc.GenericReport(context.Background(), userID, "monthly", "2024/01/01", "2024-01-31", FormatJSON)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = svc.GenericReport(context.Background(), userID, "monthly", "2024-01-31", "2024-01-01", FormatJSON)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	assert.Equal(t, "Дуусах огноо эхлэх огнооноос өмнө байж болохгүй", shared.UserMessage(err))
	assert.Zero(t, repo.txCalls)
}

func TestServiceGenericReportCSV(t *testing.T) {
	repo := &mockRepo{
		transactions: []Transaction{
			tx(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), TypeIncome, 100000, "Борлуулалт"),
		},
	}
	svc := NewService(repo)

	report, err := svc.GenericReport(context.Background(), uuid.New(), "monthly", "2024-01-01", "2024-01-31", FormatCSV)
	require.NoError(t, err)
	assert.NotEmpty(t, report.CSVData)
	assert.Equal(t, 1, report.Summary.TransactionCount)
}

func TestServiceRepositoryFailure(t *testing.T) {
	repo := &mockRepo{
		settings: CompanySettings{CompanyName: "Тест ХХК"},
		txErr:    errors.New("connection reset"),
	}
	svc := NewService(repo)

	_, err := svc.VatReport(context.Background(), uuid.New(), 2024, 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestServiceSalaryUsesConfiguredRates(t *testing.T) {
	rates := DefaultPayrollRates()
	rates.PersonalIncomeTax = decimal.NewFromFloat(0.20)
	svc := NewServiceWithRates(&mockRepo{}, rates)

	result, err := svc.CalculateSalary(context.Background(), SalaryInput{
		BaseSalary:    decimal.NewFromInt(1000000),
		WorkDays:      22,
		TotalWorkDays: 22,
	})
	require.NoError(t, err)
	assert.True(t, result.PersonalIncomeTax.Equal(decimal.NewFromInt(173000)),
		"expected 173000 got %s", result.PersonalIncomeTax)
}
