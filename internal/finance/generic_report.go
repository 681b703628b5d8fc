package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportFormat selects the output encoding of the generic period report.
type ReportFormat string

const (
	FormatJSON ReportFormat = "json"
	FormatCSV  ReportFormat = "csv"
)

// ReportSummary is the headline block of the generic report.
type ReportSummary struct {
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	NetProfit        decimal.Decimal
	TransactionCount int
}

// GenericReport is the ad-hoc period report: summary, category breakdowns,
// the transaction list as supplied, and optionally a CSV rendition. It is the
// only report with a dual-format output.
type GenericReport struct {
	ReportType        string
	PeriodStart       time.Time
	PeriodEnd         time.Time
	Summary           ReportSummary
	IncomeByCategory  map[string]decimal.Decimal
	ExpenseByCategory map[string]decimal.Decimal
	Transactions      []Transaction
	CSVData           string
}

// BuildGenericReport aggregates an explicit inclusive date range. Transaction
// order is preserved from the input. When format is CSV the serialized data
// rides alongside the structured report.
func BuildGenericReport(reportType string, start, end time.Time, transactions []Transaction, format ReportFormat) (GenericReport, error) {
	window := ReportPeriod{Start: start, End: end}

	included := make([]Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if window.Contains(tx.Date) {
			included = append(included, tx)
		}
	}
	agg := Aggregate(included, window)

	report := GenericReport{
		ReportType:  reportType,
		PeriodStart: start,
		PeriodEnd:   end,
		Summary: ReportSummary{
			TotalIncome:      agg.TotalIncome,
			TotalExpense:     agg.TotalExpense,
			NetProfit:        agg.NetProfit(),
			TransactionCount: agg.Count,
		},
		IncomeByCategory:  agg.IncomeByCategory,
		ExpenseByCategory: agg.ExpenseByCategory,
		Transactions:      included,
	}

	if format == FormatCSV {
		csvData, err := renderTransactionsCSV(included)
		if err != nil {
			return GenericReport{}, err
		}
		report.CSVData = csvData
	}
	return report, nil
}
