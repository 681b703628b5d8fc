package finance

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBuildGenericReportJSON(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	transactions := []Transaction{
		tx(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), TypeIncome, 200000, "Борлуулалт"),
		tx(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), TypeExpense, 80000, ""),
		tx(time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), TypeExpense, 70000, ""),
	}

	report, err := BuildGenericReport("monthly", start, end, transactions, FormatJSON)
	if err != nil {
		t.Fatalf("BuildGenericReport returned error: %v", err)
	}

	if report.ReportType != "monthly" {
		t.Fatalf("unexpected report type %q", report.ReportType)
	}
	wantDecimal(t, "total income", "200000", report.Summary.TotalIncome)
	wantDecimal(t, "total expense", "80000", report.Summary.TotalExpense)
	wantDecimal(t, "net profit", "120000", report.Summary.NetProfit)
	if report.Summary.TransactionCount != 2 {
		t.Fatalf("expected 2 transactions, got %d", report.Summary.TransactionCount)
	}
	if len(report.Transactions) != 2 {
		t.Fatalf("expected 2 listed transactions, got %d", len(report.Transactions))
	}
	wantDecimal(t, "uncategorized expense", "80000", report.ExpenseByCategory[UncategorizedLabel])
	if report.CSVData != "" {
		t.Fatalf("json format should not carry csv data")
	}
}

func TestBuildGenericReportCSV(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	transactions := []Transaction{
		{
			Date:         time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			Type:         TypeIncome,
			Amount:       decimal.RequireFromString("150000.50"),
			CategoryName: "Борлуулалт",
			Description:  "Бараа, үйлчилгээ",
			DocumentNo:   "INV-001",
		},
		{
			Date:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			Type:   TypeExpense,
			Amount: decimal.NewFromInt(40000),
		},
	}

	report, err := BuildGenericReport("monthly", start, end, transactions, FormatCSV)
	if err != nil {
		t.Fatalf("BuildGenericReport returned error: %v", err)
	}

	if !strings.HasPrefix(report.CSVData, "\uFEFF") {
		t.Fatalf("csv should start with a UTF-8 BOM")
	}
	lines := strings.Split(strings.TrimSuffix(report.CSVData, "\r\n"), "\r\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if strings.TrimPrefix(lines[0], "\uFEFF") != "Огноо,Төрөл,Дүн,Тайлбар,Ангилал,Баримтын дугаар" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != `2024-01-05,Орлого,150000.5,"Бараа, үйлчилгээ",Борлуулалт,INV-001` {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if lines[2] != "2024-01-10,Зарлага,40000,,," {
		t.Fatalf("unexpected second row %q", lines[2])
	}
}

func TestBuildGenericReportEmptyRange(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	report, err := BuildGenericReport("monthly", start, end, nil, FormatCSV)
	if err != nil {
		t.Fatalf("BuildGenericReport returned error: %v", err)
	}
	wantDecimal(t, "total income", "0", report.Summary.TotalIncome)
	if report.Summary.TransactionCount != 0 {
		t.Fatalf("expected no transactions, got %d", report.Summary.TransactionCount)
	}
	if !strings.Contains(report.CSVData, "Огноо") {
		t.Fatalf("empty report should still carry the header")
	}
}
