package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func vatSettings(registered bool) CompanySettings {
	return CompanySettings{
		CompanyName:        "Алтан Ном ХХК",
		RegistrationNumber: "1234567",
		TaxNumber:          "УБ12345678",
		VATRegistered:      registered,
		VATRate:            decimal.NewFromInt(10),
	}
}

func TestBuildVatReportRegistered(t *testing.T) {
	period, _ := ResolveMonth(2024, 1)
	transactions := []Transaction{
		tx(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), TypeIncome, 110000, "Борлуулалт"),
		tx(time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), TypeExpense, 55000, "Бараа материал"),
	}
	report := BuildVatReport(period, transactions, vatSettings(true))

	if report.Period != "2024 оны 1-р сар" {
		t.Fatalf("unexpected period %q", report.Period)
	}
	if report.CompanyInfo.Name != "Алтан Ном ХХК" || !report.CompanyInfo.VATRegistered {
		t.Fatalf("unexpected company info %+v", report.CompanyInfo)
	}

	wantDecimal(t, "total sales", "110000", report.Sales.TotalSales)
	wantDecimal(t, "vatable sales", "100000", report.Sales.VatableSales)
	wantDecimal(t, "vat on sales", "10000", report.Sales.VatOnSales)
	wantDecimal(t, "total purchases", "55000", report.Purchases.TotalPurchases)
	wantDecimal(t, "vat on purchases", "5000", report.Purchases.VatOnPurchases)

	wantDecimal(t, "output vat", "10000", report.Summary.OutputVat)
	wantDecimal(t, "input vat", "5000", report.Summary.InputVat)
	wantDecimal(t, "vat payable", "5000", report.Summary.VatPayable)
	wantDecimal(t, "vat refundable", "0", report.Summary.VatRefundable)

	if len(report.SalesDetails) != 1 || len(report.PurchaseDetails) != 1 {
		t.Fatalf("unexpected detail counts %d/%d", len(report.SalesDetails), len(report.PurchaseDetails))
	}
	detail := report.SalesDetails[0]
	wantDecimal(t, "detail total", "110000", detail.TotalAmount)
	wantDecimal(t, "detail vat", "10000", detail.VatAmount)
	wantDecimal(t, "detail net", "100000", detail.AmountWithoutVat)
	if detail.Category != "Борлуулалт" {
		t.Fatalf("unexpected detail category %q", detail.Category)
	}
}

func TestBuildVatReportRefundable(t *testing.T) {
	period, _ := ResolveMonth(2024, 3)
	transactions := []Transaction{
		tx(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), TypeIncome, 55000, ""),
		tx(time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), TypeExpense, 110000, ""),
	}
	report := BuildVatReport(period, transactions, vatSettings(true))

	wantDecimal(t, "vat payable", "0", report.Summary.VatPayable)
	wantDecimal(t, "vat refundable", "5000", report.Summary.VatRefundable)
}

func TestBuildVatReportUnregistered(t *testing.T) {
	period, _ := ResolveMonth(2024, 1)
	transactions := []Transaction{
		tx(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), TypeIncome, 110000, ""),
		tx(time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), TypeExpense, 55000, ""),
	}
	report := BuildVatReport(period, transactions, vatSettings(false))

	wantDecimal(t, "total sales", "110000", report.Sales.TotalSales)
	wantDecimal(t, "vat on sales", "0", report.Sales.VatOnSales)
	wantDecimal(t, "vat on purchases", "0", report.Purchases.VatOnPurchases)
	wantDecimal(t, "vat payable", "0", report.Summary.VatPayable)
	wantDecimal(t, "vat refundable", "0", report.Summary.VatRefundable)
	wantDecimal(t, "detail vat", "0", report.SalesDetails[0].VatAmount)
	wantDecimal(t, "detail net", "110000", report.SalesDetails[0].AmountWithoutVat)
}

func TestBuildVatReportSkipsOutOfPeriod(t *testing.T) {
	period, _ := ResolveMonth(2024, 1)
	transactions := []Transaction{
		tx(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), TypeIncome, 110000, ""),
	}
	report := BuildVatReport(period, transactions, vatSettings(true))

	wantDecimal(t, "total sales", "0", report.Sales.TotalSales)
	if len(report.SalesDetails) != 0 {
		t.Fatalf("expected no detail rows, got %d", len(report.SalesDetails))
	}
}

func TestBuildVatReportAggregateLevelRounding(t *testing.T) {
	// Summary VAT is decomposed from the period total, not summed from the
	// rounded per-row figures.
	period, _ := ResolveMonth(2024, 1)
	transactions := []Transaction{
		{Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Type: TypeIncome, Amount: decimal.RequireFromString("10.01")},
		{Date: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), Type: TypeIncome, Amount: decimal.RequireFromString("10.01")},
		{Date: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), Type: TypeIncome, Amount: decimal.RequireFromString("10.01")},
	}
	report := BuildVatReport(period, transactions, vatSettings(true))

	// 30.03 * 10 / 110 = 2.7300, rounded once at the aggregate.
	wantDecimal(t, "output vat", "2.73", report.Summary.OutputVat)
	// Per-row: 10.01 * 10 / 110 = 0.91 after rounding.
	wantDecimal(t, "row vat", "0.91", report.SalesDetails[0].VatAmount)
}
