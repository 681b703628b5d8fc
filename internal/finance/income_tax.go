package finance

import "github.com/shopspring/decimal"

// IncomeBlock groups the income side of the return. Other income streams are
// not modeled and stay zero.
type IncomeBlock struct {
	GrossIncome decimal.Decimal
	OtherIncome decimal.Decimal
	TotalIncome decimal.Decimal
}

// ExpenseBlock groups the deductible expense side of the return.
type ExpenseBlock struct {
	OperatingExpenses      decimal.Decimal
	AdministrativeExpenses decimal.Decimal
	OtherExpenses          decimal.Decimal
	TotalExpenses          decimal.Decimal
}

// TaxCalculation is the bottom line of the return. PrepaidTax exists for a
// future prepayment offset and is always zero today, so TaxPayable equals
// IncomeTax.
type TaxCalculation struct {
	TaxableIncome decimal.Decimal
	TaxRate       decimal.Decimal
	IncomeTax     decimal.Decimal
	PrepaidTax    decimal.Decimal
	TaxPayable    decimal.Decimal
}

// MonthlyBreakdownEntry is one month's income/expense/profit line. Every
// month of the selected range appears, zero-filled when nothing was booked.
type MonthlyBreakdownEntry struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Profit  decimal.Decimal
}

// IncomeTaxReport is a quarterly or annual income-tax return.
type IncomeTaxReport struct {
	Period           string
	CompanyInfo      CompanyInfo
	Income           IncomeBlock
	Expenses         ExpenseBlock
	TaxCalculation   TaxCalculation
	MonthlyBreakdown []MonthlyBreakdownEntry
}

// BuildIncomeTaxReport aggregates the period, backs VAT out of both totals at
// the aggregate level when the company is VAT registered, and applies the
// configured income tax rate. Losses clamp taxable income to zero; there is
// no carry-forward.
func BuildIncomeTaxReport(period ReportPeriod, transactions []Transaction, settings CompanySettings) IncomeTaxReport {
	agg := Aggregate(transactions, period)

	vatRate := settings.EffectiveVATRate()
	vatOnIncome := DecomposeVAT(agg.TotalIncome, vatRate, settings.VATRegistered).VAT
	vatOnExpenses := DecomposeVAT(agg.TotalExpense, vatRate, settings.VATRegistered).VAT

	grossIncome := agg.TotalIncome.Sub(vatOnIncome)
	operatingExpenses := agg.TotalExpense.Sub(vatOnExpenses)

	taxRate := settings.EffectiveIncomeTaxRate()
	taxableIncome := decimal.Max(decimal.Zero, grossIncome.Sub(operatingExpenses))
	incomeTax := roundUnit(taxableIncome.Mul(taxRate).Div(hundred))

	breakdown := make([]MonthlyBreakdownEntry, 0, len(agg.ByMonth))
	for _, m := range period.Months() {
		bucket := agg.ByMonth[m]
		breakdown = append(breakdown, MonthlyBreakdownEntry{
			Month:   MonthLabel(m),
			Income:  round2(bucket.Income),
			Expense: round2(bucket.Expense),
			Profit:  round2(bucket.Income.Sub(bucket.Expense)),
		})
	}

	return IncomeTaxReport{
		Period: period.Label,
		CompanyInfo: CompanyInfo{
			Name:               settings.CompanyName,
			RegistrationNumber: settings.RegistrationNumber,
			TaxNumber:          settings.TaxNumber,
			VATRegistered:      settings.VATRegistered,
		},
		Income: IncomeBlock{
			GrossIncome: round2(grossIncome),
			OtherIncome: decimal.Zero,
			TotalIncome: round2(grossIncome),
		},
		Expenses: ExpenseBlock{
			OperatingExpenses:      round2(operatingExpenses),
			AdministrativeExpenses: decimal.Zero,
			OtherExpenses:          decimal.Zero,
			TotalExpenses:          round2(operatingExpenses),
		},
		TaxCalculation: TaxCalculation{
			TaxableIncome: round2(taxableIncome),
			TaxRate:       taxRate,
			IncomeTax:     incomeTax,
			PrepaidTax:    decimal.Zero,
			TaxPayable:    incomeTax,
		},
		MonthlyBreakdown: breakdown,
	}
}
