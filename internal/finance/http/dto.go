package http

import (
	"github.com/shopspring/decimal"

	"github.com/altanbooks/altanbooks/internal/finance"
)

// Request bodies. Validation is declared here so every operation goes through
// one explicit validated-input construction step instead of ad hoc field
// checks.

type salaryRequest struct {
	EmployeeName  string  `json:"employeeName" validate:"required"`
	BaseSalary    float64 `json:"baseSalary" validate:"gte=0"`
	WorkDays      int     `json:"workDays" validate:"gte=0"`
	TotalWorkDays int     `json:"totalWorkDays" validate:"required,gt=0"`
	Bonus         float64 `json:"bonus" validate:"gte=0"`
	Deductions    float64 `json:"deductions" validate:"gte=0"`
}

type vatReportRequest struct {
	Year  int `json:"year" validate:"required,gte=2000,lte=2100"`
	Month int `json:"month" validate:"required,gte=1,lte=12"`
}

type incomeTaxReportRequest struct {
	Year    int  `json:"year" validate:"required,gte=2000,lte=2100"`
	Quarter *int `json:"quarter" validate:"omitempty,gte=1,lte=4"`
}

type generateReportRequest struct {
	ReportType string `json:"reportType" validate:"required,oneof=monthly quarterly yearly custom"`
	StartDate  string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Format     string `json:"format" validate:"omitempty,oneof=json csv"`
}

// Response view models. Amounts leave the engine as decimals and are
// converted at this edge, after rounding, so the wire carries plain numbers.

type salaryResponse struct {
	EmployeeName            string  `json:"employeeName"`
	BaseSalary              float64 `json:"baseSalary"`
	ActualSalary            float64 `json:"actualSalary"`
	Bonus                   float64 `json:"bonus"`
	GrossSalary             float64 `json:"grossSalary"`
	SocialInsurance         float64 `json:"socialInsurance"`
	HealthInsurance         float64 `json:"healthInsurance"`
	TaxableIncome           float64 `json:"taxableIncome"`
	PersonalIncomeTax       float64 `json:"personalIncomeTax"`
	TotalDeductions         float64 `json:"totalDeductions"`
	NetSalary               float64 `json:"netSalary"`
	EmployerSocialInsurance float64 `json:"employerSocialInsurance"`
	TotalEmployerCost       float64 `json:"totalEmployerCost"`
}

func newSalaryResponse(r finance.SalaryResult) salaryResponse {
	return salaryResponse{
		EmployeeName:            r.EmployeeName,
		BaseSalary:              amount(r.BaseSalary),
		ActualSalary:            amount(r.ActualSalary),
		Bonus:                   amount(r.Bonus),
		GrossSalary:             amount(r.GrossSalary),
		SocialInsurance:         amount(r.SocialInsurance),
		HealthInsurance:         amount(r.HealthInsurance),
		TaxableIncome:           amount(r.TaxableIncome),
		PersonalIncomeTax:       amount(r.PersonalIncomeTax),
		TotalDeductions:         amount(r.TotalDeductions),
		NetSalary:               amount(r.NetSalary),
		EmployerSocialInsurance: amount(r.EmployerSocialInsurance),
		TotalEmployerCost:       amount(r.TotalEmployerCost),
	}
}

type companyInfoView struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber"`
	TaxNumber          string `json:"taxNumber"`
	VATRegistered      bool   `json:"vatRegistered,omitempty"`
}

type vatDetailView struct {
	Date             string  `json:"date"`
	DocumentNo       string  `json:"documentNo"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	TotalAmount      float64 `json:"totalAmount"`
	VatAmount        float64 `json:"vatAmount"`
	AmountWithoutVat float64 `json:"amountWithoutVat"`
}

type vatReportResponse struct {
	Period      string          `json:"period"`
	CompanyInfo companyInfoView `json:"companyInfo"`
	Sales       struct {
		TotalSales   float64 `json:"totalSales"`
		VatableSales float64 `json:"vatableSales"`
		VatOnSales   float64 `json:"vatOnSales"`
		ExemptSales  float64 `json:"exemptSales"`
	} `json:"sales"`
	Purchases struct {
		TotalPurchases   float64 `json:"totalPurchases"`
		VatablePurchases float64 `json:"vatablePurchases"`
		VatOnPurchases   float64 `json:"vatOnPurchases"`
		ExemptPurchases  float64 `json:"exemptPurchases"`
	} `json:"purchases"`
	VatSummary struct {
		OutputVat     float64 `json:"outputVat"`
		InputVat      float64 `json:"inputVat"`
		VatPayable    float64 `json:"vatPayable"`
		VatRefundable float64 `json:"vatRefundable"`
	} `json:"vatSummary"`
	TransactionDetails struct {
		Sales     []vatDetailView `json:"sales"`
		Purchases []vatDetailView `json:"purchases"`
	} `json:"transactionDetails"`
}

func newVatReportResponse(r finance.VatReport) vatReportResponse {
	resp := vatReportResponse{
		Period: r.Period,
		CompanyInfo: companyInfoView{
			Name:               r.CompanyInfo.Name,
			RegistrationNumber: r.CompanyInfo.RegistrationNumber,
			TaxNumber:          r.CompanyInfo.TaxNumber,
			VATRegistered:      r.CompanyInfo.VATRegistered,
		},
	}
	resp.Sales.TotalSales = amount(r.Sales.TotalSales)
	resp.Sales.VatableSales = amount(r.Sales.VatableSales)
	resp.Sales.VatOnSales = amount(r.Sales.VatOnSales)
	resp.Sales.ExemptSales = amount(r.Sales.ExemptSales)
	resp.Purchases.TotalPurchases = amount(r.Purchases.TotalPurchases)
	resp.Purchases.VatablePurchases = amount(r.Purchases.VatablePurchases)
	resp.Purchases.VatOnPurchases = amount(r.Purchases.VatOnPurchases)
	resp.Purchases.ExemptPurchases = amount(r.Purchases.ExemptPurchases)
	resp.VatSummary.OutputVat = amount(r.Summary.OutputVat)
	resp.VatSummary.InputVat = amount(r.Summary.InputVat)
	resp.VatSummary.VatPayable = amount(r.Summary.VatPayable)
	resp.VatSummary.VatRefundable = amount(r.Summary.VatRefundable)
	resp.TransactionDetails.Sales = newVatDetailViews(r.SalesDetails)
	resp.TransactionDetails.Purchases = newVatDetailViews(r.PurchaseDetails)
	return resp
}

func newVatDetailViews(details []finance.VatTransactionDetail) []vatDetailView {
	views := make([]vatDetailView, 0, len(details))
	for _, d := range details {
		views = append(views, vatDetailView{
			Date:             d.Date.Format("2006-01-02"),
			DocumentNo:       d.DocumentNo,
			Description:      d.Description,
			Category:         d.Category,
			TotalAmount:      amount(d.TotalAmount),
			VatAmount:        amount(d.VatAmount),
			AmountWithoutVat: amount(d.AmountWithoutVat),
		})
	}
	return views
}

type monthlyBreakdownView struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Profit  float64 `json:"profit"`
}

type incomeTaxReportResponse struct {
	Period      string          `json:"period"`
	CompanyInfo companyInfoView `json:"companyInfo"`
	Income      struct {
		GrossIncome float64 `json:"grossIncome"`
		OtherIncome float64 `json:"otherIncome"`
		TotalIncome float64 `json:"totalIncome"`
	} `json:"income"`
	Expenses struct {
		OperatingExpenses      float64 `json:"operatingExpenses"`
		AdministrativeExpenses float64 `json:"administrativeExpenses"`
		OtherExpenses          float64 `json:"otherExpenses"`
		TotalExpenses          float64 `json:"totalExpenses"`
	} `json:"expenses"`
	TaxCalculation struct {
		TaxableIncome float64 `json:"taxableIncome"`
		TaxRate       float64 `json:"taxRate"`
		IncomeTax     float64 `json:"incomeTax"`
		PrepaidTax    float64 `json:"prepaidTax"`
		TaxPayable    float64 `json:"taxPayable"`
	} `json:"taxCalculation"`
	MonthlyBreakdown []monthlyBreakdownView `json:"monthlyBreakdown"`
}

func newIncomeTaxReportResponse(r finance.IncomeTaxReport) incomeTaxReportResponse {
	resp := incomeTaxReportResponse{
		Period: r.Period,
		CompanyInfo: companyInfoView{
			Name:               r.CompanyInfo.Name,
			RegistrationNumber: r.CompanyInfo.RegistrationNumber,
			TaxNumber:          r.CompanyInfo.TaxNumber,
		},
	}
	resp.Income.GrossIncome = amount(r.Income.GrossIncome)
	resp.Income.OtherIncome = amount(r.Income.OtherIncome)
	resp.Income.TotalIncome = amount(r.Income.TotalIncome)
	resp.Expenses.OperatingExpenses = amount(r.Expenses.OperatingExpenses)
	resp.Expenses.AdministrativeExpenses = amount(r.Expenses.AdministrativeExpenses)
	resp.Expenses.OtherExpenses = amount(r.Expenses.OtherExpenses)
	resp.Expenses.TotalExpenses = amount(r.Expenses.TotalExpenses)
	resp.TaxCalculation.TaxableIncome = amount(r.TaxCalculation.TaxableIncome)
	resp.TaxCalculation.TaxRate = amount(r.TaxCalculation.TaxRate)
	resp.TaxCalculation.IncomeTax = amount(r.TaxCalculation.IncomeTax)
	resp.TaxCalculation.PrepaidTax = amount(r.TaxCalculation.PrepaidTax)
	resp.TaxCalculation.TaxPayable = amount(r.TaxCalculation.TaxPayable)
	resp.MonthlyBreakdown = make([]monthlyBreakdownView, 0, len(r.MonthlyBreakdown))
	for _, entry := range r.MonthlyBreakdown {
		resp.MonthlyBreakdown = append(resp.MonthlyBreakdown, monthlyBreakdownView{
			Month:   entry.Month,
			Income:  amount(entry.Income),
			Expense: amount(entry.Expense),
			Profit:  amount(entry.Profit),
		})
	}
	return resp
}

type transactionView struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Account     string  `json:"account,omitempty"`
	DocumentNo  string  `json:"documentNo,omitempty"`
	Description string  `json:"description,omitempty"`
}

type genericReportResponse struct {
	ReportType string `json:"reportType"`
	Period     struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"period"`
	Summary struct {
		TotalIncome      float64 `json:"totalIncome"`
		TotalExpense     float64 `json:"totalExpense"`
		NetProfit        float64 `json:"netProfit"`
		TransactionCount int     `json:"transactionCount"`
	} `json:"summary"`
	IncomeByCategory  map[string]float64 `json:"incomeByCategory"`
	ExpenseByCategory map[string]float64 `json:"expenseByCategory"`
	Transactions      []transactionView  `json:"transactions"`
	CSVData           string             `json:"csvData,omitempty"`
}

func newGenericReportResponse(r finance.GenericReport) genericReportResponse {
	resp := genericReportResponse{ReportType: r.ReportType}
	resp.Period.Start = r.PeriodStart.Format("2006-01-02")
	resp.Period.End = r.PeriodEnd.Format("2006-01-02")
	resp.Summary.TotalIncome = amount(r.Summary.TotalIncome)
	resp.Summary.TotalExpense = amount(r.Summary.TotalExpense)
	resp.Summary.NetProfit = amount(r.Summary.NetProfit)
	resp.Summary.TransactionCount = r.Summary.TransactionCount
	resp.IncomeByCategory = amountMap(r.IncomeByCategory)
	resp.ExpenseByCategory = amountMap(r.ExpenseByCategory)
	resp.Transactions = make([]transactionView, 0, len(r.Transactions))
	for _, tx := range r.Transactions {
		resp.Transactions = append(resp.Transactions, transactionView{
			ID:          tx.ID.String(),
			Date:        tx.Date.Format("2006-01-02"),
			Type:        string(tx.Type),
			Amount:      amount(tx.Amount),
			Category:    tx.CategoryLabel(),
			Account:     tx.Account,
			DocumentNo:  tx.DocumentNo,
			Description: tx.Description,
		})
	}
	resp.CSVData = r.CSVData
	return resp
}

func amount(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func decimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func amountMap(m map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = amount(v.Round(2))
	}
	return out
}
