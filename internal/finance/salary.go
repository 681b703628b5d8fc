package finance

import (
	"github.com/shopspring/decimal"

	"github.com/altanbooks/altanbooks/internal/shared"
)

// PayrollRates holds the statutory withholding schedule. The observed regime
// hard-coded these inside the salary routine while sourcing VAT and income tax
// rates from configuration; here the schedule is an explicit input with the
// statutory values as defaults.
type PayrollRates struct {
	SocialInsurance         decimal.Decimal
	HealthInsurance         decimal.Decimal
	PersonalIncomeTax       decimal.Decimal
	EmployerSocialInsurance decimal.Decimal
	EmployerHealthInsurance decimal.Decimal
}

// DefaultPayrollRates is the statutory schedule: 11.5% / 2% / 10% employee,
// 12.5% + 2% employer.
func DefaultPayrollRates() PayrollRates {
	return PayrollRates{
		SocialInsurance:         decimal.NewFromFloat(0.115),
		HealthInsurance:         decimal.NewFromFloat(0.02),
		PersonalIncomeTax:       decimal.NewFromFloat(0.10),
		EmployerSocialInsurance: decimal.NewFromFloat(0.125),
		EmployerHealthInsurance: decimal.NewFromFloat(0.02),
	}
}

// SalaryInput carries one employee's payroll parameters for a period.
type SalaryInput struct {
	EmployeeName  string
	BaseSalary    decimal.Decimal
	WorkDays      int
	TotalWorkDays int
	Bonus         decimal.Decimal
	Deductions    decimal.Decimal
}

// SalaryResult is the full payroll decomposition. Statutory amounts are whole
// currency units, rounded half away from zero at the step they arise so the
// withheld figures reconcile exactly with the reported totals.
type SalaryResult struct {
	EmployeeName            string
	BaseSalary              decimal.Decimal
	ActualSalary            decimal.Decimal
	Bonus                   decimal.Decimal
	GrossSalary             decimal.Decimal
	SocialInsurance         decimal.Decimal
	HealthInsurance         decimal.Decimal
	TaxableIncome           decimal.Decimal
	PersonalIncomeTax       decimal.Decimal
	TotalDeductions         decimal.Decimal
	NetSalary               decimal.Decimal
	EmployerSocialInsurance decimal.Decimal
	TotalEmployerCost       decimal.Decimal
}

// CalculateSalary prorates the base salary by days worked and decomposes the
// gross into employee withholding and employer cost. The calculation is pure;
// a zero gross yields all-zero deductions, and a negative gross is allowed by
// the arithmetic (the caller treats it as a data-quality warning).
func CalculateSalary(input SalaryInput, rates PayrollRates) (SalaryResult, error) {
	if input.TotalWorkDays <= 0 {
		return SalaryResult{}, shared.InvalidInput("Нийт ажлын өдөр 0-ээс их байх ёстой")
	}
	if input.WorkDays < 0 {
		return SalaryResult{}, shared.InvalidInput("Ажилласан өдөр сөрөг байж болохгүй")
	}
	if input.BaseSalary.IsNegative() || input.Bonus.IsNegative() || input.Deductions.IsNegative() {
		return SalaryResult{}, shared.InvalidInput("Цалингийн дүн сөрөг байж болохгүй")
	}

	actual := input.BaseSalary.
		Div(decimal.NewFromInt(int64(input.TotalWorkDays))).
		Mul(decimal.NewFromInt(int64(input.WorkDays)))
	gross := actual.Add(input.Bonus).Sub(input.Deductions)

	socialInsurance := roundUnit(gross.Mul(rates.SocialInsurance))
	healthInsurance := roundUnit(gross.Mul(rates.HealthInsurance))
	taxableIncome := gross.Sub(socialInsurance).Sub(healthInsurance)
	personalIncomeTax := roundUnit(taxableIncome.Mul(rates.PersonalIncomeTax))

	totalDeductions := socialInsurance.Add(healthInsurance).Add(personalIncomeTax)
	netSalary := gross.Sub(totalDeductions)

	employerSocialInsurance := roundUnit(gross.Mul(rates.EmployerSocialInsurance.Add(rates.EmployerHealthInsurance)))
	totalEmployerCost := gross.Add(employerSocialInsurance)

	return SalaryResult{
		EmployeeName:            input.EmployeeName,
		BaseSalary:              input.BaseSalary,
		ActualSalary:            roundUnit(actual),
		Bonus:                   input.Bonus,
		GrossSalary:             roundUnit(gross),
		SocialInsurance:         socialInsurance,
		HealthInsurance:         healthInsurance,
		TaxableIncome:           roundUnit(taxableIncome),
		PersonalIncomeTax:       personalIncomeTax,
		TotalDeductions:         totalDeductions,
		NetSalary:               roundUnit(netSalary),
		EmployerSocialInsurance: employerSocialInsurance,
		TotalEmployerCost:       roundUnit(totalEmployerCost),
	}, nil
}
