package finance

import "github.com/shopspring/decimal"

// MonthTotals holds the income/expense sums for a single month bucket.
type MonthTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Aggregates is the shared grouping primitive behind every report: totals by
// type, per-category sums, and per-month buckets pre-seeded with zeros for
// every month of the range. All sums are exact decimals; rounding belongs to
// the report output layer.
type Aggregates struct {
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	IncomeByCategory  map[string]decimal.Decimal
	ExpenseByCategory map[string]decimal.Decimal
	ByMonth           map[int]MonthTotals
	Count             int
}

// Aggregate folds the transactions falling inside the period into running
// sums. Transactions dated exactly on the period's start or end are included.
// Input order is preserved implicitly; the fold itself is order-insensitive.
func Aggregate(transactions []Transaction, period ReportPeriod) Aggregates {
	agg := Aggregates{
		TotalIncome:       decimal.Zero,
		TotalExpense:      decimal.Zero,
		IncomeByCategory:  make(map[string]decimal.Decimal),
		ExpenseByCategory: make(map[string]decimal.Decimal),
		ByMonth:           make(map[int]MonthTotals),
	}
	for _, m := range period.Months() {
		agg.ByMonth[m] = MonthTotals{Income: decimal.Zero, Expense: decimal.Zero}
	}
	for _, tx := range transactions {
		if !period.Contains(tx.Date) {
			continue
		}
		agg.add(tx)
	}
	return agg
}

func (a *Aggregates) add(tx Transaction) {
	a.Count++
	label := tx.CategoryLabel()
	month := int(tx.Date.Month())
	bucket, seeded := a.ByMonth[month]

	switch tx.Type {
	case TypeIncome:
		a.TotalIncome = a.TotalIncome.Add(tx.Amount)
		a.IncomeByCategory[label] = a.IncomeByCategory[label].Add(tx.Amount)
		if seeded {
			bucket.Income = bucket.Income.Add(tx.Amount)
			a.ByMonth[month] = bucket
		}
	default:
		a.TotalExpense = a.TotalExpense.Add(tx.Amount)
		a.ExpenseByCategory[label] = a.ExpenseByCategory[label].Add(tx.Amount)
		if seeded {
			bucket.Expense = bucket.Expense.Add(tx.Amount)
			a.ByMonth[month] = bucket
		}
	}
}

// NetProfit is total income minus total expense, unrounded.
func (a Aggregates) NetProfit() decimal.Decimal {
	return a.TotalIncome.Sub(a.TotalExpense)
}
