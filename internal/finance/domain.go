package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
// Direction is never carried by a negative amount.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction statuses used by the expense approval flow.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// UncategorizedLabel is the sentinel bucket for transactions without a
// resolvable category.
const UncategorizedLabel = "Ангилаагүй"

// Transaction is a dated, typed money movement. Amounts are non-negative
// decimals; the record is immutable once handed to the engine.
type Transaction struct {
	ID           uuid.UUID
	Date         time.Time
	Type         TransactionType
	Amount       decimal.Decimal
	CategoryID   *uuid.UUID
	CategoryName string
	Account      string
	DocumentNo   string
	Description  string
	Status       string
}

// CategoryLabel resolves the display bucket for the transaction.
func (t Transaction) CategoryLabel() string {
	if t.CategoryName == "" {
		return UncategorizedLabel
	}
	return t.CategoryName
}

// Category labels income/expense buckets. The engine only reads the name.
type Category struct {
	ID    uuid.UUID
	Name  string
	Type  TransactionType
	Color string
}

// CompanySettings is the per-company tax profile. Exactly one record exists
// per company; reports that need it treat absence as a hard error.
type CompanySettings struct {
	CompanyName        string
	RegistrationNumber string
	TaxNumber          string
	VATRegistered      bool
	VATRate            decimal.Decimal
	IncomeTaxRate      decimal.Decimal
	EbarimtTestMode    bool
	EbarimtAPIKey      string
}

// DefaultVATRate and DefaultIncomeTaxRate apply when the stored profile
// carries no explicit rate.
var (
	DefaultVATRate       = decimal.NewFromInt(10)
	DefaultIncomeTaxRate = decimal.NewFromInt(10)
)

// EffectiveVATRate returns the configured VAT rate, falling back to the default.
func (s CompanySettings) EffectiveVATRate() decimal.Decimal {
	if s.VATRate.IsPositive() {
		return s.VATRate
	}
	return DefaultVATRate
}

// EffectiveIncomeTaxRate returns the configured income tax rate, falling back
// to the default.
func (s CompanySettings) EffectiveIncomeTaxRate() decimal.Decimal {
	if s.IncomeTaxRate.IsPositive() {
		return s.IncomeTaxRate
	}
	return DefaultIncomeTaxRate
}

var hundred = decimal.NewFromInt(100)

// round2 applies the report-level two-decimal rounding. shopspring rounds
// half away from zero, which is the regime's rounding rule.
func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// roundUnit rounds to whole currency units, half away from zero.
func roundUnit(d decimal.Decimal) decimal.Decimal { return d.Round(0) }
