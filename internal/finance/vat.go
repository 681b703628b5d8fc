package finance

import "github.com/shopspring/decimal"

// VatParts is the decomposition of a VAT-inclusive amount.
type VatParts struct {
	VAT decimal.Decimal
	Net decimal.Decimal
}

// DecomposeVAT back-calculates the tax share of a sticker price that already
// contains it: vat = amount * rate / (100 + rate). For an unregistered
// company, or a non-positive rate, the whole amount is net.
//
// Both parts are returned unrounded so aggregation within a report does not
// compound rounding error; callers round at output time. The rounded parts of
// a decomposition may differ from the rounded amount by one rounding unit,
// which is accepted, not corrected.
func DecomposeVAT(amount, rate decimal.Decimal, registered bool) VatParts {
	if !registered || !rate.IsPositive() {
		return VatParts{VAT: decimal.Zero, Net: amount}
	}
	vat := amount.Mul(rate).Div(hundred.Add(rate))
	return VatParts{VAT: vat, Net: amount.Sub(vat)}
}
