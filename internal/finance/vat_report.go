package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyInfo is the report header block taken from the tax profile.
type CompanyInfo struct {
	Name               string
	RegistrationNumber string
	TaxNumber          string
	VATRegistered      bool
}

// VatSales summarizes the sales side of a VAT return. VatableSales is the
// net-of-VAT portion; exempt categories are not modeled and stay zero.
type VatSales struct {
	TotalSales   decimal.Decimal
	VatableSales decimal.Decimal
	VatOnSales   decimal.Decimal
	ExemptSales  decimal.Decimal
}

// VatPurchases mirrors VatSales for the purchase side.
type VatPurchases struct {
	TotalPurchases   decimal.Decimal
	VatablePurchases decimal.Decimal
	VatOnPurchases   decimal.Decimal
	ExemptPurchases  decimal.Decimal
}

// VatSummary nets output VAT against input VAT. Payable and refundable are
// mutually exclusive; at most one is nonzero.
type VatSummary struct {
	OutputVat     decimal.Decimal
	InputVat      decimal.Decimal
	VatPayable    decimal.Decimal
	VatRefundable decimal.Decimal
}

// VatTransactionDetail is one row of the per-transaction annex, rounded to
// two decimals for presentation.
type VatTransactionDetail struct {
	Date             time.Time
	DocumentNo       string
	Description      string
	Category         string
	TotalAmount      decimal.Decimal
	VatAmount        decimal.Decimal
	AmountWithoutVat decimal.Decimal
}

// VatReport is a monthly VAT return.
type VatReport struct {
	Period          string
	CompanyInfo     CompanyInfo
	Sales           VatSales
	Purchases       VatPurchases
	Summary         VatSummary
	SalesDetails    []VatTransactionDetail
	PurchaseDetails []VatTransactionDetail
}

// BuildVatReport classifies income transactions as sales and expense
// transactions as purchases, decomposes the VAT share of each side at the
// aggregate level, and emits detail rows in the order the transactions were
// supplied (callers sort by date upstream for chronological output).
func BuildVatReport(period ReportPeriod, transactions []Transaction, settings CompanySettings) VatReport {
	rate := settings.EffectiveVATRate()
	registered := settings.VATRegistered

	totalSales := decimal.Zero
	totalPurchases := decimal.Zero
	salesDetails := make([]VatTransactionDetail, 0)
	purchaseDetails := make([]VatTransactionDetail, 0)

	for _, tx := range transactions {
		if !period.Contains(tx.Date) {
			continue
		}
		parts := DecomposeVAT(tx.Amount, rate, registered)
		detail := VatTransactionDetail{
			Date:             tx.Date,
			DocumentNo:       tx.DocumentNo,
			Description:      tx.Description,
			Category:         tx.CategoryLabel(),
			TotalAmount:      round2(tx.Amount),
			VatAmount:        round2(parts.VAT),
			AmountWithoutVat: round2(parts.Net),
		}
		if tx.Type == TypeIncome {
			totalSales = totalSales.Add(tx.Amount)
			salesDetails = append(salesDetails, detail)
		} else {
			totalPurchases = totalPurchases.Add(tx.Amount)
			purchaseDetails = append(purchaseDetails, detail)
		}
	}

	vatOnSales := DecomposeVAT(totalSales, rate, registered).VAT
	vatOnPurchases := DecomposeVAT(totalPurchases, rate, registered).VAT

	outputVat := round2(vatOnSales)
	inputVat := round2(vatOnPurchases)
	vatPayable := decimal.Max(decimal.Zero, outputVat.Sub(inputVat))
	vatRefundable := decimal.Max(decimal.Zero, inputVat.Sub(outputVat))

	return VatReport{
		Period: period.Label,
		CompanyInfo: CompanyInfo{
			Name:               settings.CompanyName,
			RegistrationNumber: settings.RegistrationNumber,
			TaxNumber:          settings.TaxNumber,
			VATRegistered:      settings.VATRegistered,
		},
		Sales: VatSales{
			TotalSales:   round2(totalSales),
			VatableSales: round2(totalSales.Sub(vatOnSales)),
			VatOnSales:   outputVat,
			ExemptSales:  decimal.Zero,
		},
		Purchases: VatPurchases{
			TotalPurchases:   round2(totalPurchases),
			VatablePurchases: round2(totalPurchases.Sub(vatOnPurchases)),
			VatOnPurchases:   inputVat,
			ExemptPurchases:  decimal.Zero,
		},
		Summary: VatSummary{
			OutputVat:     outputVat,
			InputVat:      inputVat,
			VatPayable:    vatPayable,
			VatRefundable: vatRefundable,
		},
		SalesDetails:    salesDetails,
		PurchaseDetails: purchaseDetails,
	}
}
