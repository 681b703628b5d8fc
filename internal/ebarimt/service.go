package ebarimt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/altanbooks/altanbooks/internal/finance"
	"github.com/altanbooks/altanbooks/internal/shared"
)

// Item is one receipt line as supplied by the caller.
type Item struct {
	Name        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal
}

// Request describes one receipt submission.
type Request struct {
	TransactionID uuid.UUID
	CustomerTin   string
	CustomerName  string
	Items         []Item
}

// Result is the submission outcome surfaced to the caller.
type Result struct {
	Success  bool
	BillID   string
	QRData   string
	Lottery  string
	Message  string
	TestMode bool
}

// Repository supplies the tax profile and transaction lookups.
type Repository interface {
	CompanySettings(ctx context.Context, userID uuid.UUID) (finance.CompanySettings, error)
	Transaction(ctx context.Context, userID, id uuid.UUID) (finance.Transaction, error)
}

// Service submits receipts, simulating the exchange when the company runs in
// test mode.
type Service struct {
	repo   Repository
	client *Client
	clock  func() time.Time
	billID func() string
}

// NewService constructs the submission service.
func NewService(repo Repository, client *Client) *Service {
	return &Service{
		repo:   repo,
		client: client,
		clock:  func() time.Time { return time.Now().UTC() },
		billID: func() string { return uuid.NewString() },
	}
}

// Send submits the receipt for the caller's transaction.
func (s *Service) Send(ctx context.Context, userID uuid.UUID, req Request) (Result, error) {
	if len(req.Items) == 0 {
		return Result{}, shared.InvalidInput("Баримтын мөр хоосон байж болохгүй")
	}

	settings, err := s.repo.CompanySettings(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Result{}, shared.MissingConfiguration("Эхлээд компанийн мэдээллээ тохируулна уу")
		}
		return Result{}, fmt.Errorf("load company settings: %w", err)
	}

	if _, err := s.repo.Transaction(ctx, userID, req.TransactionID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Result{}, shared.NotFound("Гүйлгээ олдсонгүй")
		}
		return Result{}, fmt.Errorf("load transaction: %w", err)
	}

	totalAmount := decimal.Zero
	for _, item := range req.Items {
		totalAmount = totalAmount.Add(item.TotalAmount)
	}
	vatAmount := finance.DecomposeVAT(totalAmount, settings.EffectiveVATRate(), settings.VATRegistered).VAT

	if settings.EbarimtTestMode {
		return s.simulate(req), nil
	}

	if settings.EbarimtAPIKey == "" {
		return Result{}, shared.MissingConfiguration("E-Barimt API түлхүүр тохируулаагүй байна")
	}

	payload := s.buildPayload(req, settings, totalAmount, vatAmount)
	bill, err := s.client.SubmitBill(ctx, settings.EbarimtAPIKey, payload)
	if err != nil {
		return Result{}, fmt.Errorf("submit bill: %w", err)
	}
	return Result{
		Success:  bill.Success,
		BillID:   bill.BillID,
		QRData:   bill.QRData,
		Lottery:  bill.Lottery,
		Message:  bill.Message,
		TestMode: false,
	}, nil
}

// simulate mirrors the upstream response shape without leaving the process.
func (s *Service) simulate(req Request) Result {
	id := s.billID()
	lottery := id
	if len(lottery) > 8 {
		lottery = lottery[:8]
	}
	return Result{
		Success:  true,
		BillID:   fmt.Sprintf("TEST-%d-%s", s.clock().Unix(), id),
		QRData:   fmt.Sprintf("https://ebarimt.mn/test?id=%s", req.TransactionID),
		Lottery:  lottery,
		Message:  "Тест горимд амжилттай илгээлээ",
		TestMode: true,
	}
}

func (s *Service) buildPayload(req Request, settings finance.CompanySettings, total, vat decimal.Decimal) BillPayload {
	taxType := "3"
	if settings.VATRegistered {
		taxType = "1"
	}
	// B2B when the customer supplied a taxpayer number, B2C otherwise.
	billType := "1"
	if req.CustomerTin != "" {
		billType = "3"
	}

	stocks := make([]StockItem, 0, len(req.Items))
	for _, item := range req.Items {
		itemVat := finance.DecomposeVAT(item.TotalAmount, settings.EffectiveVATRate(), settings.VATRegistered).VAT
		stocks = append(stocks, StockItem{
			Name:        item.Name,
			MeasureUnit: "ш",
			Qty:         item.Quantity.String(),
			UnitPrice:   item.UnitPrice.String(),
			TotalAmount: item.TotalAmount.String(),
			CityTax:     "0",
			VAT:         itemVat.StringFixed(2),
		})
	}

	return BillPayload{
		Amount:        total.String(),
		VAT:           vat.StringFixed(2),
		CashAmount:    total.String(),
		NonCashAmount: "0",
		CityTax:       "0",
		PosNo:         strconv.Itoa(1),
		CustomerNo:    req.CustomerTin,
		BillType:      billType,
		TaxType:       taxType,
		Stocks:        stocks,
	}
}
