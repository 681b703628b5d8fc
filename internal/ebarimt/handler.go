package ebarimt

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/altanbooks/altanbooks/internal/shared"
)

type sendRequest struct {
	TransactionID string `json:"transactionId" validate:"required,uuid4"`
	CustomerTin   string `json:"customerTin" validate:"omitempty,max=20"`
	CustomerName  string `json:"customerName" validate:"omitempty,max=200"`
	Items         []struct {
		Name        string  `json:"name" validate:"required"`
		Quantity    float64 `json:"quantity" validate:"gt=0"`
		UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
		TotalAmount float64 `json:"totalAmount" validate:"gte=0"`
	} `json:"items" validate:"required,min=1,dive"`
}

type sendResponse struct {
	Success  bool   `json:"success"`
	BillID   string `json:"billId,omitempty"`
	QRData   string `json:"qrData,omitempty"`
	Lottery  string `json:"lottery,omitempty"`
	Message  string `json:"message,omitempty"`
	TestMode bool   `json:"testMode"`
}

// Handler exposes receipt submission.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler wires the e-barimt handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers the submission operation.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/ebarimt/send", h.Send)
}

// Send submits a receipt for a transaction.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		shared.RespondError(w, h.logger, shared.ErrUnauthorized)
		return
	}
	var req sendRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, h.logger, shared.InvalidInput("Хүсэлтийн утга буруу байна"))
		return
	}
	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		shared.RespondError(w, h.logger, shared.InvalidInput("Гүйлгээний дугаар буруу байна"))
		return
	}

	items := make([]Item, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, Item{
			Name:        item.Name,
			Quantity:    decimal.NewFromFloat(item.Quantity),
			UnitPrice:   decimal.NewFromFloat(item.UnitPrice),
			TotalAmount: decimal.NewFromFloat(item.TotalAmount),
		})
	}

	result, err := h.service.Send(r.Context(), identity.UserID, Request{
		TransactionID: transactionID,
		CustomerTin:   req.CustomerTin,
		CustomerName:  req.CustomerName,
		Items:         items,
	})
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, sendResponse{
		Success:  result.Success,
		BillID:   result.BillID,
		QRData:   result.QRData,
		Lottery:  result.Lottery,
		Message:  result.Message,
		TestMode: result.TestMode,
	})
}
