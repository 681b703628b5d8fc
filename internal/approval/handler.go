package approval

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/altanbooks/altanbooks/internal/shared"
)

type decideRequest struct {
	TransactionID string `json:"transactionId" validate:"required,uuid4"`
	Action        string `json:"action" validate:"required,oneof=approve reject"`
	Comment       string `json:"comment" validate:"omitempty,max=500"`
}

type decideResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	ApprovedAt    string `json:"approvedAt,omitempty"`
	ApprovedBy    string `json:"approvedBy,omitempty"`
	Message       string `json:"message"`
}

// Handler exposes the approval decision endpoint.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler wires the approval handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers the approval operation.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/expenses/approve", h.Decide)
}

// Decide approves or rejects an expense transaction.
func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		shared.RespondError(w, h.logger, shared.ErrUnauthorized)
		return
	}
	var req decideRequest
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

	decision, err := h.service.Decide(r.Context(), identity.UserID, transactionID, req.Action, req.Comment)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, decideResponse{
		Success:       decision.Success,
		TransactionID: decision.TransactionID.String(),
		Status:        decision.Status,
		ApprovedAt:    decision.DecidedAt.Format(time.RFC3339),
		ApprovedBy:    decision.DecidedBy,
		Message:       decision.Message,
	})
}
