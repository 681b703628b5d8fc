package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/altanbooks/altanbooks/internal/finance"
	"github.com/altanbooks/altanbooks/internal/observability"
	"github.com/altanbooks/altanbooks/internal/shared"
)

// ReportService is the engine surface the handler drives.
type ReportService interface {
	CalculateSalary(ctx context.Context, input finance.SalaryInput) (finance.SalaryResult, error)
	VatReport(ctx context.Context, userID uuid.UUID, year, month int) (finance.VatReport, error)
	IncomeTaxReport(ctx context.Context, userID uuid.UUID, year int, quarter *int) (finance.IncomeTaxReport, error)
	GenericReport(ctx context.Context, userID uuid.UUID, reportType, startDate, endDate string, format finance.ReportFormat) (finance.GenericReport, error)
}

// Handler exposes the reporting engine as stateless JSON-in/JSON-out POST
// operations.
type Handler struct {
	logger    *slog.Logger
	service   ReportService
	validator *validator.Validate
	cache     *ReportCache
	metrics   *observability.Metrics
	group     singleflight.Group
}

// NewHandler wires the reporting handler. cache and metrics may be nil.
func NewHandler(logger *slog.Logger, service ReportService, cache *ReportCache, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
		cache:     cache,
		metrics:   metrics,
	}
}

// MountRoutes registers the report operations on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/salary/calculate", h.CalculateSalary)
	r.Post("/reports/vat", h.GenerateVatReport)
	r.Post("/reports/income-tax", h.GenerateIncomeTaxReport)
	r.Post("/reports/generate", h.GenerateReport)
}

// CalculateSalary runs the payroll decomposition for one employee.
func (h *Handler) CalculateSalary(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity(w, r); !ok {
		return
	}
	var req salaryRequest
	if !h.decode(w, r, &req) {
		return
	}
	result, err := h.service.CalculateSalary(r.Context(), finance.SalaryInput{
		EmployeeName:  req.EmployeeName,
		BaseSalary:    decimalFromFloat(req.BaseSalary),
		WorkDays:      req.WorkDays,
		TotalWorkDays: req.TotalWorkDays,
		Bonus:         decimalFromFloat(req.Bonus),
		Deductions:    decimalFromFloat(req.Deductions),
	})
	h.metrics.ReportGenerated("salary", err)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, newSalaryResponse(result))
}

// GenerateVatReport builds the monthly VAT return, serving repeated requests
// for the same period from the cache.
func (h *Handler) GenerateVatReport(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	var req vatReportRequest
	if !h.decode(w, r, &req) {
		return
	}
	key := VatCacheKey(identity.UserID, req.Year, req.Month)
	h.respondCached(w, r, "vat", key, func(ctx context.Context) (any, error) {
		report, err := h.service.VatReport(ctx, identity.UserID, req.Year, req.Month)
		if err != nil {
			return nil, err
		}
		return newVatReportResponse(report), nil
	})
}

// GenerateIncomeTaxReport builds the quarterly or annual income-tax return.
func (h *Handler) GenerateIncomeTaxReport(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	var req incomeTaxReportRequest
	if !h.decode(w, r, &req) {
		return
	}
	key := IncomeTaxCacheKey(identity.UserID, req.Year, req.Quarter)
	h.respondCached(w, r, "income_tax", key, func(ctx context.Context) (any, error) {
		report, err := h.service.IncomeTaxReport(ctx, identity.UserID, req.Year, req.Quarter)
		if err != nil {
			return nil, err
		}
		return newIncomeTaxReportResponse(report), nil
	})
}

// GenerateReport builds the ad-hoc period report, JSON or CSV.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	var req generateReportRequest
	if !h.decode(w, r, &req) {
		return
	}
	format := finance.FormatJSON
	if req.Format == string(finance.FormatCSV) {
		format = finance.FormatCSV
	}
	report, err := h.service.GenericReport(r.Context(), identity.UserID, req.ReportType, req.StartDate, req.EndDate, format)
	h.metrics.ReportGenerated("generic", err)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, newGenericReportResponse(report))
}

// respondCached answers from the report cache when possible and collapses
// concurrent builds of the same report into one.
func (h *Handler) respondCached(w http.ResponseWriter, r *http.Request, kind, key string, build func(context.Context) (any, error)) {
	ctx := r.Context()
	if payload, ok := h.cache.Get(ctx, key); ok {
		writeRawJSON(w, payload)
		return
	}
	result := h.group.DoChan(key, func() (any, error) {
		vm, err := build(ctx)
		h.metrics.ReportGenerated(kind, err)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(vm)
		if err != nil {
			return nil, err
		}
		h.cache.Set(ctx, key, payload)
		return payload, nil
	})
	select {
	case <-ctx.Done():
		shared.RespondError(w, h.logger, ctx.Err())
	case res := <-result:
		if res.Err != nil {
			shared.RespondError(w, h.logger, res.Err)
			return
		}
		writeRawJSON(w, res.Val.([]byte))
	}
}

func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (shared.Identity, bool) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		shared.RespondError(w, h.logger, shared.ErrUnauthorized)
		return shared.Identity{}, false
	}
	return identity, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := shared.DecodeJSON(r, dst); err != nil {
		shared.RespondError(w, h.logger, err)
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		shared.RespondError(w, h.logger, shared.InvalidInput("Хүсэлтийн утга буруу байна"))
		return false
	}
	return true
}

func writeRawJSON(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
