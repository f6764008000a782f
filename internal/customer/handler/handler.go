package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"accounts/internal/customer/models"
	"accounts/pkg/correlation"
	dErrors "accounts/pkg/domain-errors"
	"accounts/pkg/platform/httputil"
	"accounts/pkg/platform/privacy"
	s "accounts/pkg/string"
	"accounts/pkg/validation"
)

// Service defines the customer operations the handler needs.
type Service interface {
	FetchCustomerDetails(ctx context.Context, correlationID, mobileNumber string) (*models.CustomerDetails, error)
}

// Handler serves the customer details endpoint.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register registers the customer routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/fetchCustomerDetails", h.HandleFetchCustomerDetails)
}

// HandleFetchCustomerDetails implements GET /api/fetchCustomerDetails?mobileNumber=.
func (h *Handler) HandleFetchCustomerDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	correlationID := correlation.FromContext(ctx)
	if correlationID == "" {
		correlationID = r.Header.Get(correlation.Header)
	}

	req := models.FetchDetailsRequest{MobileNumber: r.URL.Query().Get("mobileNumber")}
	s.TrimStrings(&req.MobileNumber)
	if err := validation.Validate(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid fetch customer details request",
			"correlation_id", correlationID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	details, err := h.service.FetchCustomerDetails(ctx, correlationID, req.MobileNumber)
	if err != nil {
		attrs := []any{
			"correlation_id", correlationID,
			"mobile_number", privacy.MaskMobileNumber(req.MobileNumber),
			"error", err,
		}
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.InfoContext(ctx, "customer details not found", attrs...)
		} else {
			h.logger.ErrorContext(ctx, "failed to fetch customer details", attrs...)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, details)
}
