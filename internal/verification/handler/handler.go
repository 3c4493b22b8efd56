package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hkidcheck/internal/verification/service"
	"hkidcheck/pkg/hkid"
	"hkidcheck/pkg/platform/httputil"
	"hkidcheck/pkg/requestcontext"
)

// Service defines the interface for identifier operations.
type Service interface {
	Validate(ctx context.Context, req service.Request) service.Result
	ValidateBatch(ctx context.Context, reqs []service.Request) ([]service.Result, error)
	Normalize(ctx context.Context, raw string) (hkid.Candidate, error)
	CheckDigit(ctx context.Context, body string) (hkid.Identifier, error)
	Format(ctx context.Context, raw string) string
}

// Handler wires HKID endpoints to the verification service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a verification handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts HKID endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/hkid", func(r chi.Router) {
		r.Post("/validate", h.HandleValidate)
		r.Post("/validate/batch", h.HandleValidateBatch)
		r.Post("/normalize", h.HandleNormalize)
		r.Post("/check-digit", h.HandleCheckDigit)
		r.Post("/format", h.HandleFormat)
	})
}

// HandleValidate handles POST /hkid/validate requests.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValueRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res := h.service.Validate(ctx, req.Parsed())
	httputil.WriteJSON(w, http.StatusOK, FromResult(res))
}

// HandleValidateBatch handles POST /hkid/validate/batch requests.
func (h *Handler) HandleValidateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	results, err := h.service.ValidateBatch(ctx, req.Parsed())
	if err != nil {
		h.logger.ErrorContext(ctx, "batch validation failed",
			"request_id", requestID,
			"size", len(req.Items),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := FromResults(results)
	h.logger.InfoContext(ctx, "batch validation completed",
		"request_id", requestID,
		"size", len(results),
		"invalid", resp.Invalid,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleNormalize handles POST /hkid/normalize requests.
func (h *Handler) HandleNormalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[NormalizeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.service.Normalize(ctx, req.Value)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCandidate(c))
}

// HandleCheckDigit handles POST /hkid/check-digit requests.
func (h *Handler) HandleCheckDigit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CheckDigitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	id, err := h.service.CheckDigit(ctx, req.Body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromIdentifier(id))
}

// HandleFormat handles POST /hkid/format requests.
func (h *Handler) HandleFormat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[FormatRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FormatResponse{Formatted: h.service.Format(ctx, req.Value)})
}
