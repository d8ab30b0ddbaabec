// Package httptransport is the thin HTTP layer. It decodes and validates
// requests, dispatches through the jurisdiction registry, and translates
// domain errors; business logic stays in the engine and adapters.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tarifa/internal/evaluation/metrics"
	"tarifa/internal/jurisdiction"
	dErrors "tarifa/pkg/domain-errors"
	"tarifa/pkg/platform/httputil"
	"tarifa/pkg/platform/middleware"
	"tarifa/pkg/requestcontext"
)

// Handler wires the evaluation endpoints to the jurisdiction registry.
type Handler struct {
	registry *jurisdiction.Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New constructs the handler with its dependencies.
func New(registry *jurisdiction.Registry, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
		metrics:  m,
	}
}

// NewRouter builds the service router with the shared middleware chain.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	r.Post("/evaluate", h.handleEvaluate)
	r.Post("/adapt", h.handleAdapt)
	r.Get("/healthz", h.handleHealth)
	return r
}

// handleEvaluate handles POST /evaluate.
func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	doc := req.Document()

	entry, err := h.registry.Lookup(doc.Jurisdiction)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := entry.Evaluator.Evaluate(ctx, doc)
	if err != nil {
		h.metrics.IncrementEvaluation(doc.Jurisdiction, "error")
		h.logger.ErrorContext(ctx, "evaluation failed",
			"request_id", requestID,
			"org_id", doc.OrgID,
			"jurisdiction", doc.Jurisdiction,
			"error", err,
		)
		if dErrors.HasCode(err, dErrors.CodeConversionFailed) {
			// The provider fault, not the wrapping evaluation error, decides
			// the status: upstream unavailability is a 502, not a 500.
			httputil.WriteError(w, dErrors.New(dErrors.CodeConversionFailed, "exchange rate provider unavailable"))
			return
		}
		httputil.WriteError(w, err)
		return
	}

	h.metrics.IncrementEvaluation(doc.Jurisdiction, "ok")
	h.metrics.ObserveEvaluateLatency(time.Since(start))
	h.logger.InfoContext(ctx, "document evaluated",
		"request_id", requestID,
		"org_id", doc.OrgID,
		"jurisdiction", doc.Jurisdiction,
		"items", len(doc.Items),
		"taxes", len(result.Taxes),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// handleAdapt handles POST /adapt.
func (h *Handler) handleAdapt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AdaptRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	entry, err := h.registry.Lookup(req.Jurisdiction)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	declaration, err := entry.Adapter.Adapt(&req.NeutralResult, req.CanonicalDoc)
	if err != nil {
		h.logger.ErrorContext(ctx, "adaptation failed",
			"request_id", requestID,
			"jurisdiction", req.Jurisdiction,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "adaptation failed"))
		return
	}

	h.logger.InfoContext(ctx, "result adapted",
		"request_id", requestID,
		"jurisdiction", req.Jurisdiction,
	)
	httputil.WriteJSON(w, http.StatusOK, declaration)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
