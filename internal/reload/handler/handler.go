package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"facilities/internal/collector"
	"facilities/internal/facility/models"
	"facilities/internal/reload"
	dErrors "facilities/pkg/domain-errors"
	"facilities/pkg/platform/httputil"
	"facilities/pkg/requestcontext"
)

// maxPushBody bounds a pushed facility list. The full upstream list is a few
// thousand facilities.
const maxPushBody = 64 << 20

// Service defines the reload operations exposed over HTTP.
type Service interface {
	Reload(ctx context.Context) (*reload.Report, error)
	ReloadFacilities(ctx context.Context, facilities []models.Facility) (*reload.Report, error)
	LastReport(ctx context.Context) (*reload.Report, error)
}

// Handler wires the management endpoints to the reload service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a reload handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the reload endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/internal/management/reload", h.HandleReload)
	r.Post("/internal/management/reload/facilities", h.HandlePush)
	r.Get("/internal/management/reload/last", h.HandleLast)
}

// HandleReload handles POST /internal/management/reload.
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	report, err := h.service.Reload(ctx)
	h.respond(w, r, "pull", report, err, start)
}

// HandlePush handles POST /internal/management/reload/facilities. The body is
// the complete facility list, as a JSON array or a {"data": [...]} envelope.
func (h *Handler) HandlePush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	body, err := httputil.ReadBody(w, r, maxPushBody)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	facilities, err := collector.DecodeFacilities(body)
	if err != nil {
		h.logger.WarnContext(ctx, "rejected reload push body",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "body must be a JSON array of facilities"))
		return
	}

	report, err := h.service.ReloadFacilities(ctx, facilities)
	h.respond(w, r, "push", report, err, start)
}

// HandleLast handles GET /internal/management/reload/last.
func (h *Handler) HandleLast(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.LastReport(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

// respond writes the pass outcome. An aborted pass still carries its partial
// report, which is returned as the body of the 500.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, trigger string, report *reload.Report, err error, start time.Time) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if err != nil {
		h.logger.ErrorContext(ctx, "reload request failed",
			"request_id", requestID,
			"trigger", trigger,
			"client_ip", requestcontext.ClientIP(ctx),
			"error", err,
		)
		if report != nil {
			httputil.WriteJSON(w, http.StatusInternalServerError, report)
			return
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "reload request complete",
		"request_id", requestID,
		"trigger", trigger,
		"reload_id", report.ReloadID,
		"problems", len(report.Problems),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}
