package handlers

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"

	"github.com/preston-bernstein/cricket-sim-service/internal/app/simulations"
	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
	"github.com/preston-bernstein/cricket-sim-service/internal/histogram"
	"github.com/preston-bernstein/cricket-sim-service/internal/loader"
	"github.com/preston-bernstein/cricket-sim-service/internal/logging"
)

const bannerMessage = "Cricket Simulator API is running!"

// Service is the read surface the HTTP layer serves.
type Service interface {
	Matches(ctx context.Context) ([]domain.Match, error)
	Results(ctx context.Context, id int) (domain.SimulationResults, error)
	Histogram(ctx context.Context, id int) (simulations.ChartView, error)
}

// Handler wires HTTP routes to the simulations service.
type Handler struct {
	svc      Service
	logger   *slog.Logger
	statusFn func() loader.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case the service is
// always reported ready.
func NewHandler(svc Service, logger *slog.Logger, statusFn func() loader.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Root answers the banner at "/".
func (h *Handler) Root(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"message": bannerMessage}, h.logger)
}

// NotFound is the JSON fallback for unknown routes.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the dataset has been loaded.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Games lists every match.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	matches, err := h.svc.Matches(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if matches == nil {
		matches = []domain.Match{}
	}
	logging.Info(loggerFromContext(r, h.logger), "served matches", logging.FieldCount, len(matches))
	writeJSON(w, nethttp.StatusOK, matches, h.logger)
}

// Simulations returns win statistics and every simulated score for one match.
func (h *Handler) Simulations(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	id, ok := h.matchID(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Results(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, res, h.logger)
}

// Histogram returns the binned chart payload for one match. A match without
// simulations answers 200 with the no-data view.
func (h *Handler) Histogram(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	id, ok := h.matchID(w, r)
	if !ok {
		return
	}
	view, err := h.svc.Histogram(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if view.NoData {
		logging.Info(loggerFromContext(r, h.logger), "no simulation data for match", logging.FieldMatchID, id)
	}
	writeJSON(w, nethttp.StatusOK, view, h.logger)
}

func (h *Handler) matchID(w nethttp.ResponseWriter, r *nethttp.Request) (int, bool) {
	id, err := domain.ParseMatchID(r.PathValue("id"))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match id", h.logger)
		return 0, false
	}
	return id, true
}

func (h *Handler) writeServiceError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrMatchNotFound):
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
	case errors.Is(err, simulations.ErrNoSimulations):
		writeError(w, r, nethttp.StatusNotFound, "simulation data not found for one or both teams", h.logger)
	case errors.Is(err, histogram.ErrNonFinite):
		writeError(w, r, nethttp.StatusUnprocessableEntity, "simulation data contains non-finite scores", h.logger)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, nethttp.StatusServiceUnavailable, "request canceled", h.logger)
	default:
		logging.Error(loggerFromContext(r, h.logger), "simulation lookup failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "internal error", h.logger)
	}
}
