package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/interactive/internal/config"
	"github.com/gyaneshwarpardhi/interactive/internal/event"
	"github.com/gyaneshwarpardhi/interactive/internal/gate"
	"github.com/gyaneshwarpardhi/interactive/internal/graph"
	"github.com/gyaneshwarpardhi/interactive/internal/metrics"
	"github.com/gyaneshwarpardhi/interactive/internal/session"
)

const maxBatchSize = 100

// Handler holds all HTTP handler dependencies.
type Handler struct {
	sess   *session.Session
	loader *config.Loader
	mux    *http.ServeMux
}

// New creates an HTTP handler, registers all routes and subscribes the session
// to config reloads, whether they come from the file watcher or the reload route.
func New(sess *session.Session, loader *config.Loader) http.Handler {
	h := &Handler{sess: sess, loader: loader, mux: http.NewServeMux()}
	loader.OnChange(func(cfg *config.AppConfig) {
		if err := sess.Apply(cfg); err != nil {
			slog.Warn("workflow reload skipped, keeping previous graph", "err", err)
			return
		}
		slog.Info("workflow reloaded", "nodes", len(cfg.Workflow.Nodes))
	})

	h.mux.HandleFunc("POST /v1/events", h.handleEvent)
	h.mux.HandleFunc("POST /v1/events/batch", h.handleBatch)
	h.mux.HandleFunc("GET /v1/graph", h.getGraph)
	h.mux.HandleFunc("GET /v1/executions/{id}", h.getExecution)
	h.mux.HandleFunc("POST /v1/workflow/reload", h.reloadWorkflow)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// POST /v1/events: apply one UI event and return what it changed.
func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request) {
	var ev event.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	stamp(&ev, time.Now())

	res, err := h.sess.Handle(r.Context(), &ev)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /v1/events/batch: apply up to 100 events in order. A failing event
// does not stop the ones after it.
func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	var events []*event.Event
	if err := json.NewDecoder(r.Body).Decode(&events); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if len(events) == 0 {
		writeError(w, http.StatusBadRequest, "batch must contain at least one event")
		return
	}
	if len(events) > maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch size %d exceeds max %d", len(events), maxBatchSize))
		return
	}

	type item struct {
		Result *session.EventResult `json:"result,omitempty"`
		Error  string               `json:"error,omitempty"`
	}
	now := time.Now()
	items := make([]item, 0, len(events))
	failed := 0
	for _, ev := range events {
		if ev == nil {
			failed++
			items = append(items, item{Error: "null event"})
			continue
		}
		stamp(ev, now)
		res, err := h.sess.Handle(r.Context(), ev)
		if err != nil {
			failed++
			items = append(items, item{Error: err.Error()})
			continue
		}
		items = append(items, item{Result: res})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":   len(events),
		"applied": len(events) - failed,
		"failed":  failed,
		"results": items,
	})
}

// GET /v1/graph: current nodes, visuals and links.
func (h *Handler) getGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sess.Snapshot())
}

// GET /v1/executions/{id}: state of a queued or finished run.
func (h *Handler) getExecution(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	res, ok := h.sess.Result(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("execution %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /v1/workflow/reload: re-read the config file and swap the graph.
// The swap itself happens in the reload listener; the checks are repeated
// here only to report why a config was rejected.
func (h *Handler) reloadWorkflow(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.loader.Reload()
	if errors.Is(err, config.ErrParse) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := config.Validate(cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if _, err := graph.Build(&cfg.Workflow); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded":    true,
		"nodes_count": len(cfg.Workflow.Nodes),
		"links_count": len(cfg.Workflow.Links),
	})
}

// GET /healthz: always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz: 503 if the execution queue is >80% full.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	util := h.sess.QueueUtilization()
	metrics.QueueUtilization.Set(util)
	if util > 0.8 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":            "overloaded",
			"queue_utilization": util,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ready",
		"queue_utilization": util,
	})
}

func stamp(ev *event.Event, now time.Time) {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = now
	}
	ev.ReceivedAt = now
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrUnknownEvent):
		return http.StatusBadRequest
	case errors.Is(err, gate.ErrNodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, gate.ErrNotClickable):
		return http.StatusConflict
	case errors.Is(err, session.ErrClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
