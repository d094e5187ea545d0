// Package forecast exposes the prediction engine over HTTP for serve mode.
package forecast

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gridwatt/demandcast/core/artifact"
	coremetrics "github.com/gridwatt/demandcast/core/metrics"
	"github.com/gridwatt/demandcast/core/model"
	"github.com/gridwatt/demandcast/core/predictor"
	"github.com/gridwatt/demandcast/infra/logger"
	"github.com/gridwatt/demandcast/internal/eventbus"
)

type errorBody struct {
	Error string `json:"error"`
}

// Handler serves the forecast API. Every completed request publishes a
// PredictionEvent on the bus for the metrics sinks.
type Handler struct {
	engine *predictor.Engine
	bus    *eventbus.Bus[coremetrics.PredictionEvent]
	log    logger.Logger
}

// NewHandler builds the API handler. The bus may be nil when no sinks are
// configured.
func NewHandler(engine *predictor.Engine, bus *eventbus.Bus[coremetrics.PredictionEvent], log logger.Logger) *Handler {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Handler{engine: engine, bus: bus, log: log}
}

// Mux returns the route table: POST /api/forecast, GET /api/models and
// GET /healthz.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/forecast", h.predict)
	mux.HandleFunc("/api/models", h.models)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (h *Handler) predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req model.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body: " + err.Error()})
		return
	}

	id := uuid.NewString()
	start := time.Now()
	res, err := h.engine.Predict(req)
	elapsed := time.Since(start)

	ev := coremetrics.PredictionEvent{
		RequestID: id,
		Region:    req.Region,
		ModelType: req.ModelType,
		Duration:  elapsed,
		Time:      start,
	}
	if err != nil {
		ev.Err = err.Error()
		h.publish(ev)
		h.log.Warnf("request %s failed: %v", id, err)
		writeJSON(w, statusFor(err), errorBody{Error: err.Error()})
		return
	}
	ev.PredictedUsage = res.PredictedUsage
	ev.ModelLoaded = res.ModelLoaded
	h.publish(ev)
	h.log.Infof("request %s: %s/%s -> %.2f", id, req.Region, res.ModelType, res.PredictedUsage)
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) models(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	label := r.URL.Query().Get("region")
	if label == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "missing region parameter"})
		return
	}
	families := h.engine.AvailableModels(label)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.String())
	}
	writeJSON(w, http.StatusOK, struct {
		Region          string   `json:"region"`
		AvailableModels []string `json:"available_models"`
	}{Region: label, AvailableModels: names})
}

func (h *Handler) publish(ev coremetrics.PredictionEvent) {
	if h.bus != nil {
		h.bus.Publish(ev)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrUnsupportedModel), errors.Is(err, model.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, artifact.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
