// Package api serves the workspace as a JSON API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	arch "archlens/internal/types/architecture"
	"archlens/internal/util/jsonutil"
	"archlens/internal/workspace"
)

const maxBodyBytes = 1 << 20

// Handler implements every /api route on top of one workspace.
type Handler struct {
	ws     *workspace.Workspace
	logger *zap.Logger
	now    func() time.Time
}

func New(ws *workspace.Workspace, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		ws:     ws,
		logger: logger.Named("api"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register adds the API routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/scenarios", h.handleAnalyze)
	mux.HandleFunc("GET /api/scenarios", h.handleListScenarios)
	mux.HandleFunc("GET /api/state", h.handleState)
	mux.HandleFunc("DELETE /api/state", h.handleClear)
	mux.HandleFunc("PUT /api/vision", h.handleUpdateVision)
	mux.HandleFunc("GET /api/components", h.handleListComponents)
	mux.HandleFunc("POST /api/components", h.handleAddComponent)
	mux.HandleFunc("PATCH /api/components/{id}", h.handleUpdateComponent)
	mux.HandleFunc("GET /api/capabilities", h.handleListCapabilities)
	mux.HandleFunc("POST /api/capabilities", h.handleAddCapability)
	mux.HandleFunc("POST /api/coach/questions", h.handleAsk)
	mux.HandleFunc("GET /api/coach/messages", h.handleMessages)
	mux.HandleFunc("GET /api/insights", h.handleInsightTypes)
	mux.HandleFunc("GET /api/insights/{kind}", h.handleInsight)
	mux.HandleFunc("GET /api/compliance", h.handleCompliance)
	mux.HandleFunc("GET /api/frameworks", h.handleFrameworks)
	mux.HandleFunc("GET /api/events", h.handleEvents)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := jsonutil.MarshalNoEscape(v)
	if err != nil {
		http.Error(w, "encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

// framework resolves an optional framework name, falling back to the
// workspace's current framework.
func (h *Handler) framework(raw string) (arch.Framework, error) {
	if strings.TrimSpace(raw) == "" {
		return h.ws.Framework(), nil
	}
	return arch.ParseFramework(raw)
}
