package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"archlens/internal/store"
	arch "archlens/internal/types/architecture"
	"archlens/internal/workspace"
)

type analyzeRequest struct {
	Scenario  string `json:"scenario"`
	Framework string `json:"framework,omitempty"`
}

type supersededBody struct {
	Error    string                `json:"error"`
	Analysis arch.ScenarioAnalysis `json:"analysis"`
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var in analyzeRequest
	if !decodeBody(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Scenario) == "" {
		writeError(w, http.StatusBadRequest, "scenario is required")
		return
	}
	fw, err := h.framework(in.Framework)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := h.ws.Analyze(r.Context(), in.Scenario, fw)
	if errors.Is(err, workspace.ErrSuperseded) {
		writeJSON(w, http.StatusConflict, supersededBody{Error: err.Error(), Analysis: a})
		return
	}
	h.logger.Info("scenario analysed",
		zap.String("analysis_id", a.ID),
		zap.String("framework", string(fw)),
		zap.String("origin", string(a.Origin)))
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) handleListScenarios(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.ws.Store().Scenarios())
}

func (h *Handler) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.ws.Store().Snapshot())
}

func (h *Handler) handleClear(w http.ResponseWriter, _ *http.Request) {
	h.ws.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdateVision(w http.ResponseWriter, r *http.Request) {
	var v arch.Vision
	if !decodeBody(w, r, &v) {
		return
	}
	for _, c := range v.Components {
		if !c.Type.Valid() {
			writeError(w, http.StatusBadRequest, "invalid component type: "+string(c.Type))
			return
		}
	}
	h.ws.UpdateVision(v)
	cur, _ := h.ws.Store().CurrentVision()
	writeJSON(w, http.StatusOK, cur)
}

func (h *Handler) handleListComponents(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("type"))
	if raw == "" {
		writeJSON(w, http.StatusOK, h.ws.Store().Components())
		return
	}
	layer := arch.Layer(strings.ToLower(raw))
	if !layer.Valid() {
		writeError(w, http.StatusBadRequest, "invalid component type: "+raw)
		return
	}
	writeJSON(w, http.StatusOK, h.ws.Store().ComponentsByType(layer))
}

func (h *Handler) handleAddComponent(w http.ResponseWriter, r *http.Request) {
	var c arch.Component
	if !decodeBody(w, r, &c) {
		return
	}
	if strings.TrimSpace(c.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !c.Type.Valid() {
		writeError(w, http.StatusBadRequest, "invalid component type: "+string(c.Type))
		return
	}
	writeJSON(w, http.StatusCreated, h.ws.AddComponent(c))
}

func (h *Handler) handleUpdateComponent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var patch store.ComponentPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if patch.Type != nil && !patch.Type.Valid() {
		writeError(w, http.StatusBadRequest, "invalid component type: "+string(*patch.Type))
		return
	}
	if !h.ws.UpdateComponent(id, patch) {
		writeError(w, http.StatusNotFound, "component not found: "+id)
		return
	}
	for _, c := range h.ws.Store().Components() {
		if c.ID == id {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	// cleared between the update and the read
	writeError(w, http.StatusNotFound, "component not found: "+id)
}

func (h *Handler) handleListCapabilities(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("minMaturity"))
	if raw == "" {
		writeJSON(w, http.StatusOK, h.ws.Store().Capabilities())
		return
	}
	minMaturity, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "minMaturity must be an integer")
		return
	}
	writeJSON(w, http.StatusOK, h.ws.Store().CapabilitiesByMaturity(minMaturity))
}

func (h *Handler) handleAddCapability(w http.ResponseWriter, r *http.Request) {
	var c arch.Capability
	if !decodeBody(w, r, &c) {
		return
	}
	if strings.TrimSpace(c.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	writeJSON(w, http.StatusCreated, h.ws.AddCapability(c))
}
