package api

import (
	"net/http"

	"archlens/internal/analysis"
	"archlens/internal/compliance"
	"archlens/internal/insight"
	arch "archlens/internal/types/architecture"
)

type frameworkInfo struct {
	ID      arch.Framework `json:"id"`
	Name    string         `json:"name"`
	Context string         `json:"context"`
}

func (h *Handler) handleInsightTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, insight.VisualizationTypes())
}

func (h *Handler) handleInsight(w http.ResponseWriter, r *http.Request) {
	st := h.ws.Store().Snapshot()
	switch kind := r.PathValue("kind"); kind {
	case "heatmap":
		writeJSON(w, http.StatusOK, insight.Heatmap(st.Capabilities))
	case "architecture":
		writeJSON(w, http.StatusOK, insight.Layers(st.Components))
	case "network":
		writeJSON(w, http.StatusOK, insight.Network(st.Components))
	case "roadmap":
		var v arch.Vision
		if st.CurrentVision != nil {
			v = *st.CurrentVision
		}
		writeJSON(w, http.StatusOK, insight.BuildRoadmap(v))
	case "dashboard":
		fw, err := h.framework(r.URL.Query().Get("framework"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, insight.BuildDashboard(st, fw))
	default:
		writeError(w, http.StatusNotFound, "unknown insight: "+kind)
	}
}

func (h *Handler) handleCompliance(w http.ResponseWriter, r *http.Request) {
	fw, err := h.framework(r.URL.Query().Get("framework"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, compliance.BuildReport(fw, h.now()))
}

func (h *Handler) handleFrameworks(w http.ResponseWriter, _ *http.Request) {
	out := make([]frameworkInfo, 0, 4)
	for _, fw := range arch.Frameworks() {
		out = append(out, frameworkInfo{ID: fw, Name: fw.DisplayName(), Context: analysis.FrameworkContext(fw)})
	}
	writeJSON(w, http.StatusOK, out)
}
