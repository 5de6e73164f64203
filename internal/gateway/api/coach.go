package api

import (
	"errors"
	"net/http"

	"archlens/internal/coach"
	arch "archlens/internal/types/architecture"
)

type askRequest struct {
	Question  string `json:"question"`
	Framework string `json:"framework,omitempty"`
}

type transcript struct {
	Framework          arch.Framework  `json:"framework"`
	Messages           []coach.Message `json:"messages"`
	SuggestedQuestions []string        `json:"suggestedQuestions"`
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var in askRequest
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Framework != "" {
		fw, err := arch.ParseFramework(in.Framework)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.ws.SetFramework(fw)
	}
	msg, err := h.ws.Ask(r.Context(), in.Question)
	if errors.Is(err, coach.ErrEmptyQuestion) {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (h *Handler) handleMessages(w http.ResponseWriter, _ *http.Request) {
	s := h.ws.Coach()
	writeJSON(w, http.StatusOK, transcript{
		Framework:          s.Framework(),
		Messages:           s.Messages(),
		SuggestedQuestions: s.SuggestedQuestions(),
	})
}
