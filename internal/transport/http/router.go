package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"survey-builder-service/internal/app"
	"survey-builder-service/internal/auth"
	"survey-builder-service/internal/builder"
	"survey-builder-service/internal/domain"
)

// NewRouter mounts the websocket endpoint and the session REST surface. A nil
// authenticator leaves both open.
func NewRouter(service *app.EditorService, authenticator *auth.Authenticator) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	ws := NewWSHandler(service)
	sessions := &sessionHandler{service: service}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Group(func(r chi.Router) {
		if authenticator != nil {
			r.Use(requireToken(authenticator, sessionFromQuery))
		}
		r.Get("/ws", ws.ServeWS)
	})

	r.Route("/sessions/{id}", func(r chi.Router) {
		if authenticator != nil {
			r.Use(requireToken(authenticator, sessionFromPath))
		}
		r.Put("/", sessions.Open)
		r.Get("/", sessions.Get)
		r.Delete("/", sessions.Close)
		r.Post("/commands", sessions.Command)
		r.Get("/export", sessions.Export)
		r.Get("/responses", sessions.Responses)
	})
	return r
}

type sessionHandler struct {
	service *app.EditorService
}

type openRequest struct {
	TemplateID string `json:"templateId"`
}

// Open handles PUT /sessions/{id} with an optional {"templateId": "..."} body.
func (h *sessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	snap, err := h.service.Open(r.Context(), chi.URLParam(r, "id"), req.TemplateID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Get handles GET /sessions/{id}.
func (h *sessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Close handles DELETE /sessions/{id}. A session still watched over the
// websocket stays until its last subscriber leaves.
func (h *sessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.service.Snapshot(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	h.service.Leave(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

// Command handles POST /sessions/{id}/commands with the websocket envelope.
func (h *sessionHandler) Command(w http.ResponseWriter, r *http.Request) {
	var msg inboundMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	snap, err := execute(r.Context(), h.service, chi.URLParam(r, "id"), msg)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Export handles GET /sessions/{id}/export: {"questions": [...]}.
func (h *sessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	data, err := builder.MarshalDocument(snap.Questions)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeRaw(w, data)
}

// Responses handles GET /sessions/{id}/responses.
func (h *sessionHandler) Responses(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	data, err := builder.MarshalResponses(snap.Responses)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeRaw(w, data)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrTemplateNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrIncompleteQuestions):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrOptionNotFound),
		errors.Is(err, domain.ErrInvalidResponse),
		errors.Is(err, domain.ErrInvalidDocument),
		errors.Is(err, domain.ErrUnknownAction):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errBadPayload):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("session request failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeRaw(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorPayload{Message: message})
}
