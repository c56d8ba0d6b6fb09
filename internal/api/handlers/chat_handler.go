package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/services"
)

type ChatHandler struct {
	chat *services.ChatService
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type ChatRequest struct {
	Message string `json:"message"`
}

// SendMessage runs one chat turn against the resume's profile. Inference
// failures surface immediately and persist nothing; access problems get
// their own status so operators can tell a missing model grant from a
// transient failure.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	resumeID := chi.URLParam(r, "resumeID")

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	reply, err := h.chat.HandleMessage(r.Context(), resumeID, req.Message)
	if err != nil {
		var validation *core.ValidationError
		var denied *core.InferenceAccessDeniedError
		switch {
		case errors.Is(err, core.ErrProfileNotFound):
			http.Error(w, "resume not found", http.StatusNotFound)
		case errors.As(err, &validation):
			http.Error(w, validation.Error(), http.StatusBadRequest)
		case errors.As(err, &denied):
			http.Error(w, denied.Error(), http.StatusBadGateway)
		default:
			http.Error(w, err.Error(), http.StatusBadGateway)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"reply": reply})
}

// GetHistory returns the stored conversation, oldest first.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	resumeID := chi.URLParam(r, "resumeID")

	history, err := h.chat.History(r.Context(), resumeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}
