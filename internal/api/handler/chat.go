package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/airlens/airlens/internal/api/models"
	"github.com/airlens/airlens/internal/api/response"
	"github.com/airlens/airlens/internal/chat"
	"github.com/airlens/airlens/internal/chat/gemini"
	"github.com/airlens/airlens/internal/provider/resilience"
)

// ChatService answers user questions.
type ChatService interface {
	Reply(ctx context.Context, message string) (string, error)
}

// ChatHandler serves the assistant endpoint.
type ChatHandler struct {
	chat ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chat ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}

	reply, err := h.chat.Reply(r.Context(), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			response.BadRequest(w, r, "message is required", []models.FieldError{
				{Field: "message", Message: "must not be empty"},
			})
		case errors.Is(err, gemini.ErrMissingAPIKey):
			response.InternalError(w, r, "Gemini API key not configured")
		case errors.Is(err, resilience.ErrCircuitOpen):
			response.ServiceUnavailable(w, r, "assistant is temporarily unavailable, please retry shortly")
		default:
			response.InternalError(w, r, "failed to generate a reply")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, models.ChatResponse{Message: reply})
}
