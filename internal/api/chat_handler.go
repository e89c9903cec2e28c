package api

import (
	"net/http"

	"intake-assistant/backend/internal/interfaces"
	"intake-assistant/backend/internal/service"
)

// ChatHandler serves the chat endpoint used by the widget.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// HandleChat godoc
// @Summary      Send a chat message
// @Description  Replies to a message, given up to the last eight turns of history. The reply is never empty. With debug=1 the response also carries finish_reason, usage, retrieval and retry details.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        debug    query     string                 false  "Set to 1 to include diagnostic fields"
// @Param        request  body      service.ChatRequest    true   "Message and recent history"
// @Success      200      {object}  service.ChatReply
// @Failure      400      {object}  ErrorResponse
// @Failure      502      {object}  UpstreamErrorResponse
// @Failure      500      {object}  InternalErrorResponse
// @Router       /chat [post]
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req service.ChatRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}
	req.Debug = r.URL.Query().Get("debug") == "1"

	reply, err := h.service.Reply(r.Context(), &req)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reply)
}
