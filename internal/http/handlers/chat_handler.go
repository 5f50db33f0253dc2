// README: Chat handler; one conversation turn per request.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripscout/internal/modules/conversation"
)

// ChatService is the slice of the conversation orchestrator the handler needs.
type ChatService interface {
	ProcessMessage(ctx context.Context, message, sessionID string) (conversation.Response, error)
}

type ChatHandler struct {
	chat ChatService
}

func NewChatHandler(chat ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatReq struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	// The oracle round trip dominates turn latency; bound it.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	resp, err := h.chat.ProcessMessage(ctx, req.Message, req.SessionID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, gin.H{
		"message":              resp.Message,
		"missing_info":         resp.MissingInfo,
		"has_complete_details": resp.HasCompleteDetails,
		"search_queries":       resp.SearchQueries,
		"session_id":           resp.SessionID,
	})
}
