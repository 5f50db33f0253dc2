// README: Session inspection handler (read-only snapshots).
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripscout/internal/modules/session"
)

// SessionReader is the read-only slice of the orchestrator used here.
type SessionReader interface {
	Session(ctx context.Context, id string) (*session.Session, error)
}

type SessionHandler struct {
	sessions SessionReader
}

func NewSessionHandler(sessions SessionReader) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing session id")
		return
	}

	sess, err := h.sessions.Session(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, gin.H{
		"session_id":        sess.ID,
		"intent":            sess.Intent,
		"missing_info":      sess.Missing.Strings(),
		"queries_generated": sess.QueriesGenerated,
		"search_queries":    sess.Queries,
		"plan_explanation":  sess.PlanExplanation,
		"transcript_turns":  len(sess.Transcript),
		"created_at":        sess.CreatedAt,
		"updated_at":        sess.UpdatedAt,
	})
}
