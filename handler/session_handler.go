package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/greengrowth-cpas/tax-agent/dto"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// CreateSession handles POST /sessions. The middleware has already created the
// session when the cookie was absent; this endpoint just reports it.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	c.JSON(http.StatusCreated, h.snapshot(c))
}

// CurrentState handles GET /sessions/current. The front end selects its view
// from this snapshot; has_summary alone decides upload flow vs Q&A flow.
func (h *SessionHandler) CurrentState(c *gin.Context) {
	c.JSON(http.StatusOK, h.snapshot(c))
}

func (h *SessionHandler) snapshot(c *gin.Context) dto.SessionStateResponse {
	sess := CurrentSession(c)
	return dto.SessionStateResponse{
		SessionID:  sess.ID,
		HasRawText: sess.RawText() != "",
		HasFields:  len(sess.Fields()) > 0,
		HasSummary: sess.Summary() != nil,
		Messages:   len(sess.History()),
	}
}
