package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/greengrowth-cpas/tax-agent/dto"
	"github.com/greengrowth-cpas/tax-agent/service"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat handles POST /chat. The reply is always 200: collaborator failures are
// already formatted into the reply text by the orchestrator.
func (h *ChatHandler) Chat(c *gin.Context) {
	sess := CurrentSession(c)

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "CHAT_FAILED",
			Message: "A message is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	reply := h.chatService.Respond(c.Request.Context(), sess, req.Message)

	h.logger.Debug("chat turn complete",
		zap.String("session_id", sess.ID),
		zap.Int("transcript_len", len(sess.History())))

	c.JSON(http.StatusOK, dto.ChatResponse{Reply: reply})
}

// History handles GET /chat/history.
func (h *ChatHandler) History(c *gin.Context) {
	sess := CurrentSession(c)
	c.JSON(http.StatusOK, gin.H{"messages": sess.History()})
}
