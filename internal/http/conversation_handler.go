package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"linux-assistant/internal/domain"
	"linux-assistant/internal/service"
)

// ConversationHandler mantiene dependencias para endpoints de
// conversaciones y borrado de mensajes.
type ConversationHandler struct {
	logger   *zap.Logger
	convServ *service.ConversationService
}

// NewConversationHandler crea una instancia de ConversationHandler.
func NewConversationHandler(logger *zap.Logger, convServ *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{logger: logger, convServ: convServ}
}

// Create maneja POST /conversations.
func (h *ConversationHandler) Create(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
		Title  string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create conversation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	conv, err := h.convServ.Create(c.Request.Context(), req.UserID, req.Title)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, conversationJSON(conv, 0))
}

// List maneja GET /conversations/:id, donde :id es el usuario dueño.
func (h *ConversationHandler) List(c *gin.Context) {
	summaries, err := h.convServ.ListForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]gin.H, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, gin.H{
			"id":            s.ID.Hex(),
			"title":         s.Title,
			"created_at":    s.CreatedAt,
			"updated_at":    s.UpdatedAt,
			"message_count": s.MessageCount,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Detail maneja GET /conversations/:id/details/:userId.
func (h *ConversationHandler) Detail(c *gin.Context) {
	conv, messages, err := h.convServ.GetDetail(c.Request.Context(), c.Param("id"), c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	msgs := make([]gin.H, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, messageJSON(m))
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         conv.ID.Hex(),
		"title":      conv.Title,
		"created_at": conv.CreatedAt,
		"updated_at": conv.UpdatedAt,
		"messages":   msgs,
	})
}

// Update maneja PUT /conversations/:id/:userId. La respuesta omite el
// conteo de mensajes: el cliente preserva el que ya tenia cacheado.
func (h *ConversationHandler) Update(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update conversation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	conv, err := h.convServ.UpdateTitle(c.Request.Context(), c.Param("id"), c.Param("userId"), req.Title)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         conv.ID.Hex(),
		"title":      conv.Title,
		"created_at": conv.CreatedAt,
		"updated_at": conv.UpdatedAt,
	})
}

// Delete maneja DELETE /conversations/:id/:userId.
func (h *ConversationHandler) Delete(c *gin.Context) {
	if err := h.convServ.Delete(c.Request.Context(), c.Param("id"), c.Param("userId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation and all messages deleted successfully"})
}

// ClearAll maneja DELETE /users/:userId/conversations/clear.
func (h *ConversationHandler) ClearAll(c *gin.Context) {
	conversations, messages, err := h.convServ.ClearAll(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":               "All conversations cleared successfully",
		"conversations_deleted": conversations,
		"messages_deleted":      messages,
	})
}

// DeleteMessage maneja DELETE /messages/:id/:userId.
func (h *ConversationHandler) DeleteMessage(c *gin.Context) {
	if err := h.convServ.DeleteMessage(c.Request.Context(), c.Param("id"), c.Param("userId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}

func conversationJSON(conv domain.Conversation, messageCount int) gin.H {
	return gin.H{
		"id":            conv.ID.Hex(),
		"title":         conv.Title,
		"created_at":    conv.CreatedAt,
		"updated_at":    conv.UpdatedAt,
		"message_count": messageCount,
	}
}

func messageJSON(m domain.Message) gin.H {
	return gin.H{
		"id":        m.ID.Hex(),
		"sender":    m.Sender,
		"content":   m.Content,
		"timestamp": m.Timestamp,
	}
}
