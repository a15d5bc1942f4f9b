package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"linux-assistant/internal/service"
)

// ChatHandler mantiene dependencias para los endpoints de chat y salud.
type ChatHandler struct {
	logger   *zap.Logger
	chatServ *service.ChatService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, chatServ *service.ChatService) *ChatHandler {
	return &ChatHandler{logger: logger, chatServ: chatServ}
}

// SendMessage maneja POST /messages. Responde con el mensaje del bot ya
// persistido.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req struct {
		ConversationID string `json:"conversation_id" binding:"required"`
		UserID         string `json:"user_id" binding:"required"`
		Message        string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid send message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	botMsg, err := h.chatServ.SendMessage(c.Request.Context(), req.ConversationID, req.UserID, req.Message)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, messageJSON(botMsg))
}

// Ask maneja POST /ask. El conversation_id es opcional: sin el se crea
// una conversacion nueva titulada desde la pregunta.
func (h *ChatHandler) Ask(c *gin.Context) {
	var req struct {
		Question       string `json:"question" binding:"required"`
		UserID         string `json:"user_id" binding:"required"`
		ConversationID string `json:"conversation_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid ask request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	answer, conversationID, err := h.chatServ.Ask(c.Request.Context(), req.UserID, req.ConversationID, req.Question)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":          answer,
		"conversation_id": conversationID,
	})
}

// Health maneja GET /health: estado propio mas el probe del model API.
func (h *ChatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"model_api": h.chatServ.Health(c.Request.Context()),
	})
}
