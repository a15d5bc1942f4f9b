package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	userH *UserHandler,
	convH *ConversationHandler,
	chatH *ChatHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: request id, logging, recovery y JSON content-type.
	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.POST("/register", userH.Register)
	r.POST("/login", userH.Login)
	r.GET("/user/:id", userH.GetUser)

	conversations := r.Group("/conversations")
	conversations.POST("", convH.Create)
	conversations.GET("/:id", convH.List) // :id es el user id, como en el cliente original
	conversations.GET("/:id/details/:userId", convH.Detail)
	conversations.PUT("/:id/:userId", convH.Update)
	conversations.DELETE("/:id/:userId", convH.Delete)

	r.DELETE("/users/:userId/conversations/clear", convH.ClearAll)

	r.POST("/messages", chatH.SendMessage)
	r.DELETE("/messages/:id/:userId", convH.DeleteMessage)

	r.POST("/ask", chatH.Ask)
	r.GET("/health", chatH.Health)

	return r
}

// requestIDMiddleware asigna un identificador unico por request y lo
// devuelve en el header X-Request-ID.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
