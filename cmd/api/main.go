package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"linux-assistant/internal/config"
	"linux-assistant/internal/db"
	apihttp "linux-assistant/internal/http"
	"linux-assistant/internal/llm"
	"linux-assistant/internal/repository"
	"linux-assistant/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	client, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Warn("mongo disconnect", zap.Error(err))
		}
	}()

	database := client.Database(cfg.MongoDB)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		// Igual que el arranque original: se loguea y se sigue.
		logger.Warn("index creation", zap.Error(err))
	}

	userRepo := repository.NewMongoUserRepository(database)
	convRepo := repository.NewMongoConversationRepository(database)
	msgRepo := repository.NewMongoMessageRepository(database)

	gateway := llm.NewHTTPGateway(cfg.ModelAPIURL, logger)

	userSvc := service.NewUserService(logger, userRepo)
	convSvc := service.NewConversationService(logger, userRepo, convRepo, msgRepo)
	chatSvc := service.NewChatService(logger, userRepo, convRepo, msgRepo, gateway)

	gin.SetMode(cfg.GinMode)
	userHandler := apihttp.NewUserHandler(logger, userSvc)
	convHandler := apihttp.NewConversationHandler(logger, convSvc)
	chatHandler := apihttp.NewChatHandler(logger, chatSvc)
	router := apihttp.NewRouter(logger, userHandler, convHandler, chatHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}
