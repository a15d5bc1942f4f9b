package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"linux-assistant/internal/config"
	"linux-assistant/internal/db"
	"linux-assistant/internal/domain"
	"linux-assistant/internal/llm"
	"linux-assistant/internal/repository"
	"linux-assistant/internal/service"
)

// Cliente de terminal para conversar con el asistente sin levantar el
// servidor HTTP: usa los mismos servicios contra la misma base.
func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	client, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(ctx)

	database := client.Database(cfg.MongoDB)
	userRepo := repository.NewMongoUserRepository(database)
	convRepo := repository.NewMongoConversationRepository(database)
	msgRepo := repository.NewMongoMessageRepository(database)

	gateway := llm.NewHTTPGateway(cfg.ModelAPIURL, logger)
	userSvc := service.NewUserService(logger, userRepo)
	chatSvc := service.NewChatService(logger, userRepo, convRepo, msgRepo, gateway)

	user, err := ensureUser(ctx, userRepo, userSvc)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("===== Linux Assistant =====")
	fmt.Println("Escribe tu pregunta (o 'exit' para salir).")

	conversationID := ""
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		question := strings.TrimSpace(line)
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			return
		}

		answer, cid, err := chatSvc.Ask(ctx, user.ID.Hex(), conversationID, question)
		if err != nil {
			log.Fatalf("ask: %v", err)
		}
		conversationID = cid
		fmt.Println(answer)
	}
}

// ensureUser reutiliza la cuenta del cliente de terminal o la crea.
func ensureUser(ctx context.Context, users repository.UserRepository, userSvc *service.UserService) (domain.User, error) {
	user, err := users.GetByEmail(ctx, "cli@example.com")
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, err
	}
	return userSvc.Register(ctx, "cli", "cli@example.com", "password123")
}
