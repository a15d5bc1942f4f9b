package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"linux-assistant/internal/config"
	"linux-assistant/internal/db"
	"linux-assistant/internal/domain"
	"linux-assistant/internal/repository"
)

// Conversaciones de ejemplo con preguntas tipicas de Linux, para poblar
// un ambiente de desarrollo con datos realistas.
var sampleConversations = []struct {
	Title    string
	Messages []struct {
		Sender  string
		Content string
	}
}{
	{
		Title: "File Operations",
		Messages: []struct {
			Sender  string
			Content string
		}{
			{domain.SenderUser, "How do I list all files in a directory?"},
			{domain.SenderBot, "Use the 'ls' command to list files. For detailed information, use 'ls -la' which shows permissions, ownership, size, and modification dates."},
			{domain.SenderUser, "How can I copy files recursively?"},
			{domain.SenderBot, "Use 'cp -r source_directory destination_directory' to copy directories and their contents recursively."},
		},
	},
	{
		Title: "Process Management",
		Messages: []struct {
			Sender  string
			Content string
		}{
			{domain.SenderUser, "How do I see running processes?"},
			{domain.SenderBot, "Use 'ps aux' to see all running processes, or 'top' for a real-time view of processes sorted by CPU usage."},
			{domain.SenderUser, "How to kill a process?"},
			{domain.SenderBot, "Use 'kill PID' where PID is the process ID, or 'killall process_name' to kill all processes with that name."},
		},
	},
	{
		Title: "Text Processing",
		Messages: []struct {
			Sender  string
			Content string
		}{
			{domain.SenderUser, "How do I search for text in files?"},
			{domain.SenderBot, "Use 'grep pattern filename' to search for a pattern in a file. Use 'grep -r pattern directory' to search recursively."},
			{domain.SenderUser, "How to count lines in a file?"},
			{domain.SenderBot, "Use 'wc -l filename' to count lines. 'wc -w' counts words and 'wc -c' counts characters."},
		},
	},
	{
		Title: "File Permissions",
		Messages: []struct {
			Sender  string
			Content string
		}{
			{domain.SenderUser, "How do I change file permissions?"},
			{domain.SenderBot, "Use 'chmod' command. For example: 'chmod 755 filename' or 'chmod u+x filename' to add execute permission for the owner."},
			{domain.SenderUser, "What do the permission numbers mean?"},
			{domain.SenderBot, "Permissions are represented by 3 digits: owner, group, others. 4=read, 2=write, 1=execute."},
		},
	},
}

var seedUsers = []struct {
	Username string
	Email    string
}{
	{"tux", "tux@example.com"},
	{"sysadmin", "sysadmin@example.com"},
	{"newbie", "newbie@example.com"},
}

const seedPassword = "password123"

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(ctx)

	database := client.Database(cfg.MongoDB)

	// Arranque limpio: tirar las colecciones y recrear indices.
	for _, name := range []string{"users", "conversations", "messages"} {
		if err := database.Collection(name).Drop(ctx); err != nil {
			log.Fatalf("drop %s: %v", name, err)
		}
		fmt.Printf("dropped collection: %s\n", name)
	}
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("indexes: %v", err)
	}

	userRepo := repository.NewMongoUserRepository(database)
	convRepo := repository.NewMongoConversationRepository(database)
	msgRepo := repository.NewMongoMessageRepository(database)

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	totalConvs, totalMsgs := 0, 0
	for i, su := range seedUsers {
		uid, err := userRepo.Create(ctx, domain.User{
			Username:     su.Username,
			Email:        su.Email,
			PasswordHash: string(hashBytes),
			CreatedAt:    time.Now().UTC().AddDate(0, 0, -30+i),
		})
		if err != nil {
			log.Fatalf("create user %s: %v", su.Username, err)
		}

		// Cada usuario recibe un subconjunto distinto de conversaciones,
		// con timestamps escalonados para que el orden sea observable.
		for j, sc := range sampleConversations[:len(sampleConversations)-i] {
			created := time.Now().UTC().Add(-time.Duration(24*(j+1)) * time.Hour)
			updated := created

			conv := domain.Conversation{
				UserID:    uid,
				Title:     sc.Title,
				CreatedAt: created,
				UpdatedAt: created,
			}
			cid, err := convRepo.Create(ctx, conv)
			if err != nil {
				log.Fatalf("create conversation: %v", err)
			}
			totalConvs++

			for k, sm := range sc.Messages {
				ts := created.Add(time.Duration(k+1) * time.Minute)
				if _, err := msgRepo.Insert(ctx, domain.Message{
					ConversationID: cid,
					Sender:         sm.Sender,
					Content:        sm.Content,
					Timestamp:      ts,
				}); err != nil {
					log.Fatalf("insert message: %v", err)
				}
				updated = ts
				totalMsgs++
			}

			if err := convRepo.Refresh(ctx, cid, "", updated); err != nil {
				log.Fatalf("refresh conversation: %v", err)
			}
		}

		fmt.Printf("seeded user %s (%s), password %q\n", su.Username, su.Email, seedPassword)
	}

	fmt.Printf("done: %d users, %d conversations, %d messages\n", len(seedUsers), totalConvs, totalMsgs)
}
