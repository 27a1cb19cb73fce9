package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/realtime"
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/repository"
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Telegram bot for monitors: review the voice-note moderation queue without
// opening the admin panel.
func main() {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	if dbHost == "" {
		dbHost = "db"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	dsn := "host=" + dbHost + " port=" + dbPort +
		" user=" + os.Getenv("DB_USER") + " password=" + os.Getenv("DB_PASS") +
		" dbname=" + os.Getenv("DB_NAME") + " sslmode=disable"
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	// The bot runs out of process; its hub has no subscribers, clients pick
	// up review results on their next fetch.
	moderation := service.NewModerationService(approvalRepo, messageRepo, notificationRepo, realtime.NewHub())

	// Media links in queue listings are absolute when the API's public base
	// URL is configured.
	mediaBase := strings.TrimRight(os.Getenv("API_BASE_URL"), "/")

	token := os.Getenv("MONITOR_BOT_TOKEN")
	if token == "" {
		log.Fatal("MONITOR_BOT_TOKEN is not set")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Fatal("monitor bot init failed:", err)
	}
	log.Printf("monitor bot %s started", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		msg := update.Message
		chatID := msg.Chat.ID

		user, err := userRepo.GetByTelegramID(msg.From.ID)
		if err != nil || (user.Role != model.RoleMonitor && user.Role != model.RoleAdmin) {
			bot.Send(tgbotapi.NewMessage(chatID, "This bot is for moderation staff only."))
			continue
		}

		switch msg.Command() {
		case "start":
			bot.Send(tgbotapi.NewMessage(chatID,
				"Moderation bot ready. Commands: /pending, /approve <id>, /reject <id>"))
		case "pending":
			approvals, err := moderation.ListPending()
			if err != nil {
				bot.Send(tgbotapi.NewMessage(chatID, "Could not load the queue: "+err.Error()))
				continue
			}
			if len(approvals) == 0 {
				bot.Send(tgbotapi.NewMessage(chatID, "No voice notes are waiting for review."))
				continue
			}
			var b strings.Builder
			b.WriteString("Pending voice notes:\n")
			for _, a := range approvals {
				fmt.Fprintf(&b, "#%d: session %d, from user %d, %ds, queued %s\n%s%s\n",
					a.ID, a.SessionID, a.SenderID, a.DurationSeconds,
					a.CreatedAt.Format("2006-01-02 15:04"), mediaBase, a.MediaURL)
			}
			bot.Send(tgbotapi.NewMessage(chatID, b.String()))
		case "approve", "reject":
			id, err := strconv.Atoi(strings.TrimSpace(msg.CommandArguments()))
			if err != nil {
				bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Usage: /%s <id>", msg.Command())))
				continue
			}
			var reviewErr error
			outcome := "approved"
			if msg.Command() == "approve" {
				_, reviewErr = moderation.Approve(id, user.ID)
			} else {
				_, reviewErr = moderation.Reject(id, user.ID)
				outcome = "rejected"
			}
			if reviewErr != nil {
				bot.Send(tgbotapi.NewMessage(chatID, "Review failed: "+reviewErr.Error()))
				continue
			}
			bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Voice note #%d %s.", id, outcome)))
		}
	}
}
