package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/handler"
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/realtime"
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/repository"
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/service"
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/storage"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	dsn := "host=" + getenv("DB_HOST", "localhost") +
		" port=" + getenv("DB_PORT", "5432") +
		" user=" + os.Getenv("DB_USER") +
		" password=" + os.Getenv("DB_PASS") +
		" dbname=" + os.Getenv("DB_NAME") +
		" sslmode=" + getenv("DB_SSLMODE", "disable")
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	// Apply migrations, one transaction per file.
	files, err := filepath.Glob("migrations/*.sql")
	if err == nil {
		for _, file := range files {
			content, readErr := os.ReadFile(file)
			if readErr != nil {
				log.Printf("migration %s unreadable: %v", file, readErr)
				continue
			}
			tx, txErr := db.Begin()
			if txErr != nil {
				log.Printf("migration %s begin failed: %v", file, txErr)
				continue
			}
			if _, execErr := tx.Exec(string(content)); execErr != nil {
				tx.Rollback()
				log.Printf("migration %s failed: %v", file, execErr)
			} else {
				tx.Commit()
				log.Printf("migration %s applied", file)
			}
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	if err := userRepo.DeleteExpiredTokens(time.Now()); err != nil {
		log.Printf("expired token cleanup: %v", err)
	}
	readingRepo := repository.NewReadingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	rateRepo := repository.NewRateRepository(db)

	// Realtime hub and media store
	hub := realtime.NewHub()
	media := storage.NewMediaStore(getenv("MEDIA_DIR", "media"), "/media")

	// Services
	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(readingRepo)
	bookingService := service.NewBookingService(bookingRepo, sessionRepo, readingRepo)
	chatService := service.NewChatService(sessionRepo, messageRepo, approvalRepo, notificationRepo, userRepo, media, hub)
	moderationService := service.NewModerationService(approvalRepo, messageRepo, notificationRepo, hub)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, hub)
	ratesService := service.NewRatesService(rateRepo)
	recaptchaService := service.NewRecaptchaService(os.Getenv("RECAPTCHA_SECRET"))

	h := handler.New(authService, chatService, bookingService, catalogService,
		moderationService, notificationService, ratesService, recaptchaService, hub, media.Dir())

	srv := &http.Server{
		Addr:    ":" + getenv("API_PORT", "8080"),
		Handler: h.Router(),
	}

	go func() {
		log.Printf("api listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	chatService.Close()
	hub.Close()
}
