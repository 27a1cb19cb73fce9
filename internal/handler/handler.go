package handler

import (
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/realtime"
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler bundles the services behind the HTTP API.
type Handler struct {
	Auth          *service.AuthService
	Chat          *service.ChatService
	Bookings      *service.BookingService
	Catalog       *service.CatalogService
	Moderation    *service.ModerationService
	Notifications *service.NotificationService
	Rates         *service.RatesService
	Recaptcha     *service.RecaptchaService
	Hub           *realtime.Hub
	MediaDir      string
}

// New creates a Handler with its service dependencies injected.
func New(auth *service.AuthService, chat *service.ChatService, bookings *service.BookingService,
	catalog *service.CatalogService, moderation *service.ModerationService,
	notifications *service.NotificationService, rates *service.RatesService,
	recaptcha *service.RecaptchaService, hub *realtime.Hub, mediaDir string) *Handler {
	return &Handler{
		Auth:          auth,
		Chat:          chat,
		Bookings:      bookings,
		Catalog:       catalog,
		Moderation:    moderation,
		Notifications: notifications,
		Rates:         rates,
		Recaptcha:     recaptcha,
		Hub:           hub,
		MediaDir:      mediaDir,
	}
}

// Router builds the gin engine with all routes registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if h.MediaDir != "" {
		r.Static("/media", h.MediaDir)
	}
	r.GET("/ws", h.ServeWS)

	api := r.Group("/api")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/verify-recaptcha", h.VerifyRecaptcha)
	api.GET("/services", h.ListServices)
	api.GET("/exchange-rates", h.ListExchangeRates)
	api.GET("/exchange-rates/format-display", h.FormatRateDisplay)

	auth := api.Group("", h.AuthRequired())
	auth.POST("/auth/logout", h.Logout)
	auth.GET("/auth/me", h.Me)
	auth.GET("/notifications", h.ListNotifications)

	auth.POST("/bookings", h.CreateBooking)
	auth.GET("/bookings", h.ListBookings)
	auth.GET("/bookings/:id", h.GetBooking)
	auth.POST("/bookings/:id/confirm", h.ConfirmBooking)
	auth.POST("/bookings/:id/cancel", h.CancelBooking)
	auth.POST("/bookings/:id/complete", h.CompleteBooking)

	chat := auth.Group("/chat")
	chat.GET("/sessions", h.ListSessions)
	chat.GET("/sessions/:id", h.GetSession)
	chat.GET("/sessions/:id/messages", h.ListMessages)
	chat.POST("/sessions/:id/messages", h.SendMessage)
	chat.POST("/sessions/:id/upload", h.UploadImage)
	chat.POST("/sessions/:id/voice", h.UploadVoice)
	chat.POST("/sessions/:id/read", h.MarkRead)
	chat.POST("/sessions/:id/typing", h.Typing)
	chat.POST("/sessions/:id/lock", h.LockSession)
	chat.DELETE("/messages/:id", h.DeleteMessage)

	adminServices := api.Group("/services/admin", h.AuthRequired(), h.RequireRole(model.RoleAdmin))
	adminServices.GET("", h.ListAllServices)
	adminServices.POST("", h.CreateService)
	adminServices.PUT("/:id", h.UpdateService)
	adminServices.DELETE("/:id", h.DeleteService)

	admin := api.Group("/admin", h.AuthRequired())
	moderation := admin.Group("", h.RequireRole(model.RoleMonitor, model.RoleAdmin))
	moderation.GET("/voice-approvals", h.ListVoiceApprovals)
	moderation.POST("/voice-approvals/:id/approve", h.ApproveVoice)
	moderation.POST("/voice-approvals/:id/reject", h.RejectVoice)

	rules := admin.Group("", h.RequireRole(model.RoleAdmin))
	rules.GET("/notification-rules", h.ListNotificationRules)
	rules.POST("/notification-rules", h.CreateNotificationRule)
	rules.PUT("/notification-rules/:id", h.UpdateNotificationRule)
	rules.DELETE("/notification-rules/:id", h.DeleteNotificationRule)
	rules.POST("/broadcast", h.Broadcast)
	rules.PUT("/exchange-rates", h.UpsertExchangeRate)

	return r
}
