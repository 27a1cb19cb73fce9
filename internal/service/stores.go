package service

import (
	"io"
	"time"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"
)

// Store interfaces the services depend on. The sqlx repositories satisfy
// them; tests substitute in-memory fakes.

// UserStore provides user accounts and bearer tokens.
type UserStore interface {
	Create(user *model.User) (int, error)
	GetByID(id int) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	ListByRole(role string) ([]model.User, error)
	SaveToken(t *model.AuthToken) error
	GetToken(token string) (*model.AuthToken, error)
	DeleteToken(token string) error
}

// ReadingStore provides the reading-service catalog.
type ReadingStore interface {
	Create(svc *model.ReadingService) (int, error)
	GetByID(id int) (*model.ReadingService, error)
	Update(svc *model.ReadingService) error
	Delete(id int) error
	ListAll() ([]model.ReadingService, error)
	ListActive() ([]model.ReadingService, error)
}

// BookingStore provides bookings.
type BookingStore interface {
	Create(booking *model.Booking) (int, error)
	GetByID(id int) (*model.Booking, error)
	UpdateStatus(id int, status string) error
	ListByUser(userID int) ([]model.Booking, error)
}

// SessionStore provides chat sessions and their usage counters.
type SessionStore interface {
	Create(s *model.ChatSession) (int, error)
	GetByID(id int) (*model.ChatSession, error)
	GetByBookingID(bookingID int) (*model.ChatSession, error)
	ListByUser(userID int) ([]model.ChatSession, error)
	Lock(id int) (bool, error)
	AddTextUsage(id, chars int) error
	AddVoiceUsage(id, seconds int) error
	AddImageUsage(id int) error
}

// MessageStore provides chat messages.
type MessageStore interface {
	Create(msg *model.ChatMessage) error
	GetByID(id int) (*model.ChatMessage, error)
	ListBySession(sessionID int) ([]model.ChatMessage, error)
	Delete(id int) error
	MarkRead(sessionID, readerUserID int) error
	UpdateApproval(id int, status string) error
}

// ApprovalStore provides the voice-note moderation queue.
type ApprovalStore interface {
	Create(a *model.VoiceNoteApproval) error
	GetByID(id int) (*model.VoiceNoteApproval, error)
	ListPending() ([]model.VoiceNoteApproval, error)
	Review(id int, status string, reviewerID int) (bool, error)
}

// NotificationStore provides notifications and broadcast rules.
type NotificationStore interface {
	Create(n *model.Notification) error
	Delete(id int) error
	ListByUser(userID int) ([]model.Notification, error)
	CreateRule(rule *model.NotificationRule) (int, error)
	GetRule(id int) (*model.NotificationRule, error)
	ListRules() ([]model.NotificationRule, error)
	UpdateRule(rule *model.NotificationRule) error
	DeleteRule(id int) error
}

// RateStore provides exchange rates.
type RateStore interface {
	Get(currency string) (*model.ExchangeRate, error)
	List() ([]model.ExchangeRate, error)
	Upsert(rate *model.ExchangeRate) error
}

// MediaSaver stores uploaded chat media, returns public URLs and removes
// files when their message is deleted.
type MediaSaver interface {
	SaveImage(fileName, contentType string, size int64, r io.Reader) (string, error)
	SaveVoice(fileName, contentType string, size int64, r io.Reader) (string, error)
	Remove(publicURL string) error
}

// Broadcaster pushes realtime events to topic subscribers.
type Broadcaster interface {
	Broadcast(topic, event string, payload interface{})
}

// Clock-free token lifetime shared by login and middleware lookups.
const tokenTTL = 30 * 24 * time.Hour
