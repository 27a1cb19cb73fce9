package model

import "time"

// Chat session statuses. The transition active -> locked is one-directional.
const (
	SessionActive = "active"
	SessionLocked = "locked"
)

// Message types.
const (
	MessageText   = "text"
	MessageImage  = "image"
	MessageVoice  = "voice"
	MessageSystem = "system"
)

// Approval statuses for voice messages. Non-voice messages are always
// "approved". pending -> approved/rejected is terminal.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// ChatSession is the booking-scoped conversation between a client and a
// reader, carrying the client's usage counters and their caps.
type ChatSession struct {
	ID                     int        `db:"id" json:"id"`
	BookingID              int        `db:"booking_id" json:"booking_id"`
	ClientID               int        `db:"client_id" json:"client_id"`
	ReaderID               int        `db:"reader_id" json:"reader_id"`
	Status                 string     `db:"status" json:"status"`
	ClientTextCharsUsed    int        `db:"client_text_chars_used" json:"client_text_chars_used"`
	ClientVoiceSecondsUsed int        `db:"client_voice_seconds_used" json:"client_voice_seconds_used"`
	ClientImagesSent       int        `db:"client_images_sent" json:"client_images_sent"`
	MaxTextChars           int        `db:"max_text_chars" json:"max_text_chars"`
	MaxVoiceSeconds        int        `db:"max_voice_seconds" json:"max_voice_seconds"`
	MaxImages              int        `db:"max_images" json:"max_images"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at"`
	LockedAt               *time.Time `db:"locked_at" json:"locked_at,omitempty"`
}

// ChatMessage belongs to exactly one session. Voice messages carry an
// approval status and are withheld from the non-sender party until approved.
type ChatMessage struct {
	ID              int       `db:"id" json:"id"`
	SessionID       int       `db:"session_id" json:"session_id"`
	SenderID        int       `db:"sender_id" json:"sender_id"`
	Type            string    `db:"type" json:"type"`
	Content         string    `db:"content" json:"content"`
	MediaURL        string    `db:"media_url" json:"media_url,omitempty"`
	DurationSeconds int       `db:"duration_seconds" json:"duration_seconds,omitempty"`
	ReplyToID       *int      `db:"reply_to_id" json:"reply_to_id,omitempty"`
	IsRead          bool      `db:"is_read" json:"is_read"`
	ApprovalStatus  string    `db:"approval_status" json:"approval_status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
