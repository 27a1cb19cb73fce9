package model

import "time"

// Notification kinds.
const (
	NotificationTyping        = "typing"
	NotificationBroadcast     = "broadcast"
	NotificationVoicePending  = "voice_pending"
	NotificationVoiceApproved = "voice_approved"
	NotificationVoiceRejected = "voice_rejected"
	NotificationSessionLocked = "session_locked"
)

// Notification is a user-scoped signal. Typing notifications are ephemeral
// and removed by the chat service a few seconds after creation.
type Notification struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Kind      string    `db:"kind" json:"kind"`
	SessionID *int      `db:"session_id" json:"session_id,omitempty"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NotificationRule is an admin-managed broadcast rule: which role receives
// the announcement and the bilingual templates to send.
type NotificationRule struct {
	ID         int    `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	Audience   string `db:"audience" json:"audience"`
	TemplateEn string `db:"template_en" json:"template_en"`
	TemplateAr string `db:"template_ar" json:"template_ar"`
	Enabled    bool   `db:"enabled" json:"enabled"`
}
