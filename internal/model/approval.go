package model

import "time"

// VoiceNoteApproval is a moderation queue entry for a pending voice message.
// Terminal once reviewed.
type VoiceNoteApproval struct {
	ID         int        `db:"id" json:"id"`
	MessageID  int        `db:"message_id" json:"message_id"`
	SessionID  int        `db:"session_id" json:"session_id"`
	Status     string     `db:"status" json:"status"`
	ReviewerID *int       `db:"reviewer_id" json:"reviewer_id,omitempty"`
	ReviewedAt *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// PendingVoiceNote is a queue entry joined with the voice message under
// review, so reviewers can listen to what they are judging.
type PendingVoiceNote struct {
	VoiceNoteApproval
	SenderID        int    `json:"sender_id"`
	MediaURL        string `json:"media_url"`
	DurationSeconds int    `json:"duration_seconds"`
}
