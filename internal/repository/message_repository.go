package repository

import (
	"fmt"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"

	"github.com/jmoiron/sqlx"
)

// MessageRepository provides access to chat messages.
type MessageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message, filling in its id and creation time.
func (r *MessageRepository) Create(msg *model.ChatMessage) error {
	query := `INSERT INTO chat_messages (session_id, sender_id, type, content, media_url, duration_seconds, reply_to_id, approval_status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	err := r.db.QueryRow(query, msg.SessionID, msg.SenderID, msg.Type, msg.Content,
		msg.MediaURL, msg.DurationSeconds, msg.ReplyToID, msg.ApprovalStatus).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

// GetByID returns a message by id.
func (r *MessageRepository) GetByID(id int) (*model.ChatMessage, error) {
	var msg model.ChatMessage
	err := r.db.Get(&msg, "SELECT * FROM chat_messages WHERE id=$1", id)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListBySession returns all messages of a session in creation order.
func (r *MessageRepository) ListBySession(sessionID int) ([]model.ChatMessage, error) {
	messages := []model.ChatMessage{}
	err := r.db.Select(&messages, "SELECT * FROM chat_messages WHERE session_id=$1 ORDER BY id", sessionID)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Delete removes a message.
func (r *MessageRepository) Delete(id int) error {
	_, err := r.db.Exec("DELETE FROM chat_messages WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// MarkRead marks every message of the session not sent by the reading user.
func (r *MessageRepository) MarkRead(sessionID, readerUserID int) error {
	_, err := r.db.Exec("UPDATE chat_messages SET is_read=true WHERE session_id=$1 AND sender_id<>$2 AND is_read=false",
		sessionID, readerUserID)
	if err != nil {
		return fmt.Errorf("mark messages read: %w", err)
	}
	return nil
}

// UpdateApproval sets the approval flag of a voice message.
func (r *MessageRepository) UpdateApproval(id int, status string) error {
	_, err := r.db.Exec("UPDATE chat_messages SET approval_status=$1 WHERE id=$2", status, id)
	if err != nil {
		return fmt.Errorf("update message approval: %w", err)
	}
	return nil
}
