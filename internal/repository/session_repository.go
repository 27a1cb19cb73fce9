package repository

import (
	"fmt"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"

	"github.com/jmoiron/sqlx"
)

// SessionRepository provides access to chat sessions and their usage counters.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new chat-session repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new active session for a confirmed booking and returns its id.
func (r *SessionRepository) Create(s *model.ChatSession) (int, error) {
	query := `INSERT INTO chat_sessions (booking_id, client_id, reader_id, status, max_text_chars, max_voice_seconds, max_images)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int
	err := r.db.QueryRow(query, s.BookingID, s.ClientID, s.ReaderID, s.Status,
		s.MaxTextChars, s.MaxVoiceSeconds, s.MaxImages).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create chat session: %w", err)
	}
	return id, nil
}

// GetByID returns a session by id.
func (r *SessionRepository) GetByID(id int) (*model.ChatSession, error) {
	var s model.ChatSession
	err := r.db.Get(&s, "SELECT * FROM chat_sessions WHERE id=$1", id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByBookingID returns the session created for a booking.
func (r *SessionRepository) GetByBookingID(bookingID int) (*model.ChatSession, error) {
	var s model.ChatSession
	err := r.db.Get(&s, "SELECT * FROM chat_sessions WHERE booking_id=$1", bookingID)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByUser returns sessions where the user is the client or the reader.
func (r *SessionRepository) ListByUser(userID int) ([]model.ChatSession, error) {
	sessions := []model.ChatSession{}
	err := r.db.Select(&sessions,
		"SELECT * FROM chat_sessions WHERE client_id=$1 OR reader_id=$1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// Lock moves an active session to locked. Returns false when the session was
// already locked (the condition keeps the transition one-directional).
func (r *SessionRepository) Lock(id int) (bool, error) {
	res, err := r.db.Exec(`UPDATE chat_sessions SET status=$1, locked_at=now() WHERE id=$2 AND status=$3`,
		model.SessionLocked, id, model.SessionActive)
	if err != nil {
		return false, fmt.Errorf("lock chat session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddTextUsage adds to the client's consumed text characters.
func (r *SessionRepository) AddTextUsage(id, chars int) error {
	_, err := r.db.Exec("UPDATE chat_sessions SET client_text_chars_used = client_text_chars_used + $1 WHERE id=$2", chars, id)
	if err != nil {
		return fmt.Errorf("add text usage: %w", err)
	}
	return nil
}

// AddVoiceUsage adds to the client's consumed voice seconds.
func (r *SessionRepository) AddVoiceUsage(id, seconds int) error {
	_, err := r.db.Exec("UPDATE chat_sessions SET client_voice_seconds_used = client_voice_seconds_used + $1 WHERE id=$2", seconds, id)
	if err != nil {
		return fmt.Errorf("add voice usage: %w", err)
	}
	return nil
}

// AddImageUsage increments the client's sent-image counter.
func (r *SessionRepository) AddImageUsage(id int) error {
	_, err := r.db.Exec("UPDATE chat_sessions SET client_images_sent = client_images_sent + 1 WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("add image usage: %w", err)
	}
	return nil
}
