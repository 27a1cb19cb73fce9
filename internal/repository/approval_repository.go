package repository

import (
	"fmt"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"

	"github.com/jmoiron/sqlx"
)

// ApprovalRepository provides access to the voice-note moderation queue.
type ApprovalRepository struct {
	db *sqlx.DB
}

// NewApprovalRepository creates a new approval repository.
func NewApprovalRepository(db *sqlx.DB) *ApprovalRepository {
	return &ApprovalRepository{db: db}
}

// Create inserts a pending approval entry for a voice message.
func (r *ApprovalRepository) Create(a *model.VoiceNoteApproval) error {
	query := `INSERT INTO voice_note_approvals (message_id, session_id, status)
	          VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.db.QueryRow(query, a.MessageID, a.SessionID, a.Status).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create voice approval: %w", err)
	}
	return nil
}

// GetByID returns an approval entry by id.
func (r *ApprovalRepository) GetByID(id int) (*model.VoiceNoteApproval, error) {
	var a model.VoiceNoteApproval
	err := r.db.Get(&a, "SELECT * FROM voice_note_approvals WHERE id=$1", id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListPending returns unreviewed entries, oldest first.
func (r *ApprovalRepository) ListPending() ([]model.VoiceNoteApproval, error) {
	approvals := []model.VoiceNoteApproval{}
	err := r.db.Select(&approvals, "SELECT * FROM voice_note_approvals WHERE status=$1 ORDER BY id", model.ApprovalPending)
	if err != nil {
		return nil, err
	}
	return approvals, nil
}

// Review records the outcome of a review. Returns false when the entry had
// already been reviewed (the condition makes the transition terminal).
func (r *ApprovalRepository) Review(id int, status string, reviewerID int) (bool, error) {
	res, err := r.db.Exec(`UPDATE voice_note_approvals SET status=$1, reviewer_id=$2, reviewed_at=now()
	                       WHERE id=$3 AND status=$4`, status, reviewerID, id, model.ApprovalPending)
	if err != nil {
		return false, fmt.Errorf("review voice approval: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
