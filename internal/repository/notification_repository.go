package repository

import (
	"fmt"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"

	"github.com/jmoiron/sqlx"
)

// NotificationRepository provides access to notifications and broadcast rules.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification, filling in its id and creation time.
func (r *NotificationRepository) Create(n *model.Notification) error {
	query := `INSERT INTO notifications (user_id, kind, session_id, body)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.db.QueryRow(query, n.UserID, n.Kind, n.SessionID, n.Body).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// Delete removes a notification. Deleting a missing row is not an error.
func (r *NotificationRepository) Delete(id int) error {
	_, err := r.db.Exec("DELETE FROM notifications WHERE id=$1", id)
	return err
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepository) ListByUser(userID int) ([]model.Notification, error) {
	notifications := []model.Notification{}
	err := r.db.Select(&notifications, "SELECT * FROM notifications WHERE user_id=$1 ORDER BY id DESC", userID)
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// CreateRule inserts a broadcast rule and returns its id.
func (r *NotificationRepository) CreateRule(rule *model.NotificationRule) (int, error) {
	query := `INSERT INTO notification_rules (name, audience, template_en, template_ar, enabled)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := r.db.QueryRow(query, rule.Name, rule.Audience, rule.TemplateEn, rule.TemplateAr, rule.Enabled).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create notification rule: %w", err)
	}
	return id, nil
}

// GetRule returns a broadcast rule by id.
func (r *NotificationRepository) GetRule(id int) (*model.NotificationRule, error) {
	var rule model.NotificationRule
	err := r.db.Get(&rule, "SELECT * FROM notification_rules WHERE id=$1", id)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListRules returns all broadcast rules.
func (r *NotificationRepository) ListRules() ([]model.NotificationRule, error) {
	rules := []model.NotificationRule{}
	err := r.db.Select(&rules, "SELECT * FROM notification_rules ORDER BY id")
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// UpdateRule replaces the editable fields of a broadcast rule.
func (r *NotificationRepository) UpdateRule(rule *model.NotificationRule) error {
	_, err := r.db.Exec(`UPDATE notification_rules SET name=$1, audience=$2, template_en=$3, template_ar=$4, enabled=$5 WHERE id=$6`,
		rule.Name, rule.Audience, rule.TemplateEn, rule.TemplateAr, rule.Enabled, rule.ID)
	if err != nil {
		return fmt.Errorf("update notification rule: %w", err)
	}
	return nil
}

// DeleteRule removes a broadcast rule.
func (r *NotificationRepository) DeleteRule(id int) error {
	_, err := r.db.Exec("DELETE FROM notification_rules WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("delete notification rule: %w", err)
	}
	return nil
}
