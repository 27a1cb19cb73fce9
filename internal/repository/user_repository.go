package repository

import (
	"fmt"
	"time"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"

	"github.com/jmoiron/sqlx"
)

// UserRepository provides access to user accounts and auth tokens.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and returns its id.
func (r *UserRepository) Create(user *model.User) (int, error) {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, role, telegram_id)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int
	err := r.db.QueryRow(query, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Role, user.TelegramID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// GetByID returns a user by id.
func (r *UserRepository) GetByID(id int) (*model.User, error) {
	var user model.User
	err := r.db.Get(&user, "SELECT * FROM users WHERE id=$1", id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns a user by email.
func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Get(&user, "SELECT * FROM users WHERE email=$1", email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByTelegramID returns a user by Telegram id (used by the moderation bot).
func (r *UserRepository) GetByTelegramID(telegramID int64) (*model.User, error) {
	var user model.User
	err := r.db.Get(&user, "SELECT * FROM users WHERE telegram_id=$1", telegramID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByRole returns all users holding the given role.
func (r *UserRepository) ListByRole(role string) ([]model.User, error) {
	users := []model.User{}
	err := r.db.Select(&users, "SELECT * FROM users WHERE role=$1 ORDER BY id", role)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// SaveToken stores a bearer token.
func (r *UserRepository) SaveToken(t *model.AuthToken) error {
	_, err := r.db.Exec(`INSERT INTO auth_tokens (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		t.Token, t.UserID, t.ExpiresAt)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// GetToken returns a stored token row.
func (r *UserRepository) GetToken(token string) (*model.AuthToken, error) {
	var t model.AuthToken
	err := r.db.Get(&t, "SELECT * FROM auth_tokens WHERE token=$1", token)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteToken removes a token. Deleting a missing token is not an error.
func (r *UserRepository) DeleteToken(token string) error {
	_, err := r.db.Exec("DELETE FROM auth_tokens WHERE token=$1", token)
	return err
}

// DeleteExpiredTokens clears tokens past their expiry.
func (r *UserRepository) DeleteExpiredTokens(now time.Time) error {
	_, err := r.db.Exec("DELETE FROM auth_tokens WHERE expires_at < $1", now)
	return err
}
