package model

import "time"

// Roles a user account can hold.
const (
	RoleClient  = "client"
	RoleReader  = "reader"
	RoleMonitor = "monitor"
	RoleAdmin   = "admin"
)

// User represents an account: a client booking readings, a reader performing
// them, a monitor moderating voice notes, or an admin.
type User struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Role         string    `db:"role" json:"role"`
	TelegramID   int64     `db:"telegram_id" json:"-"` // set for monitors using the moderation bot
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// AuthToken is an opaque bearer token issued at login.
type AuthToken struct {
	Token     string    `db:"token" json:"token"`
	UserID    int       `db:"user_id" json:"user_id"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}
