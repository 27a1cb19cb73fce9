package service

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and bearer-token resolution.
type AuthService struct {
	users UserStore
}

// NewAuthService creates a new auth service.
func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new client account.
func (s *AuthService) Register(email, password, firstName, lastName string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("a valid email is required")
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Role:         model.RoleClient,
	}
	id, err := s.users.Create(user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

// Login checks credentials and issues a bearer token.
func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token := uuid.NewString()
	err = s.users.SaveToken(&model.AuthToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(tokenTTL),
	})
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UserByToken resolves a bearer token to its user. Expired tokens are
// removed on sight.
func (s *AuthService) UserByToken(token string) (*model.User, error) {
	if token == "" {
		return nil, ErrInvalidCredentials
	}
	t, err := s.users.GetToken(token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if time.Now().After(t.ExpiresAt) {
		s.users.DeleteToken(token)
		return nil, ErrTokenExpired
	}
	user, err := s.users.GetByID(t.UserID)
	if err != nil {
		return nil, asNotFound(err)
	}
	return user, nil
}

// Logout revokes a bearer token. Revoking an unknown token is not an error.
func (s *AuthService) Logout(token string) error {
	return s.users.DeleteToken(token)
}
