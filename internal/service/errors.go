package service

import (
	"database/sql"
	"errors"
)

// Domain failures the handlers map to HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrTokenExpired       = errors.New("token expired")
	ErrNotParticipant     = errors.New("not a participant of this chat session")
	ErrSessionLocked      = errors.New("chat session is locked")
	ErrEmptyMessage       = errors.New("message content is empty")
	ErrTextQuotaExceeded  = errors.New("text character limit reached for this session")
	ErrVoiceQuotaExceeded = errors.New("voice seconds limit reached for this session")
	ErrImageQuotaExceeded = errors.New("image limit reached for this session")
	ErrBadDuration        = errors.New("voice note duration must be positive")
	ErrNotSender          = errors.New("only the sender can delete a message")
	ErrDeleteWindowPassed = errors.New("messages older than 5 minutes cannot be deleted")
	ErrReaderOnly         = errors.New("only the session reader can lock it")
	ErrAlreadyReviewed    = errors.New("voice note has already been reviewed")
	ErrServiceInactive    = errors.New("reading service is not available")
	ErrBookingNotPending  = errors.New("booking is not pending")
	ErrRuleDisabled       = errors.New("notification rule is disabled")
)

// asNotFound translates the sql sentinel so handlers never see driver errors.
func asNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
