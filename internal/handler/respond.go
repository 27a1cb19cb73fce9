package handler

import (
	"errors"
	"net/http"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/service"
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/storage"

	"github.com/gin-gonic/gin"
)

// Every response carries a success flag; failures add an error message. The
// shape matches what the web client already consumes.

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"success": false, "error": err.Error()})
}

func failStatus(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrNotSender),
		errors.Is(err, service.ErrReaderOnly):
		return http.StatusForbidden
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrSessionLocked),
		errors.Is(err, service.ErrBookingNotPending):
		return http.StatusConflict
	case errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrTextQuotaExceeded),
		errors.Is(err, service.ErrVoiceQuotaExceeded),
		errors.Is(err, service.ErrImageQuotaExceeded),
		errors.Is(err, service.ErrBadDuration),
		errors.Is(err, service.ErrDeleteWindowPassed),
		errors.Is(err, service.ErrServiceInactive),
		errors.Is(err, service.ErrRuleDisabled),
		errors.Is(err, storage.ErrNotImage),
		errors.Is(err, storage.ErrImageTooLarge),
		errors.Is(err, storage.ErrBadVoiceFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
