package handler

import (
	"net/http"
	"strconv"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"

	"github.com/gin-gonic/gin"
)

// ListServices handles GET /api/services (the public catalog).
func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.Catalog.ListServices(true)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, services)
}

// ListAllServices handles GET /api/services/admin.
func (h *Handler) ListAllServices(c *gin.Context) {
	services, err := h.Catalog.ListServices(false)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, services)
}

// CreateService handles POST /api/services/admin.
func (h *Handler) CreateService(c *gin.Context) {
	var svc model.ReadingService
	if err := c.ShouldBindJSON(&svc); err != nil {
		failStatus(c, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := h.Catalog.CreateService(&svc)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, out)
}

// UpdateService handles PUT /api/services/admin/:id.
func (h *Handler) UpdateService(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	var svc model.ReadingService
	if err := c.ShouldBindJSON(&svc); err != nil {
		failStatus(c, http.StatusBadRequest, "invalid request body")
		return
	}
	svc.ID = id
	if err := h.Catalog.UpdateService(&svc); err != nil {
		fail(c, err)
		return
	}
	ok(c, svc)
}

// DeleteService handles DELETE /api/services/admin/:id.
func (h *Handler) DeleteService(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	if err := h.Catalog.DeleteService(id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// ListVoiceApprovals handles GET /api/admin/voice-approvals.
func (h *Handler) ListVoiceApprovals(c *gin.Context) {
	approvals, err := h.Moderation.ListPending()
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, approvals)
}

// ApproveVoice handles POST /api/admin/voice-approvals/:id/approve.
func (h *Handler) ApproveVoice(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	msg, err := h.Moderation.Approve(id, currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, msg)
}

// RejectVoice handles POST /api/admin/voice-approvals/:id/reject.
func (h *Handler) RejectVoice(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	msg, err := h.Moderation.Reject(id, currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, msg)
}

// ListNotifications handles GET /api/notifications.
func (h *Handler) ListNotifications(c *gin.Context) {
	notifications, err := h.Notifications.ListForUser(currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, notifications)
}

// ListNotificationRules handles GET /api/admin/notification-rules.
func (h *Handler) ListNotificationRules(c *gin.Context) {
	rules, err := h.Notifications.ListRules()
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, rules)
}

// CreateNotificationRule handles POST /api/admin/notification-rules.
func (h *Handler) CreateNotificationRule(c *gin.Context) {
	var rule model.NotificationRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		failStatus(c, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := h.Notifications.CreateRule(&rule)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, out)
}

// UpdateNotificationRule handles PUT /api/admin/notification-rules/:id.
func (h *Handler) UpdateNotificationRule(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	var rule model.NotificationRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		failStatus(c, http.StatusBadRequest, "invalid request body")
		return
	}
	rule.ID = id
	if err := h.Notifications.UpdateRule(&rule); err != nil {
		fail(c, err)
		return
	}
	ok(c, rule)
}

// DeleteNotificationRule handles DELETE /api/admin/notification-rules/:id.
func (h *Handler) DeleteNotificationRule(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	if err := h.Notifications.DeleteRule(id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

type broadcastRequest struct {
	RuleID int `json:"rule_id" binding:"required"`
}

// Broadcast handles POST /api/admin/broadcast.
func (h *Handler) Broadcast(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failStatus(c, http.StatusBadRequest, "rule_id is required")
		return
	}
	sent, err := h.Notifications.Broadcast(req.RuleID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"sent": sent})
}

// ListExchangeRates handles GET /api/exchange-rates.
func (h *Handler) ListExchangeRates(c *gin.Context) {
	rates, err := h.Rates.ListRates()
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, rates)
}

// UpsertExchangeRate handles PUT /api/admin/exchange-rates.
func (h *Handler) UpsertExchangeRate(c *gin.Context) {
	var rate model.ExchangeRate
	if err := c.ShouldBindJSON(&rate); err != nil {
		failStatus(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Rates.UpsertRate(&rate); err != nil {
		fail(c, err)
		return
	}
	ok(c, rate)
}

// FormatRateDisplay handles GET /api/exchange-rates/format-display.
func (h *Handler) FormatRateDisplay(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil {
		failStatus(c, http.StatusBadRequest, "amount is required")
		return
	}
	display, err := h.Rates.FormatDisplay(amount, c.Query("currency"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"display": display})
}
