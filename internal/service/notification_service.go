package service

import (
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/realtime"
)

// NotificationService lists user notifications and runs admin broadcasts
// driven by notification rules.
type NotificationService struct {
	notifications NotificationStore
	users         UserStore
	hub           Broadcaster
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notifications NotificationStore, users UserStore, hub Broadcaster) *NotificationService {
	return &NotificationService{notifications: notifications, users: users, hub: hub}
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(userID int) ([]model.Notification, error) {
	return s.notifications.ListByUser(userID)
}

// ListRules returns all broadcast rules.
func (s *NotificationService) ListRules() ([]model.NotificationRule, error) {
	return s.notifications.ListRules()
}

// CreateRule adds a broadcast rule.
func (s *NotificationService) CreateRule(rule *model.NotificationRule) (*model.NotificationRule, error) {
	id, err := s.notifications.CreateRule(rule)
	if err != nil {
		return nil, err
	}
	rule.ID = id
	return rule, nil
}

// UpdateRule replaces a broadcast rule.
func (s *NotificationService) UpdateRule(rule *model.NotificationRule) error {
	if _, err := s.notifications.GetRule(rule.ID); err != nil {
		return asNotFound(err)
	}
	return s.notifications.UpdateRule(rule)
}

// DeleteRule removes a broadcast rule.
func (s *NotificationService) DeleteRule(id int) error {
	if _, err := s.notifications.GetRule(id); err != nil {
		return asNotFound(err)
	}
	return s.notifications.DeleteRule(id)
}

// Broadcast sends the rule's announcement to every user in its audience and
// returns how many notifications were created.
func (s *NotificationService) Broadcast(ruleID int) (int, error) {
	rule, err := s.notifications.GetRule(ruleID)
	if err != nil {
		return 0, asNotFound(err)
	}
	if !rule.Enabled {
		return 0, ErrRuleDisabled
	}
	audience, err := s.users.ListByRole(rule.Audience)
	if err != nil {
		return 0, err
	}
	body := rule.TemplateEn
	if rule.TemplateAr != "" {
		body = rule.TemplateEn + "\n" + rule.TemplateAr
	}
	sent := 0
	for _, u := range audience {
		n := &model.Notification{UserID: u.ID, Kind: model.NotificationBroadcast, Body: body}
		if err := s.notifications.Create(n); err != nil {
			return sent, err
		}
		s.hub.Broadcast(realtime.UserTopic(u.ID), realtime.EventNotificationInsert, n)
		sent++
	}
	return sent, nil
}
