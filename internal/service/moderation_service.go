package service

import (
	"log"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/realtime"
)

// ModerationService runs the voice-note review queue. A review is terminal:
// once approved or rejected an entry never changes again.
type ModerationService struct {
	approvals     ApprovalStore
	messages      MessageStore
	notifications NotificationStore
	hub           Broadcaster
}

// NewModerationService creates a new moderation service.
func NewModerationService(approvals ApprovalStore, messages MessageStore,
	notifications NotificationStore, hub Broadcaster) *ModerationService {
	return &ModerationService{approvals: approvals, messages: messages, notifications: notifications, hub: hub}
}

// ListPending returns unreviewed voice notes, oldest first, each carrying the
// message's media URL, duration and sender so reviewers can play the note.
func (s *ModerationService) ListPending() ([]model.PendingVoiceNote, error) {
	approvals, err := s.approvals.ListPending()
	if err != nil {
		return nil, err
	}
	queue := make([]model.PendingVoiceNote, 0, len(approvals))
	for _, a := range approvals {
		entry := model.PendingVoiceNote{VoiceNoteApproval: a}
		msg, err := s.messages.GetByID(a.MessageID)
		if err != nil {
			log.Printf("load message %d for approval %d: %v", a.MessageID, a.ID, err)
		} else {
			entry.SenderID = msg.SenderID
			entry.MediaURL = msg.MediaURL
			entry.DurationSeconds = msg.DurationSeconds
		}
		queue = append(queue, entry)
	}
	return queue, nil
}

// Approve releases a voice note to the other party.
func (s *ModerationService) Approve(approvalID, reviewerID int) (*model.ChatMessage, error) {
	return s.review(approvalID, reviewerID, model.ApprovalApproved)
}

// Reject keeps a voice note hidden from the other party for good.
func (s *ModerationService) Reject(approvalID, reviewerID int) (*model.ChatMessage, error) {
	return s.review(approvalID, reviewerID, model.ApprovalRejected)
}

func (s *ModerationService) review(approvalID, reviewerID int, status string) (*model.ChatMessage, error) {
	a, err := s.approvals.GetByID(approvalID)
	if err != nil {
		return nil, asNotFound(err)
	}
	reviewed, err := s.approvals.Review(a.ID, status, reviewerID)
	if err != nil {
		return nil, err
	}
	if !reviewed {
		return nil, ErrAlreadyReviewed
	}
	if err := s.messages.UpdateApproval(a.MessageID, status); err != nil {
		return nil, err
	}
	msg, err := s.messages.GetByID(a.MessageID)
	if err != nil {
		return nil, asNotFound(err)
	}

	kind := model.NotificationVoiceApproved
	body := "Your voice note was approved"
	if status == model.ApprovalRejected {
		kind = model.NotificationVoiceRejected
		body = "Your voice note was rejected by moderation"
	}
	n := &model.Notification{UserID: msg.SenderID, Kind: kind, SessionID: &msg.SessionID, Body: body}
	if err := s.notifications.Create(n); err != nil {
		log.Printf("notify voice review: %v", err)
	} else {
		s.hub.Broadcast(realtime.UserTopic(msg.SenderID), realtime.EventNotificationInsert, n)
	}

	if status == model.ApprovalApproved {
		// now visible to both parties
		s.hub.Broadcast(realtime.SessionTopic(msg.SessionID), realtime.EventMessageUpdate, msg)
	} else {
		s.hub.Broadcast(realtime.UserTopic(msg.SenderID), realtime.EventMessageUpdate, msg)
	}
	return msg, nil
}
