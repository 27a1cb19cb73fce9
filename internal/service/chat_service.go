package service

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/realtime"
)

const (
	// Senders may delete their own messages for this long after creation.
	deleteWindow = 5 * time.Minute

	// Typing notifications are removed this long after creation.
	typingTTL = 3 * time.Second
)

// ChatService owns the booking-scoped conversation rules: participant
// access, the active -> locked transition, client usage quotas, voice-note
// gating and ephemeral typing indicators.
type ChatService struct {
	sessions      SessionStore
	messages      MessageStore
	approvals     ApprovalStore
	notifications NotificationStore
	users         UserStore
	media         MediaSaver
	hub           Broadcaster

	typingTTL time.Duration

	mu     sync.Mutex
	timers map[int]*time.Timer // pending typing cleanups by notification id
	closed bool
}

// NewChatService creates a new chat service.
func NewChatService(sessions SessionStore, messages MessageStore, approvals ApprovalStore,
	notifications NotificationStore, users UserStore, media MediaSaver, hub Broadcaster) *ChatService {
	return &ChatService{
		sessions:      sessions,
		messages:      messages,
		approvals:     approvals,
		notifications: notifications,
		users:         users,
		media:         media,
		hub:           hub,
		typingTTL:     typingTTL,
		timers:        make(map[int]*time.Timer),
	}
}

// sessionFor loads a session and checks the user is one of its two parties.
func (s *ChatService) sessionFor(sessionID, userID int) (*model.ChatSession, error) {
	sess, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if userID != sess.ClientID && userID != sess.ReaderID {
		return nil, ErrNotParticipant
	}
	return sess, nil
}

// CanAccess reports whether the user is a party of the session. Used to gate
// realtime topic subscriptions.
func (s *ChatService) CanAccess(sessionID, userID int) bool {
	_, err := s.sessionFor(sessionID, userID)
	return err == nil
}

// GetSession returns a session to one of its parties.
func (s *ChatService) GetSession(sessionID, userID int) (*model.ChatSession, error) {
	return s.sessionFor(sessionID, userID)
}

// ListSessions returns the sessions the user takes part in.
func (s *ChatService) ListSessions(userID int) ([]model.ChatSession, error) {
	return s.sessions.ListByUser(userID)
}

// ListMessages returns the session's messages as visible to the user: voice
// notes that are not yet approved are withheld from everyone but the sender.
func (s *ChatService) ListMessages(sessionID, userID int) ([]model.ChatMessage, error) {
	if _, err := s.sessionFor(sessionID, userID); err != nil {
		return nil, err
	}
	messages, err := s.messages.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}
	visible := make([]model.ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m.Type == model.MessageVoice && m.ApprovalStatus != model.ApprovalApproved && m.SenderID != userID {
			continue
		}
		visible = append(visible, m)
	}
	return visible, nil
}

// SendText posts a text message. Client senders are metered against the
// session's character quota before anything is written.
func (s *ChatService) SendText(sessionID, senderID int, content string, replyTo *int) (*model.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	sess, err := s.sessionFor(sessionID, senderID)
	if err != nil {
		return nil, err
	}
	if sess.Status == model.SessionLocked {
		return nil, ErrSessionLocked
	}
	chars := utf8.RuneCountInString(content)
	if senderID == sess.ClientID && chars > sess.MaxTextChars-sess.ClientTextCharsUsed {
		return nil, ErrTextQuotaExceeded
	}
	msg := &model.ChatMessage{
		SessionID:      sess.ID,
		SenderID:       senderID,
		Type:           model.MessageText,
		Content:        content,
		ReplyToID:      replyTo,
		ApprovalStatus: model.ApprovalApproved,
	}
	if err := s.messages.Create(msg); err != nil {
		return nil, err
	}
	if senderID == sess.ClientID {
		if err := s.sessions.AddTextUsage(sess.ID, chars); err != nil {
			return nil, err
		}
	}
	s.hub.Broadcast(realtime.SessionTopic(sess.ID), realtime.EventMessageInsert, msg)
	return msg, nil
}

// SendImage stores an image upload and posts it as a message. Type and size
// are validated before the image quota is consumed or anything hits disk.
func (s *ChatService) SendImage(sessionID, senderID int, fileName, contentType string, size int64, r io.Reader) (*model.ChatMessage, error) {
	sess, err := s.sessionFor(sessionID, senderID)
	if err != nil {
		return nil, err
	}
	if sess.Status == model.SessionLocked {
		return nil, ErrSessionLocked
	}
	if senderID == sess.ClientID && sess.ClientImagesSent >= sess.MaxImages {
		return nil, ErrImageQuotaExceeded
	}
	url, err := s.media.SaveImage(fileName, contentType, size, r)
	if err != nil {
		return nil, err
	}
	msg := &model.ChatMessage{
		SessionID:      sess.ID,
		SenderID:       senderID,
		Type:           model.MessageImage,
		MediaURL:       url,
		ApprovalStatus: model.ApprovalApproved,
	}
	if err := s.messages.Create(msg); err != nil {
		return nil, err
	}
	if senderID == sess.ClientID {
		if err := s.sessions.AddImageUsage(sess.ID); err != nil {
			return nil, err
		}
	}
	s.hub.Broadcast(realtime.SessionTopic(sess.ID), realtime.EventMessageInsert, msg)
	return msg, nil
}

// SendVoice stores a voice note and posts it as a pending message. The note
// enters the moderation queue and stays invisible to the other party until a
// monitor approves it; only the sender is told it exists.
func (s *ChatService) SendVoice(sessionID, senderID, durationSeconds int, fileName, contentType string, size int64, r io.Reader) (*model.ChatMessage, error) {
	if durationSeconds <= 0 {
		return nil, ErrBadDuration
	}
	sess, err := s.sessionFor(sessionID, senderID)
	if err != nil {
		return nil, err
	}
	if sess.Status == model.SessionLocked {
		return nil, ErrSessionLocked
	}
	if senderID == sess.ClientID && durationSeconds > sess.MaxVoiceSeconds-sess.ClientVoiceSecondsUsed {
		return nil, ErrVoiceQuotaExceeded
	}
	url, err := s.media.SaveVoice(fileName, contentType, size, r)
	if err != nil {
		return nil, err
	}
	msg := &model.ChatMessage{
		SessionID:       sess.ID,
		SenderID:        senderID,
		Type:            model.MessageVoice,
		MediaURL:        url,
		DurationSeconds: durationSeconds,
		ApprovalStatus:  model.ApprovalPending,
	}
	if err := s.messages.Create(msg); err != nil {
		return nil, err
	}
	if err := s.approvals.Create(&model.VoiceNoteApproval{
		MessageID: msg.ID,
		SessionID: sess.ID,
		Status:    model.ApprovalPending,
	}); err != nil {
		return nil, err
	}
	if senderID == sess.ClientID {
		if err := s.sessions.AddVoiceUsage(sess.ID, durationSeconds); err != nil {
			return nil, err
		}
	}
	s.notifyMonitors(sess.ID, msg.ID)
	s.hub.Broadcast(realtime.UserTopic(senderID), realtime.EventMessageInsert, msg)
	return msg, nil
}

// notifyMonitors tells every monitor a voice note is waiting for review.
func (s *ChatService) notifyMonitors(sessionID, messageID int) {
	monitors, err := s.users.ListByRole(model.RoleMonitor)
	if err != nil {
		log.Printf("list monitors: %v", err)
		return
	}
	for _, m := range monitors {
		n := &model.Notification{
			UserID:    m.ID,
			Kind:      model.NotificationVoicePending,
			SessionID: &sessionID,
			Body:      fmt.Sprintf("Voice note #%d is waiting for review", messageID),
		}
		if err := s.notifications.Create(n); err != nil {
			log.Printf("notify monitor %d: %v", m.ID, err)
			continue
		}
		s.hub.Broadcast(realtime.UserTopic(m.ID), realtime.EventNotificationInsert, n)
	}
}

// DeleteMessage removes a message and its stored media. Only the sender may
// delete, and only within five minutes of sending.
func (s *ChatService) DeleteMessage(messageID, userID int) error {
	msg, err := s.messages.GetByID(messageID)
	if err != nil {
		return asNotFound(err)
	}
	if msg.SenderID != userID {
		return ErrNotSender
	}
	if time.Since(msg.CreatedAt) > deleteWindow {
		return ErrDeleteWindowPassed
	}
	if err := s.messages.Delete(messageID); err != nil {
		return err
	}
	if msg.MediaURL != "" {
		// the row is gone; a leftover file is logged, not fatal
		if err := s.media.Remove(msg.MediaURL); err != nil {
			log.Printf("remove media %s: %v", msg.MediaURL, err)
		}
	}
	s.hub.Broadcast(realtime.SessionTopic(msg.SessionID), realtime.EventMessageDelete, map[string]int{"id": messageID})
	return nil
}

// MarkRead marks the counterpart's messages in the session as read.
func (s *ChatService) MarkRead(sessionID, userID int) error {
	if _, err := s.sessionFor(sessionID, userID); err != nil {
		return err
	}
	if err := s.messages.MarkRead(sessionID, userID); err != nil {
		return err
	}
	s.hub.Broadcast(realtime.SessionTopic(sessionID), realtime.EventSessionRead, map[string]int{"user_id": userID})
	return nil
}

// LockSession ends the session. Only the reader may lock, and the transition
// is one-directional: no path ever sets a locked session back to active.
func (s *ChatService) LockSession(sessionID, userID int) (*model.ChatSession, error) {
	sess, err := s.sessionFor(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if userID != sess.ReaderID {
		return nil, ErrReaderOnly
	}
	locked, err := s.sessions.Lock(sessionID)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrSessionLocked
	}
	n := &model.Notification{
		UserID:    sess.ClientID,
		Kind:      model.NotificationSessionLocked,
		SessionID: &sess.ID,
		Body:      "Your reading session has ended",
	}
	if err := s.notifications.Create(n); err != nil {
		log.Printf("notify session lock: %v", err)
	} else {
		s.hub.Broadcast(realtime.UserTopic(sess.ClientID), realtime.EventNotificationInsert, n)
	}
	sess, err = s.sessions.GetByID(sessionID)
	if err != nil {
		return nil, asNotFound(err)
	}
	s.hub.Broadcast(realtime.SessionTopic(sessionID), realtime.EventSessionUpdate, sess)
	return sess, nil
}

// SendTyping creates a typing notification for the counterpart and schedules
// its removal. The cleanup is a cancellable timer owned by the service, not a
// fire-and-forget: Close stops every pending one.
func (s *ChatService) SendTyping(sessionID, userID int) error {
	sess, err := s.sessionFor(sessionID, userID)
	if err != nil {
		return err
	}
	if sess.Status == model.SessionLocked {
		return ErrSessionLocked
	}
	counterpart := sess.ClientID
	if userID == sess.ClientID {
		counterpart = sess.ReaderID
	}
	n := &model.Notification{
		UserID:    counterpart,
		Kind:      model.NotificationTyping,
		SessionID: &sess.ID,
	}
	if err := s.notifications.Create(n); err != nil {
		return err
	}
	s.hub.Broadcast(realtime.UserTopic(counterpart), realtime.EventNotificationInsert, n)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		// service is shutting down, clean up right away
		s.removeTyping(n.ID, counterpart)
		return nil
	}
	id := n.ID
	s.timers[id] = time.AfterFunc(s.typingTTL, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		s.removeTyping(id, counterpart)
	})
	return nil
}

// removeTyping deletes a typing notification. The delete is idempotent: a
// row already gone is not an error.
func (s *ChatService) removeTyping(id, userID int) {
	if err := s.notifications.Delete(id); err != nil {
		log.Printf("delete typing notification %d: %v", id, err)
		return
	}
	s.hub.Broadcast(realtime.UserTopic(userID), realtime.EventNotificationDelete, map[string]int{"id": id})
}

// Close cancels pending typing cleanups and deletes their rows so shutdown
// leaves no stray indicators behind.
func (s *ChatService) Close() {
	s.mu.Lock()
	s.closed = true
	timers := s.timers
	s.timers = make(map[int]*time.Timer)
	s.mu.Unlock()
	for id, t := range timers {
		if t.Stop() {
			if err := s.notifications.Delete(id); err != nil {
				log.Printf("delete typing notification %d: %v", id, err)
			}
		}
	}
}
