package service

import (
	"database/sql"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"
)

// In-memory fakes for the store interfaces.

type fakeHub struct {
	mu     sync.Mutex
	events []fakeEvent
}

type fakeEvent struct {
	topic   string
	event   string
	payload interface{}
}

func (f *fakeHub) Broadcast(topic, event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, fakeEvent{topic: topic, event: event, payload: payload})
}

func (f *fakeHub) count(event string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e.event == event {
			n++
		}
	}
	return n
}

type fakeSessions struct {
	mu   sync.Mutex
	byID map[int]*model.ChatSession
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byID: make(map[int]*model.ChatSession)}
}

func (f *fakeSessions) put(s *model.ChatSession) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.byID[s.ID] = &cp
}

func (f *fakeSessions) Create(s *model.ChatSession) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := len(f.byID) + 1
	cp := *s
	cp.ID = id
	cp.CreatedAt = time.Now()
	f.byID[id] = &cp
	return id, nil
}

func (f *fakeSessions) GetByID(id int) (*model.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessions) GetByBookingID(bookingID int) (*model.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.byID {
		if s.BookingID == bookingID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeSessions) ListByUser(userID int) ([]model.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.ChatSession{}
	for _, s := range f.byID {
		if s.ClientID == userID || s.ReaderID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessions) Lock(id int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok || s.Status != model.SessionActive {
		return false, nil
	}
	now := time.Now()
	s.Status = model.SessionLocked
	s.LockedAt = &now
	return true, nil
}

func (f *fakeSessions) AddTextUsage(id, chars int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.byID[id]; ok {
		s.ClientTextCharsUsed += chars
	}
	return nil
}

func (f *fakeSessions) AddVoiceUsage(id, seconds int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.byID[id]; ok {
		s.ClientVoiceSecondsUsed += seconds
	}
	return nil
}

func (f *fakeSessions) AddImageUsage(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.byID[id]; ok {
		s.ClientImagesSent++
	}
	return nil
}

type fakeMessages struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*model.ChatMessage
}

func newFakeMessages() *fakeMessages {
	return &fakeMessages{byID: make(map[int]*model.ChatMessage)}
}

func (f *fakeMessages) put(m *model.ChatMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.byID[m.ID] = &cp
	if m.ID > f.nextID {
		f.nextID = m.ID
	}
}

func (f *fakeMessages) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

func (f *fakeMessages) Create(msg *model.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	msg.ID = f.nextID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	cp := *msg
	f.byID[msg.ID] = &cp
	return nil
}

func (f *fakeMessages) GetByID(id int) (*model.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMessages) ListBySession(sessionID int) ([]model.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.ChatMessage{}
	for _, m := range f.byID {
		if m.SessionID == sessionID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMessages) Delete(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakeMessages) MarkRead(sessionID, readerUserID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.byID {
		if m.SessionID == sessionID && m.SenderID != readerUserID {
			m.IsRead = true
		}
	}
	return nil
}

func (f *fakeMessages) UpdateApproval(id int, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.byID[id]; ok {
		m.ApprovalStatus = status
	}
	return nil
}

type fakeApprovals struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*model.VoiceNoteApproval
}

func newFakeApprovals() *fakeApprovals {
	return &fakeApprovals{byID: make(map[int]*model.VoiceNoteApproval)}
}

func (f *fakeApprovals) Create(a *model.VoiceNoteApproval) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Now()
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeApprovals) GetByID(id int) (*model.VoiceNoteApproval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (f *fakeApprovals) ListPending() ([]model.VoiceNoteApproval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.VoiceNoteApproval{}
	for _, a := range f.byID {
		if a.Status == model.ApprovalPending {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeApprovals) Review(id int, status string, reviewerID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok || a.Status != model.ApprovalPending {
		return false, nil
	}
	now := time.Now()
	a.Status = status
	a.ReviewerID = &reviewerID
	a.ReviewedAt = &now
	return true, nil
}

type fakeNotifications struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*model.Notification
	rules  map[int]*model.NotificationRule
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{
		byID:  make(map[int]*model.Notification),
		rules: make(map[int]*model.NotificationRule),
	}
}

func (f *fakeNotifications) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

func (f *fakeNotifications) Create(n *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	n.ID = f.nextID
	n.CreatedAt = time.Now()
	cp := *n
	f.byID[n.ID] = &cp
	return nil
}

func (f *fakeNotifications) Delete(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakeNotifications) ListByUser(userID int) ([]model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Notification{}
	for _, n := range f.byID {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeNotifications) CreateRule(rule *model.NotificationRule) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := len(f.rules) + 1
	cp := *rule
	cp.ID = id
	f.rules[id] = &cp
	return id, nil
}

func (f *fakeNotifications) GetRule(id int) (*model.NotificationRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rules[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *r
	return &cp, nil
}

func (f *fakeNotifications) ListRules() ([]model.NotificationRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.NotificationRule{}
	for _, r := range f.rules {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeNotifications) UpdateRule(rule *model.NotificationRule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rules[rule.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *rule
	f.rules[rule.ID] = &cp
	return nil
}

func (f *fakeNotifications) DeleteRule(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rules, id)
	return nil
}

type fakeUsers struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*model.User
	tokens map[string]*model.AuthToken
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[int]*model.User), tokens: make(map[string]*model.AuthToken)}
}

func (f *fakeUsers) put(u *model.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.byID[u.ID] = &cp
	if u.ID > f.nextID {
		f.nextID = u.ID
	}
}

func (f *fakeUsers) Create(user *model.User) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	cp := *user
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	f.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeUsers) GetByID(id int) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUsers) ListByRole(role string) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.User{}
	for _, u := range f.byID {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) SaveToken(t *model.AuthToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.tokens[t.Token] = &cp
	return nil
}

func (f *fakeUsers) GetToken(token string) (*model.AuthToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (f *fakeUsers) DeleteToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

type fakeMedia struct {
	mu      sync.Mutex
	images  int
	voices  int
	removed []string
}

func (f *fakeMedia) SaveImage(fileName, contentType string, size int64, r io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images++
	return "/media/images/test.png", nil
}

func (f *fakeMedia) SaveVoice(fileName, contentType string, size int64, r io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voices++
	return "/media/voice/test.webm", nil
}

func (f *fakeMedia) Remove(publicURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, publicURL)
	return nil
}

type fakeRates struct {
	byCode map[string]*model.ExchangeRate
}

func (f *fakeRates) Get(currency string) (*model.ExchangeRate, error) {
	r, ok := f.byCode[currency]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRates) List() ([]model.ExchangeRate, error) {
	out := []model.ExchangeRate{}
	for _, r := range f.byCode {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRates) Upsert(rate *model.ExchangeRate) error {
	cp := *rate
	f.byCode[rate.Currency] = &cp
	return nil
}
