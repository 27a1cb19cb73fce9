package handler

import (
	"database/sql"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"
)

// In-memory stores backing the API under test. They mirror the sqlx
// repositories closely enough for route-level assertions.

type memUsers struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*model.User
	tokens map[string]*model.AuthToken
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[int]*model.User), tokens: make(map[string]*model.AuthToken)}
}

func (m *memUsers) seed(u *model.User, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.byID[u.ID] = &cp
	if u.ID > m.nextID {
		m.nextID = u.ID
	}
	if token != "" {
		m.tokens[token] = &model.AuthToken{Token: token, UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}
	}
}

func (m *memUsers) Create(user *model.User) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cp := *user
	cp.ID = m.nextID
	m.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memUsers) GetByID(id int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUsers) ListByRole(role string) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.User{}
	for _, u := range m.byID {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) SaveToken(t *model.AuthToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.tokens[t.Token] = &cp
	return nil
}

func (m *memUsers) GetToken(token string) (*model.AuthToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (m *memUsers) DeleteToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}

type memSessions struct {
	mu   sync.Mutex
	byID map[int]*model.ChatSession
}

func newMemSessions() *memSessions { return &memSessions{byID: make(map[int]*model.ChatSession)} }

func (m *memSessions) seed(s *model.ChatSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.byID[s.ID] = &cp
}

func (m *memSessions) Create(s *model.ChatSession) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := len(m.byID) + 1
	cp := *s
	cp.ID = id
	m.byID[id] = &cp
	return id, nil
}

func (m *memSessions) GetByID(id int) (*model.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (m *memSessions) GetByBookingID(bookingID int) (*model.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byID {
		if s.BookingID == bookingID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memSessions) ListByUser(userID int) ([]model.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.ChatSession{}
	for _, s := range m.byID {
		if s.ClientID == userID || s.ReaderID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memSessions) Lock(id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok || s.Status != model.SessionActive {
		return false, nil
	}
	now := time.Now()
	s.Status = model.SessionLocked
	s.LockedAt = &now
	return true, nil
}

func (m *memSessions) AddTextUsage(id, chars int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.byID[id]; ok {
		s.ClientTextCharsUsed += chars
	}
	return nil
}

func (m *memSessions) AddVoiceUsage(id, seconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.byID[id]; ok {
		s.ClientVoiceSecondsUsed += seconds
	}
	return nil
}

func (m *memSessions) AddImageUsage(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.byID[id]; ok {
		s.ClientImagesSent++
	}
	return nil
}

type memMessages struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*model.ChatMessage
}

func newMemMessages() *memMessages { return &memMessages{byID: make(map[int]*model.ChatMessage)} }

func (m *memMessages) Create(msg *model.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	msg.ID = m.nextID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	cp := *msg
	m.byID[msg.ID] = &cp
	return nil
}

func (m *memMessages) GetByID(id int) (*model.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *msg
	return &cp, nil
}

func (m *memMessages) ListBySession(sessionID int) ([]model.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.ChatMessage{}
	for _, msg := range m.byID {
		if msg.SessionID == sessionID {
			out = append(out, *msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memMessages) Delete(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func (m *memMessages) MarkRead(sessionID, readerUserID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.byID {
		if msg.SessionID == sessionID && msg.SenderID != readerUserID {
			msg.IsRead = true
		}
	}
	return nil
}

func (m *memMessages) UpdateApproval(id int, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg, ok := m.byID[id]; ok {
		msg.ApprovalStatus = status
	}
	return nil
}

type memApprovals struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*model.VoiceNoteApproval
}

func newMemApprovals() *memApprovals {
	return &memApprovals{byID: make(map[int]*model.VoiceNoteApproval)}
}

func (m *memApprovals) Create(a *model.VoiceNoteApproval) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a.ID = m.nextID
	cp := *a
	m.byID[a.ID] = &cp
	return nil
}

func (m *memApprovals) GetByID(id int) (*model.VoiceNoteApproval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (m *memApprovals) ListPending() ([]model.VoiceNoteApproval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.VoiceNoteApproval{}
	for _, a := range m.byID {
		if a.Status == model.ApprovalPending {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memApprovals) Review(id int, status string, reviewerID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok || a.Status != model.ApprovalPending {
		return false, nil
	}
	now := time.Now()
	a.Status = status
	a.ReviewerID = &reviewerID
	a.ReviewedAt = &now
	return true, nil
}

type memNotifications struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*model.Notification
	rules  map[int]*model.NotificationRule
}

func newMemNotifications() *memNotifications {
	return &memNotifications{byID: make(map[int]*model.Notification), rules: make(map[int]*model.NotificationRule)}
}

func (m *memNotifications) Create(n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	n.ID = m.nextID
	cp := *n
	m.byID[n.ID] = &cp
	return nil
}

func (m *memNotifications) Delete(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func (m *memNotifications) ListByUser(userID int) ([]model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Notification{}
	for _, n := range m.byID {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *memNotifications) CreateRule(rule *model.NotificationRule) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := len(m.rules) + 1
	cp := *rule
	cp.ID = id
	m.rules[id] = &cp
	return id, nil
}

func (m *memNotifications) GetRule(id int) (*model.NotificationRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rules[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *r
	return &cp, nil
}

func (m *memNotifications) ListRules() ([]model.NotificationRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.NotificationRule{}
	for _, r := range m.rules {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memNotifications) UpdateRule(rule *model.NotificationRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rules[rule.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *rule
	m.rules[rule.ID] = &cp
	return nil
}

func (m *memNotifications) DeleteRule(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rules, id)
	return nil
}

type memReadings struct {
	mu   sync.Mutex
	byID map[int]*model.ReadingService
}

func newMemReadings() *memReadings { return &memReadings{byID: make(map[int]*model.ReadingService)} }

func (m *memReadings) seed(s *model.ReadingService) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.byID[s.ID] = &cp
}

func (m *memReadings) Create(s *model.ReadingService) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := len(m.byID) + 1
	cp := *s
	cp.ID = id
	m.byID[id] = &cp
	return id, nil
}

func (m *memReadings) GetByID(id int) (*model.ReadingService, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (m *memReadings) Update(s *model.ReadingService) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[s.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *s
	m.byID[s.ID] = &cp
	return nil
}

func (m *memReadings) Delete(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func (m *memReadings) ListAll() ([]model.ReadingService, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.ReadingService{}
	for _, s := range m.byID {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memReadings) ListActive() ([]model.ReadingService, error) {
	all, _ := m.ListAll()
	out := []model.ReadingService{}
	for _, s := range all {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

type memBookings struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*model.Booking
}

func newMemBookings() *memBookings { return &memBookings{byID: make(map[int]*model.Booking)} }

func (m *memBookings) Create(b *model.Booking) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cp := *b
	cp.ID = m.nextID
	m.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memBookings) GetByID(id int) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *b
	return &cp, nil
}

func (m *memBookings) UpdateStatus(id int, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	b.Status = status
	return nil
}

func (m *memBookings) ListByUser(userID int) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Booking{}
	for _, b := range m.byID {
		if b.ClientID == userID || b.ReaderID == userID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memRates struct {
	byCode map[string]*model.ExchangeRate
}

func (m *memRates) Get(currency string) (*model.ExchangeRate, error) {
	r, ok := m.byCode[currency]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *r
	return &cp, nil
}

func (m *memRates) List() ([]model.ExchangeRate, error) {
	out := []model.ExchangeRate{}
	for _, r := range m.byCode {
		out = append(out, *r)
	}
	return out, nil
}

func (m *memRates) Upsert(rate *model.ExchangeRate) error {
	cp := *rate
	m.byCode[rate.Currency] = &cp
	return nil
}

type memMedia struct{}

func (memMedia) SaveImage(fileName, contentType string, size int64, r io.Reader) (string, error) {
	return "/media/images/stub.png", nil
}

func (memMedia) SaveVoice(fileName, contentType string, size int64, r io.Reader) (string, error) {
	return "/media/voice/stub.webm", nil
}

func (memMedia) Remove(publicURL string) error { return nil }
