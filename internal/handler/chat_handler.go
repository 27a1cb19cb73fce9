package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"
	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/realtime"

	"github.com/gin-gonic/gin"
)

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		failStatus(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// ListSessions handles GET /api/chat/sessions.
func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.Chat.ListSessions(currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, sessions)
}

// GetSession handles GET /api/chat/sessions/:id.
func (h *Handler) GetSession(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	sess, err := h.Chat.GetSession(id, currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, sess)
}

// ListMessages handles GET /api/chat/sessions/:id/messages.
func (h *Handler) ListMessages(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	messages, err := h.Chat.ListMessages(id, currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, messages)
}

type sendMessageRequest struct {
	Content   string `json:"content"`
	ReplyToID *int   `json:"reply_to_id"`
}

// SendMessage handles POST /api/chat/sessions/:id/messages.
func (h *Handler) SendMessage(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failStatus(c, http.StatusBadRequest, "invalid request body")
		return
	}
	msg, err := h.Chat.SendText(id, currentUser(c).ID, req.Content, req.ReplyToID)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, msg)
}

// UploadImage handles POST /api/chat/sessions/:id/upload.
func (h *Handler) UploadImage(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		failStatus(c, http.StatusBadRequest, "file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()
	msg, err := h.Chat.SendImage(id, currentUser(c).ID, fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, msg)
}

// UploadVoice handles POST /api/chat/sessions/:id/voice.
func (h *Handler) UploadVoice(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	duration, err := strconv.Atoi(c.PostForm("duration"))
	if err != nil {
		failStatus(c, http.StatusBadRequest, "duration is required")
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		failStatus(c, http.StatusBadRequest, "file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()
	msg, err := h.Chat.SendVoice(id, currentUser(c).ID, duration, fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, msg)
}

// MarkRead handles POST /api/chat/sessions/:id/read.
func (h *Handler) MarkRead(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	if err := h.Chat.MarkRead(id, currentUser(c).ID); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// Typing handles POST /api/chat/sessions/:id/typing.
func (h *Handler) Typing(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	if err := h.Chat.SendTyping(id, currentUser(c).ID); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// LockSession handles POST /api/chat/sessions/:id/lock.
func (h *Handler) LockSession(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	sess, err := h.Chat.LockSession(id, currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, sess)
}

// DeleteMessage handles DELETE /api/chat/messages/:id.
func (h *Handler) DeleteMessage(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	if err := h.Chat.DeleteMessage(id, currentUser(c).ID); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// ServeWS handles GET /ws. The token travels as a query parameter because
// browsers cannot set headers on websocket requests.
func (h *Handler) ServeWS(c *gin.Context) {
	user, err := h.Auth.UserByToken(c.Query("token"))
	if err != nil {
		failStatus(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	authorize := func(topic string) bool {
		if raw, found := strings.CutPrefix(topic, "session:"); found {
			id, err := strconv.Atoi(raw)
			return err == nil && h.Chat.CanAccess(id, user.ID)
		}
		if raw, found := strings.CutPrefix(topic, "user:"); found {
			id, err := strconv.Atoi(raw)
			return err == nil && (id == user.ID || user.Role == model.RoleAdmin)
		}
		return false
	}
	realtime.ServeWS(h.Hub, authorize, c.Writer, c.Request)
}
