package handler

import (
	"net/http"
	"time"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"

	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	ReaderID    int       `json:"reader_id" binding:"required"`
	ServiceID   int       `json:"service_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// CreateBooking handles POST /api/bookings.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failStatus(c, http.StatusBadRequest, "reader_id, service_id and scheduled_at are required")
		return
	}
	booking, err := h.Bookings.CreateBooking(currentUser(c).ID, req.ReaderID, req.ServiceID, req.ScheduledAt)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, booking)
}

// ListBookings handles GET /api/bookings.
func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListBookings(currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, bookings)
}

// GetBooking handles GET /api/bookings/:id. Once the booking is confirmed the
// response carries its chat session too.
func (h *Handler) GetBooking(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	if !h.bookingActor(c, id, false) {
		return
	}
	booking, err := h.Bookings.GetBooking(id)
	if err != nil {
		fail(c, err)
		return
	}
	resp := gin.H{"booking": booking}
	if session, err := h.Bookings.BookingSession(id); err == nil {
		resp["session"] = session
	}
	ok(c, resp)
}

// bookingActor checks the caller may act on the booking as its reader.
func (h *Handler) bookingActor(c *gin.Context, bookingID int, readerOrAdminOnly bool) bool {
	user := currentUser(c)
	booking, err := h.Bookings.GetBooking(bookingID)
	if err != nil {
		fail(c, err)
		return false
	}
	if user.Role == model.RoleAdmin {
		return true
	}
	if readerOrAdminOnly {
		if booking.ReaderID != user.ID {
			failStatus(c, http.StatusForbidden, "only the booking's reader can do this")
			return false
		}
		return true
	}
	if booking.ReaderID != user.ID && booking.ClientID != user.ID {
		failStatus(c, http.StatusForbidden, "not a party of this booking")
		return false
	}
	return true
}

// ConfirmBooking handles POST /api/bookings/:id/confirm. Confirmation opens
// the chat session.
func (h *Handler) ConfirmBooking(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	if !h.bookingActor(c, id, true) {
		return
	}
	session, err := h.Bookings.ConfirmBooking(id)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, session)
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (h *Handler) CancelBooking(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	if !h.bookingActor(c, id, false) {
		return
	}
	if err := h.Bookings.CancelBooking(id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// CompleteBooking handles POST /api/bookings/:id/complete.
func (h *Handler) CompleteBooking(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}
	if !h.bookingActor(c, id, true) {
		return
	}
	if err := h.Bookings.CompleteBooking(id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
