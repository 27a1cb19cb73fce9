package service

import (
	"time"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"
)

// Default chat quotas granted when a booking is confirmed. Voice seconds
// scale with the booked service duration.
const (
	DefaultMaxTextChars    = 4000
	DefaultMaxVoiceSeconds = 300
	DefaultMaxImages       = 10
)

// BookingService contains the booking lifecycle, including chat session
// creation on confirmation.
type BookingService struct {
	bookings BookingStore
	sessions SessionStore
	readings ReadingStore
}

// NewBookingService creates a new booking service.
func NewBookingService(bookings BookingStore, sessions SessionStore, readings ReadingStore) *BookingService {
	return &BookingService{bookings: bookings, sessions: sessions, readings: readings}
}

// CreateBooking files a pending booking for an active reading service.
func (s *BookingService) CreateBooking(clientID, readerID, serviceID int, scheduledAt time.Time) (*model.Booking, error) {
	svc, err := s.readings.GetByID(serviceID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !svc.IsActive {
		return nil, ErrServiceInactive
	}
	booking := &model.Booking{
		ClientID:    clientID,
		ReaderID:    readerID,
		ServiceID:   serviceID,
		ScheduledAt: scheduledAt,
		Status:      model.BookingPending,
	}
	id, err := s.bookings.Create(booking)
	if err != nil {
		return nil, err
	}
	booking.ID = id
	return booking, nil
}

// ConfirmBooking confirms a pending booking and opens its chat session with
// the quota caps the session will enforce.
func (s *BookingService) ConfirmBooking(bookingID int) (*model.ChatSession, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if booking.Status != model.BookingPending {
		return nil, ErrBookingNotPending
	}
	maxVoice := DefaultMaxVoiceSeconds
	if svc, err := s.readings.GetByID(booking.ServiceID); err == nil && svc.DurationMin > 0 {
		maxVoice = svc.DurationMin * 60
	}
	if err := s.bookings.UpdateStatus(bookingID, model.BookingConfirmed); err != nil {
		return nil, err
	}
	session := &model.ChatSession{
		BookingID:       booking.ID,
		ClientID:        booking.ClientID,
		ReaderID:        booking.ReaderID,
		Status:          model.SessionActive,
		MaxTextChars:    DefaultMaxTextChars,
		MaxVoiceSeconds: maxVoice,
		MaxImages:       DefaultMaxImages,
	}
	id, err := s.sessions.Create(session)
	if err != nil {
		return nil, err
	}
	session.ID = id
	return session, nil
}

// CancelBooking cancels a booking that has not been completed.
func (s *BookingService) CancelBooking(bookingID int) error {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return asNotFound(err)
	}
	if booking.Status == model.BookingCompleted || booking.Status == model.BookingCancelled {
		return ErrBookingNotPending
	}
	return s.bookings.UpdateStatus(bookingID, model.BookingCancelled)
}

// CompleteBooking marks a confirmed booking as done.
func (s *BookingService) CompleteBooking(bookingID int) error {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return asNotFound(err)
	}
	if booking.Status != model.BookingConfirmed {
		return ErrBookingNotPending
	}
	return s.bookings.UpdateStatus(bookingID, model.BookingCompleted)
}

// GetBooking returns a booking by id.
func (s *BookingService) GetBooking(bookingID int) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, asNotFound(err)
	}
	return booking, nil
}

// BookingSession returns the chat session opened for a confirmed booking.
func (s *BookingService) BookingSession(bookingID int) (*model.ChatSession, error) {
	sess, err := s.sessions.GetByBookingID(bookingID)
	if err != nil {
		return nil, asNotFound(err)
	}
	return sess, nil
}

// ListBookings returns the bookings the user takes part in.
func (s *BookingService) ListBookings(userID int) ([]model.Booking, error) {
	return s.bookings.ListByUser(userID)
}
