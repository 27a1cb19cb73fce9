package repository

import (
	"fmt"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"

	"github.com/jmoiron/sqlx"
)

// BookingRepository provides access to booking data.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a new booking and returns its id.
func (r *BookingRepository) Create(booking *model.Booking) (int, error) {
	query := `INSERT INTO bookings (client_id, reader_id, service_id, scheduled_at, status)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := r.db.QueryRow(query, booking.ClientID, booking.ReaderID, booking.ServiceID,
		booking.ScheduledAt, booking.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create booking: %w", err)
	}
	return id, nil
}

// GetByID returns a booking by id.
func (r *BookingRepository) GetByID(id int) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.Get(&booking, "SELECT * FROM bookings WHERE id=$1", id)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateStatus sets the booking status.
func (r *BookingRepository) UpdateStatus(id int, status string) error {
	_, err := r.db.Exec("UPDATE bookings SET status=$1 WHERE id=$2", status, id)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	return nil
}

// ListByUser returns bookings where the user is the client or the reader.
func (r *BookingRepository) ListByUser(userID int) ([]model.Booking, error) {
	bookings := []model.Booking{}
	err := r.db.Select(&bookings,
		"SELECT * FROM bookings WHERE client_id=$1 OR reader_id=$1 ORDER BY scheduled_at DESC", userID)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
