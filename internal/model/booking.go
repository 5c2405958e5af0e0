package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Booking reserves one seat in one session for one client. The
// (client_id, session_id) pair is unique at the storage layer.
type Booking struct {
	Base
	ClientID  uuid.UUID `db:"client_id" json:"client_id"`
	SessionID uuid.UUID `db:"session_id" json:"session_id"`
}

// BookingRow is a booking joined with its session and class. Instants are the
// stored UTC values; the service localizes them for display.
type BookingRow struct {
	SessionID uuid.UUID `db:"session_id"`
	ClassName string    `db:"class_name"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
}

// CreateBookingRequest is the POST /book payload.
type CreateBookingRequest struct {
	ClientName  string    `json:"client_name" binding:"required" validate:"required"`
	ClientEmail string    `json:"client_email" binding:"required,email" validate:"required,email"`
	SessionID   uuid.UUID `json:"session_id" binding:"required" validate:"required"`
}

// BookingEntry is one row of a client's booking history.
type BookingEntry struct {
	SessionID uuid.UUID `json:"session_id"`
	Class     string    `json:"class"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

// BookingHistory is the GET /bookings response body.
type BookingHistory struct {
	Client   string         `json:"client"`
	Email    string         `json:"email"`
	Bookings []BookingEntry `json:"bookings"`
}

// Distinguishable failure kinds. Handlers decide which of these merge into a
// single response payload; services never conflate them.
var (
	ErrMissingField     = errors.New("missing required field")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionFull      = errors.New("session full")
	ErrDuplicateBooking = errors.New("client already booked this session")
	ErrClientNotFound   = errors.New("client not found")
)
