package model

import (
	"time"

	"github.com/google/uuid"
)

// FitnessClass groups sessions under a unique name (Yoga, Zumba, ...).
type FitnessClass struct {
	Base
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}

// Session is one scheduled occurrence of a class. Start and end instants are
// stored in UTC; capacity is the number of seats.
type Session struct {
	Base
	ClassID   uuid.UUID `db:"class_id" json:"class_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	Capacity  int       `db:"capacity" json:"capacity"`
}

// ClassSession is one flattened (class, session) catalog row with the booking
// count joined in.
type ClassSession struct {
	ClassID     uuid.UUID `db:"class_id"`
	ClassName   string    `db:"class_name"`
	Description string    `db:"description"`
	SessionID   uuid.UUID `db:"session_id"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	Capacity    int       `db:"capacity"`
	BookedCount int       `db:"booked_count"`
}

// SpotsLeft is capacity minus current booking count. Negative values indicate
// a prior invariant violation and are surfaced as-is.
func (s *ClassSession) SpotsLeft() int {
	return s.Capacity - s.BookedCount
}

// ClassListing is the localized catalog entry returned by GET /classes.
type ClassListing struct {
	ID          uuid.UUID `json:"id"`
	Class       string    `json:"class"`
	Description string    `json:"description"`
	SessionID   uuid.UUID `json:"session_id"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Capacity    int       `json:"capacity"`
	SpotsLeft   int       `json:"spots_left"`
}
