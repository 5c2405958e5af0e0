package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fitbook/booking-api/internal/model"
)

// CreateWithCapacityCheck inserts a booking inside one transaction. The
// session row is locked, so two concurrent attempts at an exactly-full session
// cannot both pass the capacity check; the composite unique constraint on
// (client_id, session_id) remains the authoritative duplicate signal.
func (r *bookingRepository) CreateWithCapacityCheck(ctx context.Context, clientID, sessionID uuid.UUID) (*model.Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin booking transaction: %w", err)
	}
	defer tx.Rollback()

	var capacity int
	err = tx.GetContext(ctx, &capacity,
		`SELECT capacity FROM sessions WHERE id = $1 FOR UPDATE`, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}

	var booked int
	err = tx.GetContext(ctx, &booked,
		`SELECT COUNT(*) FROM bookings WHERE session_id = $1`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	if booked >= capacity {
		return nil, model.ErrSessionFull
	}

	booking := &model.Booking{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		ClientID:  clientID,
		SessionID: sessionID,
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bookings (id, client_id, session_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		booking.ID, booking.ClientID, booking.SessionID, booking.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrDuplicateBooking
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}
	return booking, nil
}

func (r *bookingRepository) CountForSession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM bookings WHERE session_id = $1`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) ListForClient(ctx context.Context, clientID uuid.UUID) ([]*model.BookingRow, error) {
	query := `
		SELECT s.id AS session_id, c.name AS class_name, s.start_time, s.end_time
		FROM bookings b
		JOIN sessions s ON s.id = b.session_id
		JOIN classes c ON c.id = s.class_id
		WHERE b.client_id = $1
		ORDER BY b.created_at
	`
	var rows []*model.BookingRow
	err := r.db.SelectContext(ctx, &rows, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list client bookings: %w", err)
	}
	return rows, nil
}
