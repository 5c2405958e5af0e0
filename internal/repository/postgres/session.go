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

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO sessions (id, class_id, start_time, end_time, capacity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.ClassID,
		session.StartTime,
		session.EndTime,
		session.Capacity,
		session.CreatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("session violates capacity or time-window constraint: %w", err)
		}
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	query := `
		SELECT id, class_id, start_time, end_time, capacity, created_at
		FROM sessions
		WHERE id = $1
	`
	var session model.Session
	err := r.db.GetContext(ctx, &session, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) GetByStartTime(ctx context.Context, start time.Time) (*model.Session, error) {
	query := `
		SELECT id, class_id, start_time, end_time, capacity, created_at
		FROM sessions
		WHERE start_time = $1
	`
	var session model.Session
	err := r.db.GetContext(ctx, &session, query, start)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by start time: %w", err)
	}
	return &session, nil
}
