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

func (r *classRepository) Create(ctx context.Context, class *model.FitnessClass) error {
	query := `
		INSERT INTO classes (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}
	class.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		class.ID,
		class.Name,
		class.Description,
		class.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("class %s already exists: %w", class.Name, err)
		}
		return fmt.Errorf("failed to create class: %w", err)
	}
	return nil
}

func (r *classRepository) Get(ctx context.Context, id uuid.UUID) (*model.FitnessClass, error) {
	query := `SELECT id, name, description, created_at FROM classes WHERE id = $1`
	var class model.FitnessClass
	err := r.db.GetContext(ctx, &class, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	return &class, nil
}

func (r *classRepository) GetByName(ctx context.Context, name string) (*model.FitnessClass, error) {
	query := `SELECT id, name, description, created_at FROM classes WHERE name = $1`
	var class model.FitnessClass
	err := r.db.GetContext(ctx, &class, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get class by name: %w", err)
	}
	return &class, nil
}

// ListSessions returns one row per (class, session) pair in catalog-insertion
// order, with the current booking count joined in.
func (r *classRepository) ListSessions(ctx context.Context) ([]*model.ClassSession, error) {
	query := `
		SELECT c.id AS class_id, c.name AS class_name, c.description,
			   s.id AS session_id, s.start_time, s.end_time, s.capacity,
			   COUNT(b.id) AS booked_count
		FROM classes c
		JOIN sessions s ON s.class_id = c.id
		LEFT JOIN bookings b ON b.session_id = s.id
		GROUP BY c.id, c.name, c.description, c.created_at,
				 s.id, s.start_time, s.end_time, s.capacity, s.created_at
		ORDER BY c.created_at, s.created_at
	`
	var rows []*model.ClassSession
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list class sessions: %w", err)
	}
	return rows, nil
}
