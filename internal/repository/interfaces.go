package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fitbook/booking-api/internal/model"
)

// All repository interfaces in one file
type (
	// ClientRepository handles client lookup and creation.
	ClientRepository interface {
		Create(ctx context.Context, client *model.Client) error
		GetByEmail(ctx context.Context, email string) (*model.Client, error)
	}

	// ClassRepository handles fitness classes and their sessions.
	ClassRepository interface {
		Create(ctx context.Context, class *model.FitnessClass) error
		Get(ctx context.Context, id uuid.UUID) (*model.FitnessClass, error)
		GetByName(ctx context.Context, name string) (*model.FitnessClass, error)
		ListSessions(ctx context.Context) ([]*model.ClassSession, error)
	}

	// SessionRepository handles scheduled class sessions.
	SessionRepository interface {
		Create(ctx context.Context, session *model.Session) error
		Get(ctx context.Context, id uuid.UUID) (*model.Session, error)
		GetByStartTime(ctx context.Context, start time.Time) (*model.Session, error)
	}

	// BookingRepository enforces the capacity and uniqueness invariants at the
	// storage layer. CreateWithCapacityCheck runs the admissibility check and
	// the insert in one transaction and reports model.ErrSessionFull /
	// model.ErrDuplicateBooking / model.ErrSessionNotFound.
	BookingRepository interface {
		CreateWithCapacityCheck(ctx context.Context, clientID, sessionID uuid.UUID) (*model.Booking, error)
		CountForSession(ctx context.Context, sessionID uuid.UUID) (int, error)
		ListForClient(ctx context.Context, clientID uuid.UUID) ([]*model.BookingRow, error)
	}
)
