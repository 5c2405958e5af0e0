package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fitbook/booking-api/internal/model"
	"github.com/fitbook/booking-api/internal/notifier"
	"github.com/fitbook/booking-api/internal/repository"
	"github.com/fitbook/booking-api/pkg/timezone"
)

type Service struct {
	bookings repository.BookingRepository
	sessions repository.SessionRepository
	classes  repository.ClassRepository
	clients  repository.ClientRepository
	notifier notifier.Service
	validate *validator.Validate
}

func NewService(
	bookings repository.BookingRepository,
	sessions repository.SessionRepository,
	classes repository.ClassRepository,
	clients repository.ClientRepository,
	notifSvc notifier.Service,
) *Service {
	return &Service{
		bookings: bookings,
		sessions: sessions,
		classes:  classes,
		clients:  clients,
		notifier: notifSvc,
		validate: validator.New(),
	}
}

// SpotsLeft is the session's capacity minus its current booking count. It is
// never negative under correct operation; a negative value indicates a prior
// invariant violation and is returned as-is.
func (s *Service) SpotsLeft(ctx context.Context, sessionID uuid.UUID) (int, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	booked, err := s.bookings.CountForSession(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to count session bookings: %w", err)
	}
	return session.Capacity - booked, nil
}

// CanBook reports whether the session has at least one spot left.
func (s *Service) CanBook(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	left, err := s.SpotsLeft(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return left > 0, nil
}

// Book reserves one seat for the named client. The client is created on first
// booking; the capacity and duplicate checks run inside the repository
// transaction, so failures stay distinguishable:
// model.ErrSessionNotFound, model.ErrSessionFull, model.ErrDuplicateBooking.
func (s *Service) Book(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: client_name, client_email and session_id are required", model.ErrMissingField)
	}

	session, err := s.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.GetByEmail(ctx, req.ClientEmail)
	if errors.Is(err, model.ErrClientNotFound) {
		client = &model.Client{Name: req.ClientName, Email: req.ClientEmail}
		if err := s.clients.Create(ctx, client); err != nil {
			return nil, fmt.Errorf("failed to register client: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	booked, err := s.bookings.CreateWithCapacityCheck(ctx, client.ID, session.ID)
	if err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, client, session)
	return booked, nil
}

// ListBookings returns the client's booking history with session times
// localized into the named zone.
func (s *Service) ListBookings(ctx context.Context, email, tzName string) (*model.BookingHistory, error) {
	if _, err := timezone.Location(tzName); err != nil {
		return nil, err
	}

	client, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	rows, err := s.bookings.ListForClient(ctx, client.ID)
	if err != nil {
		return nil, err
	}

	history := &model.BookingHistory{
		Client:   client.Name,
		Email:    client.Email,
		Bookings: make([]model.BookingEntry, 0, len(rows)),
	}
	for _, row := range rows {
		start, err := timezone.ToLocal(row.StartTime, tzName)
		if err != nil {
			return nil, err
		}
		end, err := timezone.ToLocal(row.EndTime, tzName)
		if err != nil {
			return nil, err
		}
		history.Bookings = append(history.Bookings, model.BookingEntry{
			SessionID: row.SessionID,
			Class:     row.ClassName,
			StartTime: start,
			EndTime:   end,
		})
	}
	return history, nil
}

// Confirmation email is best-effort; the booking is already committed.
func (s *Service) sendConfirmation(ctx context.Context, client *model.Client, session *model.Session) {
	className := "your class"
	if class, err := s.classes.Get(ctx, session.ClassID); err == nil && class != nil {
		className = class.Name
	}

	startLocal, err := timezone.ToLocal(session.StartTime, timezone.AuthoringZone)
	if err != nil {
		startLocal = session.StartTime.Format(timezone.Layout)
	}

	if err := s.notifier.SendBookingConfirmation(ctx, client.Email, client.Name, className, startLocal); err != nil {
		log.Warn().Err(err).
			Str("email", client.Email).
			Str("session_id", session.ID.String()).
			Msg("booking confirmation email failed")
	}
}
