package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fitbook/booking-api/internal/model"
	"github.com/fitbook/booking-api/internal/repository"
	"github.com/fitbook/booking-api/pkg/timezone"
)

const defaultCapacity = 10

// Service idempotently populates demo classes, clients and sessions. It is a
// bootstrap helper, not part of the runtime contract.
type Service struct {
	classes  repository.ClassRepository
	clients  repository.ClientRepository
	sessions repository.SessionRepository

	// now is swappable in tests.
	now func() time.Time
}

func NewService(
	classes repository.ClassRepository,
	clients repository.ClientRepository,
	sessions repository.SessionRepository,
) *Service {
	return &Service{
		classes:  classes,
		clients:  clients,
		sessions: sessions,
		now:      time.Now,
	}
}

// SeedAll ensures the default classes, demo clients and tomorrow's sessions
// exist. Re-running produces no duplicates: everything is looked up by its
// unique key (class name, client email, session start time) before insert.
func (s *Service) SeedAll(ctx context.Context) error {
	if err := s.seedClasses(ctx); err != nil {
		return err
	}
	if err := s.seedClients(ctx); err != nil {
		return err
	}
	if err := s.seedSessions(ctx); err != nil {
		return err
	}
	log.Info().Msg("seed data ensured")
	return nil
}

func (s *Service) seedClasses(ctx context.Context) error {
	for _, name := range []string{"Yoga", "Zumba", "HIIT"} {
		existing, err := s.classes.GetByName(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to look up class %s: %w", name, err)
		}
		if existing != nil {
			continue
		}

		class := &model.FitnessClass{
			Name:        name,
			Description: fmt.Sprintf("%s class", name),
		}
		if err := s.classes.Create(ctx, class); err != nil {
			return fmt.Errorf("failed to seed class %s: %w", name, err)
		}
	}
	return nil
}

func (s *Service) seedClients(ctx context.Context) error {
	samples := []model.Client{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	}
	for _, sample := range samples {
		_, err := s.clients.GetByEmail(ctx, sample.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, model.ErrClientNotFound) {
			return fmt.Errorf("failed to look up client %s: %w", sample.Email, err)
		}

		client := sample
		if err := s.clients.Create(ctx, &client); err != nil {
			return fmt.Errorf("failed to seed client %s: %w", sample.Email, err)
		}
	}
	return nil
}

// seedSessions creates one or two sessions per class for tomorrow, authored in
// the fixed authoring zone and stored in UTC.
func (s *Service) seedSessions(ctx context.Context) error {
	loc, err := timezone.Location(timezone.AuthoringZone)
	if err != nil {
		return err
	}
	tomorrow := s.now().In(loc).AddDate(0, 0, 1).Format("2006-01-02")

	specs := map[string][]string{
		"Yoga":  {"07:00", "18:00"},
		"Zumba": {"08:00"},
		"HIIT":  {"09:30"},
	}

	for className, times := range specs {
		class, err := s.classes.GetByName(ctx, className)
		if err != nil {
			return fmt.Errorf("failed to look up class %s: %w", className, err)
		}
		if class == nil {
			continue
		}

		for _, at := range times {
			start, err := timezone.ToUTC(fmt.Sprintf("%s %s", tomorrow, at), timezone.AuthoringZone)
			if err != nil {
				return fmt.Errorf("failed to author session start: %w", err)
			}

			existing, err := s.sessions.GetByStartTime(ctx, start)
			if err != nil {
				return fmt.Errorf("failed to look up session at %s: %w", start, err)
			}
			if existing != nil {
				continue
			}

			session := &model.Session{
				ClassID:   class.ID,
				StartTime: start,
				EndTime:   start.Add(time.Hour),
				Capacity:  defaultCapacity,
			}
			if err := s.sessions.Create(ctx, session); err != nil {
				return fmt.Errorf("failed to seed session for %s: %w", className, err)
			}
		}
	}
	return nil
}
