package catalog

import (
	"context"

	"github.com/fitbook/booking-api/internal/model"
	"github.com/fitbook/booking-api/internal/repository"
	"github.com/fitbook/booking-api/pkg/timezone"
)

type Service struct {
	classes repository.ClassRepository
}

func NewService(classes repository.ClassRepository) *Service {
	return &Service{classes: classes}
}

// ListClasses returns one entry per (class, session) pair with start and end
// localized into the named zone. An unrecognized zone fails the whole listing
// with timezone.ErrInvalidTimezone.
func (s *Service) ListClasses(ctx context.Context, tzName string) ([]*model.ClassListing, error) {
	if _, err := timezone.Location(tzName); err != nil {
		return nil, err
	}

	rows, err := s.classes.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]*model.ClassListing, 0, len(rows))
	for _, row := range rows {
		start, err := timezone.ToLocal(row.StartTime, tzName)
		if err != nil {
			return nil, err
		}
		end, err := timezone.ToLocal(row.EndTime, tzName)
		if err != nil {
			return nil, err
		}

		listings = append(listings, &model.ClassListing{
			ID:          row.ClassID,
			Class:       row.ClassName,
			Description: row.Description,
			SessionID:   row.SessionID,
			StartTime:   start,
			EndTime:     end,
			Capacity:    row.Capacity,
			SpotsLeft:   row.SpotsLeft(),
		})
	}
	return listings, nil
}
