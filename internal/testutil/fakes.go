package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fitbook/booking-api/internal/model"
	"github.com/fitbook/booking-api/internal/repository"
)

// FakeStore is an in-memory stand-in for the Postgres repositories. It
// mirrors the storage-level invariants the real schema enforces: unique
// client emails, unique class names, and the unique (client, session) pair.
type FakeStore struct {
	mu       sync.Mutex
	clients  []*model.Client
	classes  []*model.FitnessClass
	sessions []*model.Session
	bookings []*model.Booking
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (s *FakeStore) ClientRepository() repository.ClientRepository {
	return &fakeClientRepo{s: s}
}

func (s *FakeStore) ClassRepository() repository.ClassRepository {
	return &fakeClassRepo{s: s}
}

func (s *FakeStore) SessionRepository() repository.SessionRepository {
	return &fakeSessionRepo{s: s}
}

func (s *FakeStore) BookingRepository() repository.BookingRepository {
	return &fakeBookingRepo{s: s}
}

// Counts returns the number of stored clients, classes, sessions and
// bookings, in that order.
func (s *FakeStore) Counts() (int, int, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients), len(s.classes), len(s.sessions), len(s.bookings)
}

// AddClass inserts a class directly, bypassing repository checks.
func (s *FakeStore) AddClass(name, description string) *model.FitnessClass {
	s.mu.Lock()
	defer s.mu.Unlock()
	class := &model.FitnessClass{
		Base:        model.Base{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		Name:        name,
		Description: description,
	}
	s.classes = append(s.classes, class)
	return class
}

// AddSession inserts a session directly, bypassing repository checks.
func (s *FakeStore) AddSession(classID uuid.UUID, start, end time.Time, capacity int) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := &model.Session{
		Base:      model.Base{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		ClassID:   classID,
		StartTime: start,
		EndTime:   end,
		Capacity:  capacity,
	}
	s.sessions = append(s.sessions, session)
	return session
}

// AddClient inserts a client directly, bypassing repository checks.
func (s *FakeStore) AddClient(name, email string) *model.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	client := &model.Client{
		Base:  model.Base{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		Name:  name,
		Email: email,
	}
	s.clients = append(s.clients, client)
	return client
}

type fakeClientRepo struct {
	s *FakeStore
}

func (r *fakeClientRepo) Create(ctx context.Context, client *model.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.clients {
		if existing.Email == client.Email {
			return fmt.Errorf("client email %s already registered", client.Email)
		}
	}
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	client.CreatedAt = time.Now().UTC()
	stored := *client
	r.s.clients = append(r.s.clients, &stored)
	return nil
}

func (r *fakeClientRepo) GetByEmail(ctx context.Context, email string) (*model.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, client := range r.s.clients {
		if client.Email == email {
			c := *client
			return &c, nil
		}
	}
	return nil, model.ErrClientNotFound
}

type fakeClassRepo struct {
	s *FakeStore
}

func (r *fakeClassRepo) Create(ctx context.Context, class *model.FitnessClass) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.classes {
		if existing.Name == class.Name {
			return fmt.Errorf("class %s already exists", class.Name)
		}
	}
	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}
	class.CreatedAt = time.Now().UTC()
	stored := *class
	r.s.classes = append(r.s.classes, &stored)
	return nil
}

func (r *fakeClassRepo) Get(ctx context.Context, id uuid.UUID) (*model.FitnessClass, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, class := range r.s.classes {
		if class.ID == id {
			c := *class
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeClassRepo) GetByName(ctx context.Context, name string) (*model.FitnessClass, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, class := range r.s.classes {
		if class.Name == name {
			c := *class
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeClassRepo) ListSessions(ctx context.Context) ([]*model.ClassSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []*model.ClassSession
	for _, class := range r.s.classes {
		for _, session := range r.s.sessions {
			if session.ClassID != class.ID {
				continue
			}
			booked := 0
			for _, b := range r.s.bookings {
				if b.SessionID == session.ID {
					booked++
				}
			}
			rows = append(rows, &model.ClassSession{
				ClassID:     class.ID,
				ClassName:   class.Name,
				Description: class.Description,
				SessionID:   session.ID,
				StartTime:   session.StartTime,
				EndTime:     session.EndTime,
				Capacity:    session.Capacity,
				BookedCount: booked,
			})
		}
	}
	return rows, nil
}

type fakeSessionRepo struct {
	s *FakeStore
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *model.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if session.Capacity <= 0 {
		return fmt.Errorf("session violates capacity constraint")
	}
	if !session.EndTime.After(session.StartTime) {
		return fmt.Errorf("session violates time-window constraint")
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.CreatedAt = time.Now().UTC()
	stored := *session
	r.s.sessions = append(r.s.sessions, &stored)
	return nil
}

func (r *fakeSessionRepo) Get(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, session := range r.s.sessions {
		if session.ID == id {
			sess := *session
			return &sess, nil
		}
	}
	return nil, model.ErrSessionNotFound
}

func (r *fakeSessionRepo) GetByStartTime(ctx context.Context, start time.Time) (*model.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, session := range r.s.sessions {
		if session.StartTime.Equal(start) {
			sess := *session
			return &sess, nil
		}
	}
	return nil, nil
}

type fakeBookingRepo struct {
	s *FakeStore
}

func (r *fakeBookingRepo) CreateWithCapacityCheck(ctx context.Context, clientID, sessionID uuid.UUID) (*model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var session *model.Session
	for _, sess := range r.s.sessions {
		if sess.ID == sessionID {
			session = sess
			break
		}
	}
	if session == nil {
		return nil, model.ErrSessionNotFound
	}

	booked := 0
	for _, b := range r.s.bookings {
		if b.SessionID == sessionID {
			booked++
		}
	}
	if booked >= session.Capacity {
		return nil, model.ErrSessionFull
	}

	for _, b := range r.s.bookings {
		if b.ClientID == clientID && b.SessionID == sessionID {
			return nil, model.ErrDuplicateBooking
		}
	}

	booking := &model.Booking{
		Base:      model.Base{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		ClientID:  clientID,
		SessionID: sessionID,
	}
	r.s.bookings = append(r.s.bookings, booking)
	result := *booking
	return &result, nil
}

func (r *fakeBookingRepo) CountForSession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, b := range r.s.bookings {
		if b.SessionID == sessionID {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) ListForClient(ctx context.Context, clientID uuid.UUID) ([]*model.BookingRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []*model.BookingRow
	for _, b := range r.s.bookings {
		if b.ClientID != clientID {
			continue
		}
		for _, session := range r.s.sessions {
			if session.ID != b.SessionID {
				continue
			}
			className := ""
			for _, class := range r.s.classes {
				if class.ID == session.ClassID {
					className = class.Name
					break
				}
			}
			rows = append(rows, &model.BookingRow{
				SessionID: session.ID,
				ClassName: className,
				StartTime: session.StartTime,
				EndTime:   session.EndTime,
			})
		}
	}
	return rows, nil
}
