package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/fitbook/booking-api/internal/repository"
)

type clientRepository struct {
	db *sqlx.DB
}

type classRepository struct {
	db *sqlx.DB
}

type sessionRepository struct {
	db *sqlx.DB
}

type bookingRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func NewClassRepository(db *sqlx.DB) repository.ClassRepository {
	return &classRepository{db: db}
}

func NewSessionRepository(db *sqlx.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}
