package booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitbook/booking-api/internal/model"
	"github.com/fitbook/booking-api/internal/service/booking"
	apperrors "github.com/fitbook/booking-api/pkg/errors"
	"github.com/fitbook/booking-api/pkg/httputil"
	"github.com/fitbook/booking-api/pkg/timezone"
)

// Legacy response strings the original clients depend on.
const (
	msgBookingSuccessful = "Booking successful"
	msgBookingFailed     = "Booking failed – session full or already booked"
	msgFieldsRequired    = "client_name and client_email and session_id required"
	msgEmailRequired     = "email query parameter is required"
)

type Handler struct {
	service   *booking.Service
	defaultTZ string
}

func NewHandler(service *booking.Service, defaultTZ string) *Handler {
	return &Handler{service: service, defaultTZ: defaultTZ}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/book", h.Book)
	r.GET("/bookings", h.ListBookings)
}

func (h *Handler) Book(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithErrorMessage(c, http.StatusBadRequest, msgFieldsRequired)
		return
	}

	_, err := h.service.Book(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrMissingField):
			httputil.RespondWithErrorMessage(c, http.StatusBadRequest, msgFieldsRequired)
		case errors.Is(err, model.ErrSessionNotFound),
			errors.Is(err, model.ErrSessionFull),
			errors.Is(err, model.ErrDuplicateBooking):
			// The public surface merges these into one payload; the internal
			// kinds stay distinguishable for logging and tests.
			c.Error(err)
			httputil.RespondWithMessage(c, http.StatusBadRequest, msgBookingFailed)
		default:
			c.Error(err)
			httputil.RespondWithError(c, apperrors.NewInternal(err))
		}
		return
	}

	httputil.RespondWithMessage(c, http.StatusOK, msgBookingSuccessful)
}

func (h *Handler) ListBookings(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		httputil.RespondWithErrorMessage(c, http.StatusBadRequest, msgEmailRequired)
		return
	}
	tzName := c.DefaultQuery("timezone", h.defaultTZ)

	history, err := h.service.ListBookings(c.Request.Context(), email, tzName)
	if err != nil {
		switch {
		case errors.Is(err, timezone.ErrInvalidTimezone):
			httputil.RespondWithError(c, apperrors.NewBadRequest(fmt.Sprintf("Invalid timezone: %s", tzName), err))
		case errors.Is(err, model.ErrClientNotFound):
			httputil.RespondWithError(c, apperrors.NewNotFound("Client", err))
		default:
			c.Error(err)
			httputil.RespondWithError(c, apperrors.NewInternal(err))
		}
		return
	}

	c.JSON(http.StatusOK, history)
}
