package catalog

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitbook/booking-api/internal/service/catalog"
	apperrors "github.com/fitbook/booking-api/pkg/errors"
	"github.com/fitbook/booking-api/pkg/httputil"
	"github.com/fitbook/booking-api/pkg/timezone"
)

type Handler struct {
	service   *catalog.Service
	defaultTZ string
}

func NewHandler(service *catalog.Service, defaultTZ string) *Handler {
	return &Handler{service: service, defaultTZ: defaultTZ}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/classes", h.ListClasses)
}

func (h *Handler) ListClasses(c *gin.Context) {
	tzName := c.DefaultQuery("timezone", h.defaultTZ)

	listings, err := h.service.ListClasses(c.Request.Context(), tzName)
	if err != nil {
		if errors.Is(err, timezone.ErrInvalidTimezone) {
			httputil.RespondWithError(c, apperrors.NewBadRequest(fmt.Sprintf("Invalid timezone: %s", tzName), err))
			return
		}
		c.Error(err)
		httputil.RespondWithError(c, apperrors.NewInternal(err))
		return
	}

	c.JSON(http.StatusOK, listings)
}
