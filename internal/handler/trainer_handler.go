package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/service"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
	"github.com/pavankrishan/test-backend-ecs--sub006/pkg/response"
)

// TrainerHandler exposes read-side trainer calendar endpoints.
type TrainerHandler struct {
	calendar *service.TrainerCalendarService
}

// NewTrainerHandler constructs a trainer handler.
func NewTrainerHandler(calendar *service.TrainerCalendarService) *TrainerHandler {
	return &TrainerHandler{calendar: calendar}
}

// Calendar returns the booked and blocked slots a trainer holds in a date
// range. Defaults to the next thirty days when from/to are omitted.
func (h *TrainerHandler) Calendar(c *gin.Context) {
	from := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "from must be YYYY-MM-DD"))
			return
		}
		from = parsed
	}
	var to time.Time
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "to must be YYYY-MM-DD"))
			return
		}
		to = parsed
	}

	slots, err := h.calendar.Calendar(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots)
}
