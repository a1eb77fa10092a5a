package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/dto"
	"github.com/pavankrishan/test-backend-ecs--sub006/internal/service"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
	"github.com/pavankrishan/test-backend-ecs--sub006/pkg/response"
)

// AssignmentHandler exposes the auto trainer assignment endpoint.
type AssignmentHandler struct {
	service *service.AssignmentService
}

// NewAssignmentHandler constructs an assignment handler.
func NewAssignmentHandler(svc *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: svc}
}

// Assign runs one assignment attempt. The four purchase statuses are all
// returned as 201 with the persisted outcome; an error status means the
// attempt did not resolve and the whole request may be retried.
func (h *AssignmentHandler) Assign(c *gin.Context) {
	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload"))
		return
	}

	result, err := h.service.Assign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, result)
}
