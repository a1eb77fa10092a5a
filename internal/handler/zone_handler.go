package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/dto"
	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
	"github.com/pavankrishan/test-backend-ecs--sub006/internal/service"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
	"github.com/pavankrishan/test-backend-ecs--sub006/pkg/response"
)

// ZoneHandler exposes the zone catalogue endpoints.
type ZoneHandler struct {
	service  *service.ZoneService
	validate *validator.Validate
}

// NewZoneHandler constructs a zone handler.
func NewZoneHandler(svc *service.ZoneService) *ZoneHandler {
	return &ZoneHandler{service: svc, validate: validator.New()}
}

// List returns the zone catalogue, optionally filtered.
func (h *ZoneHandler) List(c *gin.Context) {
	var query dto.ZoneQuery
	if activeOnly := c.Query("activeOnly"); activeOnly != "" {
		if val, err := strconv.ParseBool(activeOnly); err == nil {
			query.ActiveOnly = val
		}
	}
	if franchiseID := c.Query("franchiseId"); franchiseID != "" {
		query.FranchiseID = &franchiseID
	}

	zones, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, zones)
}

// Get returns one zone by id.
func (h *ZoneHandler) Get(c *gin.Context) {
	zone, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, zone)
}

// Resolve returns the active zones containing a point, nearest first.
func (h *ZoneHandler) Resolve(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "lat and lng query parameters are required"))
		return
	}

	zones, err := h.service.Resolve(c.Request.Context(), models.GeoPoint{Lat: lat, Lng: lng})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, zones)
}

// Create registers a new zone.
func (h *ZoneHandler) Create(c *gin.Context) {
	var req dto.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid zone payload"))
		return
	}

	zone, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, zone)
}
