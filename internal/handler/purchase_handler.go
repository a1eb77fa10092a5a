package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/service"
	"github.com/pavankrishan/test-backend-ecs--sub006/pkg/response"
)

// PurchaseHandler exposes read-side purchase endpoints.
type PurchaseHandler struct {
	service *service.PurchaseService
}

// NewPurchaseHandler constructs a purchase handler.
func NewPurchaseHandler(svc *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: svc}
}

// Get returns one purchase with its students and session calendar.
func (h *PurchaseHandler) Get(c *gin.Context) {
	detail, err := h.service.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// RosterCSV streams the session calendar as CSV.
func (h *PurchaseHandler) RosterCSV(c *gin.Context) {
	id := c.Param("id")
	data, err := h.service.RosterCSV(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="roster-%s.csv"`, id))
	c.Data(http.StatusOK, "text/csv", data)
}

// RosterPDF streams the session calendar as a PDF document.
func (h *PurchaseHandler) RosterPDF(c *gin.Context) {
	id := c.Param("id")
	data, err := h.service.RosterPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="roster-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", data)
}
