package ratemeters

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garudacabs/cab-booking/pkg/common"
)

// Handler handles HTTP requests for rate meter administration
type Handler struct {
	service *Service
}

// NewHandler creates a new rate meters handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create creates a rate meter
func (h *Handler) Create(c *gin.Context) {
	var req CreateRateMeterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	rm, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	common.CreatedResponse(c, rm)
}

// Get returns a rate meter by id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid rate meter id")
		return
	}

	rm, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	common.SuccessResponse(c, rm)
}

// List lists rate meters
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := h.service.List(c.Request.Context(), ListFilter{
		ServiceType:     c.Query("service_type"),
		IncludeInactive: c.Query("include_inactive") == "true",
		Limit:           limit,
		Offset:          offset,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	common.SuccessResponseWithMeta(c, items, &common.Meta{Limit: limit, Offset: offset, Total: total})
}

// Update updates a rate meter
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid rate meter id")
		return
	}

	var req UpdateRateMeterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	rm, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	common.SuccessResponse(c, rm)
}

// Deactivate soft-deletes a rate meter
func (h *Handler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid rate meter id")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"deactivated": true})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var appErr *common.AppError
	switch {
	case errors.Is(err, common.ErrNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "rate meter not found")
	case errors.As(err, &appErr):
		common.AppErrorResponse(c, appErr)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}

// RegisterRoutes registers rate meter admin routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rateMeters := rg.Group("/rate-meters")
	{
		rateMeters.POST("", h.Create)
		rateMeters.GET("", h.List)
		rateMeters.GET("/:id", h.Get)
		rateMeters.PUT("/:id", h.Update)
		rateMeters.DELETE("/:id", h.Deactivate)
	}
}
