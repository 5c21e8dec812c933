package cabtypes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garudacabs/cab-booking/pkg/common"
)

// Handler handles HTTP requests for cab types and car options
type Handler struct {
	service *Service
}

// NewHandler creates a new cab types handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, common.ErrNotFound) {
		common.ErrorResponse(c, http.StatusNotFound, "not found")
		return
	}
	common.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
}

// CreateCabType creates a cab type
func (h *Handler) CreateCabType(c *gin.Context) {
	var req CreateCabTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	ct, err := h.service.CreateCabType(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, ct)
}

// GetCabType returns a cab type by id
func (h *Handler) GetCabType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ct, err := h.service.GetCabType(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, ct)
}

// ListCabTypes lists cab types
func (h *Handler) ListCabTypes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := h.service.ListCabTypes(c.Request.Context(), limit, offset, c.Query("include_inactive") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponseWithMeta(c, items, &common.Meta{Limit: limit, Offset: offset, Total: total})
}

// UpdateCabType updates a cab type
func (h *Handler) UpdateCabType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateCabTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	ct, err := h.service.UpdateCabType(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, ct)
}

// DeactivateCabType soft-deletes a cab type
func (h *Handler) DeactivateCabType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeactivateCabType(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deactivated": true})
}

// CreateCarOption creates a car option
func (h *Handler) CreateCarOption(c *gin.Context) {
	var req CreateCarOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	co, err := h.service.CreateCarOption(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, co)
}

// GetCarOption returns a car option by id, with its derived category
func (h *Handler) GetCarOption(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	co, err := h.service.GetCarOption(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{
		"car_option": co,
		"category":   DeriveCategory(co.Name, co.Description),
	})
}

// ListCarOptions lists car options
func (h *Handler) ListCarOptions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := h.service.ListCarOptions(c.Request.Context(), limit, offset, c.Query("include_inactive") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponseWithMeta(c, items, &common.Meta{Limit: limit, Offset: offset, Total: total})
}

// UpdateCarOption updates a car option
func (h *Handler) UpdateCarOption(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateCarOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	co, err := h.service.UpdateCarOption(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, co)
}

// DeactivateCarOption soft-deletes a car option
func (h *Handler) DeactivateCarOption(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeactivateCarOption(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deactivated": true})
}

// RegisterRoutes registers cab type and car option routes. Reads are public;
// the caller wraps writes in the admin guard.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/cab-types", h.ListCabTypes)
	public.GET("/cab-types/:id", h.GetCabType)
	public.GET("/car-options", h.ListCarOptions)
	public.GET("/car-options/:id", h.GetCarOption)

	admin.POST("/cab-types", h.CreateCabType)
	admin.PUT("/cab-types/:id", h.UpdateCabType)
	admin.DELETE("/cab-types/:id", h.DeactivateCabType)
	admin.POST("/car-options", h.CreateCarOption)
	admin.PUT("/car-options/:id", h.UpdateCarOption)
	admin.DELETE("/car-options/:id", h.DeactivateCarOption)
}
