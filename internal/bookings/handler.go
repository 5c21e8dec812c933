package bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/garudacabs/cab-booking/internal/fares"
	"github.com/garudacabs/cab-booking/pkg/common"
	"github.com/garudacabs/cab-booking/pkg/middleware"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /bookings
func (h *Handler) Create(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	booking, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, booking)
}

// Get handles GET /bookings/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	booking, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	role, _ := middleware.GetUserRole(c)
	if booking.UserID != userID && role != middleware.RoleAdmin {
		common.ErrorResponse(c, http.StatusForbidden, "booking belongs to another user")
		return
	}
	common.SuccessResponse(c, booking)
}

// List handles GET /bookings. Regular users see their own bookings; admins
// see everyone's.
func (h *Handler) List(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	filter := ListFilter{
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	}

	role, _ := middleware.GetUserRole(c)
	if role != middleware.RoleAdmin {
		filter.UserID = &userID
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponseWithMeta(c, bookings, &common.Meta{
		Limit:  filter.Limit,
		Offset: filter.Offset,
		Total:  total,
	})
}

// Cancel handles POST /bookings/:id/cancel
func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	booking, err := h.service.Cancel(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, booking)
}

// UpdateStatus handles PATCH /bookings/:id/status (admin)
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	booking, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, booking)
}

func respondError(c *gin.Context, err error) {
	var appErr *common.AppError
	switch {
	case errors.Is(err, common.ErrNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "booking not found")
	case errors.As(err, &appErr):
		common.AppErrorResponse(c, appErr)
	case errors.Is(err, fares.ErrNoPricingRule):
		common.ErrorResponse(c, http.StatusInternalServerError, err.Error())
	case errors.Is(err, fares.ErrDistanceUnavailable):
		common.ErrorResponse(c, http.StatusBadRequest, "could not determine trip distance, please try again")
	default:
		var vErr *fares.ValidationError
		if errors.As(err, &vErr) {
			common.ErrorResponse(c, http.StatusBadRequest, vErr.Error())
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}

// RegisterRoutes registers booking routes. All routes require authentication;
// admin carries the status updates.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup) {
	b := rg.Group("/bookings")
	{
		b.POST("", h.Create)
		b.GET("", h.List)
		b.GET("/:id", h.Get)
		b.POST("/:id/cancel", h.Cancel)
	}
	admin.PATCH("/bookings/:id/status", h.UpdateStatus)
}
