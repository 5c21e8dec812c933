package fares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garudacabs/cab-booking/pkg/common"
)

// Handler handles HTTP requests for fare estimates
type Handler struct {
	service *Service
}

// NewHandler creates a new fares handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Estimate returns a fare estimate for a trip
func (h *Handler) Estimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	estimate, err := h.service.Estimate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	common.SuccessResponse(c, estimate)
}

// GetRate returns the pricing rule that would apply to a trip, without
// computing a fare
func (h *Handler) GetRate(c *gin.Context) {
	serviceType, ok := ParseServiceType(c.Query("service_type"))
	if !ok {
		common.ErrorResponse(c, http.StatusBadRequest, "service_type must be local, airport or outstation")
		return
	}

	var tripType *TripType
	if raw := c.Query("trip_type"); raw != "" {
		parsed, ok := ParseTripType(raw)
		if !ok {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid trip_type")
			return
		}
		tripType = &parsed
	}
	if serviceType == ServiceOutstation && tripType == nil {
		common.ErrorResponse(c, http.StatusBadRequest, "trip_type is required for outstation")
		return
	}

	rule, err := h.service.ResolveRate(c.Request.Context(), serviceType, c.Query("car_category"), tripType)
	if err != nil {
		h.respondError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{
		"rule_kind": rule.RuleKind(),
		"rule":      rule,
	})
}

// respondError maps fare errors onto HTTP statuses. Missing rate
// configuration is a server-side fault; malformed requests and unresolvable
// airport routes are the caller's to fix or retry.
func (h *Handler) respondError(c *gin.Context, err error) {
	var configErr *PricingConfigError
	var validationErr *ValidationError

	switch {
	case errors.Is(err, ErrNoPricingRule):
		common.ErrorResponse(c, http.StatusInternalServerError, ErrNoPricingRule.Error())
	case errors.As(err, &configErr):
		common.ErrorResponse(c, http.StatusInternalServerError, configErr.Error())
	case errors.Is(err, ErrDistanceUnavailable):
		common.ErrorResponse(c, http.StatusBadRequest, "could not determine trip distance, please try again")
	case errors.As(err, &validationErr):
		common.ErrorResponse(c, http.StatusBadRequest, validationErr.Error())
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to estimate fare")
	}
}

// RegisterRoutes registers fare routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	fares := rg.Group("/fares")
	{
		fares.POST("/estimate", h.Estimate)
		fares.GET("/rate", h.GetRate)
	}
}
