package suggestion

import (
	"net/http"

	"hostelfinder/internal/logging"
	"hostelfinder/internal/middleware"
	"hostelfinder/internal/pkg/response"
	"hostelfinder/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, protected gin.IRouter) {
	public.POST("/recommendations", h.Recommend)

	owners := protected.Group("/suggestions", middleware.ListingRoles())
	owners.POST("/facilities", h.Facilities)
	owners.POST("/price", h.Price)
}

// bind decodes and validates the body, answering 400 itself on failure.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	if errs := validator.Validate(dst); errs != nil {
		response.ValidationError(c, errs)
		return false
	}
	return true
}

func upstreamError(c *gin.Context, err error) {
	logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("recommendation service failed")
	response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Recommendation service unavailable")
}

// Recommend forwards a free-form request and returns the upstream answer as is.
// @Summary		Hostel recommendations
// @Tags		Suggestions
// @Param		request	body	RecommendationRequest	true	"pincode, budget, preferences"
// @Success		200	{object}	map[string]interface{}
// @Failure		502	{object}	map[string]interface{} "Upstream failure"
// @Router		/recommendations [POST]
func (h *Handler) Recommend(c *gin.Context) {
	var req RecommendationRequest
	if !bind(c, &req) {
		return
	}

	out, err := h.service.Recommend(c.Request.Context(), req)
	if err != nil {
		upstreamError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Facilities(c *gin.Context) {
	var req FacilitiesRequest
	if !bind(c, &req) {
		return
	}

	out, err := h.service.Facilities(c.Request.Context(), req)
	if err != nil {
		upstreamError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Price(c *gin.Context) {
	var req PriceRequest
	if !bind(c, &req) {
		return
	}

	out, err := h.service.Price(c.Request.Context(), req)
	if err != nil {
		upstreamError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}
