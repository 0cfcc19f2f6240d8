package review

import (
	"errors"
	"net/http"

	"hostelfinder/internal/logging"
	"hostelfinder/internal/pkg/response"
	"hostelfinder/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(protected gin.IRouter) {
	protected.POST("/reviews", h.Create)
	protected.POST("/reviews/", h.Create)
}

// Create leaves a review for a hostel.
// @Summary		Review a hostel
// @Description	One review per user per hostel. The hostel rating becomes the mean of all its reviews.
// @Tags		Reviews
// @Security	BearerAuth
// @Param		request	body	CreateReviewRequest	true	"hostel_id, rating 1-5, comment"
// @Success		201	{object}	map[string]interface{} "Stored review"
// @Failure		400	{object}	map[string]interface{} "Validation error or already reviewed"
// @Failure		404	{object}	map[string]interface{} "Hostel not found"
// @Router		/reviews/ [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	rv, err := h.svc.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be 1-5 and comment must not be empty")
		case errors.Is(err, ErrHostelNotFound):
			response.Error(c, http.StatusNotFound, "HOSTEL_NOT_FOUND", "Hostel not found")
		case errors.Is(err, ErrAlreadyReviewed):
			response.Error(c, http.StatusBadRequest, "ALREADY_REVIEWED", "You have already reviewed this hostel")
		default:
			logging.Ctx(c.Request.Context()).Error().Err(err).Msg("create review failed")
			response.InternalError(c)
		}
		return
	}
	response.Success(c, http.StatusCreated, rv)
}
