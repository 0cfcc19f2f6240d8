package booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"hostelfinder/internal/domain"
	"hostelfinder/internal/logging"
	"hostelfinder/internal/pkg/response"
	"hostelfinder/internal/pkg/utils"
	"hostelfinder/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected gin.IRouter) {
	protected.POST("/bookings", h.CreateBooking)
	protected.POST("/bookings/", h.CreateBooking)
	protected.GET("/bookings/my", h.ListMine)
	protected.GET("/bookings/:id", h.Get)
	protected.PUT("/bookings/:id/cancel", h.Cancel)
	protected.PUT("/bookings/:id/confirm", h.Confirm)
}

func actorFrom(c *gin.Context) Actor {
	return Actor{UserID: c.GetInt64("user_id"), Role: domain.UserType(c.GetString("role"))}
}

// CreateBooking books one room for the caller.
// @Summary		Create a booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		request	body	CreateBookingRequest	true	"hostel_id, check_in, check_out (YYYY-MM-DD), number_of_beds"
// @Success		201	{object}	BookingResponse
// @Failure		400	{object}	map[string]interface{} "VALIDATION_ERROR or NO_AVAILABILITY"
// @Failure		404	{object}	map[string]interface{} "HOSTEL_NOT_FOUND"
// @Router		/bookings/ [POST]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toResponse(b))
}

func (h *Handler) ListMine(c *gin.Context) {
	skip, limit := utils.Page(c.Query("skip"), c.Query("limit"))

	bookings, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"), skip, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(bookings))
}

func (h *Handler) Get(c *gin.Context) {
	h.withBooking(c, h.service.Get)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.withBooking(c, h.service.Cancel)
}

func (h *Handler) Confirm(c *gin.Context) {
	h.withBooking(c, h.service.Confirm)
}

type bookingAction func(ctx context.Context, actor Actor, id int64) (*domain.Booking, error)

func (h *Handler) withBooking(c *gin.Context, action bookingAction) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := action(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(b))
}

func handleError(c *gin.Context, err error) {
	var fe *FieldError
	switch {
	case errors.As(err, &fe):
		response.ValidationError(c, map[string]string{fe.Field: fe.Tag})
	case errors.Is(err, ErrValidation):
		response.ValidationError(c, nil)
	case errors.Is(err, ErrHostelNotFound):
		response.Error(c, http.StatusNotFound, "HOSTEL_NOT_FOUND", "Hostel not found")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrNoAvailability):
		response.Error(c, http.StatusBadRequest, "NO_AVAILABILITY", "No rooms available")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS_TRANSITION", "Booking status does not allow this action")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have access to this booking")
	default:
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("booking request failed")
		response.InternalError(c)
	}
}
