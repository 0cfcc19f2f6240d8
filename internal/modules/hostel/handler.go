package hostel

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hostelfinder/internal/domain"
	"hostelfinder/internal/logging"
	"hostelfinder/internal/middleware"
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

func (h *Handler) RegisterRoutes(public, protected gin.IRouter) {
	public.GET("/hostels", h.List)
	public.GET("/hostels/", h.List)
	public.GET("/hostels/search", h.Search)
	public.GET("/hostels/:id", h.Get)
	public.GET("/hostels/:id/reviews", h.ListReviews)
	public.GET("/smart-search/:pincode", h.SmartSearch)

	owners := protected.Group("", middleware.ListingRoles())
	owners.POST("/hostels", h.Create)
	owners.POST("/hostels/", h.Create)
	owners.POST("/hostels/:id/images", h.AddImage)
}

func actorFrom(c *gin.Context) Actor {
	return Actor{UserID: c.GetInt64("user_id"), Role: domain.UserType(c.GetString("role"))}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid hostel ID")
		return 0, false
	}
	return id, true
}

// Create lists a new hostel.
// @Summary		Create a hostel listing
// @Tags		Hostels
// @Security	BearerAuth
// @Param		request	body	CreateHostelRequest	true	"Listing"
// @Success		201	{object}	map[string]interface{} "Created hostel with amenities and images"
// @Failure		400	{object}	map[string]interface{} "Validation error"
// @Failure		403	{object}	map[string]interface{} "Only owners and admins may list hostels"
// @Router		/hostels/ [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateHostelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	hostel, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, hostel)
}

// List returns hostels ordered by id.
// @Summary		List hostels
// @Tags		Hostels
// @Param		skip	query	int	false	"Offset (default 0)"
// @Param		limit	query	int	false	"Page size (default 100, max 100)"
// @Router		/hostels/ [GET]
func (h *Handler) List(c *gin.Context) {
	skip, limit := utils.Page(c.Query("skip"), c.Query("limit"))

	hostels, err := h.service.List(c.Request.Context(), skip, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hostels)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	hostel, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hostel)
}

// Search filters by city, maximum rent and required amenities.
// @Summary		Search hostels
// @Tags		Hostels
// @Param		city		query	string	false	"Exact city"
// @Param		max_rent	query	number	false	"Maximum monthly rent"
// @Param		amenities	query	string	false	"Comma separated amenity names, all required"
// @Router		/hostels/search [GET]
func (h *Handler) Search(c *gin.Context) {
	q := SearchQuery{
		City:      c.Query("city"),
		Amenities: utils.SplitList(c.Query("amenities")),
	}
	if raw := strings.TrimSpace(c.Query("max_rent")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			response.ValidationError(c, map[string]string{"max_rent": "gt"})
			return
		}
		q.MaxRent = v
	}

	hostels, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hostels)
}

func (h *Handler) AddImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	img, err := h.service.AddImage(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, img)
}

func (h *Handler) ListReviews(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	skip, limit := utils.Page(c.Query("skip"), c.Query("limit"))

	reviews, err := h.service.ListReviews(c.Request.Context(), id, skip, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reviews)
}

// SmartSearch looks up a pincode and falls back to nearby areas.
// @Summary		Smart search by pincode
// @Tags		Hostels
// @Param		pincode	path	string	true	"Postal code"
// @Router		/smart-search/{pincode} [GET]
func (h *Handler) SmartSearch(c *gin.Context) {
	pincode := strings.TrimSpace(c.Param("pincode"))
	if pincode == "" || len(pincode) > 10 {
		response.ValidationError(c, map[string]string{"pincode": "max"})
		return
	}

	res, err := h.service.SmartSearch(c.Request.Context(), pincode)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrHostelNotFound):
		response.Error(c, http.StatusNotFound, "HOSTEL_NOT_FOUND", "Hostel not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have permission to perform this action")
	case errors.Is(err, ErrOwnerNotFound):
		response.ValidationError(c, map[string]string{"owner_id": "exists"})
	default:
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("hostel request failed")
		response.InternalError(c)
	}
}
