package auth

import (
	"errors"
	"net/http"

	"hostelfinder/internal/logging"
	"hostelfinder/internal/pkg/response"
	"hostelfinder/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(r gin.IRouter) {
	r.POST("/token", h.Login)
	r.POST("/users", h.Register)
	r.POST("/users/", h.Register)
}

func (h *Handler) RegisterProtectedRoutes(protected gin.IRouter) {
	protected.GET("/users/me", h.GetMe)
}

// Login exchanges email and password for an access token.
// @Summary		Obtain an access token
// @Description	OAuth2 password flow: form fields username (email) and password.
// @Tags		Auth
// @Accept		x-www-form-urlencoded
// @Success		200	{object}	TokenResponse
// @Failure		401	{object}	map[string]interface{} "Incorrect email or password"
// @Router		/token [POST]
func (h *Handler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "username and password are required")
		return
	}

	res, err := h.service.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Incorrect email or password")
			return
		}
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("login failed")
		response.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: res.AccessToken, TokenType: "bearer"})
}

// Register creates a new seeker or owner account.
// @Summary		Register a user
// @Tags		Users
// @Param		request	body	RegisterRequest	true	"name, email, password, phone, user_type"
// @Success		201	{object}	map[string]interface{} "Created user"
// @Failure		400	{object}	map[string]interface{} "Validation error or email already registered"
// @Router		/users/ [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusBadRequest, "EMAIL_EXISTS", "Email already registered")
			return
		}
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("register failed")
		response.InternalError(c)
		return
	}

	response.Success(c, http.StatusCreated, user)
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("load current user failed")
		response.InternalError(c)
		return
	}

	response.Success(c, http.StatusOK, user)
}
