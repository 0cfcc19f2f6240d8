// Package server assembles the HTTP surface: middleware chain, module routes
// and the operational endpoints.
package server

import (
	"net/http"

	"hostelfinder/internal/middleware"
	"hostelfinder/internal/modules/auth"
	"hostelfinder/internal/modules/booking"
	"hostelfinder/internal/modules/hostel"
	"hostelfinder/internal/modules/live"
	"hostelfinder/internal/modules/review"
	"hostelfinder/internal/modules/suggestion"
	"hostelfinder/internal/pkg/jwt"
	"hostelfinder/internal/pkg/response"
	"hostelfinder/internal/recommend"
	"hostelfinder/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Deps struct {
	DB          *gorm.DB
	JWT         *jwt.Service
	Recommender recommend.Recommender
	Hub         *live.Hub

	CORSOrigins  []string
	MetricsToken string
	// RateLimiter is optional; nil disables per-IP limiting.
	RateLimiter *middleware.RateLimiter
}

func NewRouter(d Deps) *gin.Engine {
	if d.Hub == nil {
		d.Hub = live.NewHub()
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(d.CORSOrigins))
	r.Use(middleware.Metrics())
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.Middleware())
	}

	r.GET("/health", healthHandler(d.DB))
	r.GET("/metrics", middleware.StaticTokenAuth(d.MetricsToken), gin.WrapH(promhttp.Handler()))

	userRepo := repository.NewUserRepository(d.DB)
	hostelRepo := repository.NewHostelRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	reviewRepo := repository.NewReviewRepository(d.DB)

	authHandler := auth.NewHandler(auth.NewService(userRepo, d.JWT))
	hostelHandler := hostel.NewHandler(hostel.NewService(hostelRepo, reviewRepo, userRepo, d.Recommender))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, hostelRepo, d.Hub))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, hostelRepo, d.Hub))
	suggestionHandler := suggestion.NewHandler(suggestion.NewService(d.Recommender))
	liveHandler := live.NewHandler(d.Hub)

	public := r.Group("")
	protected := r.Group("", middleware.JWTAuth(d.JWT))

	authHandler.RegisterPublicRoutes(public)
	authHandler.RegisterProtectedRoutes(protected)
	hostelHandler.RegisterRoutes(public, protected)
	bookingHandler.RegisterRoutes(protected)
	reviewHandler.RegisterRoutes(protected)
	suggestionHandler.RegisterRoutes(public, protected)
	liveHandler.RegisterRoutes(public)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	return r
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is not reachable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
