package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/DonArtkins/kuja-twende-adventures/internal/cache"
	"github.com/DonArtkins/kuja-twende-adventures/internal/config"
	"github.com/DonArtkins/kuja-twende-adventures/internal/events"
	"github.com/DonArtkins/kuja-twende-adventures/internal/middleware"
	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
	"github.com/DonArtkins/kuja-twende-adventures/internal/repository"
	"github.com/DonArtkins/kuja-twende-adventures/internal/security"
	"github.com/DonArtkins/kuja-twende-adventures/internal/service"
	"github.com/DonArtkins/kuja-twende-adventures/internal/storage"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type HandlerSet struct {
	log          zerolog.Logger
	cfg          *config.AppConfig
	tokens       *security.TokenService
	auth         *service.AuthService
	bookings     *service.BookingService
	destinations *service.DestinationService
	checks       map[string]HealthCheck
}

// Dependencies is everything a HandlerSet needs once infrastructure is
// already built.
type Dependencies struct {
	Log          zerolog.Logger
	Config       *config.AppConfig
	Tokens       *security.TokenService
	Auth         *service.AuthService
	Bookings     *service.BookingService
	Destinations *service.DestinationService
	Checks       map[string]HealthCheck
}

func New(deps Dependencies) HandlerSet {
	return HandlerSet{
		log:          deps.Log,
		cfg:          deps.Config,
		tokens:       deps.Tokens,
		auth:         deps.Auth,
		bookings:     deps.Bookings,
		destinations: deps.Destinations,
		checks:       deps.Checks,
	}
}

// NewHandlerSet wires repositories and services on top of the shared
// Postgres pool, Redis client and object store. store may be nil when
// object storage is not configured.
func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, rdb *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	destinationRepo := repository.NewDestinationRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	tokens := security.NewTokenService(cfg.Security.JWTSecret, cfg.Security.JWTTTL)
	publisher := events.NewPublisher(rdb, cfg.Redis.Stream)

	var images service.ImageStore
	if store != nil {
		images = store
	}

	destinations := service.NewDestinationService(
		destinationRepo,
		cache.NewDestinationCache(rdb, cfg.Cache.DestinationTTL),
		cache.NewPopularity(rdb),
		images,
		log,
	)

	deps := Dependencies{
		Log:    log,
		Config: cfg,
		Tokens: tokens,
		Auth:   service.NewAuthService(userRepo, tokens, log),
		Bookings: service.NewBookingService(
			bookingRepo,
			destinations,
			publisher,
			service.BookingOptions{StrictTransitions: cfg.Bookings.StrictTransitions},
			log,
		),
		Destinations: destinations,
		Checks: map[string]HealthCheck{
			"database": func(ctx context.Context) error { return db.Ping(ctx) },
			"cache":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	}
	return New(deps)
}

// Bookings exposes the booking service for background jobs.
func (h HandlerSet) Bookings() *service.BookingService {
	return h.bookings
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	registerValidators()

	requireAuth := middleware.Auth(h.tokens, h.cfg.Security.CookieName)
	requireAdmin := middleware.RequireRoles(models.UserRoleAdmin)

	router.GET("/healthz", h.Health)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", requireAuth, h.Me)
	}

	destinations := router.Group("/destinations")
	{
		destinations.GET("", h.ListDestinations)
		destinations.GET("/popular", h.PopularDestinations)
		destinations.GET("/:id", h.GetDestination)

		admin := destinations.Group("", requireAuth, requireAdmin)
		admin.POST("", h.CreateDestination)
		admin.PUT("/:id", h.UpdateDestination)
		admin.DELETE("/:id", h.DeleteDestination)
		admin.POST("/:id/image", h.UploadDestinationImage)
	}

	bookings := router.Group("/bookings", requireAuth)
	{
		bookings.GET("", h.ListBookings)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/mine", h.MyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
	}
}

// actor builds the caller identity from the claims set by middleware.Auth.
func actor(c *gin.Context) (service.Actor, bool) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: claims.UserID, Role: claims.Role}, true
}
