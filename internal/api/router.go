package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/via/votehub/docs"
	"github.com/via/votehub/internal/api/handler"
	"github.com/via/votehub/internal/api/middleware"
	"github.com/via/votehub/internal/core/domain"
	"github.com/via/votehub/internal/core/service"
	mongodb "github.com/via/votehub/internal/infrastructure/db/mongo"
	redisdb "github.com/via/votehub/internal/infrastructure/db/redis"
	httphandlers "github.com/via/votehub/internal/infrastructure/http/handlers"
	"github.com/via/votehub/internal/infrastructure/queue"
)

// Config carries the knobs the router needs beyond its store handles.
type Config struct {
	JWTSecret          string
	SessionTTL         time.Duration
	ReconcileEvery     time.Duration
	LoginRatePerMinute float64
	LoginBurst         int
	RefreshWorkers     int
}

// NewRouter builds the Echo instance with all routes registered, plus the
// results-refresh dispatcher the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("votehub"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	submissionRepo := mongodb.NewSubmissionRepository(db)
	voteRepo := mongodb.NewVoteRepository(db)

	sessionStore := redisdb.NewSessionStore(rdb, cfg.SessionTTL, log)
	resultsCache := redisdb.NewResultsCache(rdb)

	authService := service.NewAuthService(userRepo, log)
	sessionService := service.NewSessionService(userRepo, sessionStore, service.SessionOptions{
		TTL:            cfg.SessionTTL,
		ReconcileEvery: cfg.ReconcileEvery,
	}, log)
	analyticsService := service.NewAnalyticsService(submissionRepo, voteRepo, resultsCache, log)

	dispatcher := queue.NewDispatcher(cfg.RefreshWorkers, analyticsService, log)

	submissionService := service.NewSubmissionService(submissionRepo, dispatcher, log)
	voteService := service.NewVoteService(voteRepo, submissionRepo, dispatcher, log)

	authHandler := handler.NewAuthHandler(authService, sessionService, cfg.JWTSecret)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	voteHandler := handler.NewVoteHandler(voteService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	sessionMiddleware := middleware.Session(cfg.JWTSecret, sessionService)
	loginLimiter := middleware.NewLoginRateLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst)
	anyRole := middleware.RBAC(domain.RoleJudge, domain.RoleSuperadmin)
	superadminOnly := middleware.RBAC(domain.RoleSuperadmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login, loginLimiter.Middleware())
	e.POST("/auth/logout", authHandler.Logout, sessionMiddleware)
	e.GET("/auth/session", authHandler.Session, sessionMiddleware)

	// --- Submissions ---
	e.GET("/submissions", submissionHandler.List, sessionMiddleware, anyRole)
	e.POST("/submissions", submissionHandler.Create, sessionMiddleware, superadminOnly)
	e.PUT("/submissions/:id", submissionHandler.Update, sessionMiddleware, superadminOnly)
	e.DELETE("/submissions/:id", submissionHandler.Delete, sessionMiddleware, superadminOnly)

	// --- Votes ---
	e.POST("/submissions/:id/votes", voteHandler.Cast, sessionMiddleware, anyRole)
	e.GET("/votes", voteHandler.List, sessionMiddleware, anyRole)

	// --- Analytics (superadmin dashboard) ---
	e.GET("/analytics/results", analyticsHandler.Results, sessionMiddleware, superadminOnly)

	// --- Operational endpoints (no auth required) ---
	healthHandler := httphandlers.NewHealthHandler()
	healthDepsHandler := httphandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // process liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // dependency readiness
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher
}
