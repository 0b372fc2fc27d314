package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/DBXDWARKA/office-runner-api/docs"
	"github.com/DBXDWARKA/office-runner-api/internal/api/handler"
	"github.com/DBXDWARKA/office-runner-api/internal/api/middleware"
	"github.com/DBXDWARKA/office-runner-api/internal/core/billing"
	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
	"github.com/DBXDWARKA/office-runner-api/internal/core/service"
	mongodb "github.com/DBXDWARKA/office-runner-api/internal/infrastructure/db/mongo"
	redisdb "github.com/DBXDWARKA/office-runner-api/internal/infrastructure/db/redis"
	"github.com/DBXDWARKA/office-runner-api/internal/infrastructure/queue"
	"github.com/DBXDWARKA/office-runner-api/pkg/logger"
)

// Options carries the runtime settings the router needs beyond its
// connections.
type Options struct {
	JWTSecret    string
	RatePerKm    float64
	AuditWorkers int
}

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the audit dispatcher, whose worker lifecycle the caller
// owns.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options) (*echo.Echo, *queue.Dispatcher) {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("dispatch"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tripRepo := mongodb.NewTripRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	dedup := redisdb.NewDedupChecker(rdb)

	calc := billing.NewCalculator(opts.RatePerKm)

	auditService := service.NewAuditService(auditRepo, dedup, log)
	dispatcher := queue.NewDispatcher(opts.AuditWorkers, auditService, log)

	authService := service.NewAuthService(userRepo, opts.JWTSecret, 24*time.Hour)
	userService := service.NewUserService(userRepo, log)
	tripService := service.NewTripService(tripRepo, userRepo, calc, dispatcher, log)
	reportService := service.NewReportService(tripRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	tripHandler := handler.NewTripHandler(tripService, userService)
	reportHandler := handler.NewReportHandler(reportService, tripService, userService)
	adminHandler := handler.NewAdminHandler(userService, authService, reportService)

	authMiddleware := middleware.Auth(opts.JWTSecret)

	// --- Public routes ---
	e.POST("/api/login", authHandler.Login)

	// --- Authenticated routes ---
	api := e.Group("/api", authMiddleware)

	api.GET("/managers", userHandler.Managers)

	trip := api.Group("/trip")
	trip.POST("/start", tripHandler.Start, middleware.RBAC(domain.RoleRunner))
	trip.POST("/stop/:id", tripHandler.Stop, middleware.RBAC(domain.RoleRunner))
	trip.POST("/update-parking/:id", tripHandler.UpdateParking, middleware.RBAC(domain.RoleRunner, domain.RoleManager))
	trip.POST("/update-distance/:id", tripHandler.UpdateDistance, middleware.RBAC(domain.RoleManager))
	trip.POST("/approve", tripHandler.Decide, middleware.RBAC(domain.RoleManager))
	trip.GET("/status/:runnerId", tripHandler.Status)
	trip.GET("/filter", tripHandler.Filter, middleware.RBAC(domain.RoleManager, domain.RoleAdmin))
	trip.POST("/filter-runner/:runnerId", tripHandler.FilterRunner)

	trip.GET("/summary/:runnerId", reportHandler.Summary)
	trip.GET("/summary-today/:runnerId", reportHandler.SummaryToday)
	trip.GET("/summary-list/:runnerId", reportHandler.SummaryList)
	trip.GET("/pending-count/:runnerId", reportHandler.PendingCount)
	trip.GET("/report/:runnerId", reportHandler.Report)

	api.GET("/trips/pending", tripHandler.Pending, middleware.RBAC(domain.RoleManager))

	admin := api.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.POST("/create-runner", adminHandler.CreateRunner)
	admin.POST("/create-manager", adminHandler.CreateManager)
	admin.POST("/reset-password", adminHandler.ResetPassword)
	admin.GET("/all-users", adminHandler.AllUsers)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/billing-export", adminHandler.BillingExport)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher
}
