package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-scheduling-backend/config"
	deliveryHttp "clinic-scheduling-backend/internal/delivery/http"
	"clinic-scheduling-backend/internal/delivery/http/handler"
	"clinic-scheduling-backend/internal/delivery/http/middleware"
	"clinic-scheduling-backend/internal/infrastructure/cache"
	"clinic-scheduling-backend/internal/infrastructure/database"
	"clinic-scheduling-backend/internal/repository"
	"clinic-scheduling-backend/internal/service"
	"clinic-scheduling-backend/internal/usecase"
	"clinic-scheduling-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	SlotService *service.SlotReservationService
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, slotService := initializeServer(db, redisClient, cfg)
	app.Server = server
	app.SlotService = slotService

	// Rebuild slot counters from the database
	if err := slotService.SyncOnStartup(context.Background()); err != nil {
		logrus.Warnf("Slot counter sync failed, continuing in degraded mode: %v", err)
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) (*http.Server, *service.SlotReservationService) {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	patientRepo := repository.NewPatientRepository()
	attendanceRepo := repository.NewAttendanceRepository()
	scheduleSettingRepo := repository.NewScheduleSettingRepository()
	treatmentRecordRepo := repository.NewTreatmentRecordRepository()
	treatmentSessionRepo := repository.NewTreatmentSessionRepository()
	sessionRecordRepo := repository.NewTreatmentSessionRecordRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	slotService := service.NewSlotReservationService(db, redisClient, log, attendanceRepo)
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, auditService)
	attendanceUsecase := usecase.NewAttendanceUsecase(db, log, attendanceRepo, patientRepo, scheduleSettingRepo, slotService, auditService)
	scheduleSettingUsecase := usecase.NewScheduleSettingUsecase(db, log, scheduleSettingRepo, auditService)
	treatmentRecordUsecase := usecase.NewTreatmentRecordUsecase(db, log, treatmentRecordRepo, attendanceRepo, patientRepo, auditService)
	treatmentSessionUsecase := usecase.NewTreatmentSessionUsecase(db, log, treatmentSessionRepo, sessionRecordRepo, treatmentRecordRepo, attendanceRepo, patientRepo, attendanceUsecase, auditService)
	sessionRecordUsecase := usecase.NewTreatmentSessionRecordUsecase(db, log, sessionRecordRepo, treatmentSessionRepo, attendanceRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	attendanceHandler := handler.NewAttendanceHandler(attendanceUsecase, customValidator)
	scheduleSettingHandler := handler.NewScheduleSettingHandler(scheduleSettingUsecase, customValidator)
	treatmentRecordHandler := handler.NewTreatmentRecordHandler(treatmentRecordUsecase, customValidator)
	treatmentSessionHandler := handler.NewTreatmentSessionHandler(treatmentSessionUsecase, sessionRecordUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		patientHandler,
		attendanceHandler,
		scheduleSettingHandler,
		treatmentRecordHandler,
		treatmentSessionHandler,
		auditLogHandler,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, slotService
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Stop background slot maintenance
	if app.SlotService != nil {
		app.SlotService.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
