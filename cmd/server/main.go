package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"iwms-citizen.backend/internal/config"
	"iwms-citizen.backend/internal/infrastructure/repositories"
	"iwms-citizen.backend/internal/interfaces/http/handlers"
	"iwms-citizen.backend/internal/interfaces/http/middleware"
	"iwms-citizen.backend/internal/usecases"
	"iwms-citizen.backend/pkg/logger"
	"iwms-citizen.backend/pkg/redis"
	"iwms-citizen.backend/pkg/token"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownServer  = func(ctx context.Context, srv *http.Server) error { return srv.Shutdown(ctx) }
	notifySignals   = func(ch chan<- os.Signal) { signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis is optional: without it, issued tokens are simply not recorded.
	redisAvailable := true
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Warn(context.Background(), "Redis unavailable, sessions will not be recorded", zap.Error(err))
		redisAvailable = false
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize repositories
	citizenRepo := repositories.NewCitizenRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Session store (requires redis)
	var sessions usecases.SessionRecorder
	if redisAvailable {
		store, err := newSessionStore(cfg.Session.EncryptionKey)
		if err != nil {
			return fmt.Errorf("failed to initialize session store: %w", err)
		}
		sessions = store
	}

	tokens := token.NewHexGenerator()
	allocator := usecases.NewCustomerIDAllocator()

	// Initialize usecases
	registrationUsecase := usecases.NewRegistrationUsecase(citizenRepo, uow, allocator, tokens, sessions, cfg.Session.TTL)
	accountUsecase := usecases.NewAccountUsecase(citizenRepo, tokens, sessions, cfg.Session.TTL)

	// Initialize handlers
	citizenHandler := handlers.NewCitizenHandler(registrationUsecase, accountUsecase)
	chatProxyHandler := handlers.NewChatProxyHandler(cfg.Upstream)
	backendProxyHandler := handlers.NewBackendProxyHandler(cfg.Upstream)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		citizenHandler:      citizenHandler,
		chatProxyHandler:    chatProxyHandler,
		backendProxyHandler: backendProxyHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		notifySignals(quit)
		<-quit
		log.Println("🛑 Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownServer(shutdownCtx, srv); err != nil {
			log.Printf("Forced shutdown: %v", err)
		}
	}()

	log.Printf("🚀 IWMS Citizen Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
