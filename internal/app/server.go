// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"insurtrack/internal/config"
	"insurtrack/internal/db"
	dashboardHandler "insurtrack/internal/handlers/dashboard"
	documentHandler "insurtrack/internal/handlers/document"
	customerHandler "insurtrack/internal/handlers/customer"
	insuranceHandler "insurtrack/internal/handlers/insurance"
	"insurtrack/internal/middleware"
	"insurtrack/internal/repository/postgres"
	customersvc "insurtrack/internal/service/customer"
	dashboardsvc "insurtrack/internal/service/dashboard"
	documentsvc "insurtrack/internal/service/document"
	insurancesvc "insurtrack/internal/service/insurance"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
	cache  *redis.Client
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.Connect(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	// ----- Redis (optional; dashboard stats cache) -----
	if s.cfg.RedisAddr != "" {
		cache, err := db.NewRedisClient(db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       0,
			PoolSize: 10,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		s.cache = cache
		logger.Info("redis stats cache enabled", zap.String("addr", s.cfg.RedisAddr))
	}

	// ----- Repositories -----
	customerRepo := postgres.NewCustomerRepository(pool)
	insuranceRepo := postgres.NewInsuranceRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)

	// ----- Services -----
	customerService := customersvc.NewCustomerService(customerRepo, logger)
	insuranceService := insurancesvc.NewInsuranceService(insuranceRepo, customerRepo, logger)
	documentService := documentsvc.NewDocumentService(documentRepo, customerRepo, logger)
	dashboardService := dashboardsvc.NewDashboardService(
		dashboardRepo, s.cache, s.cfg.StatsCacheTTL, s.cfg.RenewalWindowDays, logger,
	)

	// ----- Handlers -----
	handlers := &Handlers{
		CustomerHandler:  customerHandler.NewCustomerHandler(customerService),
		InsuranceHandler: insuranceHandler.NewInsuranceHandler(insuranceService),
		DocumentHandler:  documentHandler.NewDocumentHandler(documentService),
		DashboardHandler: dashboardHandler.NewDashboardHandler(dashboardService),
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(s.cfg.AllowedOrigins),
	)

	// ----- Router -----
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Shutdown releases the database and cache connections.
func (s *Server) Shutdown(ctx context.Context) {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.cache != nil {
		_ = s.cache.Close()
	}
	if s.logger != nil {
		_ = s.logger.Sync()
	}
}
