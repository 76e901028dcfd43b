package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"rabbit-catalog/internal/config"
	"rabbit-catalog/internal/database"
	custommiddleware "rabbit-catalog/internal/middleware"
	"rabbit-catalog/internal/objectstore"
	"rabbit-catalog/internal/repository"
	"rabbit-catalog/internal/service"
	"rabbit-catalog/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) (*Server, error) {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))

	router.Get("/health", healthHandler(cfg, db))

	// Rabbit data comes from Postgres when configured, otherwise from the
	// read-only seed snapshot. Writes against the snapshot report the
	// backend as unavailable.
	var rabbitRepo repository.RabbitRepository
	if db != nil {
		rabbitRepo = repository.NewRabbitRepository(db)
	} else {
		seedRepo, err := repository.NewSeedRabbitRepository(cfg.Seed.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed snapshot: %w", err)
		}
		rabbitRepo = seedRepo
		logger.Warn("Database not configured, serving catalog from seed snapshot",
			zap.String("path", cfg.Seed.Path),
		)
	}

	rabbitService := service.NewRabbitService(rabbitRepo)
	catalogService := service.NewCatalogService(rabbitRepo)

	store := objectstore.New(objectstore.Config{
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		ServiceKey: cfg.Storage.ServiceKey,
	}, nil)

	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	rabbitHandler := transport.NewRabbitHandler(rabbitService, logger)
	uploadHandler := transport.NewUploadHandler(store, logger)

	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	requireAdmin := custommiddleware.RequireAdmin(logger)

	var redisClient *redis.Client
	adminMiddlewares := []func(http.Handler) http.Handler{authMiddleware, requireAdmin}
	if cfg.Redis.Configured() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		adminMiddlewares = append(adminMiddlewares, custommiddleware.RateLimitMiddleware(
			redisClient,
			custommiddleware.RateLimitConfig{
				RequestsPerWindow: 100,
				Window:            time.Minute,
				KeyPrefix:         "admin_rate_limit",
			},
			logger,
		))
	}

	// Public surface
	catalogHandler.RegisterRoutes(router)

	// Admin surface
	router.Group(func(r chi.Router) {
		r.Use(adminMiddlewares...)
		rabbitHandler.RegisterRoutes(r)
		uploadHandler.RegisterRoutes(r)

		if db != nil {
			breedingService := service.NewBreedingService(
				repository.NewBreedingPairRepository(db),
				repository.NewGestationRepository(db),
				repository.NewBirthRepository(db),
				rabbitRepo,
			)
			transport.NewBreedingPairHandler(breedingService, logger).RegisterRoutes(r)
			transport.NewGestationHandler(breedingService, logger).RegisterRoutes(r)
			transport.NewBirthHandler(breedingService, logger).RegisterRoutes(r)
		}
	})

	// Account routes need the database for credentials and refresh tokens
	if db != nil {
		userService := service.NewUserService(
			repository.NewUserRepository(db),
			repository.NewRefreshTokenRepository(db),
			cfg.JWT.Secret,
		)
		userHandler := transport.NewUserHandler(userService, logger)
		userHandler.RegisterRoutes(router, authMiddleware)
	} else {
		logger.Warn("Database not configured, account routes disabled")
	}

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server, nil
}

func healthHandler(cfg *config.Config, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]interface{}{
			"status":  "ok",
			"storage": cfg.Storage.Configured(),
			"redis":   cfg.Redis.Configured(),
		}
		if db != nil {
			status["database"] = database.Health(db)
		} else {
			status["database"] = map[string]string{"status": "not configured"}
		}
		custommiddleware.RespondWithJSON(w, http.StatusOK, status)
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
