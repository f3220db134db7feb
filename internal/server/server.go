// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/ikigain/ForestOS/api"
	"github.com/ikigain/ForestOS/api/middleware"
	"github.com/ikigain/ForestOS/internal/auth"
	"github.com/ikigain/ForestOS/internal/careservice"
	"github.com/ikigain/ForestOS/internal/cleanup"
	"github.com/ikigain/ForestOS/internal/config"
	"github.com/ikigain/ForestOS/internal/database"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/monitoring"
	"github.com/ikigain/ForestOS/internal/repository"
	"github.com/ikigain/ForestOS/internal/repository/memory"
	"github.com/ikigain/ForestOS/internal/repository/postgres"
	"github.com/ikigain/ForestOS/internal/repository/rediscache"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config      *config.Config
	srv         *http.Server
	careservice *careservice.CareService
	monitoring  *monitoring.Service
	store       *repository.Store
	closers     []func() error
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config: cfg,
		srv:    srv,
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	store, err := s.initializeStore()
	if err != nil {
		return err
	}
	defer s.close()

	handler, err := s.Handler(store)
	if err != nil {
		return err
	}
	s.srv.Handler = handler

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// Handler builds the full HTTP stack over store.
func (s *Server) Handler(store *repository.Store) (http.Handler, error) {
	s.store = store
	s.monitoring = monitoring.NewService()

	tokens := auth.NewTokenService(s.config.Security.SecretKey, s.config.Security.AccessTokenExpire)
	s.careservice = careservice.New(store, tokens, auth.NewDeviceTokenIssuer())
	if err := s.careservice.Validate(); err != nil {
		return nil, fmt.Errorf("invalid care service: %w", err)
	}

	// Set up cleanup event handlers
	s.setupCleanupHandlers()

	resolver := auth.NewResolver(tokens, store.Users, store.Sensors)
	router := api.NewRouter(s.careservice, resolver, s.handleHealth(), s.handleMetrics())

	cors := handlers.CORS(
		handlers.AllowedOrigins(s.config.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
		handlers.AllowCredentials(),
	)
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(
		handlers.CombinedLoggingHandler(os.Stdout, cors(router)),
	), nil
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			nuts.L.Warnf("[Server] Error closing resource: %v", err)
		}
	}
}

// handleHealth reports whether the store answers.
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			nuts.L.Warnf("[Server] Health check failed: %v", err)
			middleware.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
		middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

func (s *Server) handleMetrics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		middleware.RespondWithJSON(w, http.StatusOK, s.monitoring.Snapshot())
	}
}

func (s *Server) setupCleanupHandlers() {
	// Handle plant deletion events
	s.careservice.Cleanup.OnCleanup(cleanup.EventPlantDeleted, func(id string) {
		nuts.L.Infof("[Cleanup] Plant %s and all associated data deleted", id)
		s.monitoring.RecordEvent("plant_deletion", map[string]string{
			"plant_id": id,
		})
	})

	// Handle sensor deletion events
	s.careservice.Cleanup.OnCleanup(cleanup.EventSensorDeleted, func(id string) {
		nuts.L.Infof("[Cleanup] Sensor %s and its readings deleted", id)
		s.monitoring.RecordEvent("sensor_deletion", map[string]string{
			"device_id": id,
		})
	})
}

// initializeStore opens the configured store and, when enabled, puts the
// Redis catalog cache in front of it.
func (s *Server) initializeStore() (*repository.Store, error) {
	var store *repository.Store
	switch s.config.Database.Driver {
	case "memory":
		nuts.L.Warnf("[Server] Using the in-memory store; data is lost on restart")
		store = memory.NewStore()
	default:
		db, err := initAppDB(s.config.Database)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, db.Close)
		store = postgres.NewStore(db)
	}

	if s.config.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     s.config.Redis.Addr(),
			Password: s.config.Redis.Password,
			DB:       s.config.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			nuts.L.Warnf("[Server] Redis at %s unavailable, catalog cache disabled: %v", s.config.Redis.Addr(), err)
			_ = client.Close()
		} else {
			nuts.L.Infof("[Server] Catalog cache enabled on %s", s.config.Redis.Addr())
			s.closers = append(s.closers, client.Close)
			store.Catalog = rediscache.NewCatalogCache(store.Catalog, client, s.config.Redis.CatalogTTL)
		}
	}
	return store, nil
}

func initAppDB(cfg config.DatabaseConfig) (database.DB, error) {
	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to connect to postgres", err)
	}
	// Set up connection timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, errors.NewDatabaseError("failed to ping postgres", err)
	}
	if cfg.RunMigrations {
		if err := database.RunMigrations(context.Background(), db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}
