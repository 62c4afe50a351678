package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yogesh1825/CareerConnect-Job-Portal/config"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/cache"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/db"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/mq"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/services"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/storage"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/store"
)

// Server wraps the HTTP server, router and the connections it owns.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	closers    []func(context.Context) error
}

// New opens every configured backend and constructs a Server.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	s := &Server{}
	repos, err := s.openRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var uploader services.Uploader
	objects, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		s.close(ctx)
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if objects != nil {
		if err := objects.EnsureBucket(ctx); err != nil {
			s.close(ctx)
			return nil, fmt.Errorf("ensure bucket %s: %w", objects.Bucket(), err)
		}
		uploader = objects
	} else {
		slog.Warn("STORAGE_BACKEND not set; file uploads are disabled")
	}

	var publisher services.EventPublisher
	broker, err := mq.Open(ctx, cfg.MQ)
	if err != nil {
		s.close(ctx)
		return nil, fmt.Errorf("open broker: %w", err)
	}
	if broker != nil {
		s.closers = append(s.closers, func(context.Context) error { return broker.Close() })
		publisher = broker
	}

	redisClient := cache.New(cfg.Redis)
	if redisClient != nil {
		if err := redisClient.Ping(ctx); err != nil {
			slog.Warn("redis unreachable; logout revocation degraded", "addr", cfg.Redis.Addr, "error", err)
		}
		s.closers = append(s.closers, func(context.Context) error { return redisClient.Close() })
	}

	s.router = NewRouter(Dependencies{
		Repos:          repos,
		Uploader:       uploader,
		Events:         publisher,
		Denylist:       cache.NewTokenDenylist(redisClient),
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       cfg.TokenTTL,
		CookieSecure:   cfg.CookieSecure,
		AllowedOrigins: cfg.AllowedOrigins,
		JobListTimeout: cfg.JobListTimeout,
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8000
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *Server) openRepositories(ctx context.Context, cfg config.Config) (Repositories, error) {
	switch cfg.Database.Driver {
	case "postgres":
		conn, err := db.Open(ctx, cfg)
		if err != nil {
			return Repositories{}, fmt.Errorf("open postgres: %w", err)
		}
		s.closers = append(s.closers, func(context.Context) error { return conn.Close() })
		return Repositories{
			Users:        store.NewUserRepository(conn),
			Companies:    store.NewCompanyRepository(conn),
			Jobs:         store.NewJobRepository(conn),
			Applications: store.NewApplicationRepository(conn),
		}, nil
	case "memory":
		slog.Warn("using the in-memory store; data is lost on restart")
		mem := store.NewMemory()
		return Repositories{
			Users:        mem.Users(),
			Companies:    mem.Companies(),
			Jobs:         mem.Jobs(),
			Applications: mem.Applications(),
		}, nil
	case "", "mongo":
		database, err := db.OpenMongo(ctx, cfg)
		if err != nil {
			return Repositories{}, fmt.Errorf("open mongo: %w", err)
		}
		s.closers = append(s.closers, func(ctx context.Context) error { return database.Client().Disconnect(ctx) })
		if err := store.EnsureIndexes(ctx, database); err != nil {
			s.close(ctx)
			return Repositories{}, fmt.Errorf("ensure indexes: %w", err)
		}
		return Repositories{
			Users:        store.NewMongoUserRepository(database),
			Companies:    store.NewMongoCompanyRepository(database),
			Jobs:         store.NewMongoJobRepository(database),
			Applications: store.NewMongoApplicationRepository(database),
		}, nil
	default:
		return Repositories{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start runs the HTTP server. It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then releases backend connections.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.close(ctx)
	return err
}

func (s *Server) close(ctx context.Context) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			slog.Warn("close backend", "error", err)
		}
	}
	s.closers = nil
}
