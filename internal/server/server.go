package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/varawallet/varad/internal/app"
	"github.com/varawallet/varad/internal/config"
	"github.com/varawallet/varad/internal/routes"
)

// Server wraps the Fiber application and the wallet core it exposes.
type Server struct {
	fiber *fiber.App
	cfg   config.Config
	core  *app.App
}

// New instantiates the HTTP server and delegates component wiring to
// routes.Setup.
func New(cfg config.Config, db *pgxpool.Pool, cache *redis.Client, logger *slog.Logger) (*Server, error) {
	f := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	core, err := routes.Setup(f, routes.Deps{Cfg: cfg, DB: db, Cache: cache, Logger: logger})
	if err != nil {
		return nil, err
	}

	return &Server{fiber: f, cfg: cfg, core: core}, nil
}

// Core returns the assembled lifecycle coordinator.
func (s *Server) Core() *app.App {
	return s.core
}

// Listen starts the HTTP server.
func (s *Server) Listen() error {
	return s.fiber.Listen(s.cfg.Address())
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.fiber.ShutdownWithContext(ctx)
}
