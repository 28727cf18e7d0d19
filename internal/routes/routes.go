package routes

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/varawallet/varad/internal/app"
	"github.com/varawallet/varad/internal/auth"
	"github.com/varawallet/varad/internal/balance"
	"github.com/varawallet/varad/internal/config"
	"github.com/varawallet/varad/internal/event"
	"github.com/varawallet/varad/internal/logging"
	"github.com/varawallet/varad/internal/middleware"
	"github.com/varawallet/varad/internal/notification"
	"github.com/varawallet/varad/internal/provider"
	"github.com/varawallet/varad/internal/session"
	"github.com/varawallet/varad/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes, builds the
// component graph and returns the assembled lifecycle coordinator for the
// caller to initialize and run.
func Setup(f *fiber.App, d Deps) (*app.App, error) {
	// Middlewares
	f.Use(recover.New())
	f.Use(middleware.RequestID())
	f.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	RegisterHealthRoutes(f, d)

	bus := event.NewBus()
	sess := session.New(d.Cfg.UserUID, d.Cfg.PinAttemptsLimit, d.Cfg.IdleTimeout)

	var creds auth.CredentialStore
	if d.Cache != nil {
		creds = auth.NewRedisCredentialStore(d.Cache)
	} else {
		creds = auth.NewMemoryCredentialStore()
	}
	authSvc := auth.NewService(bus, sess, creds, auth.UnsupportedBiometry{}, d.Cfg.DeviceUID, d.Cfg.BiometryEnabled, logging.WithComponent(d.Logger, "auth"))

	var walletRepo wallet.Repository
	if d.DB != nil {
		walletRepo = wallet.NewPostgresRepository(d.DB)
	} else {
		walletRepo = wallet.NewMemoryRepository()
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	store := wallet.NewStore(bus, walletRepo, rng, logging.WithComponent(d.Logger, "wallet"))

	engine := balance.NewEngine(bus, sess, d.Cfg.BalanceInterval, logging.WithComponent(d.Logger, "balance"))

	activeID := d.Cfg.ProviderID
	if activeID == "" {
		activeID = provider.DefaultNetwork(d.Cfg.AppEnv)
	}
	registry, err := provider.NewRegistry(bus, activeID, provider.Defaults()...)
	if err != nil {
		return nil, err
	}

	consumer := notification.NewConsumer(bus, notification.NewLoggerNotifier(d.Logger), engine.CheckBalance, logging.WithComponent(d.Logger, "notification"))
	consumer.Start()

	ctx := context.Background()
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}

	application := app.New(d.Cfg, bus, sess, authSvc, engine, store, registry, logging.WithComponent(d.Logger, "app"))

	// API routes
	api := f.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterAuthRoutes(api, auth.NewHandler(authSvc))
	RegisterWalletRoutes(api, wallet.NewHandler(store))
	RegisterBalanceRoutes(api, balance.NewHandler(engine))
	RegisterProviderRoutes(api, provider.NewHandler(registry))
	RegisterLifecycleRoutes(api, app.NewHandler(application))

	return application, nil
}
