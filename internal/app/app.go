package app

import (
	"context"
	"log/slog"

	"github.com/varawallet/varad/internal/auth"
	"github.com/varawallet/varad/internal/balance"
	"github.com/varawallet/varad/internal/config"
	"github.com/varawallet/varad/internal/event"
	"github.com/varawallet/varad/internal/provider"
	"github.com/varawallet/varad/internal/session"
	"github.com/varawallet/varad/internal/wallet"
)

// App ties the session, the authentication machine, the balance engine and
// the wallet store together and drives them through the process lifecycle:
// startup unlock, foreground/background transitions and idle re-locking.
type App struct {
	cfg       config.Config
	bus       *event.Bus
	session   *session.Session
	auth      *auth.Service
	engine    *balance.Engine
	wallets   *wallet.Store
	providers *provider.Registry
	logger    *slog.Logger
}

// New assembles the lifecycle coordinator from already-built components.
func New(cfg config.Config, bus *event.Bus, sess *session.Session, authSvc *auth.Service, engine *balance.Engine, wallets *wallet.Store, providers *provider.Registry, logger *slog.Logger) *App {
	return &App{
		cfg:       cfg,
		bus:       bus,
		session:   sess,
		auth:      authSvc,
		engine:    engine,
		wallets:   wallets,
		providers: providers,
		logger:    logger,
	}
}

// Init performs the startup unlock sequence. Before onboarding there is
// nothing to unlock, so it returns immediately. Otherwise it blocks on the
// authentication race (unless pin entry is configured away), marks the
// session active and requests a first balance poll so freshly restored
// accounts show values without waiting for the ticker.
func (a *App) Init(ctx context.Context) error {
	if !a.cfg.Onboarded {
		a.logger.Info("not onboarded, skipping unlock")
		return nil
	}

	if a.cfg.SkipPinOnLogin {
		a.session.SetAuthenticated(true)
	} else if err := a.auth.Auth(ctx); err != nil {
		return err
	}

	a.session.SetStatus(session.StatusActive)
	a.engine.CheckBalance()
	a.logger.Info("session unlocked", "provider", a.providers.Active().ID)
	return nil
}

// OnAppStatusChanged reacts to a foreground/background transition. Repeated
// notifications of the current status are ignored. Going to background
// stamps the idle clock; coming back re-runs the unlock race first when the
// idle threshold has elapsed, then announces appActive and polls balances.
func (a *App) OnAppStatusChanged(ctx context.Context, status session.Status) error {
	if status == a.session.Status() {
		return nil
	}

	switch status {
	case session.StatusInactive:
		a.session.SetStatus(session.StatusInactive)
		if a.session.IsUnlocked() {
			a.session.TouchLastActivity()
		}
		return nil
	case session.StatusActive:
		if a.session.IsUnlocked() && a.session.IsOutdatedLastActivity() {
			a.session.SetAuthenticated(false)
			if err := a.auth.Auth(ctx); err != nil {
				return err
			}
		}
		a.session.SetStatus(session.StatusActive)
		a.bus.Emit(event.AppActive, nil)
		a.engine.CheckBalance()
	}
	return nil
}

// Run drives the periodic balance trigger until the context ends.
func (a *App) Run(ctx context.Context) {
	a.engine.Run(ctx)
}

// CheckBalance requests one balance poll immediately.
func (a *App) CheckBalance() {
	a.engine.CheckBalance()
}

// Session exposes the lifecycle state for read-only surfaces.
func (a *App) Session() *session.Session {
	return a.session
}
